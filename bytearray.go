package feltcodec

// WordSize is the number of bytes packed into one ByteArray word.
const WordSize = 31

// ByteArrayCodec encodes arbitrary bytes as a Cairo ByteArray:
//
//	[word count, word_0 .. word_n-1, pending word, pending length]
//
// Each full word holds 31 bytes and the pending word holds the 0 to 30 trailing
// bytes. Words are packed big-endian, so the first byte of a word is its most
// significant byte.
type ByteArrayCodec struct{}

func (ByteArrayCodec) EncodeFelts(_ *Encoding, buf *Buffer, v []byte) error {
	words := len(v) / WordSize
	buf.AppendUint64(uint64(words))
	for i := 0; i < words; i++ {
		buf.Append(FeltFromBytes(v[i*WordSize : (i+1)*WordSize]))
	}
	pending := v[words*WordSize:]
	buf.Append(FeltFromBytes(pending))
	buf.AppendUint64(uint64(len(pending)))
	return nil
}

// DecodeFelts validates the whole ByteArray before consuming anything, so the
// cursor does not move on failure.
func (ByteArrayCodec) DecodeFelts(_ *Encoding, cur *Cursor) ([]byte, error) {
	start := cur.Position()
	countFelt, err := cur.Peek()
	if err != nil {
		return nil, err
	}
	remaining := uint64(cur.Remaining())
	words, ok := Uint64FromFelt(countFelt)
	if !ok || words > remaining || words+3 > remaining {
		return nil, newError(KindLengthMismatch, start, "ByteArray",
			"%s full words declared, %d felts remaining", countFelt, remaining)
	}

	n := int(words)
	out := make([]byte, 0, n*WordSize+WordSize-1)
	for i := 0; i < n; i++ {
		w, _ := cur.PeekAt(1 + i)
		b := feltBytes(w)
		if !fitsBytes(b, WordSize) {
			return nil, newError(KindRangeViolation, start+1+i, "ByteArray", "word %d exceeds 31 bytes", i)
		}
		out = append(out, b[FeltSize-WordSize:]...)
	}

	pending, _ := cur.PeekAt(1 + n)
	lenFelt, _ := cur.PeekAt(2 + n)
	pendingLen, ok := Uint64FromFelt(lenFelt)
	if !ok || pendingLen >= WordSize {
		return nil, newError(KindLengthMismatch, start+2+n, "ByteArray", "pending length %s exceeds 30", lenFelt)
	}
	pb := feltBytes(pending)
	if !fitsBytes(pb, int(pendingLen)) {
		return nil, newError(KindLengthMismatch, start+1+n, "ByteArray",
			"pending word %s wider than %d bytes", pending, pendingLen)
	}
	out = append(out, pb[FeltSize-int(pendingLen):]...)

	_ = cur.Advance(n + 3)
	return out, nil
}

// StringCodec encodes a string as a ByteArray of its bytes.
type StringCodec struct{}

func (StringCodec) EncodeFelts(enc *Encoding, buf *Buffer, v string) error {
	return ByteArrayCodec{}.EncodeFelts(enc, buf, []byte(v))
}

func (StringCodec) DecodeFelts(enc *Encoding, cur *Cursor) (string, error) {
	b, err := ByteArrayCodec{}.DecodeFelts(enc, cur)
	return string(b), err
}
