package feltcodec

import (
	"math"
)

// ArrayCodec encodes a slice as its length followed by each element's encoding
// under S. The length is bounded only by the remaining input.
type ArrayCodec[S Strategy, T any] struct{}

func (ArrayCodec[S, T]) EncodeFelts(enc *Encoding, buf *Buffer, v []T) error {
	start := buf.Len()
	buf.AppendUint64(uint64(len(v)))
	for _, elem := range v {
		if err := EncodeWith[S](enc, buf, elem); err != nil {
			buf.truncate(start)
			return err
		}
	}
	return nil
}

func (ArrayCodec[S, T]) DecodeFelts(enc *Encoding, cur *Cursor) ([]T, error) {
	start := cur.Position()
	countFelt, err := cur.Read()
	if err != nil {
		return nil, err
	}
	count, ok := Uint64FromFelt(countFelt)
	if !ok {
		count = math.MaxUint64
	}
	remaining := uint64(cur.Remaining())

	out := make([]T, 0, min(count, remaining))
	for i := uint64(0); i < count; i++ {
		before := cur.Position()
		elem, err := DecodeWith[S, T](enc, cur)
		if err != nil {
			return nil, err
		}
		// Zero-width elements never exhaust the input.
		if cur.Position() == before && count > math.MaxInt32 {
			return nil, newError(KindLengthMismatch, start, "[]"+typeName[T](), "element count %s of zero-width elements", countFelt)
		}
		out = append(out, elem)
	}
	return out, nil
}

func (ArrayCodec[S, T]) Dependencies() []Key {
	return []Key{KeyOf[S, T]()}
}

// RegisterArray binds []T under S.
func RegisterArray[S Strategy, T any](r *Registry) {
	Register[S, []T](r, ArrayCodec[S, T]{})
}
