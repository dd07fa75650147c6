package feltcodec

// Pair holds two values encoded back to back.
type Pair[A, B any] struct {
	First  A
	Second B
}

// NewPair pairs first with second.
func NewPair[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// PairCodec encodes First then Second with their bindings under S, without any prefix.
type PairCodec[S Strategy, A, B any] struct{}

func (PairCodec[S, A, B]) EncodeFelts(enc *Encoding, buf *Buffer, v Pair[A, B]) error {
	start := buf.Len()
	if err := EncodeWith[S](enc, buf, v.First); err != nil {
		return err
	}
	if err := EncodeWith[S](enc, buf, v.Second); err != nil {
		buf.truncate(start)
		return err
	}
	return nil
}

func (PairCodec[S, A, B]) DecodeFelts(enc *Encoding, cur *Cursor) (Pair[A, B], error) {
	var p Pair[A, B]
	first, err := DecodeWith[S, A](enc, cur)
	if err != nil {
		return p, err
	}
	second, err := DecodeWith[S, B](enc, cur)
	if err != nil {
		return p, err
	}
	return Pair[A, B]{First: first, Second: second}, nil
}

func (PairCodec[S, A, B]) Dependencies() []Key {
	return []Key{KeyOf[S, A](), KeyOf[S, B]()}
}

// RegisterPair binds Pair[A, B] under S.
func RegisterPair[S Strategy, A, B any](r *Registry) {
	Register[S, Pair[A, B]](r, PairCodec[S, A, B]{})
}
