package feltcodec

// ContextualEncoder encodes a T given an auxiliary value that is not part of T.
type ContextualEncoder[A, T any] interface {
	EncodeFeltsWith(enc *Encoding, aux A, buf *Buffer, v T) error
}

// ContextualDecoder decodes a T given an auxiliary value that is not on the wire.
type ContextualDecoder[A, T any] interface {
	DecodeFeltsWith(enc *Encoding, aux A, cur *Cursor) (T, error)
}

// ContextualCodec encodes and decodes a T given an auxiliary value.
type ContextualCodec[A, T any] interface {
	ContextualEncoder[A, T]
	ContextualDecoder[A, T]
}

// AuxCodec is a Codec that threads a fixed auxiliary value into a contextual codec.
// The auxiliary value only steers the inner codec; it is never written itself.
type AuxCodec[A, T any] struct {
	Aux   A
	Inner ContextualCodec[A, T]
}

// WithAux binds aux to inner.
func WithAux[A, T any](aux A, inner ContextualCodec[A, T]) AuxCodec[A, T] {
	return AuxCodec[A, T]{Aux: aux, Inner: inner}
}

func (c AuxCodec[A, T]) EncodeFelts(enc *Encoding, buf *Buffer, v T) error {
	return c.Inner.EncodeFeltsWith(enc, c.Aux, buf, v)
}

func (c AuxCodec[A, T]) DecodeFelts(enc *Encoding, cur *Cursor) (T, error) {
	return c.Inner.DecodeFeltsWith(enc, c.Aux, cur)
}

func (c AuxCodec[A, T]) Dependencies() []Key {
	if d, ok := c.Inner.(Dependent); ok {
		return d.Dependencies()
	}
	return nil
}

// IgnoreAux lifts a plain codec into a contextual one that disregards its auxiliary value.
type IgnoreAux[A, T any] struct {
	Codec Codec[T]
}

func (c IgnoreAux[A, T]) EncodeFeltsWith(enc *Encoding, _ A, buf *Buffer, v T) error {
	return c.Codec.EncodeFelts(enc, buf, v)
}

func (c IgnoreAux[A, T]) DecodeFeltsWith(enc *Encoding, _ A, cur *Cursor) (T, error) {
	return c.Codec.DecodeFelts(enc, cur)
}
