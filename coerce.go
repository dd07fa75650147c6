package feltcodec

import (
	"github.com/NethermindEth/juno/core/felt"
)

// FeltCoercion encodes a T as a single felt through a pair of conversions.
// FromFelt reports false when the felt does not correspond to any T.
type FeltCoercion[T any] struct {
	ToFelt   func(T) *felt.Felt
	FromFelt func(*felt.Felt) (T, bool)
}

// EncodeFelts refuses values whose felt would not decode back.
func (c FeltCoercion[T]) EncodeFelts(_ *Encoding, buf *Buffer, v T) error {
	f := copyFelt(c.ToFelt(v))
	if _, ok := c.FromFelt(f); !ok {
		return newError(KindInvalidValue, buf.Len(), typeName[T](), "%s is not a valid value", f)
	}
	buf.Append(f)
	return nil
}

func (c FeltCoercion[T]) DecodeFelts(_ *Encoding, cur *Cursor) (T, error) {
	f, err := cur.Peek()
	if err != nil {
		var zero T
		return zero, err
	}
	v, ok := c.FromFelt(f)
	if !ok {
		var zero T
		return zero, newError(KindInvalidValue, cur.Position(), typeName[T](), "%s is not a valid value", f)
	}
	_ = cur.Advance(1)
	return v, nil
}

// EnumTag encodes a fieldless enumeration with Count members as its index.
type EnumTag[T Unsigned] struct {
	Count uint64
}

func (e EnumTag[T]) EncodeFelts(_ *Encoding, buf *Buffer, v T) error {
	if uint64(v) >= e.Count {
		return newError(KindInvalidValue, buf.Len(), typeName[T](), "tag %d not below %d", uint64(v), e.Count)
	}
	buf.AppendUint64(uint64(v))
	return nil
}

func (e EnumTag[T]) DecodeFelts(enc *Encoding, cur *Cursor) (T, error) {
	return FeltCoercion[T]{
		FromFelt: func(f *felt.Felt) (T, bool) {
			n, ok := Uint64FromFelt(f)
			if !ok || n >= e.Count {
				return 0, false
			}
			return T(n), true
		},
	}.DecodeFelts(enc, cur)
}
