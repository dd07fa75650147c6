package feltcodec

import (
	"reflect"
)

// Variants is a tagged union built as a right-nested chain of Either values ending
// in Void, for example Either[A, Either[B, Either[C, Void]]]. Only Either and Void
// implement it.
type Variants interface {
	arity() int
	variantTypes() []reflect.Type
	encodeVariant(enc *Encoding, strategy reflect.Type, buf *Buffer, index uint64) error
	decodeVariant(enc *Encoding, strategy reflect.Type, cur *Cursor, index uint64) (Variants, error)
}

// Void terminates a Variants chain. It has no alternatives and is never encoded.
type Void struct{}

func (Void) arity() int { return 0 }

func (Void) variantTypes() []reflect.Type { return nil }

func (Void) encodeVariant(_ *Encoding, _ reflect.Type, buf *Buffer, _ uint64) error {
	return newError(KindInvalidValue, buf.Len(), "Void", "union holds no alternative")
}

func (Void) decodeVariant(_ *Encoding, _ reflect.Type, cur *Cursor, index uint64) (Variants, error) {
	return nil, newError(KindDiscriminantOutOfRange, cur.Position(), "Void", "no alternative %d", index)
}

// Either holds an A or one of the alternatives of R. The zero value holds the zero R.
type Either[A any, R Variants] struct {
	isLeft bool
	left   A
	right  R
}

// Left returns a union holding a.
func Left[A any, R Variants](a A) Either[A, R] {
	return Either[A, R]{isLeft: true, left: a}
}

// Right returns a union holding one of the remaining alternatives.
func Right[A any, R Variants](r R) Either[A, R] {
	return Either[A, R]{right: r}
}

func (e Either[A, R]) IsLeft() bool { return e.isLeft }

// Left returns the A held by e, if any.
func (e Either[A, R]) Left() (A, bool) {
	return e.left, e.isLeft
}

// Right returns the rest of the chain, if e does not hold an A.
func (e Either[A, R]) Right() (R, bool) {
	return e.right, !e.isLeft
}

func (e Either[A, R]) arity() int {
	var rest R
	return 1 + rest.arity()
}

func (e Either[A, R]) variantTypes() []reflect.Type {
	var rest R
	return append([]reflect.Type{reflect.TypeFor[A]()}, rest.variantTypes()...)
}

func (e Either[A, R]) encodeVariant(enc *Encoding, strategy reflect.Type, buf *Buffer, index uint64) error {
	if !e.isLeft {
		return e.right.encodeVariant(enc, strategy, buf, index+1)
	}
	codec, owner, err := lookupKey[A](enc, strategy)
	if err != nil {
		return atOffset(err, buf.Len())
	}
	start := buf.Len()
	buf.AppendUint64(index)
	if err := codec.EncodeFelts(owner, buf, e.left); err != nil {
		buf.truncate(start)
		return err
	}
	return nil
}

func (e Either[A, R]) decodeVariant(enc *Encoding, strategy reflect.Type, cur *Cursor, index uint64) (Variants, error) {
	if index == 0 {
		codec, owner, err := lookupKey[A](enc, strategy)
		if err != nil {
			return nil, atOffset(err, cur.Position())
		}
		a, err := codec.DecodeFelts(owner, cur)
		if err != nil {
			return nil, err
		}
		return Left[A, R](a), nil
	}
	var rest R
	v, err := rest.decodeVariant(enc, strategy, cur, index-1)
	if err != nil {
		return nil, err
	}
	return Right[A](v.(R)), nil
}

// Arity returns the number of alternatives of U.
func Arity[U Variants]() int {
	var u U
	return u.arity()
}

// SumCodec encodes a union as the zero-based index of the alternative it holds,
// followed by that alternative's encoding under S.
type SumCodec[S Strategy, U Variants] struct {
	arity int
}

// NewSumCodec creates the codec for U, counting its alternatives once.
func NewSumCodec[S Strategy, U Variants]() SumCodec[S, U] {
	return SumCodec[S, U]{arity: Arity[U]()}
}

func (c SumCodec[S, U]) EncodeFelts(enc *Encoding, buf *Buffer, v U) error {
	return v.encodeVariant(enc, reflect.TypeFor[S](), buf, 0)
}

// DecodeFelts does not consume the discriminant when it is out of range.
func (c SumCodec[S, U]) DecodeFelts(enc *Encoding, cur *Cursor) (U, error) {
	var zero U
	f, err := cur.Peek()
	if err != nil {
		return zero, err
	}
	n := c.arity
	if n == 0 {
		n = Arity[U]()
	}
	index, ok := Uint64FromFelt(f)
	if !ok || index >= uint64(n) {
		return zero, newError(KindDiscriminantOutOfRange, cur.Position(), typeName[U](),
			"discriminant %s, union has %d alternatives", f, n)
	}
	_ = cur.Advance(1)
	v, err := zero.decodeVariant(enc, reflect.TypeFor[S](), cur, index)
	if err != nil {
		return zero, err
	}
	return v.(U), nil
}

func (c SumCodec[S, U]) Dependencies() []Key {
	var u U
	types := u.variantTypes()
	keys := make([]Key, len(types))
	for i, t := range types {
		keys[i] = Key{Strategy: reflect.TypeFor[S](), Value: t}
	}
	return keys
}

// RegisterSum binds the union U under S.
func RegisterSum[S Strategy, U Variants](r *Registry) {
	Register[S, U](r, NewSumCodec[S, U]())
}
