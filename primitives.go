package feltcodec

import (
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
)

// FeltCodec encodes a felt as itself.
type FeltCodec struct{}

func (FeltCodec) EncodeFelts(_ *Encoding, buf *Buffer, v *felt.Felt) error {
	buf.Append(v)
	return nil
}

func (FeltCodec) DecodeFelts(_ *Encoding, cur *Cursor) (*felt.Felt, error) {
	return cur.Read()
}

// Unit is the empty value. It encodes to no felts.
type Unit struct{}

// UnitCodec writes and reads nothing.
type UnitCodec struct{}

func (UnitCodec) EncodeFelts(*Encoding, *Buffer, Unit) error { return nil }

func (UnitCodec) DecodeFelts(*Encoding, *Cursor) (Unit, error) { return Unit{}, nil }

// Unsigned is the set of fixed-width integers that fit in a single felt.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// UintCodec encodes a fixed-width unsigned integer as one felt.
type UintCodec[T Unsigned] struct{}

func (UintCodec[T]) EncodeFelts(_ *Encoding, buf *Buffer, v T) error {
	buf.AppendUint64(uint64(v))
	return nil
}

func (UintCodec[T]) DecodeFelts(_ *Encoding, cur *Cursor) (T, error) {
	f, err := cur.Peek()
	if err != nil {
		return 0, err
	}
	n, ok := Uint64FromFelt(f)
	maxValue := uint64(^T(0))
	if !ok || n > maxValue {
		return 0, newError(KindRangeViolation, cur.Position(), typeName[T](), "%s exceeds %d", f, maxValue)
	}
	_ = cur.Advance(1)
	return T(n), nil
}

// BoolCodec encodes false as 0 and true as 1. Any other felt is an invalid bool.
var BoolCodec = FeltCoercion[bool]{
	ToFelt: FeltFromBool,
	FromFelt: func(f *felt.Felt) (bool, bool) {
		n, ok := Uint64FromFelt(f)
		if !ok || n > 1 {
			return false, false
		}
		return n == 1, true
	},
}

// U128Codec encodes a *big.Int in [0, 2^128) as one felt.
type U128Codec struct{}

func (U128Codec) EncodeFelts(_ *Encoding, buf *Buffer, v *big.Int) error {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return newError(KindRangeViolation, buf.Len(), "u128", "%s out of range", v)
	}
	f, _ := FeltFromBigInt(v)
	buf.Append(f)
	return nil
}

func (U128Codec) DecodeFelts(_ *Encoding, cur *Cursor) (*big.Int, error) {
	f, err := cur.Peek()
	if err != nil {
		return nil, err
	}
	if BitLen(f) > 128 {
		return nil, newError(KindRangeViolation, cur.Position(), "u128", "%s exceeds 128 bits", f)
	}
	_ = cur.Advance(1)
	return BigIntFromFelt(f), nil
}
