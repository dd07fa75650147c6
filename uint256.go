package feltcodec

import (
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
)

// limbSize is the byte width of one u256 limb.
const limbSize = 16

// U256Codec encodes a 256-bit integer as two 128-bit limbs, low limb first.
type U256Codec struct{}

func (U256Codec) EncodeFelts(_ *Encoding, buf *Buffer, v *uint256.Int) error {
	low, high := SplitU256(v)
	buf.Append(low, high)
	return nil
}

func (U256Codec) DecodeFelts(_ *Encoding, cur *Cursor) (*uint256.Int, error) {
	low, err := cur.PeekAt(0)
	if err != nil {
		return nil, err
	}
	high, err := cur.PeekAt(1)
	if err != nil {
		return nil, err
	}
	v, rangeErr := JoinU256(low, high)
	if rangeErr != nil {
		rangeErr.Offset = cur.Position()
		return nil, rangeErr
	}
	_ = cur.Advance(2)
	return v, nil
}

// SplitU256 returns the low and high 128-bit limbs of v.
func SplitU256(v *uint256.Int) (low, high *felt.Felt) {
	if v == nil {
		return new(felt.Felt), new(felt.Felt)
	}
	b := v.Bytes32()
	return new(felt.Felt).SetBytes(b[limbSize:]), new(felt.Felt).SetBytes(b[:limbSize])
}

// JoinU256 combines two 128-bit limbs into a 256-bit integer.
func JoinU256(low, high *felt.Felt) (*uint256.Int, *Error) {
	lb, hb := feltBytes(low), feltBytes(high)
	if !fitsBytes(lb, limbSize) {
		return nil, newError(KindRangeViolation, 0, "u256", "low limb %s exceeds 128 bits", low)
	}
	if !fitsBytes(hb, limbSize) {
		return nil, newError(KindRangeViolation, 0, "u256", "high limb %s exceeds 128 bits", high)
	}
	var b [32]byte
	copy(b[:limbSize], hb[FeltSize-limbSize:])
	copy(b[limbSize:], lb[FeltSize-limbSize:])
	return new(uint256.Int).SetBytes32(b[:]), nil
}

// U256FromBigInt converts a *big.Int to a 256-bit integer. ok is false if the value
// is negative or wider than 256 bits.
func U256FromBigInt(value *big.Int) (v *uint256.Int, ok bool) {
	if value == nil {
		return new(uint256.Int), true
	}
	if value.Sign() < 0 {
		return nil, false
	}
	v, overflow := uint256.FromBig(value)
	return v, !overflow
}
