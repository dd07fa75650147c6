package feltcodec

import (
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/utils"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

// FeltSize is the byte width of a serialized felt.
const FeltSize = 32

// ============================================================================
// Helper functions for type conversion between Go types and Cairo felt values
// ============================================================================

// FeltFromUint converts uint64 to *felt.Felt
func FeltFromUint(value uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(value)
}

// Uint64FromFelt converts *felt.Felt to uint64. ok is false if the value does not fit.
func Uint64FromFelt(f *felt.Felt) (value uint64, ok bool) {
	b := feltBytes(f)
	if !fitsBytes(b, 8) {
		return 0, false
	}
	for _, x := range b[FeltSize-8:] {
		value = value<<8 | uint64(x)
	}
	return value, true
}

// fieldModulus is the Stark field prime P.
var fieldModulus = fp.Modulus()

// FeltFromBigInt converts a non-negative *big.Int to *felt.Felt. ok is false if the
// value is negative or not below the field prime.
func FeltFromBigInt(value *big.Int) (*felt.Felt, bool) {
	if value == nil {
		return new(felt.Felt), true
	}
	if value.Sign() < 0 || value.Cmp(fieldModulus) >= 0 {
		return nil, false
	}
	return new(felt.Felt).SetBytes(value.Bytes()), true
}

// BigIntFromFelt converts *felt.Felt to *big.Int
func BigIntFromFelt(f *felt.Felt) *big.Int {
	if f == nil {
		return big.NewInt(0)
	}
	return f.BigInt(new(big.Int))
}

// FeltFromBool converts bool to *felt.Felt
func FeltFromBool(value bool) *felt.Felt {
	if value {
		return FeltFromUint(1)
	}
	return FeltFromUint(0)
}

// FeltFromBytes interprets up to 31 big-endian bytes as a felt. Longer input is truncated
// to its first 31 bytes.
func FeltFromBytes(data []byte) *felt.Felt {
	if len(data) > WordSize {
		data = data[:WordSize]
	}
	return new(felt.Felt).SetBytes(data)
}

// FeltFromHex parses a 0x-prefixed hex string.
func FeltFromHex(s string) (*felt.Felt, error) {
	return utils.HexToFelt(s)
}

// Selector returns the entry point selector for a Cairo function or event name.
func Selector(name string) *felt.Felt {
	return utils.GetSelectorFromNameFelt(name)
}

// BitLen returns the number of significant bits of f.
func BitLen(f *felt.Felt) int {
	b := feltBytes(f)
	for i, x := range b {
		if x != 0 {
			n := 0
			for ; x != 0; x >>= 1 {
				n++
			}
			return (FeltSize-i-1)*8 + n
		}
	}
	return 0
}

func feltBytes(f *felt.Felt) [FeltSize]byte {
	if f == nil {
		return [FeltSize]byte{}
	}
	return f.Bytes()
}

// fitsBytes reports whether the big-endian value b fits in its low n bytes.
func fitsBytes(b [FeltSize]byte, n int) bool {
	for _, x := range b[:FeltSize-n] {
		if x != 0 {
			return false
		}
	}
	return true
}

func copyFelt(f *felt.Felt) *felt.Felt {
	if f == nil {
		return new(felt.Felt)
	}
	v := *f
	return &v
}
