package feltcodec

import (
	"github.com/NethermindEth/juno/core/felt"
)

// ============================================================================
// StarkNet-specific types
// ============================================================================

// Address bounds: contract addresses are below 2^251, Ethereum addresses are 160 bits.
const (
	contractAddressBits = 251
	ethAddressBits      = 160
)

// ContractAddress represents a StarkNet contract address
type ContractAddress struct {
	Value *felt.Felt
}

func NewContractAddress(value *felt.Felt) ContractAddress {
	return ContractAddress{Value: value}
}

// ContractAddressFromHex parses a 0x-prefixed contract address.
func ContractAddressFromHex(s string) (ContractAddress, error) {
	f, err := FeltFromHex(s)
	if err != nil {
		return ContractAddress{}, err
	}
	return ContractAddress{Value: f}, nil
}

func (a ContractAddress) String() string {
	return copyFelt(a.Value).String()
}

// ClassHash represents a StarkNet class hash
type ClassHash struct {
	Value *felt.Felt
}

func NewClassHash(value *felt.Felt) ClassHash {
	return ClassHash{Value: value}
}

// EthAddress represents an Ethereum address in StarkNet context
type EthAddress struct {
	Value *felt.Felt
}

func NewEthAddress(value *felt.Felt) EthAddress {
	return EthAddress{Value: value}
}

// ContractAddressCodec rejects felts at or above 2^251.
var ContractAddressCodec = FeltCoercion[ContractAddress]{
	ToFelt: func(a ContractAddress) *felt.Felt { return a.Value },
	FromFelt: func(f *felt.Felt) (ContractAddress, bool) {
		return ContractAddress{Value: f}, BitLen(f) <= contractAddressBits
	},
}

// ClassHashCodec accepts any felt.
var ClassHashCodec = FeltCoercion[ClassHash]{
	ToFelt:   func(h ClassHash) *felt.Felt { return h.Value },
	FromFelt: func(f *felt.Felt) (ClassHash, bool) { return ClassHash{Value: f}, true },
}

// EthAddressCodec rejects felts wider than 160 bits.
var EthAddressCodec = FeltCoercion[EthAddress]{
	ToFelt: func(a EthAddress) *felt.Felt { return a.Value },
	FromFelt: func(f *felt.Felt) (EthAddress, bool) {
		return EthAddress{Value: f}, BitLen(f) <= ethAddressBits
	},
}
