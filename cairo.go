package feltcodec

import (
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
)

// NewCairoRegistry returns a registry holding the Cairo ABI bindings of the
// primitive types under ViaCairo:
//
//	*felt.Felt      felt252
//	bool            bool
//	uint8..uint64   u8..u64
//	*big.Int        u128
//	*uint256.Int    u256
//	[]byte, string  ByteArray
//	[]*felt.Felt    Array<felt252>
//	Unit            ()
//	ContractAddress, ClassHash, EthAddress
//
// Callers add their own record and composite bindings before building.
func NewCairoRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	RegisterCairoPrimitives(r)
	return r
}

// RegisterCairoPrimitives adds the primitive ViaCairo bindings to r.
func RegisterCairoPrimitives(r *Registry) {
	Register[ViaCairo, *felt.Felt](r, FeltCodec{})
	Register[ViaCairo, bool](r, BoolCodec)
	Register[ViaCairo, uint8](r, UintCodec[uint8]{})
	Register[ViaCairo, uint16](r, UintCodec[uint16]{})
	Register[ViaCairo, uint32](r, UintCodec[uint32]{})
	Register[ViaCairo, uint64](r, UintCodec[uint64]{})
	Register[ViaCairo, *big.Int](r, U128Codec{})
	Register[ViaCairo, *uint256.Int](r, U256Codec{})
	Register[ViaCairo, []byte](r, ByteArrayCodec{})
	Register[ViaCairo, string](r, StringCodec{})
	Register[ViaCairo, Unit](r, UnitCodec{})
	Register[ViaCairo, ContractAddress](r, ContractAddressCodec)
	Register[ViaCairo, ClassHash](r, ClassHashCodec)
	Register[ViaCairo, EthAddress](r, EthAddressCodec)
	RegisterArray[ViaCairo, *felt.Felt](r)
}
