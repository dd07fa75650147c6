package ibc

import (
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/informalsystems/feltcodec"
)

type (
	viaCairo    = feltcodec.ViaCairo
	viaProtobuf = feltcodec.ViaProtobuf
)

// NewEncoding assembles the Starknet IBC encoding: the Cairo primitives, every
// record of this package under ViaCairo, and ViaProtobuf delegated to a context
// holding the protobuf bindings.
func NewEncoding(opts ...feltcodec.RegistryOption) (*feltcodec.Encoding, error) {
	protoEnc, err := newProtobufEncoding(opts)
	if err != nil {
		return nil, err
	}

	r := feltcodec.NewCairoRegistry(withDefaultName("ibc", opts)...)
	feltcodec.DelegateStrategy[viaProtobuf](r, protoEnc)

	feltcodec.RegisterMarshaler[viaCairo, Height](r,
		feltcodec.KeyOf[viaCairo, uint64]())
	feltcodec.Register[viaCairo, Timestamp](r, TimestampCodec)
	feltcodec.RegisterSum[viaCairo, ClientStatus](r)
	feltcodec.RegisterMarshaler[viaCairo, ClientState](r,
		feltcodec.KeyOf[viaCairo, string](),
		feltcodec.KeyOf[viaCairo, Height](),
		feltcodec.KeyOf[viaCairo, uint64](),
		feltcodec.KeyOf[viaCairo, ClientStatus]())
	feltcodec.RegisterMarshaler[viaCairo, ConsensusState](r,
		feltcodec.KeyOf[viaCairo, *felt.Felt](),
		feltcodec.KeyOf[viaCairo, Timestamp]())
	feltcodec.RegisterMarshaler[viaCairo, Packet](r,
		feltcodec.KeyOf[viaCairo, uint64](),
		feltcodec.KeyOf[viaCairo, string](),
		feltcodec.KeyOf[viaCairo, []byte](),
		feltcodec.KeyOf[viaCairo, Height](),
		feltcodec.KeyOf[viaCairo, Timestamp]())
	feltcodec.RegisterMarshaler[viaCairo, PacketData](r,
		feltcodec.KeyOf[viaCairo, string](),
		feltcodec.KeyOf[viaCairo, *uint256.Int]())
	feltcodec.RegisterPair[viaCairo, *felt.Felt, *felt.Felt](r)
	feltcodec.RegisterArray[viaCairo, ProofNode](r)
	feltcodec.RegisterMarshaler[viaCairo, CommitmentProof](r,
		feltcodec.KeyOf[viaCairo, []ProofNode]())
	feltcodec.RegisterOption[viaCairo, Height](r)

	feltcodec.RegisterMarshaler[viaCairo, MsgCreateClient](r,
		feltcodec.KeyOf[viaCairo, string](),
		feltcodec.KeyOf[viaCairo, ClientState](),
		feltcodec.KeyOf[viaProtobuf, ConsensusState]())
	feltcodec.RegisterMarshaler[viaCairo, MsgUpdateClient](r,
		feltcodec.KeyOf[viaCairo, string](),
		feltcodec.KeyOf[viaCairo, Height](),
		feltcodec.KeyOf[viaProtobuf, ConsensusState]())
	feltcodec.RegisterMarshaler[viaCairo, MsgRecvPacket](r,
		feltcodec.KeyOf[viaCairo, Packet](),
		feltcodec.KeyOf[viaCairo, CommitmentProof](),
		feltcodec.KeyOf[viaCairo, Height]())
	feltcodec.RegisterMarshaler[viaCairo, MsgTransfer](r,
		feltcodec.KeyOf[viaCairo, string](),
		feltcodec.KeyOf[viaCairo, PacketData](),
		feltcodec.KeyOf[viaCairo, feltcodec.Option[Height]](),
		feltcodec.KeyOf[viaCairo, Timestamp]())

	feltcodec.Require[viaProtobuf, Height](r)
	feltcodec.Require[viaProtobuf, ConsensusState](r)

	enc, err := r.Build()
	if err != nil {
		return nil, errors.Wrap(err, "assemble ibc encoding")
	}
	return enc, nil
}

// newProtobufEncoding binds the types the counterparty stores as protobuf.
// Bare integers keep their Cairo shape.
func newProtobufEncoding(opts []feltcodec.RegistryOption) (*feltcodec.Encoding, error) {
	r := feltcodec.NewCairoRegistry(withName("ibc-protobuf", opts)...)
	feltcodec.RegisterProto[viaProtobuf, Height](r)
	feltcodec.RegisterProto[viaProtobuf, ConsensusState](r)
	feltcodec.Register[viaProtobuf, uint64](r, feltcodec.Via[viaCairo, uint64]())
	feltcodec.Register[viaProtobuf, *big.Int](r, feltcodec.Via[viaCairo, *big.Int]())

	enc, err := r.Build()
	if err != nil {
		return nil, errors.Wrap(err, "assemble ibc protobuf encoding")
	}
	return enc, nil
}

// withDefaultName names the encoding unless the caller already does.
func withDefaultName(name string, opts []feltcodec.RegistryOption) []feltcodec.RegistryOption {
	out := make([]feltcodec.RegistryOption, 0, len(opts)+1)
	out = append(out, feltcodec.WithName(name))
	return append(out, opts...)
}

// withName names the encoding regardless of the caller's options.
func withName(name string, opts []feltcodec.RegistryOption) []feltcodec.RegistryOption {
	out := make([]feltcodec.RegistryOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, feltcodec.WithName(name))
}
