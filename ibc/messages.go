package ibc

import (
	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/pkg/errors"

	"github.com/informalsystems/feltcodec"
)

// Entry points of the Starknet IBC contracts.
const (
	CreateClientEntrypoint = "create_client"
	UpdateClientEntrypoint = "update_client"
	RecvPacketEntrypoint   = "recv_packet"
	SendTransferEntrypoint = "send_transfer"
)

// MsgCreateClient registers a counterparty client. The initial consensus state
// travels as protobuf bytes.
type MsgCreateClient struct {
	ClientType     string
	ClientState    ClientState
	ConsensusState ConsensusState
}

func (m MsgCreateClient) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, m.ClientType)
	put(w, m.ClientState)
	putProto(w, m.ConsensusState)
	return w.err
}

func (m *MsgCreateClient) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &m.ClientType)
	get(r, &m.ClientState)
	getProto(r, &m.ConsensusState)
	return r.err
}

// MsgUpdateClient advances a client to Height with the given consensus state.
type MsgUpdateClient struct {
	ClientID       string
	Height         Height
	ConsensusState ConsensusState
}

func (m MsgUpdateClient) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, m.ClientID)
	put(w, m.Height)
	putProto(w, m.ConsensusState)
	return w.err
}

func (m *MsgUpdateClient) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &m.ClientID)
	get(r, &m.Height)
	getProto(r, &m.ConsensusState)
	return r.err
}

// MsgRecvPacket delivers a packet together with its membership proof.
type MsgRecvPacket struct {
	Packet      Packet
	Proof       CommitmentProof
	ProofHeight Height
}

func (m MsgRecvPacket) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, m.Packet)
	put(w, m.Proof)
	put(w, m.ProofHeight)
	return w.err
}

func (m *MsgRecvPacket) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &m.Packet)
	get(r, &m.Proof)
	get(r, &m.ProofHeight)
	return r.err
}

// MsgTransfer starts an ICS-20 transfer from Starknet. A missing timeout height
// leaves only the timestamp timeout.
type MsgTransfer struct {
	PortID           string
	ChannelID        string
	Data             PacketData
	TimeoutHeight    feltcodec.Option[Height]
	TimeoutTimestamp Timestamp
}

func (m MsgTransfer) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, m.PortID)
	put(w, m.ChannelID)
	put(w, m.Data)
	put(w, m.TimeoutHeight)
	put(w, m.TimeoutTimestamp)
	return w.err
}

func (m *MsgTransfer) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &m.PortID)
	get(r, &m.ChannelID)
	get(r, &m.Data)
	get(r, &m.TimeoutHeight)
	get(r, &m.TimeoutTimestamp)
	return r.err
}

// NewInvoke builds the invoke call of function on contract with msg as its calldata.
func NewInvoke[T any](enc *feltcodec.Encoding, contract *felt.Felt, function string, msg T) (rpc.InvokeFunctionCall, error) {
	calldata, err := feltcodec.Encode[feltcodec.ViaCairo](enc, msg)
	if err != nil {
		return rpc.InvokeFunctionCall{}, errors.Wrapf(err, "encode %s calldata", function)
	}
	return rpc.InvokeFunctionCall{
		ContractAddress: contract,
		FunctionName:    function,
		CallData:        calldata,
	}, nil
}

// DecodeEvent decodes an event payload of type T. The payload must be consumed exactly.
func DecodeEvent[T any](enc *feltcodec.Encoding, data []*felt.Felt) (T, error) {
	v, err := feltcodec.Decode[feltcodec.ViaCairo, T](enc, data)
	if err != nil {
		return v, errors.Wrapf(err, "decode %T event", v)
	}
	return v, nil
}
