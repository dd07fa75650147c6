package ibc

import (
	"testing"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informalsystems/feltcodec"
)

func newEncoding(t *testing.T) *feltcodec.Encoding {
	t.Helper()
	enc, err := NewEncoding()
	require.NoError(t, err)
	return enc
}

func feltsOf(values ...uint64) []*felt.Felt {
	out := make([]*felt.Felt, len(values))
	for i, v := range values {
		out[i] = feltcodec.FeltFromUint(v)
	}
	return out
}

func requireFelts(t *testing.T, expected, actual []*felt.Felt) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		require.Truef(t, expected[i].Equal(actual[i]), "felt %d: expected %s, got %s", i, expected[i], actual[i])
	}
}

func requireKind(t *testing.T, err error, kind feltcodec.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	got, ok := feltcodec.KindOf(err)
	require.Truef(t, ok, "not a codec error: %v", err)
	require.Equalf(t, kind, got, "unexpected error: %v", err)
}

func testConsensusState() ConsensusState {
	root, _ := feltcodec.FeltFromHex("0x5a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f")
	return ConsensusState{
		Root:      root,
		Timestamp: TimestampFromTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
}

func TestHeightStrategies(t *testing.T) {
	enc := newEncoding(t)
	h := NewHeight(1, 300)

	cairo, err := feltcodec.Encode[feltcodec.ViaCairo](enc, h)
	require.NoError(t, err)
	requireFelts(t, feltsOf(1, 300), cairo)

	// 08 01 10 ac 02 carried as a ByteArray
	pb, err := feltcodec.Encode[feltcodec.ViaProtobuf](enc, h)
	require.NoError(t, err)
	requireFelts(t, feltsOf(0, 0x080110ac02, 5), pb)

	back, err := feltcodec.Decode[feltcodec.ViaProtobuf, Height](enc, pb)
	require.NoError(t, err)
	require.Equal(t, h, back)

	back, err = feltcodec.Decode[feltcodec.ViaCairo, Height](enc, cairo)
	require.NoError(t, err)
	require.Equal(t, h, back)
}

func TestHeightOrdering(t *testing.T) {
	assert.True(t, NewHeight(1, 10).LT(NewHeight(1, 11)))
	assert.True(t, NewHeight(1, 99).LT(NewHeight(2, 1)))
	assert.False(t, NewHeight(2, 1).LT(NewHeight(2, 1)))
	assert.True(t, Height{}.IsZero())
	assert.Equal(t, "4-12", NewHeight(4, 12).String())
}

func TestTimestamp(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC)
	ts := TimestampFromTime(now)
	require.True(t, now.Equal(ts.Time()))
	require.Zero(t, TimestampFromTime(time.Unix(-1, 0)).Nanos)
}

func TestClientStatus(t *testing.T) {
	enc := newEncoding(t)

	tests := []struct {
		name     string
		status   ClientStatus
		expected []*felt.Felt
	}{
		{"active", StatusActive(), feltsOf(0)},
		{"expired", StatusExpired(), feltsOf(1)},
		{"frozen", StatusFrozen(NewHeight(1, 5)), feltsOf(2, 1, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := feltcodec.Encode[feltcodec.ViaCairo](enc, tt.status)
			require.NoError(t, err)
			requireFelts(t, tt.expected, data)

			back, err := feltcodec.Decode[feltcodec.ViaCairo, ClientStatus](enc, data)
			require.NoError(t, err)
			require.Equal(t, tt.status, back)
		})
	}

	h, ok := FrozenHeight(StatusFrozen(NewHeight(3, 7)))
	require.True(t, ok)
	require.Equal(t, NewHeight(3, 7), h)

	_, ok = FrozenHeight(StatusExpired())
	require.False(t, ok)

	_, err := feltcodec.Decode[feltcodec.ViaCairo, ClientStatus](enc, feltsOf(3))
	requireKind(t, err, feltcodec.KindDiscriminantOutOfRange)
}

func TestClientState(t *testing.T) {
	enc := newEncoding(t)
	cs := ClientState{
		ChainID:        "cosmoshub-4",
		LatestHeight:   NewHeight(4, 2000),
		TrustingPeriod: 1209600,
		Status:         StatusActive(),
	}

	data, err := feltcodec.Encode[feltcodec.ViaCairo](enc, cs)
	require.NoError(t, err)
	// chain id (3) + height (2) + trusting period (1) + status (1)
	require.Len(t, data, 7)

	back, err := feltcodec.Decode[feltcodec.ViaCairo, ClientState](enc, data)
	require.NoError(t, err)
	require.Equal(t, cs, back)

	_, err = feltcodec.Encode[feltcodec.ViaCairo](enc, ClientState{ChainID: "x"})
	requireKind(t, err, feltcodec.KindInvalidValue)
}

func TestFailedRecordLeavesBufferUntouched(t *testing.T) {
	enc := newEncoding(t)
	buf := feltcodec.NewBuffer(0)
	buf.AppendUint64(9)

	// Chain id and heights are written before the zero status fails.
	err := feltcodec.EncodeWith[feltcodec.ViaCairo](enc, buf, ClientState{ChainID: "x", LatestHeight: NewHeight(1, 2)})
	requireKind(t, err, feltcodec.KindInvalidValue)
	requireFelts(t, feltsOf(9), buf.Felts())
}

func TestConsensusStateProtobuf(t *testing.T) {
	enc := newEncoding(t)
	cs := testConsensusState()

	cairo, err := feltcodec.Encode[feltcodec.ViaCairo](enc, cs)
	require.NoError(t, err)
	require.Len(t, cairo, 2)

	pb, err := feltcodec.Encode[feltcodec.ViaProtobuf](enc, cs)
	require.NoError(t, err)

	back, err := feltcodec.Decode[feltcodec.ViaProtobuf, ConsensusState](enc, pb)
	require.NoError(t, err)
	require.True(t, cs.Root.Equal(back.Root))
	require.Equal(t, cs.Timestamp, back.Timestamp)
}

func TestMsgUpdateClientLayout(t *testing.T) {
	enc := newEncoding(t)
	msg := MsgUpdateClient{
		ClientID:       "07-tendermint-0",
		Height:         NewHeight(1, 42),
		ConsensusState: testConsensusState(),
	}

	data, err := feltcodec.Encode[feltcodec.ViaCairo](enc, msg)
	require.NoError(t, err)

	id, err := feltcodec.Encode[feltcodec.ViaCairo](enc, msg.ClientID)
	require.NoError(t, err)
	pb, err := feltcodec.Encode[feltcodec.ViaProtobuf](enc, msg.ConsensusState)
	require.NoError(t, err)

	// client id, then height in Cairo shape, then the protobuf consensus state
	expected := append(append(id, feltsOf(1, 42)...), pb...)
	requireFelts(t, expected, data)

	back, err := feltcodec.Decode[feltcodec.ViaCairo, MsgUpdateClient](enc, data)
	require.NoError(t, err)
	require.Equal(t, msg.ClientID, back.ClientID)
	require.Equal(t, msg.Height, back.Height)
	require.True(t, msg.ConsensusState.Root.Equal(back.ConsensusState.Root))
}

func TestMsgCreateClient(t *testing.T) {
	enc := newEncoding(t)
	msg := MsgCreateClient{
		ClientType: "07-tendermint",
		ClientState: ClientState{
			ChainID:        "osmosis-1",
			LatestHeight:   NewHeight(1, 1),
			TrustingPeriod: 600,
			Status:         StatusFrozen(NewHeight(1, 1)),
		},
		ConsensusState: testConsensusState(),
	}

	data, err := feltcodec.Encode[feltcodec.ViaCairo](enc, msg)
	require.NoError(t, err)

	back, err := feltcodec.Decode[feltcodec.ViaCairo, MsgCreateClient](enc, data)
	require.NoError(t, err)
	require.Equal(t, msg.ClientState, back.ClientState)
	require.Equal(t, msg.ConsensusState.Timestamp, back.ConsensusState.Timestamp)
}

func TestMsgRecvPacket(t *testing.T) {
	enc := newEncoding(t)

	payload, err := feltcodec.Encode[feltcodec.ViaCairo](enc, PacketData{
		Denom:    "transfer/channel-0/uatom",
		Amount:   uint256.NewInt(1000000),
		Sender:   "cosmos1sender",
		Receiver: "0x1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	msg := MsgRecvPacket{
		Packet: Packet{
			Sequence:         7,
			SourcePort:       "transfer",
			SourceChannel:    "channel-0",
			DestPort:         "transfer",
			DestChannel:      "channel-12",
			Data:             []byte(`{"denom":"uatom"}`),
			TimeoutHeight:    NewHeight(2, 100),
			TimeoutTimestamp: Timestamp{Nanos: 1700000000000000000},
		},
		Proof: CommitmentProof{Nodes: []ProofNode{
			feltcodec.NewPair(feltcodec.FeltFromUint(1), feltcodec.FeltFromUint(2)),
			feltcodec.NewPair(feltcodec.FeltFromUint(3), feltcodec.FeltFromUint(4)),
		}},
		ProofHeight: NewHeight(2, 99),
	}

	data, err := feltcodec.Encode[feltcodec.ViaCairo](enc, msg)
	require.NoError(t, err)

	back, err := feltcodec.Decode[feltcodec.ViaCairo, MsgRecvPacket](enc, data)
	require.NoError(t, err)
	require.Equal(t, msg, back)

	// Proof nodes, then the proof height, close the calldata.
	requireFelts(t, feltsOf(2, 1, 2, 3, 4, 2, 99), data[len(data)-7:])
}

func TestMsgTransferTimeouts(t *testing.T) {
	enc := newEncoding(t)
	msg := MsgTransfer{
		PortID:    "transfer",
		ChannelID: "channel-0",
		Data: PacketData{
			Denom:    "uatom",
			Amount:   uint256.NewInt(5),
			Sender:   "0xabc",
			Receiver: "cosmos1receiver",
			Memo:     "",
		},
		TimeoutHeight:    feltcodec.NewOptionNone[Height](),
		TimeoutTimestamp: Timestamp{Nanos: 42},
	}

	data, err := feltcodec.Encode[feltcodec.ViaCairo](enc, msg)
	require.NoError(t, err)
	requireFelts(t, feltsOf(1, 42), data[len(data)-2:])

	msg.TimeoutHeight = feltcodec.NewOptionSome(NewHeight(1, 500))
	data, err = feltcodec.Encode[feltcodec.ViaCairo](enc, msg)
	require.NoError(t, err)
	requireFelts(t, feltsOf(0, 1, 500, 42), data[len(data)-4:])

	back, err := feltcodec.Decode[feltcodec.ViaCairo, MsgTransfer](enc, data)
	require.NoError(t, err)
	require.Equal(t, msg.TimeoutHeight, back.TimeoutHeight)
	require.Equal(t, "cosmos1receiver", back.Data.Receiver)
}

func TestNewInvoke(t *testing.T) {
	enc := newEncoding(t)
	contract := feltcodec.FeltFromUint(0x1b1c)

	call, err := NewInvoke(enc, contract, UpdateClientEntrypoint, MsgUpdateClient{
		ClientID:       "07-tendermint-1",
		Height:         NewHeight(1, 2),
		ConsensusState: testConsensusState(),
	})
	require.NoError(t, err)
	require.Equal(t, UpdateClientEntrypoint, call.FunctionName)
	require.True(t, contract.Equal(call.ContractAddress))
	require.NotEmpty(t, call.CallData)

	_, err = NewInvoke(enc, contract, CreateClientEntrypoint, MsgCreateClient{})
	requireKind(t, err, feltcodec.KindInvalidValue)
	require.Contains(t, err.Error(), CreateClientEntrypoint)
}

func TestDecodeEventTruncated(t *testing.T) {
	enc := newEncoding(t)

	data, err := feltcodec.Encode[feltcodec.ViaCairo](enc, Packet{
		Sequence:    1,
		SourcePort:  "transfer",
		DestChannel: "channel-1",
		Data:        []byte{1},
	})
	require.NoError(t, err)

	_, err = DecodeEvent[Packet](enc, data[:len(data)-1])
	requireKind(t, err, feltcodec.KindBufferUnderrun)
	offset, ok := feltcodec.OffsetOf(err)
	require.True(t, ok)
	require.Equal(t, len(data)-1, offset)

	p, err := DecodeEvent[Packet](enc, data)
	require.NoError(t, err)
	require.Equal(t, uint64(1), p.Sequence)
}

func TestProtobufRejectsMalformed(t *testing.T) {
	var h Height
	require.Error(t, h.Unmarshal([]byte{0x08}))
	require.Error(t, h.Unmarshal([]byte{0x0d, 0, 0, 0, 0}))
	require.Error(t, h.Unmarshal([]byte{0x00, 0x01}))
	// revision number sent length-delimited
	require.ErrorContains(t, h.Unmarshal([]byte{0x0a, 1, 7}), "wire type 2")
	// revision height sent length-delimited
	require.Error(t, h.Unmarshal([]byte{0x08, 1, 0x12, 0}))
	// unknown length-delimited fields are skipped
	require.NoError(t, h.Unmarshal([]byte{0x08, 1, 0x1a, 1, 7}))
	require.Equal(t, NewHeight(1, 0), h)

	var cs ConsensusState
	long := append([]byte{0x0a, 33}, make([]byte, 33)...)
	require.Error(t, cs.Unmarshal(long))
	require.Error(t, cs.Unmarshal([]byte{0x0a, 5, 1}))
	require.Error(t, cs.Unmarshal([]byte{0x08, 1}))
	require.Error(t, cs.Unmarshal([]byte{0x12, 1, 7}))

	require.NoError(t, cs.Unmarshal(nil))
	require.True(t, cs.Root.IsZero())
}

func TestNewEncodingName(t *testing.T) {
	enc := newEncoding(t)
	require.Equal(t, "ibc", enc.Name())

	named, err := NewEncoding(feltcodec.WithName("starknet-ibc"))
	require.NoError(t, err)
	require.Equal(t, "starknet-ibc", named.Name())

	_, owner, err := feltcodec.Lookup[feltcodec.ViaProtobuf, Height](named)
	require.NoError(t, err)
	require.Equal(t, "ibc-protobuf", owner.Name())
}
