// Package ibc holds the IBC message types exchanged with the Starknet IBC
// contracts and the encoding that carries them across the felt boundary.
//
// Records are written in Cairo ABI field order. Counterparty consensus states are
// carried as protobuf bytes inside a ByteArray, selected with the ViaProtobuf
// strategy.
package ibc

import (
	"fmt"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/holiman/uint256"

	"github.com/informalsystems/feltcodec"
)

// Height is an IBC revision height.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

func NewHeight(revisionNumber, revisionHeight uint64) Height {
	return Height{RevisionNumber: revisionNumber, RevisionHeight: revisionHeight}
}

func (h Height) IsZero() bool {
	return h.RevisionNumber == 0 && h.RevisionHeight == 0
}

// LT orders heights by revision number, then by revision height.
func (h Height) LT(other Height) bool {
	if h.RevisionNumber != other.RevisionNumber {
		return h.RevisionNumber < other.RevisionNumber
	}
	return h.RevisionHeight < other.RevisionHeight
}

func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}

func (h Height) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, h.RevisionNumber)
	put(w, h.RevisionHeight)
	return w.err
}

func (h *Height) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &h.RevisionNumber)
	get(r, &h.RevisionHeight)
	return r.err
}

// Timestamp is a block time in nanoseconds since the Unix epoch.
type Timestamp struct {
	Nanos uint64
}

func TimestampFromTime(t time.Time) Timestamp {
	if t.Before(time.Unix(0, 0)) {
		return Timestamp{}
	}
	return Timestamp{Nanos: uint64(t.UnixNano())}
}

func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t.Nanos)).UTC()
}

// TimestampCodec encodes a timestamp as its nanoseconds in one felt.
var TimestampCodec = feltcodec.FeltCoercion[Timestamp]{
	ToFelt: func(t Timestamp) *felt.Felt { return feltcodec.FeltFromUint(t.Nanos) },
	FromFelt: func(f *felt.Felt) (Timestamp, bool) {
		n, ok := feltcodec.Uint64FromFelt(f)
		return Timestamp{Nanos: n}, ok
	},
}

type (
	frozen     = feltcodec.Either[Height, feltcodec.Void]
	statusTail = feltcodec.Either[feltcodec.Unit, frozen]
)

// ClientStatus is Active, Expired or Frozen at a height, in that variant order.
type ClientStatus = feltcodec.Either[feltcodec.Unit, statusTail]

func StatusActive() ClientStatus {
	return feltcodec.Left[feltcodec.Unit, statusTail](feltcodec.Unit{})
}

func StatusExpired() ClientStatus {
	return feltcodec.Right[feltcodec.Unit](feltcodec.Left[feltcodec.Unit, frozen](feltcodec.Unit{}))
}

func StatusFrozen(at Height) ClientStatus {
	return feltcodec.Right[feltcodec.Unit](feltcodec.Right[feltcodec.Unit](feltcodec.Left[Height, feltcodec.Void](at)))
}

// FrozenHeight returns the height a frozen client was frozen at.
func FrozenHeight(s ClientStatus) (Height, bool) {
	tail, ok := s.Right()
	if !ok {
		return Height{}, false
	}
	f, ok := tail.Right()
	if !ok {
		return Height{}, false
	}
	return f.Left()
}

// ClientState is the Cometbft light client state kept by the Starknet IBC
// contract. Status must be set; the zero status does not encode.
type ClientState struct {
	ChainID      string
	LatestHeight Height
	// TrustingPeriod is in seconds.
	TrustingPeriod uint64
	Status         ClientStatus
}

func (c ClientState) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, c.ChainID)
	put(w, c.LatestHeight)
	put(w, c.TrustingPeriod)
	put(w, c.Status)
	return w.err
}

func (c *ClientState) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &c.ChainID)
	get(r, &c.LatestHeight)
	get(r, &c.TrustingPeriod)
	get(r, &c.Status)
	return r.err
}

// ConsensusState is a counterparty consensus state: a commitment root and the
// time it was produced.
type ConsensusState struct {
	Root      *felt.Felt
	Timestamp Timestamp
}

func (c ConsensusState) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, c.Root)
	put(w, c.Timestamp)
	return w.err
}

func (c *ConsensusState) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &c.Root)
	get(r, &c.Timestamp)
	return r.err
}

// Packet is an IBC packet as the Starknet core contract stores it.
type Packet struct {
	Sequence         uint64
	SourcePort       string
	SourceChannel    string
	DestPort         string
	DestChannel      string
	Data             []byte
	TimeoutHeight    Height
	TimeoutTimestamp Timestamp
}

func (p Packet) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, p.Sequence)
	put(w, p.SourcePort)
	put(w, p.SourceChannel)
	put(w, p.DestPort)
	put(w, p.DestChannel)
	put(w, p.Data)
	put(w, p.TimeoutHeight)
	put(w, p.TimeoutTimestamp)
	return w.err
}

func (p *Packet) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &p.Sequence)
	get(r, &p.SourcePort)
	get(r, &p.SourceChannel)
	get(r, &p.DestPort)
	get(r, &p.DestChannel)
	get(r, &p.Data)
	get(r, &p.TimeoutHeight)
	get(r, &p.TimeoutTimestamp)
	return r.err
}

// PacketData is the ICS-20 fungible token transfer payload.
type PacketData struct {
	Denom    string
	Amount   *uint256.Int
	Sender   string
	Receiver string
	Memo     string
}

func (d PacketData) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	amount := d.Amount
	if amount == nil {
		amount = new(uint256.Int)
	}
	w := newWriter(enc, buf)
	put(w, d.Denom)
	put(w, amount)
	put(w, d.Sender)
	put(w, d.Receiver)
	put(w, d.Memo)
	return w.err
}

func (d *PacketData) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &d.Denom)
	get(r, &d.Amount)
	get(r, &d.Sender)
	get(r, &d.Receiver)
	get(r, &d.Memo)
	return r.err
}

// ProofNode is a (key, value) node of a Starknet storage proof.
type ProofNode = feltcodec.Pair[*felt.Felt, *felt.Felt]

// CommitmentProof is the membership proof submitted alongside a packet.
type CommitmentProof struct {
	Nodes []ProofNode
}

func (p CommitmentProof) MarshalCairo(enc *feltcodec.Encoding, buf *feltcodec.Buffer) error {
	w := newWriter(enc, buf)
	put(w, p.Nodes)
	return w.err
}

func (p *CommitmentProof) UnmarshalCairo(enc *feltcodec.Encoding, cur *feltcodec.Cursor) error {
	r := newReader(enc, cur)
	get(r, &p.Nodes)
	return r.err
}
