package ibc

import (
	"github.com/NethermindEth/juno/core/felt"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/informalsystems/feltcodec"
)

// Protobuf wire forms of the types the counterparty chain also stores:
//
//	Height         { uint64 revision_number = 1; uint64 revision_height = 2; }
//	ConsensusState { bytes root = 1; uint64 timestamp = 2; }
//
// Zero fields are omitted, as proto3 does.

func (h *Height) Marshal() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, h.RevisionNumber)
	b = appendVarintField(b, 2, h.RevisionHeight)
	return b, nil
}

func (h *Height) Unmarshal(b []byte) error {
	*h = Height{}
	return walkFields(b, func(field, wire, v uint64, _ []byte) error {
		switch field {
		case 1:
			h.RevisionNumber = v
		case 2:
			h.RevisionHeight = v
		default:
			return nil
		}
		return expectWire(wire, proto.WireVarint)
	})
}

func (c *ConsensusState) Marshal() ([]byte, error) {
	var b []byte
	if c.Root != nil && !c.Root.IsZero() {
		root := c.Root.Bytes()
		b = appendBytesField(b, 1, root[:])
	}
	b = appendVarintField(b, 2, c.Timestamp.Nanos)
	return b, nil
}

func (c *ConsensusState) Unmarshal(b []byte) error {
	*c = ConsensusState{Root: new(felt.Felt)}
	return walkFields(b, func(field, wire, v uint64, raw []byte) error {
		switch field {
		case 1:
			if err := expectWire(wire, proto.WireBytes); err != nil {
				return err
			}
			if len(raw) > feltcodec.FeltSize {
				return errors.Errorf("root is %d bytes", len(raw))
			}
			c.Root = new(felt.Felt).SetBytes(raw)
		case 2:
			if err := expectWire(wire, proto.WireVarint); err != nil {
				return err
			}
			c.Timestamp = Timestamp{Nanos: v}
		}
		return nil
	})
}

func appendVarintField(b []byte, field, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = append(b, proto.EncodeVarint(field<<3|proto.WireVarint)...)
	return append(b, proto.EncodeVarint(v)...)
}

func appendBytesField(b []byte, field uint64, v []byte) []byte {
	b = append(b, proto.EncodeVarint(field<<3|proto.WireBytes)...)
	b = append(b, proto.EncodeVarint(uint64(len(v)))...)
	return append(b, v...)
}

func expectWire(got, want uint64) error {
	if got != want {
		return errors.Errorf("wire type %d, expected %d", got, want)
	}
	return nil
}

// walkFields calls fn for every varint and length-delimited field of b.
// Other wire types are rejected.
func walkFields(b []byte, fn func(field, wire, v uint64, raw []byte) error) error {
	for len(b) > 0 {
		key, n := proto.DecodeVarint(b)
		if n == 0 {
			return errors.New("truncated field key")
		}
		b = b[n:]
		field := key >> 3
		if field == 0 {
			return errors.New("illegal field number 0")
		}

		v, n := proto.DecodeVarint(b)
		if n == 0 {
			return errors.Errorf("field %d: truncated varint", field)
		}
		b = b[n:]

		var raw []byte
		wire := key & 7
		switch wire {
		case proto.WireVarint:
		case proto.WireBytes:
			if v > uint64(len(b)) {
				return errors.Errorf("field %d: %d bytes declared, %d left", field, v, len(b))
			}
			raw, b = b[:v], b[v:]
			v = 0
		default:
			return errors.Errorf("field %d: unsupported wire type %d", field, wire)
		}
		if err := fn(field, wire, v, raw); err != nil {
			return errors.Wrapf(err, "field %d", field)
		}
	}
	return nil
}
