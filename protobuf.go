package feltcodec

import (
	"github.com/gogo/protobuf/proto"
)

// ProtoMessage is satisfied by pointers to gogo-protobuf style messages.
type ProtoMessage[T any] interface {
	*T
	proto.Marshaler
	proto.Unmarshaler
}

// ProtoCodec carries the protobuf encoding of a message as a ByteArray.
type ProtoCodec[T any, PT ProtoMessage[T]] struct{}

func (ProtoCodec[T, PT]) EncodeFelts(enc *Encoding, buf *Buffer, v T) error {
	b, err := PT(&v).Marshal()
	if err != nil {
		return newError(KindInvalidValue, buf.Len(), typeName[T](), "protobuf marshal: %v", err)
	}
	return ByteArrayCodec{}.EncodeFelts(enc, buf, b)
}

// DecodeFelts leaves the cursor in place if the bytes are not a valid message.
func (ProtoCodec[T, PT]) DecodeFelts(enc *Encoding, cur *Cursor) (T, error) {
	var v T
	probe := *cur
	b, err := ByteArrayCodec{}.DecodeFelts(enc, &probe)
	if err != nil {
		return v, err
	}
	if err := PT(&v).Unmarshal(b); err != nil {
		var zero T
		return zero, newError(KindInvalidValue, cur.Position(), typeName[T](), "protobuf unmarshal: %v", err)
	}
	*cur = probe
	return v, nil
}

// RegisterProto binds a protobuf message type under S.
func RegisterProto[S Strategy, T any, PT ProtoMessage[T]](r *Registry) {
	Register[S, T](r, ProtoCodec[T, PT]{})
}
