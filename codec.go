package feltcodec

import (
	"reflect"
)

// Strategy is satisfied by the empty marker types that select an encoding convention.
// A strategy carries no data; it only selects which binding of a value type applies.
type Strategy interface {
	~struct{}
}

// ViaCairo selects the Cairo ABI serialization used for contract calldata,
// return data and event payloads.
type ViaCairo struct{}

// ViaProtobuf selects protobuf wire bytes carried as a Cairo ByteArray.
type ViaProtobuf struct{}

// Encoder appends the felt encoding of a T to buf.
type Encoder[T any] interface {
	EncodeFelts(enc *Encoding, buf *Buffer, v T) error
}

// Decoder consumes the felt encoding of a T from cur.
type Decoder[T any] interface {
	DecodeFelts(enc *Encoding, cur *Cursor) (T, error)
}

// Codec is the encode/decode pair bound to a (strategy, type) pair.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// Dependent is implemented by codecs that look up other bindings at call time.
// Build checks that every reported dependency resolves.
type Dependent interface {
	Dependencies() []Key
}

// Key identifies a (strategy, value type) pair.
type Key struct {
	Strategy reflect.Type
	Value    reflect.Type
}

func (k Key) String() string {
	return k.Strategy.String() + "/" + k.Value.String()
}

// KeyOf returns the binding key of T under S.
func KeyOf[S Strategy, T any]() Key {
	return Key{Strategy: reflect.TypeFor[S](), Value: reflect.TypeFor[T]()}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// ViaCodec forwards to the binding of T under S2, whatever strategy it is itself bound under.
type ViaCodec[S2 Strategy, T any] struct{}

// Via returns a codec that encodes T the way strategy S2 does.
func Via[S2 Strategy, T any]() ViaCodec[S2, T] {
	return ViaCodec[S2, T]{}
}

func (ViaCodec[S2, T]) EncodeFelts(enc *Encoding, buf *Buffer, v T) error {
	return EncodeWith[S2, T](enc, buf, v)
}

func (ViaCodec[S2, T]) DecodeFelts(enc *Encoding, cur *Cursor) (T, error) {
	return DecodeWith[S2, T](enc, cur)
}

func (ViaCodec[S2, T]) Dependencies() []Key {
	return []Key{KeyOf[S2, T]()}
}
