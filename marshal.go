package feltcodec

// Marshaler is implemented by record types that write their own fields.
type Marshaler interface {
	MarshalCairo(enc *Encoding, buf *Buffer) error
}

// Unmarshaler is implemented by pointers to record types that read their own fields.
type Unmarshaler interface {
	UnmarshalCairo(enc *Encoding, cur *Cursor) error
}

// selfCoded constrains PT to a pointer to T that can unmarshal itself, with T
// marshaling itself.
type selfCoded[T any] interface {
	*T
	Unmarshaler
}

// MarshalerCodec adapts a type that implements Marshaler and Unmarshaler.
type MarshalerCodec[T Marshaler, PT selfCoded[T]] struct {
	// Deps lists the bindings the type's methods look up.
	Deps []Key
}

func (MarshalerCodec[T, PT]) EncodeFelts(enc *Encoding, buf *Buffer, v T) error {
	return v.MarshalCairo(enc, buf)
}

func (MarshalerCodec[T, PT]) DecodeFelts(enc *Encoding, cur *Cursor) (T, error) {
	var v T
	if err := PT(&v).UnmarshalCairo(enc, cur); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (c MarshalerCodec[T, PT]) Dependencies() []Key {
	return c.Deps
}

// RegisterMarshaler binds a self-coding record type under S. deps are the pairs its
// methods look up.
func RegisterMarshaler[S Strategy, T Marshaler, PT selfCoded[T]](r *Registry, deps ...Key) {
	Register[S, T](r, MarshalerCodec[T, PT]{Deps: deps})
}
