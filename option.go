package feltcodec

// ============================================================================
// Generic Option and Result types for Cairo Option<T> and Result<T, E>
// ============================================================================

// Option is Cairo's Option<T>: Some is alternative 0, None is alternative 1.
type Option[T any] struct {
	IsSome bool
	Value  T
}

// NewOptionSome creates an Option with a value
func NewOptionSome[T any](value T) Option[T] {
	return Option[T]{IsSome: true, Value: value}
}

// NewOptionNone creates an Option with no value
func NewOptionNone[T any]() Option[T] {
	return Option[T]{}
}

// OptionCodec encodes an Option through the union combinator.
type OptionCodec[S Strategy, T any] struct{}

func (OptionCodec[S, T]) EncodeFelts(enc *Encoding, buf *Buffer, v Option[T]) error {
	u := Right[T](Left[Unit, Void](Unit{}))
	if v.IsSome {
		u = Left[T, Either[Unit, Void]](v.Value)
	}
	return NewSumCodec[S, Either[T, Either[Unit, Void]]]().EncodeFelts(enc, buf, u)
}

func (OptionCodec[S, T]) DecodeFelts(enc *Encoding, cur *Cursor) (Option[T], error) {
	u, err := NewSumCodec[S, Either[T, Either[Unit, Void]]]().DecodeFelts(enc, cur)
	if err != nil {
		return Option[T]{}, err
	}
	if value, ok := u.Left(); ok {
		return NewOptionSome(value), nil
	}
	return NewOptionNone[T](), nil
}

func (OptionCodec[S, T]) Dependencies() []Key {
	return NewSumCodec[S, Either[T, Either[Unit, Void]]]().Dependencies()
}

// RegisterOption binds Option[T] under S.
func RegisterOption[S Strategy, T any](r *Registry) {
	Register[S, Option[T]](r, OptionCodec[S, T]{})
}

// Result is Cairo's Result<T, E>: Ok is alternative 0, Err is alternative 1.
type Result[T, E any] struct {
	IsOk bool
	Ok   T
	Err  E
}

// NewResultOk creates a Result with Ok value
func NewResultOk[T, E any](value T) Result[T, E] {
	return Result[T, E]{IsOk: true, Ok: value}
}

// NewResultErr creates a Result with Err value
func NewResultErr[T, E any](err E) Result[T, E] {
	return Result[T, E]{Err: err}
}

// ResultCodec encodes a Result through the union combinator.
type ResultCodec[S Strategy, T, E any] struct{}

func (ResultCodec[S, T, E]) EncodeFelts(enc *Encoding, buf *Buffer, v Result[T, E]) error {
	u := Right[T](Left[E, Void](v.Err))
	if v.IsOk {
		u = Left[T, Either[E, Void]](v.Ok)
	}
	return NewSumCodec[S, Either[T, Either[E, Void]]]().EncodeFelts(enc, buf, u)
}

func (ResultCodec[S, T, E]) DecodeFelts(enc *Encoding, cur *Cursor) (Result[T, E], error) {
	u, err := NewSumCodec[S, Either[T, Either[E, Void]]]().DecodeFelts(enc, cur)
	if err != nil {
		return Result[T, E]{}, err
	}
	if ok, isOk := u.Left(); isOk {
		return NewResultOk[T, E](ok), nil
	}
	rest, _ := u.Right()
	e, _ := rest.Left()
	return NewResultErr[T](e), nil
}

func (ResultCodec[S, T, E]) Dependencies() []Key {
	return NewSumCodec[S, Either[T, Either[E, Void]]]().Dependencies()
}

// RegisterResult binds Result[T, E] under S.
func RegisterResult[S Strategy, T, E any](r *Registry) {
	Register[S, Result[T, E]](r, ResultCodec[S, T, E]{})
}
