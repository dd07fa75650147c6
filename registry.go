package feltcodec

import (
	"reflect"

	"github.com/NethermindEth/juno/core/felt"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Registry assembles (strategy, type) bindings into an Encoding.
//
// A Registry is not safe for concurrent use. All checks happen in Build, so an
// Encoding that builds successfully resolves every pair it was asked to require,
// together with everything its registered codecs depend on.
type Registry struct {
	opts              *registryOptions
	bindings          []binding
	strategyDelegates []delegate
	typeDelegates     []delegate
	required          []Key
}

type binding struct {
	key   Key
	codec any
}

type delegate struct {
	target reflect.Type
	sub    *Encoding
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	return &Registry{opts: applyRegistryOptions(opts)}
}

// Register binds codec to T under strategy S.
func Register[S Strategy, T any](r *Registry, codec Codec[T]) {
	r.bindings = append(r.bindings, binding{key: KeyOf[S, T](), codec: codec})
}

// DelegateStrategy forwards every pair of strategy S that has no exact binding to sub.
func DelegateStrategy[S Strategy](r *Registry, sub *Encoding) {
	r.strategyDelegates = append(r.strategyDelegates, delegate{target: reflect.TypeFor[S](), sub: sub})
}

// DelegateType forwards every pair of value type T that has no exact binding to sub.
func DelegateType[T any](r *Registry, sub *Encoding) {
	r.typeDelegates = append(r.typeDelegates, delegate{target: reflect.TypeFor[T](), sub: sub})
}

// Require declares that the assembled encoding must resolve T under S.
func Require[S Strategy, T any](r *Registry) {
	RequireKey(r, KeyOf[S, T]())
}

// RequireKey declares that the assembled encoding must resolve k.
func RequireKey(r *Registry, k Key) {
	r.required = append(r.required, k)
}

// Build validates the registry and returns the immutable Encoding.
// Every assembly defect found is reported in the returned error.
func (r *Registry) Build() (*Encoding, error) {
	log := r.opts.logger.With(zap.String("encoding", r.opts.name))
	enc := &Encoding{
		name:              r.opts.name,
		bindings:          make(map[Key]any, len(r.bindings)),
		strategyDelegates: make(map[reflect.Type]*Encoding, len(r.strategyDelegates)),
		typeDelegates:     make(map[reflect.Type]*Encoding, len(r.typeDelegates)),
	}

	var errs error
	for _, b := range r.bindings {
		if b.codec == nil {
			errs = multierr.Append(errs, newError(KindUnresolvedBinding, 0, b.key.String(), "nil codec"))
			continue
		}
		if _, dup := enc.bindings[b.key]; dup {
			errs = multierr.Append(errs, newError(KindAmbiguousBinding, 0, b.key.String(), "bound more than once"))
			continue
		}
		enc.bindings[b.key] = b.codec
		log.Debug("binding", zap.Stringer("key", b.key), zap.String("codec", reflect.TypeOf(b.codec).String()))
	}
	errs = multierr.Append(errs, addDelegates(log, enc.strategyDelegates, r.strategyDelegates, "strategy"))
	errs = multierr.Append(errs, addDelegates(log, enc.typeDelegates, r.typeDelegates, "type"))
	errs = multierr.Append(errs, overlappingDelegates(enc))

	pending := make([]resolution, 0, len(r.required)+len(r.bindings))
	for _, k := range r.required {
		pending = append(pending, resolution{enc: enc, key: k})
	}
	for _, b := range r.bindings {
		if d, ok := b.codec.(Dependent); ok {
			for _, k := range d.Dependencies() {
				pending = append(pending, resolution{enc: enc, key: k})
			}
		}
	}
	errs = multierr.Append(errs, validate(pending))

	if errs != nil {
		for _, err := range multierr.Errors(errs) {
			log.Warn("assembly defect", zap.Error(err))
		}
		return nil, errs
	}
	log.Debug("encoding assembled",
		zap.Int("bindings", len(enc.bindings)),
		zap.Int("strategy_delegates", len(enc.strategyDelegates)),
		zap.Int("type_delegates", len(enc.typeDelegates)))
	return enc, nil
}

func addDelegates(log *zap.Logger, dst map[reflect.Type]*Encoding, src []delegate, what string) error {
	var errs error
	for _, d := range src {
		if d.sub == nil {
			errs = multierr.Append(errs, newError(KindUnresolvedBinding, 0, d.target.String(), "nil %s delegate", what))
			continue
		}
		if _, dup := dst[d.target]; dup {
			errs = multierr.Append(errs, newError(KindAmbiguousBinding, 0, d.target.String(), "%s delegated more than once", what))
			continue
		}
		dst[d.target] = d.sub
		log.Debug("delegation", zap.String("kind", what), zap.Stringer("target", d.target), zap.String("to", d.sub.name))
	}
	return errs
}

// overlappingDelegates reports every (strategy, type) pair reachable through both a
// strategy and a type delegation that no exact binding settles.
func overlappingDelegates(enc *Encoding) error {
	var errs error
	for st, bySt := range enc.strategyDelegates {
		for ty, byTy := range enc.typeDelegates {
			k := Key{Strategy: st, Value: ty}
			if _, ok := enc.bindings[k]; ok {
				continue
			}
			errs = multierr.Append(errs, newError(KindAmbiguousBinding, 0, k.String(),
				"delegated by strategy to %s and by type to %s", bySt.name, byTy.name))
		}
	}
	return errs
}

type resolution struct {
	enc *Encoding
	key Key
}

// validate resolves every pending pair and, transitively, the dependencies of the
// codecs they resolve to, each in the context that owns the codec.
func validate(pending []resolution) error {
	var errs error
	seen := make(map[resolution]bool)
	for len(pending) > 0 {
		next := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if seen[next] {
			continue
		}
		seen[next] = true

		codec, owner, err := next.enc.resolve(next.key)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if d, ok := codec.(Dependent); ok {
			for _, k := range d.Dependencies() {
				pending = append(pending, resolution{enc: owner, key: k})
			}
		}
	}
	return errs
}

// Encoding is an assembled, immutable set of bindings. It is safe for concurrent use.
type Encoding struct {
	name              string
	bindings          map[Key]any
	strategyDelegates map[reflect.Type]*Encoding
	typeDelegates     map[reflect.Type]*Encoding
}

// Name returns the name given to the registry the encoding was built from.
func (e *Encoding) Name() string {
	return e.name
}

// Resolves reports whether the encoding has a binding for k.
func (e *Encoding) Resolves(k Key) bool {
	_, _, err := e.resolve(k)
	return err == nil
}

// resolve finds the codec for k: an exact binding first, then a strategy
// delegation, then a type delegation. It returns the encoding owning the codec.
func (e *Encoding) resolve(k Key) (any, *Encoding, *Error) {
	if c, ok := e.bindings[k]; ok {
		return c, e, nil
	}
	bySt, hasSt := e.strategyDelegates[k.Strategy]
	byTy, hasTy := e.typeDelegates[k.Value]
	switch {
	case hasSt && hasTy:
		return nil, nil, newError(KindAmbiguousBinding, 0, k.String(),
			"delegated by strategy to %s and by type to %s", bySt.name, byTy.name)
	case hasSt:
		return bySt.resolve(k)
	case hasTy:
		return byTy.resolve(k)
	}
	return nil, nil, newError(KindUnresolvedBinding, 0, k.String(), "no binding in %s", e.name)
}

// Lookup returns the codec bound to T under S and the encoding that owns it.
func Lookup[S Strategy, T any](enc *Encoding) (Codec[T], *Encoding, error) {
	return lookupKey[T](enc, reflect.TypeFor[S]())
}

func lookupKey[T any](enc *Encoding, strategy reflect.Type) (Codec[T], *Encoding, error) {
	k := Key{Strategy: strategy, Value: reflect.TypeFor[T]()}
	c, owner, err := enc.resolve(k)
	if err != nil {
		return nil, nil, err
	}
	codec, ok := c.(Codec[T])
	if !ok {
		return nil, nil, newError(KindUnresolvedBinding, 0, k.String(), "bound codec %T does not handle %s", c, k.Value)
	}
	return codec, owner, nil
}

// EncodeWith appends the encoding of v under S to buf. On failure buf is left
// as it was before the call.
func EncodeWith[S Strategy, T any](enc *Encoding, buf *Buffer, v T) error {
	codec, owner, err := Lookup[S, T](enc)
	if err != nil {
		return atOffset(err, buf.Len())
	}
	start := buf.Len()
	if err := codec.EncodeFelts(owner, buf, v); err != nil {
		buf.truncate(start)
		return err
	}
	return nil
}

// DecodeWith decodes a T under S from cur.
func DecodeWith[S Strategy, T any](enc *Encoding, cur *Cursor) (T, error) {
	codec, owner, err := Lookup[S, T](enc)
	if err != nil {
		var zero T
		return zero, atOffset(err, cur.Position())
	}
	return codec.DecodeFelts(owner, cur)
}

// Encode returns the felt encoding of v under S.
func Encode[S Strategy, T any](enc *Encoding, v T) ([]*felt.Felt, error) {
	buf := NewBuffer(0)
	if err := EncodeWith[S](enc, buf, v); err != nil {
		return nil, err
	}
	return buf.Felts(), nil
}

// Decode decodes a T under S from felts, which must be consumed exactly.
func Decode[S Strategy, T any](enc *Encoding, felts []*felt.Felt) (T, error) {
	cur := NewCursor(felts)
	v, err := DecodeWith[S, T](enc, cur)
	if err != nil {
		return v, err
	}
	if err := expectEnd[T](cur); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// EncodeUsing encodes v with a codec that is not bound in enc, such as a context adapter.
func EncodeUsing[T any](enc *Encoding, e Encoder[T], v T) ([]*felt.Felt, error) {
	buf := NewBuffer(0)
	if err := e.EncodeFelts(enc, buf, v); err != nil {
		return nil, err
	}
	return buf.Felts(), nil
}

// DecodeUsing decodes felts with a codec that is not bound in enc. The input must be
// consumed exactly.
func DecodeUsing[T any](enc *Encoding, d Decoder[T], felts []*felt.Felt) (T, error) {
	cur := NewCursor(felts)
	v, err := d.DecodeFelts(enc, cur)
	if err != nil {
		return v, err
	}
	if err := expectEnd[T](cur); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func expectEnd[T any](cur *Cursor) error {
	if n := cur.Remaining(); n != 0 {
		return newError(KindLengthMismatch, cur.Position(), typeName[T](), "%d trailing felts", n)
	}
	return nil
}

func atOffset(err error, offset int) error {
	if e, ok := err.(*Error); ok {
		cp := *e
		cp.Offset = offset
		return &cp
	}
	return err
}
