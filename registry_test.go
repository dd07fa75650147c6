package feltcodec

import (
	"sync"
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// viaSplit writes a uint64 as its high and low 32-bit halves.
type viaSplit struct{}

type splitCodec struct{}

func (splitCodec) EncodeFelts(_ *Encoding, buf *Buffer, v uint64) error {
	buf.AppendUint64(v >> 32)
	buf.AppendUint64(v & 0xffffffff)
	return nil
}

func (splitCodec) DecodeFelts(enc *Encoding, cur *Cursor) (uint64, error) {
	high, err := DecodeWith[ViaCairo, uint32](enc, cur)
	if err != nil {
		return 0, err
	}
	low, err := DecodeWith[ViaCairo, uint32](enc, cur)
	if err != nil {
		return 0, err
	}
	return uint64(high)<<32 | uint64(low), nil
}

func (splitCodec) Dependencies() []Key {
	return []Key{KeyOf[ViaCairo, uint32]()}
}

func kindsOf(err error) []ErrorKind {
	var kinds []ErrorKind
	for _, e := range multierr.Errors(err) {
		if k, ok := KindOf(e); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func TestRequireUnresolved(t *testing.T) {
	r := NewCairoRegistry()
	Require[ViaCairo, int64](r)

	_, err := r.Build()
	requireKind(t, err, KindUnresolvedBinding)
	require.Contains(t, err.Error(), "int64")
}

func TestDuplicateBindingIsAmbiguous(t *testing.T) {
	r := NewCairoRegistry()
	Register[ViaCairo, uint64](r, UintCodec[uint64]{})

	_, err := r.Build()
	requireKind(t, err, KindAmbiguousBinding)
}

func TestBuildReportsEveryDefect(t *testing.T) {
	r := NewCairoRegistry()
	Register[ViaCairo, uint64](r, UintCodec[uint64]{})
	RegisterArray[ViaCairo, int8](r)
	Register[ViaCairo, int16](r, nil)

	_, err := r.Build()
	require.Error(t, err)
	assert.ElementsMatch(t,
		[]ErrorKind{KindAmbiguousBinding, KindUnresolvedBinding, KindUnresolvedBinding},
		kindsOf(err))
}

func TestCompositeDependencyUnresolved(t *testing.T) {
	r := NewRegistry()
	RegisterArray[ViaCairo, uint64](r)

	_, err := r.Build()
	requireKind(t, err, KindUnresolvedBinding)

	// The same composite builds once its element type is bound.
	r = NewRegistry()
	RegisterArray[ViaCairo, uint64](r)
	Register[ViaCairo, uint64](r, UintCodec[uint64]{})
	_, err = r.Build()
	require.NoError(t, err)
}

func TestStrategyDelegation(t *testing.T) {
	sub, err := NewCairoRegistry(WithName("cairo")).Build()
	require.NoError(t, err)

	r := NewRegistry(WithName("outer"))
	DelegateStrategy[ViaCairo](r, sub)
	RegisterArray[ViaCairo, uint16](r)
	Require[ViaCairo, string](r)
	enc, err := r.Build()
	require.NoError(t, err)

	data, err := Encode[ViaCairo](enc, []uint16{1, 2})
	require.NoError(t, err)
	requireFelts(t, feltsOf(2, 1, 2), data)

	s, err := Decode[ViaCairo, string](enc, feltsOf(0, 0x6f6b, 2))
	require.NoError(t, err)
	require.Equal(t, "ok", s)

	_, owner, err := Lookup[ViaCairo, string](enc)
	require.NoError(t, err)
	require.Equal(t, "cairo", owner.Name())
}

func TestExactBindingOverridesDelegation(t *testing.T) {
	sub, err := NewCairoRegistry().Build()
	require.NoError(t, err)

	r := NewRegistry()
	DelegateStrategy[ViaCairo](r, sub)
	Register[ViaCairo, bool](r, FeltCoercion[bool]{
		ToFelt:   func(b bool) *felt.Felt { return FeltFromBool(!b) },
		FromFelt: func(f *felt.Felt) (bool, bool) { return f.IsZero(), true },
	})
	enc, err := r.Build()
	require.NoError(t, err)

	data, err := Encode[ViaCairo](enc, true)
	require.NoError(t, err)
	requireFelts(t, feltsOf(0), data)
}

func TestTypeDelegation(t *testing.T) {
	sub, err := NewCairoRegistry(WithName("cairo")).Build()
	require.NoError(t, err)

	r := NewRegistry()
	DelegateType[uint64](r, sub)
	Require[ViaCairo, uint64](r)
	Require[ViaCairo, string](r)

	_, err = r.Build()
	requireKind(t, err, KindUnresolvedBinding)
	require.Contains(t, err.Error(), "string")
}

func TestStrategyAndTypeDelegationIsAmbiguous(t *testing.T) {
	cairo, err := NewCairoRegistry(WithName("cairo")).Build()
	require.NoError(t, err)
	other, err := NewCairoRegistry(WithName("other")).Build()
	require.NoError(t, err)

	r := NewRegistry()
	DelegateStrategy[ViaCairo](r, cairo)
	DelegateType[uint32](r, other)
	_, err = r.Build()
	requireKind(t, err, KindAmbiguousBinding)
	require.Contains(t, err.Error(), "uint32")

	r = NewRegistry()
	DelegateStrategy[ViaCairo](r, cairo)
	DelegateType[uint64](r, other)
	Require[ViaCairo, uint64](r)
	_, err = r.Build()
	require.Equal(t, []ErrorKind{KindAmbiguousBinding, KindAmbiguousBinding}, kindsOf(err))
}

func TestExactBindingSettlesDelegationOverlap(t *testing.T) {
	cairo, err := NewCairoRegistry(WithName("cairo")).Build()
	require.NoError(t, err)
	other, err := NewCairoRegistry(WithName("other")).Build()
	require.NoError(t, err)

	r := NewRegistry()
	DelegateStrategy[ViaCairo](r, cairo)
	DelegateType[uint64](r, other)
	Register[ViaCairo, uint64](r, splitCodec{})
	enc, err := r.Build()
	require.NoError(t, err)

	data, err := Encode[ViaCairo](enc, uint64(0x0000000500000007))
	require.NoError(t, err)
	requireFelts(t, feltsOf(5, 7), data)

	data, err = Encode[ViaCairo](enc, uint32(3))
	require.NoError(t, err)
	requireFelts(t, feltsOf(3), data)
}

func TestStrategiesAreIndependent(t *testing.T) {
	r := NewCairoRegistry()
	Register[viaSplit, uint64](r, splitCodec{})
	enc, err := r.Build()
	require.NoError(t, err)

	v := uint64(0x0000000500000007)

	cairo, err := Encode[ViaCairo](enc, v)
	require.NoError(t, err)
	requireFelts(t, feltsOf(v), cairo)

	split, err := Encode[viaSplit](enc, v)
	require.NoError(t, err)
	requireFelts(t, feltsOf(5, 7), split)

	back, err := Decode[viaSplit, uint64](enc, split)
	require.NoError(t, err)
	require.Equal(t, v, back)

	back, err = Decode[ViaCairo, uint64](enc, cairo)
	require.NoError(t, err)
	require.Equal(t, v, back)

	// Each encoding fails under the other strategy.
	_, err = Decode[ViaCairo, uint64](enc, split)
	requireKind(t, err, KindLengthMismatch)
	requireOffset(t, err, 1)

	_, err = Decode[viaSplit, uint64](enc, cairo)
	requireKind(t, err, KindRangeViolation)
	requireOffset(t, err, 0)

	small, err := Encode[ViaCairo](enc, uint64(7))
	require.NoError(t, err)
	_, err = Decode[viaSplit, uint64](enc, small)
	requireKind(t, err, KindBufferUnderrun)
	requireOffset(t, err, 1)

	_, err = Encode[viaSplit](enc, uint32(1))
	requireKind(t, err, KindUnresolvedBinding)
}

func TestViaCodec(t *testing.T) {
	r := NewCairoRegistry()
	Register[ViaProtobuf, uint64](r, Via[ViaCairo, uint64]())
	enc, err := r.Build()
	require.NoError(t, err)

	data, err := Encode[ViaProtobuf](enc, uint64(9))
	require.NoError(t, err)
	requireFelts(t, feltsOf(9), data)

	r = NewRegistry()
	Register[ViaProtobuf, uint64](r, Via[ViaCairo, uint64]())
	_, err = r.Build()
	requireKind(t, err, KindUnresolvedBinding)
}

func TestBuildLogsAssembly(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	r := NewCairoRegistry(WithName("logged"), WithLogger(zap.New(core)))
	Require[ViaCairo, int64](r)
	_, err := r.Build()
	require.Error(t, err)

	defects := logs.FilterMessage("assembly defect").All()
	require.Len(t, defects, 1)
	require.Equal(t, "logged", defects[0].ContextMap()["encoding"])
	require.NotZero(t, logs.FilterMessage("binding").Len())
}

func TestEncodingConcurrentUse(t *testing.T) {
	enc := newTestEncoding(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			values := []string{"relay", string(rune('a' + i))}
			data, err := Encode[ViaCairo](enc, values)
			assert.NoError(t, err)
			back, err := Decode[ViaCairo, []string](enc, data)
			assert.NoError(t, err)
			assert.Equal(t, values, back)
		}(i)
	}
	wg.Wait()
}
