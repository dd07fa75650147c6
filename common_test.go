package feltcodec

import (
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/require"
)

func feltsOf(values ...uint64) []*felt.Felt {
	out := make([]*felt.Felt, len(values))
	for i, v := range values {
		out[i] = FeltFromUint(v)
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

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	got, ok := KindOf(err)
	require.Truef(t, ok, "not a codec error: %v", err)
	require.Equalf(t, kind, got, "unexpected error: %v", err)
}

func requireOffset(t *testing.T, err error, offset int) {
	t.Helper()
	got, ok := OffsetOf(err)
	require.True(t, ok)
	require.Equal(t, offset, got)
}

// newTestEncoding builds the Cairo primitives plus the composites used across tests.
func newTestEncoding(t *testing.T) *Encoding {
	t.Helper()
	r := NewCairoRegistry(WithName("test"))
	RegisterArray[ViaCairo, uint64](r)
	RegisterArray[ViaCairo, string](r)
	RegisterPair[ViaCairo, uint64, string](r)
	RegisterPair[ViaCairo, *felt.Felt, *felt.Felt](r)
	RegisterArray[ViaCairo, Pair[*felt.Felt, *felt.Felt]](r)
	RegisterSum[ViaCairo, Either[uint8, Either[string, Either[Unit, Void]]]](r)
	RegisterOption[ViaCairo, uint64](r)
	RegisterResult[ViaCairo, uint64, string](r)
	enc, err := r.Build()
	require.NoError(t, err)
	return enc
}
