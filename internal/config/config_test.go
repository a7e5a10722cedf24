package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/readytrader/esem/internal/esem"
)

func TestEnvDefaultFallsBackWhenUnset(t *testing.T) {
	t.Setenv("ESEM_TEST_UNSET_VAR", "")
	require.Equal(t, "fallback", EnvDefault("ESEM_TEST_UNSET_VAR", "fallback"))
}

func TestEnvDefaultReturnsSetValue(t *testing.T) {
	t.Setenv("ESEM_TEST_SET_VAR", "configured")
	require.Equal(t, "configured", EnvDefault("ESEM_TEST_SET_VAR", "fallback"))
}

func TestParseVariantAcceptsKnownValues(t *testing.T) {
	require.Equal(t, esem.V1, ParseVariant("v1"))
	require.Equal(t, esem.V2, ParseVariant("v2"))
	require.Equal(t, esem.V2, ParseVariant(""))
	require.Equal(t, esem.V1, ParseVariant("V1"))
}
