package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceCode(t *testing.T) {
	code, err := GenerateReferenceCode(8)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "RSV-"))
	assert.Len(t, code, 12)

	_, err = GenerateReferenceCode(0)
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	d, err = ParseDate("2026-03-10T14:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Hour())

	_, err = ParseDate("10/03/2026")
	assert.Error(t, err)
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("UTILS_TEST_KEY", "  ")
	assert.Equal(t, "fallback", EnvOrDefault("UTILS_TEST_KEY", "fallback"))

	t.Setenv("UTILS_TEST_KEY", "set")
	assert.Equal(t, "set", EnvOrDefault("UTILS_TEST_KEY", "fallback"))
}
