package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(12)
	require.NoError(t, err)
	require.Len(t, pw, 12)
	for _, r := range pw {
		require.True(t, strings.ContainsRune(passwordCharset, r), "unexpected character %q", r)
	}

	// non-positive lengths fall back to the default
	pw, err = GeneratePassword(0)
	require.NoError(t, err)
	require.Len(t, pw, 12)

	a, err := GeneratePassword(16)
	require.NoError(t, err)
	b, err := GeneratePassword(16)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
