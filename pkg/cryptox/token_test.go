package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name string
		size int
		len  int
	}{
		{"128-bit", TokenSize128, 22},
		{"256-bit", TokenSize256, 43},
		{"custom", 24, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, a, tt.len)

			b, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, a, b)
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}

	require.Panics(t, func() { MustGenerateToken(0) })
}

func TestEqualTokens(t *testing.T) {
	require.True(t, EqualTokens("s3cret", "s3cret"))
	require.False(t, EqualTokens("s3cret", "s3cre"))
	require.False(t, EqualTokens("", "s3cret"))
	require.True(t, EqualTokens("", ""))
}
