package tests

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	crypt "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/crypto"
)

// токен — 32 случайных байта в base64url без паддинга
func TestNewRefreshToken_Format(t *testing.T) {
	token, err := crypt.NewRefreshToken()
	require.NoError(t, err)
	require.NotContains(t, token, "=")

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, 32)
}

func TestNewRefreshToken_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		token, err := crypt.NewRefreshToken()
		require.NoError(t, err)

		_, dup := seen[token]
		require.False(t, dup, "duplicate refresh token %q", token)
		seen[token] = struct{}{}
	}
}

// сессия ищется по хэшу, поэтому хэш детерминирован
func TestHashRefreshToken_StableLookupKey(t *testing.T) {
	token, err := crypt.NewRefreshToken()
	require.NoError(t, err)

	h1 := crypt.HashRefreshToken(token)
	h2 := crypt.HashRefreshToken(token)
	require.Len(t, h1, 32)
	require.True(t, bytes.Equal(h1, h2))

	require.False(t, bytes.Equal(h1, crypt.HashRefreshToken(token+"x")))
	require.NotContains(t, string(h1), token)
}
