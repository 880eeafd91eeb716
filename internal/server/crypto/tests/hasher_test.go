package tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	crypt "github.com/IvanChernomyrdin/go-yandex-taskkeeper/internal/server/crypto"
)

func testHashers(t *testing.T) map[string]crypt.Hasher {
	t.Helper()

	out := map[string]crypt.Hasher{}
	for _, name := range []string{"argon2id", "bcrypt", "sha256"} {
		h, err := crypt.NewHasher(name, defaultParams(), 4)
		require.NoError(t, err)
		out[name] = h
	}
	return out
}

// Каждая схема: верный пароль проходит, неверный нет, plaintext в digest не попадает
func TestHashers_HashAndVerify(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			encoded, err := h.Hash("hunter22")
			require.NoError(t, err)
			require.NotContains(t, encoded, "hunter22")

			ok, err := h.Verify("hunter22", encoded)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = h.Verify("hunter23", encoded)
			require.NoError(t, err)
			require.False(t, ok)

			// VerifyAny распознаёт схему по формату
			ok, err = crypt.VerifyAny("hunter22", encoded)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestHashers_EmptyPassword(t *testing.T) {
	for name, h := range testHashers(t) {
		t.Run(name, func(t *testing.T) {
			_, err := h.Hash("   ")
			require.Error(t, err)
		})
	}
}

// legacy-схема детерминирована: одинаковый пароль даёт одинаковый digest
func TestSHA256Hasher_Deterministic(t *testing.T) {
	h := crypt.SHA256Hasher{}

	a, err := h.Hash("password1")
	require.NoError(t, err)
	b, err := h.Hash("password1")
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.True(t, strings.HasPrefix(a, "sha256$"))
}

// голый hex без префикса (старые коллекции) тоже проверяется
func TestVerifyAny_BareHexSHA256(t *testing.T) {
	// sha256("password1")
	const bare = "0b14d501a594442a01c6859541bcb3e8164d183d32937b851835442f69d5c94e"

	ok, err := crypt.VerifyAny("password1", bare)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = crypt.VerifyAny("password2", bare)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyAny_UnknownScheme(t *testing.T) {
	_, err := crypt.VerifyAny("password", "md5$abc")
	require.ErrorIs(t, err, crypt.ErrUnknownScheme)
}

func TestNewHasher_Unsupported(t *testing.T) {
	_, err := crypt.NewHasher("scrypt", defaultParams(), 10)
	require.Error(t, err)
}
