package digest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hostable/credkit/pkg/digest"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("hash verifies against original password", func(t *testing.T) {
		t.Parallel()

		hash, err := digest.HashPassword("correct horse battery", bcrypt.MinCost)
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		assert.True(t, digest.VerifyPassword("correct horse battery", hash))
		assert.False(t, digest.VerifyPassword("wrong password", hash))
	})

	t.Run("hashes are salted", func(t *testing.T) {
		t.Parallel()

		h1, err := digest.HashPassword("same input", bcrypt.MinCost)
		require.NoError(t, err)
		h2, err := digest.HashPassword("same input", bcrypt.MinCost)
		require.NoError(t, err)

		assert.NotEqual(t, h1, h2)
	})

	t.Run("verify rejects malformed hash", func(t *testing.T) {
		t.Parallel()

		assert.False(t, digest.VerifyPassword("anything", "not-a-bcrypt-hash"))
	})
}

func TestHash(t *testing.T) {
	t.Parallel()

	t.Run("deterministic sha256 hex", func(t *testing.T) {
		t.Parallel()

		h := digest.Hash("123456")
		assert.Len(t, h, 64)
		assert.Equal(t, h, digest.Hash("123456"))
		assert.NotEqual(t, h, digest.Hash("123457"))
	})

	t.Run("known vector", func(t *testing.T) {
		t.Parallel()

		// sha256("abc")
		assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest.Hash("abc"))
	})
}

func TestShortHash(t *testing.T) {
	t.Parallel()

	h := digest.ShortHash("12345")
	assert.Len(t, h, digest.ShortHashLength)
	assert.True(t, strings.HasPrefix(digest.Hash("12345"), h))
	assert.Equal(t, h, digest.ShortHash("12345"))
}

func TestSign(t *testing.T) {
	t.Parallel()

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		t.Parallel()

		msg := "INV-1024|5000|alice@x.com|ab12cd34"
		assert.Equal(t, digest.Sign(msg, "secret"), digest.Sign(msg, "secret"))
	})

	t.Run("changes with any input", func(t *testing.T) {
		t.Parallel()

		base := digest.Sign("INV-1024|5000|alice@x.com|ab12cd34", "secret")
		assert.NotEqual(t, base, digest.Sign("INV-1024|5001|alice@x.com|ab12cd34", "secret"))
		assert.NotEqual(t, base, digest.Sign("INV-1024|5000|bob@x.com|ab12cd34", "secret"))
		assert.NotEqual(t, base, digest.Sign("INV-1024|5000|alice@x.com|ab12cd35", "secret"))
		assert.NotEqual(t, base, digest.Sign("INV-1024|5000|alice@x.com|ab12cd34", "other-secret"))
	})

	t.Run("fixed display length", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, digest.Sign("m", "s"), digest.SignatureLength)
	})
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, digest.Equal("abc123", "abc123"))
	assert.False(t, digest.Equal("abc123", "abc124"))
	assert.False(t, digest.Equal("abc", "abc123"))
}

func TestEqualFold(t *testing.T) {
	t.Parallel()

	assert.True(t, digest.EqualFold("AB12CD34", "ab12cd34"))
	assert.True(t, digest.EqualFold("deadBEEF", "DEADbeef"))
	assert.False(t, digest.EqualFold("ab12cd34", "ab12cd35"))
}
