package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vet-clinic-api/internal/ports/auth"
)

func TestHashCompare(t *testing.T) {
	b := New(bcrypt.MinCost)

	h, err := b.Hash("admin1234")
	require.NoError(t, err)
	assert.NotEqual(t, "admin1234", h)

	require.NoError(t, b.Compare(h, "admin1234"))
	assert.ErrorIs(t, b.Compare(h, "admin12345"), ErrMismatch)
}

func TestHash_SaltDiffers(t *testing.T) {
	b := New(bcrypt.MinCost)
	h1, err := b.Hash("secreto")
	require.NoError(t, err)
	h2, err := b.Hash("secreto")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestHash_TooLong(t *testing.T) {
	_, err := New(bcrypt.MinCost).Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrTooLong)
	assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
}

func TestNew_DefaultCost(t *testing.T) {
	b := New(0)
	h, err := b.Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestCompare_InvalidHash(t *testing.T) {
	err := New(bcrypt.MinCost).Compare("not-a-hash", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}
