package tokencrypt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/pkg/tokencrypt"
)

func TestSealOpen(t *testing.T) {
	c, err := tokencrypt.New("secreto-de-sesion")
	require.NoError(t, err)

	sealed, err := c.Seal("eyJhbGciOi.token.backend")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "token.backend")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi.token.backend", plain)
}

func TestSeal_NonceDistinto(t *testing.T) {
	c, err := tokencrypt.New("s")
	require.NoError(t, err)
	a, _ := c.Seal("x")
	b, _ := c.Seal("x")
	assert.NotEqual(t, a, b)
}

func TestOpen_OtraClaveOAlterado(t *testing.T) {
	a, _ := tokencrypt.New("uno")
	b, _ := tokencrypt.New("dos")
	sealed, err := a.Seal("token")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, tokencrypt.ErrDecrypt)

	sealed[len(sealed)-1] ^= 0xff
	_, err = a.Open(sealed)
	assert.ErrorIs(t, err, tokencrypt.ErrDecrypt)

	_, err = a.Open([]byte("corto"))
	assert.ErrorIs(t, err, tokencrypt.ErrDecrypt)
}

func TestNew_SecretoVacio(t *testing.T) {
	_, err := tokencrypt.New("")
	assert.Error(t, err)
}
