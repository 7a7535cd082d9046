package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-portal/pkg/nit"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"800197268-4", "800197268-4"},
		{"800.197.268-4", "800197268-4"},
		{"8001972684", "800197268-4"},
		{"800197268", "800197268-4"},
	}
	for _, tc := range cases {
		got, err := nit.Normalize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalize_DigitoIncorrecto(t *testing.T) {
	_, err := nit.Normalize("800197268-5")
	assert.ErrorIs(t, err, nit.ErrDigit)
}

func TestNormalize_LongitudInvalida(t *testing.T) {
	for _, in := range []string{"", "1234", "12345678901"} {
		_, err := nit.Normalize(in)
		assert.ErrorIs(t, err, nit.ErrLength, in)
	}
}

func TestCheckDigit(t *testing.T) {
	d, err := nit.CheckDigit("800197268")
	require.NoError(t, err)
	assert.Equal(t, byte('4'), d)
}
