package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct{ in, want string }{
		{"0", "$0"},
		{"999", "$999"},
		{"4500", "$4.500"},
		{"25000.4", "$25.000"},
		{"1000000", "$1.000.000"},
		{"-12500", "-$12.500"},
		{"1234.5", "$1.235"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Format(decimal.RequireFromString(c.in)), c.in)
	}
}
