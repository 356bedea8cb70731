package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"table-sales/internal/money"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{15.9, "R$ 15,90"},
		{13.497, "R$ 13,50"},
		{1234.5, "R$ 1.234,50"},
		{1234567.89, "R$ 1.234.567,89"},
		{-42.1, "-R$ 42,10"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, money.FormatBRL(tc.in))
	}
}
