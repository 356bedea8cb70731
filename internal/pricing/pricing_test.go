package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"table-sales/internal/pricing"
)

func f(v float64) *float64 { return &v }

func TestUnitSubtotal(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		price    *float64
		want     float64
	}{
		{"single", 1, f(15.90), 15.90},
		{"many", 37, f(15.90), 37 * 15.90},
		{"zero quantity", 0, f(15.90), 0},
		{"missing price", 3, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, pricing.UnitSubtotal(tc.quantity, tc.price), 1e-9)
		})
	}
}

func TestWeightSubtotal(t *testing.T) {
	// 0.300 kg at 0.04499/g must come out near 13.497, not 0.0135.
	got := pricing.WeightSubtotal(f(0.300), f(0.04499))
	assert.InDelta(t, 13.497, got, 1e-9)

	assert.Zero(t, pricing.WeightSubtotal(nil, f(0.04499)))
	assert.Zero(t, pricing.WeightSubtotal(f(0.300), nil))
}

func TestLineDispatch(t *testing.T) {
	// Weight-priced line ignores quantity.
	got := pricing.Line(5, f(0.2), nil, f(0.05))
	assert.InDelta(t, 10.0, got, 1e-9)

	// Unit-priced line ignores weight fields that are not fully present.
	got = pricing.Line(2, nil, f(15.90), f(0.05))
	assert.InDelta(t, 31.80, got, 1e-9)

	// Nothing populated prices to zero.
	assert.Zero(t, pricing.Line(2, nil, nil, nil))
}

func TestPerKilogram(t *testing.T) {
	assert.InDelta(t, 44.99, pricing.PerKilogram(f(0.04499)), 1e-9)
	assert.Zero(t, pricing.PerKilogram(nil))
}
