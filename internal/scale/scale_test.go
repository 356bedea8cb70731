package scale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-sales/internal/scale"
)

func TestReadingKilograms(t *testing.T) {
	assert.InDelta(t, 0.3, scale.Reading{Value: 300, Unit: scale.Grams}.Kilograms(), 1e-9)
	assert.InDelta(t, 0.3, scale.Reading{Value: 0.3, Unit: scale.Kilograms}.Kilograms(), 1e-9)
}

func TestConfirm(t *testing.T) {
	kg, err := scale.Confirm(scale.Reading{Value: 750, Unit: scale.Grams})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, kg, 1e-9)

	_, err = scale.Confirm(scale.Reading{Value: 0, Unit: scale.Grams})
	assert.ErrorIs(t, err, scale.ErrNotPositive)

	_, err = scale.Confirm(scale.Reading{Value: -5, Unit: scale.Kilograms})
	assert.ErrorIs(t, err, scale.ErrNotPositive)
}
