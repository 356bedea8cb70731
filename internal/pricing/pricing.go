// Package pricing holds the pure subtotal rules. Weighable products store
// their price per gram while weights are tracked in kilograms; every
// weight-derived subtotal crosses that unit boundary exactly once.
package pricing

// GramsPerKilogram is the fixed unit conversion between stored price
// (per gram) and tracked weight (kilograms). Not a tunable.
const GramsPerKilogram = 1000

// UnitSubtotal prices a quantity of a unit-priced product. A missing unit
// price prices to zero, it is not an error.
func UnitSubtotal(quantity int, unitPrice *float64) float64 {
	if unitPrice == nil {
		return 0
	}
	return float64(quantity) * *unitPrice
}

// WeightSubtotal prices a weighed amount of product. Missing weight or
// missing price-per-gram prices to zero, it is not an error.
func WeightSubtotal(weightKg, pricePerGram *float64) float64 {
	if weightKg == nil || pricePerGram == nil {
		return 0
	}
	return *weightKg * GramsPerKilogram * *pricePerGram
}

// Line prices one cart or sale line from whichever pricing fields it
// carries: a line with both a weight and a price-per-gram is weight-priced,
// everything else is quantity times unit price.
func Line(quantity int, weightKg, unitPrice, pricePerGram *float64) float64 {
	if pricePerGram != nil && weightKg != nil {
		return WeightSubtotal(weightKg, pricePerGram)
	}
	return UnitSubtotal(quantity, unitPrice)
}

// PerKilogram converts a stored price-per-gram into the per-kilogram figure
// shown next to weighable products.
func PerKilogram(pricePerGram *float64) float64 {
	if pricePerGram == nil {
		return 0
	}
	return *pricePerGram * GramsPerKilogram
}
