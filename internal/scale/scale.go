// Package scale is the weight-acquisition boundary. Readings arrive in
// grams or kilograms (manual entry or a scale device) and are normalized to
// kilograms before they reach the cart. Non-positive readings are rejected
// here, at the input boundary, so the cart never sees them.
package scale

import "errors"

var ErrNotPositive = errors.New("weight must be positive")

type Unit string

const (
	Grams     Unit = "g"
	Kilograms Unit = "kg"
)

type Reading struct {
	Value float64
	Unit  Unit
}

// Kilograms converts the reading into the kilogram scale the cart tracks.
func (r Reading) Kilograms() float64 {
	if r.Unit == Kilograms {
		return r.Value
	}
	return r.Value / 1000
}

// Confirm validates a reading and returns its weight in kilograms.
func Confirm(r Reading) (float64, error) {
	kg := r.Kilograms()
	if kg <= 0 {
		return 0, ErrNotPositive
	}
	return kg, nil
}

// QuickWeightsGrams are the preset amounts offered for one-tap weighing.
var QuickWeightsGrams = []int{100, 200, 300, 500, 750, 1000}
