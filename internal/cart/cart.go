// Package cart is the in-memory aggregator for the lines of one open
// table's order. It mutates purely local state; nothing here talks to the
// store. Lines merge by product code, and merged subtotals are always
// recomputed from the merged quantity/weight rather than summed, so
// repeated additions cannot drift.
package cart

import (
	"table-sales/internal/domain"
	"table-sales/internal/pricing"
)

type Cart struct {
	items []domain.CartItem
}

func New() *Cart { return &Cart{} }

// Add puts one unit (or one weighing) of the product into the cart. When a
// line for the same product code exists the quantities accumulate, weights
// accumulate when both sides carry one, and the subtotal is recomputed from
// the merged state.
func (c *Cart) Add(p domain.Product, weightKg *float64) {
	for i := range c.items {
		if c.items[i].ProductCode != p.Code {
			continue
		}
		it := &c.items[i]
		it.Quantity++
		if weightKg != nil {
			w := *weightKg
			if it.WeightKg != nil {
				w += *it.WeightKg
			}
			it.WeightKg = &w
		}
		if p.IsWeighable && it.WeightKg != nil {
			it.Subtotal = pricing.WeightSubtotal(it.WeightKg, p.PricePerGram)
		} else {
			it.Subtotal = pricing.UnitSubtotal(it.Quantity, p.UnitPrice)
		}
		return
	}

	item := domain.CartItem{
		ProductCode: p.Code,
		ProductName: p.Name,
		Quantity:    1,
		WeightKg:    weightKg,
	}
	if p.IsWeighable {
		item.PricePerGram = p.PricePerGram
		item.Subtotal = pricing.WeightSubtotal(weightKg, p.PricePerGram)
	} else {
		item.UnitPrice = p.UnitPrice
		item.Subtotal = pricing.UnitSubtotal(1, p.UnitPrice)
	}
	c.items = append(c.items, item)
}

// Remove deletes the line at index. Reports whether the index was valid.
func (c *Cart) Remove(index int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return true
}

// SetQuantity adjusts a line's quantity. Zero or negative removes the line.
// Weight-priced lines keep their weight-derived subtotal; only unit-priced
// subtotals follow the quantity.
func (c *Cart) SetQuantity(index, quantity int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	if quantity <= 0 {
		return c.Remove(index)
	}
	it := &c.items[index]
	it.Quantity = quantity
	if it.PricePerGram != nil && it.WeightKg != nil {
		it.Subtotal = pricing.WeightSubtotal(it.WeightKg, it.PricePerGram)
	} else {
		it.Subtotal = pricing.UnitSubtotal(quantity, it.UnitPrice)
	}
	return true
}

// Total is the sum of all line subtotals. Discounts belong to the committed
// sale, never to the cart.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.items {
		total += it.Subtotal
	}
	return total
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Clear() { c.items = nil }
