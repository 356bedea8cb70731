package domain

import "time"

// SaleEvent is the broker message published after a successful lifecycle
// transition. Routing keys: sale.opened.store<N> / sale.closed.store<N>.
type SaleEvent struct {
	SaleID        string    `json:"sale_id"`
	SaleNumber    int       `json:"sale_number"`
	StoreID       int       `json:"store_id"`
	TableID       string    `json:"table_id"`
	Status        string    `json:"status"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
