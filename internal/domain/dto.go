package domain

type AddItemRequest struct {
	ProductCode string   `json:"product_code"`
	WeightGrams *float64 `json:"weight_grams,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CloseSaleRequest struct {
	PaymentMethod string   `json:"payment_method"`
	ChangeFor     *float64 `json:"change_for,omitempty"`
	CustomerName  string   `json:"customer_name,omitempty"`
	CustomerCount int      `json:"customer_count,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

type TableView struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
	SaleID   string `json:"sale_id,omitempty"`
}

type ProductView struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	IsWeighable  bool     `json:"is_weighable"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
	PricePerGram *float64 `json:"price_per_gram,omitempty"`
	PriceDisplay string   `json:"price_display"`
}

type CartItemView struct {
	ProductCode     string   `json:"product_code"`
	ProductName     string   `json:"product_name"`
	Quantity        int      `json:"quantity"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	Subtotal        float64  `json:"subtotal"`
	SubtotalDisplay string   `json:"subtotal_display"`
}

type CartView struct {
	SaleID       string         `json:"sale_id"`
	Items        []CartItemView `json:"items"`
	Total        float64        `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

type SaleView struct {
	ID            string  `json:"id"`
	TableID       string  `json:"table_id"`
	SaleNumber    int     `json:"sale_number"`
	OperatorName  string  `json:"operator_name"`
	CustomerName  string  `json:"customer_name,omitempty"`
	CustomerCount int     `json:"customer_count"`
	Subtotal      float64 `json:"subtotal"`
	TotalAmount   float64 `json:"total_amount"`
	TotalDisplay  string  `json:"total_display"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Status        string  `json:"status"`
	OpenedAt      string  `json:"opened_at"`
	ClosedAt      string  `json:"closed_at,omitempty"`
}

type SaleItemView struct {
	ProductCode     string   `json:"product_code"`
	ProductName     string   `json:"product_name"`
	Quantity        int      `json:"quantity"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	Subtotal        float64  `json:"subtotal"`
	SubtotalDisplay string   `json:"subtotal_display"`
}

type OpenTableResponse struct {
	Table   TableView      `json:"table"`
	Sale    SaleView       `json:"sale"`
	Items   []SaleItemView `json:"items"`
	Reentry bool           `json:"reentry"`
}
