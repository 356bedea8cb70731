package domain

import "time"

type TableStatus string

const (
	TableFree         TableStatus = "free"
	TableOccupied     TableStatus = "occupied"
	TableAwaitingBill TableStatus = "awaiting_bill"
	TableCleaning     TableStatus = "cleaning"
)

type SaleStatus string

const (
	SaleOpen   SaleStatus = "open"
	SaleClosed SaleStatus = "closed"
)

type PaymentMethod string

const (
	PayCash       PaymentMethod = "cash"
	PayPix        PaymentMethod = "pix"
	PayCreditCard PaymentMethod = "credit_card"
	PayDebitCard  PaymentMethod = "debit_card"
	PayVoucher    PaymentMethod = "voucher"
	PayMixed      PaymentMethod = "mixed"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayPix, PayCreditCard, PayDebitCard, PayVoucher, PayMixed:
		return true
	}
	return false
}

type Table struct {
	ID            string
	Number        int
	Name          string
	Capacity      int
	Status        TableStatus
	Location      string
	CurrentSaleID *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Product is a catalog entry. Cart and sale lines reference it by Code, not
// ID, so committed sales survive catalog rewrites. Exactly one of UnitPrice
// (IsWeighable false) or PricePerGram (IsWeighable true) is set.
type Product struct {
	ID           string
	Code         string
	Name         string
	Category     string
	IsWeighable  bool
	UnitPrice    *float64
	PricePerGram *float64
	IsActive     bool
}

type Sale struct {
	ID             string
	TableID        string
	SaleNumber     int
	OperatorName   string
	CustomerName   string
	CustomerCount  int
	Subtotal       float64
	DiscountAmount float64
	TotalAmount    float64
	PaymentMethod  *PaymentMethod
	ChangeAmount   float64
	Notes          string
	Status         SaleStatus
	OpenedAt       time.Time
	ClosedAt       *time.Time
}

// SaleItem is a committed line. Product name and prices are snapshotted at
// commit time; the row is immutable afterwards.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductCode    string
	ProductName    string
	Quantity       int
	WeightKg       *float64
	UnitPrice      *float64
	PricePerGram   *float64
	DiscountAmount float64
	Subtotal       float64
	Notes          string
}

// CartItem is the transient counterpart of SaleItem: it lives in the
// operator's working cart until the cart is committed to the sale.
type CartItem struct {
	ProductCode  string
	ProductName  string
	Quantity     int
	WeightKg     *float64
	UnitPrice    *float64
	PricePerGram *float64
	Subtotal     float64
	Notes        string
}

// Closing carries everything stamped onto a sale when it is closed.
type Closing struct {
	PaymentMethod PaymentMethod
	ChangeFor     float64
	CustomerName  string
	CustomerCount int
	Notes         string
}
