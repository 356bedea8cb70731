package repository

import (
	"context"
	"errors"

	"table-sales/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrTableNotFree = errors.New("table is not free")
	ErrSaleNotOpen  = errors.New("sale is not open")
)

// Store is the persistence collaborator for one store tenant. Lifecycle
// writes that span rows (open, append, close) are atomic within a single
// implementation call.
type Store interface {
	ListTables(ctx context.Context) ([]domain.Table, error)
	GetTable(ctx context.Context, id string) (domain.Table, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByCode(ctx context.Context, code string) (domain.Product, error)

	GetSale(ctx context.Context, id string) (domain.Sale, error)
	ListSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error)

	// OpenSale creates an open sale with the next sequential sale number,
	// flips the table to occupied and links the sale, all atomically.
	// Fails with ErrTableNotFree unless the table is free.
	OpenSale(ctx context.Context, tableID, operatorName string) (domain.Sale, error)

	// AppendSaleItems commits cart lines as immutable sale items and adds
	// addedTotal to the sale's running subtotal and total.
	AppendSaleItems(ctx context.Context, saleID string, items []domain.CartItem, addedTotal float64) (domain.Sale, error)

	// CloseSale stamps payment info and the closing timestamp, marks the
	// sale closed and frees its table, all atomically.
	CloseSale(ctx context.Context, saleID string, c domain.Closing) (domain.Sale, error)
}
