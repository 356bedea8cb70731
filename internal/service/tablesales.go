// Package service holds the table-sales use cases. Operations take plain
// data and return structs or sentinel errors; nothing here knows about
// HTTP. Cart mutations are local and synchronous; only open, commit and
// close reach the store.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"table-sales/internal/cart"
	"table-sales/internal/common/logger"
	"table-sales/internal/domain"
	"table-sales/internal/repository"
)

// Publisher pushes lifecycle events to the broker. Best-effort: failures
// are logged and never surfaced to the operator.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }

type TableSales struct {
	store    repository.Store
	pub      Publisher
	lg       *logger.Logger
	operator string
	storeID  int

	mu    sync.Mutex
	carts map[string]*cart.Cart // by open sale id, this process only
}

// New wires the use cases. The demo-vs-real decision was made by whoever
// constructed the store; the service never reads configuration itself.
func New(store repository.Store, pub Publisher, lg *logger.Logger, operator string, storeID int) *TableSales {
	if operator == "" {
		operator = "Operador"
	}
	return &TableSales{
		store:    store,
		pub:      pub,
		lg:       lg,
		operator: operator,
		storeID:  storeID,
		carts:    make(map[string]*cart.Cart),
	}
}

type OpenResult struct {
	Table   domain.Table
	Sale    domain.Sale
	Items   []domain.SaleItem
	Reentry bool
}

type CartState struct {
	Items []domain.CartItem
	Total float64
}

func (t *TableSales) ListTables(ctx context.Context) ([]domain.Table, error) {
	return t.store.ListTables(ctx)
}

func (t *TableSales) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return t.store.ListProducts(ctx)
}

// OpenTable starts (or resumes) a sale session on a table. A table already
// linked to an open sale is a re-entry: the existing sale and its committed
// items come back, no new sale is created, and the working cart starts
// empty. Otherwise the table must be free and a fresh sale is opened.
func (t *TableSales) OpenTable(ctx context.Context, tableID string) (OpenResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	table, err := t.store.GetTable(ctx, tableID)
	if err != nil {
		return OpenResult{}, err
	}

	if table.CurrentSaleID != nil {
		sale, err := t.store.GetSale(ctx, *table.CurrentSaleID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return OpenResult{}, err
		}
		if err == nil && sale.Status == domain.SaleOpen {
			items, err := t.store.ListSaleItems(ctx, sale.ID)
			if err != nil {
				return OpenResult{}, err
			}
			if _, ok := t.carts[sale.ID]; !ok {
				t.carts[sale.ID] = cart.New()
			}
			return OpenResult{Table: table, Sale: sale, Items: items, Reentry: true}, nil
		}
		// Stale link to a closed sale: fall through and open fresh.
	}

	sale, err := t.store.OpenSale(ctx, tableID, t.operator)
	if err != nil {
		return OpenResult{}, err
	}
	t.carts[sale.ID] = cart.New()

	table.Status = domain.TableOccupied
	table.CurrentSaleID = &sale.ID
	t.publish(ctx, "opened", sale)
	t.lg.Info("table_opened", map[string]any{"table_id": tableID, "sale_id": sale.ID, "sale_number": sale.SaleNumber})
	return OpenResult{Table: table, Sale: sale}, nil
}

// AddProduct puts one unit or one weighing of the coded product into the
// sale's working cart. Weighable products need a positive weight in
// kilograms; unit-priced products ignore weight entirely.
func (t *TableSales) AddProduct(ctx context.Context, saleID, productCode string, weightKg *float64) (CartState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.carts[saleID]
	if !ok {
		return CartState{}, repository.ErrSaleNotOpen
	}
	p, err := t.store.GetProductByCode(ctx, productCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CartState{}, ErrUnknownProduct
		}
		return CartState{}, err
	}
	if p.IsWeighable {
		if weightKg == nil || *weightKg <= 0 {
			return CartState{}, ErrWeightRequired
		}
	} else {
		weightKg = nil
	}
	c.Add(p, weightKg)
	return CartState{Items: c.Items(), Total: c.Total()}, nil
}

func (t *TableSales) RemoveItem(_ context.Context, saleID string, index int) (CartState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.carts[saleID]
	if !ok {
		return CartState{}, repository.ErrSaleNotOpen
	}
	if !c.Remove(index) {
		return CartState{}, ErrBadIndex
	}
	return CartState{Items: c.Items(), Total: c.Total()}, nil
}

func (t *TableSales) SetQuantity(_ context.Context, saleID string, index, quantity int) (CartState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.carts[saleID]
	if !ok {
		return CartState{}, repository.ErrSaleNotOpen
	}
	if !c.SetQuantity(index, quantity) {
		return CartState{}, ErrBadIndex
	}
	return CartState{Items: c.Items(), Total: c.Total()}, nil
}

func (t *TableSales) Cart(_ context.Context, saleID string) (CartState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.carts[saleID]
	if !ok {
		return CartState{}, repository.ErrSaleNotOpen
	}
	return CartState{Items: c.Items(), Total: c.Total()}, nil
}

// CommitCartItems appends the working cart to the sale as immutable items,
// adds the cart total to the sale's running subtotal and clears the cart.
// Repeatable any number of times while the sale is open.
func (t *TableSales) CommitCartItems(ctx context.Context, saleID string) (domain.Sale, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.commitLocked(ctx, saleID)
}

func (t *TableSales) commitLocked(ctx context.Context, saleID string) (domain.Sale, error) {
	c, ok := t.carts[saleID]
	if !ok {
		return domain.Sale{}, repository.ErrSaleNotOpen
	}
	if c.Len() == 0 {
		return domain.Sale{}, ErrEmptyCart
	}
	sale, err := t.store.AppendSaleItems(ctx, saleID, c.Items(), c.Total())
	if err != nil {
		// Cart stays intact; the operator re-attempts manually.
		return domain.Sale{}, err
	}
	c.Clear()
	t.lg.Info("items_committed", map[string]any{"sale_id": saleID, "subtotal": sale.Subtotal})
	return sale, nil
}

// CloseSale commits any pending cart lines, then stamps payment and frees
// the table. Closed sales are terminal.
func (t *TableSales) CloseSale(ctx context.Context, saleID string, closing domain.Closing) (domain.Sale, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !closing.PaymentMethod.Valid() {
		return domain.Sale{}, ErrBadPayment
	}
	if c, ok := t.carts[saleID]; ok && c.Len() > 0 {
		if _, err := t.commitLocked(ctx, saleID); err != nil {
			return domain.Sale{}, err
		}
	}

	sale, err := t.store.CloseSale(ctx, saleID, closing)
	if err != nil {
		return domain.Sale{}, err
	}
	delete(t.carts, saleID)
	t.publish(ctx, "closed", sale)
	t.lg.Info("sale_closed", map[string]any{
		"sale_id": saleID, "sale_number": sale.SaleNumber,
		"total": sale.TotalAmount, "payment": string(closing.PaymentMethod),
	})
	return sale, nil
}

func (t *TableSales) publish(ctx context.Context, transition string, sale domain.Sale) {
	ev := domain.SaleEvent{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		StoreID:     t.storeID,
		TableID:     sale.TableID,
		Status:      string(sale.Status),
		TotalAmount: sale.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
	if sale.PaymentMethod != nil {
		ev.PaymentMethod = string(*sale.PaymentMethod)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.lg.Error("event_marshal", err, map[string]any{"sale_id": sale.ID})
		return
	}
	key := fmt.Sprintf("sale.%s.store%d", transition, t.storeID)
	if err := t.pub.Publish(ctx, key, body); err != nil {
		t.lg.Error("event_publish", err, map[string]any{"routing_key": key, "sale_id": sale.ID})
	}
}
