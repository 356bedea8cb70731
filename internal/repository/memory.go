package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"table-sales/internal/domain"
)

// Memory is the demo-mode store: fixed fixtures, no network, every
// lifecycle operation succeeds locally. It is also what the service tests
// run against.
type Memory struct {
	mu       sync.Mutex
	tables   map[string]domain.Table
	products map[string]domain.Product // by code
	sales    map[string]domain.Sale
	items    map[string][]domain.SaleItem // by sale id
	saleSeq  int
}

func ptr[T any](v T) *T { return &v }

// NewMemory seeds the demo fixtures: two free tables and a two-product
// catalog (one unit-priced, one weighable).
func NewMemory() *Memory {
	now := time.Now().UTC()
	m := &Memory{
		tables:   make(map[string]domain.Table),
		products: make(map[string]domain.Product),
		sales:    make(map[string]domain.Sale),
		items:    make(map[string][]domain.SaleItem),
		saleSeq:  1000,
	}
	for _, t := range []domain.Table{
		{ID: "demo-table-1", Number: 1, Name: "Mesa 1", Capacity: 4, Status: domain.TableFree,
			Location: "Área interna", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: "demo-table-2", Number: 2, Name: "Mesa 2", Capacity: 2, Status: domain.TableFree,
			Location: "Área externa", IsActive: true, CreatedAt: now, UpdatedAt: now},
	} {
		m.tables[t.ID] = t
	}
	for _, p := range []domain.Product{
		{ID: "demo-acai-300", Code: "ACAI300", Name: "Açaí 300ml", Category: "acai",
			UnitPrice: ptr(15.90), IsActive: true},
		{ID: "demo-acai-1kg", Code: "ACAI1KG", Name: "Açaí 1kg (Pesável)", Category: "acai",
			IsWeighable: true, PricePerGram: ptr(0.04499), IsActive: true},
	} {
		m.products[p.Code] = p
	}
	return m
}

func (m *Memory) ListTables(_ context.Context) ([]domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Table, 0, len(m.tables))
	for _, t := range m.tables {
		if t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *Memory) GetTable(_ context.Context, id string) (domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok || !t.IsActive {
		return domain.Table{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetProductByCode(_ context.Context, code string) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[code]
	if !ok || !p.IsActive {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) GetSale(_ context.Context, id string) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sales[id]
	if !ok {
		return domain.Sale{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) ListSaleItems(_ context.Context, saleID string) ([]domain.SaleItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.items[saleID]
	out := make([]domain.SaleItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *Memory) OpenSale(_ context.Context, tableID, operatorName string) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[tableID]
	if !ok || !t.IsActive {
		return domain.Sale{}, ErrNotFound
	}
	if t.Status != domain.TableFree {
		return domain.Sale{}, ErrTableNotFree
	}

	m.saleSeq++
	now := time.Now().UTC()
	s := domain.Sale{
		ID:            uuid.NewString(),
		TableID:       tableID,
		SaleNumber:    m.saleSeq,
		OperatorName:  operatorName,
		CustomerCount: 1,
		Status:        domain.SaleOpen,
		OpenedAt:      now,
	}
	m.sales[s.ID] = s

	t.Status = domain.TableOccupied
	t.CurrentSaleID = &s.ID
	t.UpdatedAt = now
	m.tables[tableID] = t
	return s, nil
}

func (m *Memory) AppendSaleItems(_ context.Context, saleID string, items []domain.CartItem, addedTotal float64) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sales[saleID]
	if !ok || s.Status != domain.SaleOpen {
		return domain.Sale{}, ErrSaleNotOpen
	}

	for _, it := range items {
		m.items[saleID] = append(m.items[saleID], domain.SaleItem{
			ID:           uuid.NewString(),
			SaleID:       saleID,
			ProductCode:  it.ProductCode,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			WeightKg:     it.WeightKg,
			UnitPrice:    it.UnitPrice,
			PricePerGram: it.PricePerGram,
			Subtotal:     it.Subtotal,
			Notes:        it.Notes,
		})
	}

	s.Subtotal += addedTotal
	s.TotalAmount = s.Subtotal - s.DiscountAmount
	m.sales[saleID] = s
	return s, nil
}

func (m *Memory) CloseSale(_ context.Context, saleID string, c domain.Closing) (domain.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sales[saleID]
	if !ok || s.Status != domain.SaleOpen {
		return domain.Sale{}, ErrSaleNotOpen
	}

	now := time.Now().UTC()
	s.CustomerName = c.CustomerName
	if c.CustomerCount > 0 {
		s.CustomerCount = c.CustomerCount
	}
	pm := c.PaymentMethod
	s.PaymentMethod = &pm
	s.ChangeAmount = c.ChangeFor
	s.Notes = c.Notes
	s.Status = domain.SaleClosed
	s.ClosedAt = &now
	m.sales[saleID] = s

	if t, ok := m.tables[s.TableID]; ok {
		t.Status = domain.TableFree
		t.CurrentSaleID = nil
		t.UpdatedAt = now
		m.tables[s.TableID] = t
	}
	return s, nil
}
