package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-sales/internal/domain"
	"table-sales/internal/repository"
)

func f(v float64) *float64 { return &v }

func TestMemoryFixtures(t *testing.T) {
	m := repository.NewMemory()
	ctx := context.Background()

	tables, err := m.ListTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, 1, tables[0].Number, "tables ordered by number")
	assert.Equal(t, domain.TableFree, tables[0].Status)

	products, err := m.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	weighable, err := m.GetProductByCode(ctx, "ACAI1KG")
	require.NoError(t, err)
	assert.True(t, weighable.IsWeighable)
	require.NotNil(t, weighable.PricePerGram)
	assert.Nil(t, weighable.UnitPrice)

	_, err = m.GetProductByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryOpenSale(t *testing.T) {
	m := repository.NewMemory()
	ctx := context.Background()

	sale, err := m.OpenSale(ctx, "demo-table-1", "Operador")
	require.NoError(t, err)
	assert.Equal(t, 1001, sale.SaleNumber)
	assert.Equal(t, domain.SaleOpen, sale.Status)

	table, err := m.GetTable(ctx, "demo-table-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TableOccupied, table.Status)
	require.NotNil(t, table.CurrentSaleID)
	assert.Equal(t, sale.ID, *table.CurrentSaleID)

	// Occupied tables refuse a second open.
	_, err = m.OpenSale(ctx, "demo-table-1", "Operador")
	assert.ErrorIs(t, err, repository.ErrTableNotFree)

	_, err = m.OpenSale(ctx, "no-such-table", "Operador")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryAppendSaleItems(t *testing.T) {
	m := repository.NewMemory()
	ctx := context.Background()
	sale, err := m.OpenSale(ctx, "demo-table-1", "Operador")
	require.NoError(t, err)

	items := []domain.CartItem{
		{ProductCode: "ACAI300", ProductName: "Açaí 300ml", Quantity: 2, UnitPrice: f(15.90), Subtotal: 31.80},
	}
	updated, err := m.AppendSaleItems(ctx, sale.ID, items, 31.80)
	require.NoError(t, err)
	assert.InDelta(t, 31.80, updated.Subtotal, 1e-9)
	assert.InDelta(t, 31.80, updated.TotalAmount, 1e-9)

	updated, err = m.AppendSaleItems(ctx, sale.ID, items, 31.80)
	require.NoError(t, err)
	assert.InDelta(t, 63.60, updated.Subtotal, 1e-9)

	stored, err := m.ListSaleItems(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	_, err = m.AppendSaleItems(ctx, "no-such-sale", items, 31.80)
	assert.ErrorIs(t, err, repository.ErrSaleNotOpen)
}

func TestMemoryCloseSale(t *testing.T) {
	m := repository.NewMemory()
	ctx := context.Background()
	sale, err := m.OpenSale(ctx, "demo-table-2", "Operador")
	require.NoError(t, err)

	closed, err := m.CloseSale(ctx, sale.ID, domain.Closing{
		PaymentMethod: domain.PayPix, CustomerName: "João", CustomerCount: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SaleClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, 3, closed.CustomerCount)

	table, err := m.GetTable(ctx, "demo-table-2")
	require.NoError(t, err)
	assert.Equal(t, domain.TableFree, table.Status)
	assert.Nil(t, table.CurrentSaleID)

	_, err = m.CloseSale(ctx, sale.ID, domain.Closing{PaymentMethod: domain.PayPix})
	assert.ErrorIs(t, err, repository.ErrSaleNotOpen)
}
