package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"table-sales/internal/domain"
)

// PG serves one store tenant out of its prefixed table set. Store 1's
// catalog kept its pre-split table name (pdv_products); everything else is
// store<N>_-prefixed.
type PG struct {
	pool    *pgxpool.Pool
	storeID int
}

func NewPG(pool *pgxpool.Pool, storeID int) *PG {
	return &PG{pool: pool, storeID: storeID}
}

func (p *PG) tablesName() string { return fmt.Sprintf("store%d_tables", p.storeID) }
func (p *PG) salesName() string  { return fmt.Sprintf("store%d_table_sales", p.storeID) }
func (p *PG) itemsName() string  { return fmt.Sprintf("store%d_table_sale_items", p.storeID) }

func (p *PG) productsName() string {
	if p.storeID == 1 {
		return "pdv_products"
	}
	return fmt.Sprintf("store%d_products", p.storeID)
}

const saleCols = `id, table_id, sale_number, operator_name, customer_name, customer_count,
	subtotal, discount_amount, total_amount, payment_type, change_amount, notes, status, opened_at, closed_at`

func scanSale(row pgx.Row) (domain.Sale, error) {
	var s domain.Sale
	var payment *string
	var status string
	err := row.Scan(&s.ID, &s.TableID, &s.SaleNumber, &s.OperatorName, &s.CustomerName,
		&s.CustomerCount, &s.Subtotal, &s.DiscountAmount, &s.TotalAmount, &payment,
		&s.ChangeAmount, &s.Notes, &status, &s.OpenedAt, &s.ClosedAt)
	if err != nil {
		return domain.Sale{}, err
	}
	s.Status = domain.SaleStatus(status)
	if payment != nil {
		m := domain.PaymentMethod(*payment)
		s.PaymentMethod = &m
	}
	return s, nil
}

func (p *PG) ListTables(ctx context.Context) ([]domain.Table, error) {
	rows, err := p.pool.Query(ctx, fmt.Sprintf(`
SELECT id, number, name, capacity, status, location, current_sale_id, is_active, created_at, updated_at
FROM %s WHERE is_active ORDER BY number`, p.tablesName()))
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var out []domain.Table
	for rows.Next() {
		var t domain.Table
		var status string
		if err := rows.Scan(&t.ID, &t.Number, &t.Name, &t.Capacity, &status, &t.Location,
			&t.CurrentSaleID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		t.Status = domain.TableStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (p *PG) GetTable(ctx context.Context, id string) (domain.Table, error) {
	var t domain.Table
	var status string
	err := p.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT id, number, name, capacity, status, location, current_sale_id, is_active, created_at, updated_at
FROM %s WHERE id = $1 AND is_active`, p.tablesName()), id).
		Scan(&t.ID, &t.Number, &t.Name, &t.Capacity, &status, &t.Location,
			&t.CurrentSaleID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Table{}, ErrNotFound
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("get table: %w", err)
	}
	t.Status = domain.TableStatus(status)
	return t, nil
}

func (p *PG) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := p.pool.Query(ctx, fmt.Sprintf(`
SELECT id, code, name, category, is_weighable, unit_price, price_per_gram, is_active
FROM %s WHERE is_active ORDER BY name`, p.productsName()))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var pr domain.Product
		if err := rows.Scan(&pr.ID, &pr.Code, &pr.Name, &pr.Category, &pr.IsWeighable,
			&pr.UnitPrice, &pr.PricePerGram, &pr.IsActive); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

func (p *PG) GetProductByCode(ctx context.Context, code string) (domain.Product, error) {
	var pr domain.Product
	err := p.pool.QueryRow(ctx, fmt.Sprintf(`
SELECT id, code, name, category, is_weighable, unit_price, price_per_gram, is_active
FROM %s WHERE code = $1 AND is_active`, p.productsName()), code).
		Scan(&pr.ID, &pr.Code, &pr.Name, &pr.Category, &pr.IsWeighable,
			&pr.UnitPrice, &pr.PricePerGram, &pr.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return pr, nil
}

func (p *PG) GetSale(ctx context.Context, id string) (domain.Sale, error) {
	s, err := scanSale(p.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, saleCols, p.salesName()), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Sale{}, ErrNotFound
	}
	if err != nil {
		return domain.Sale{}, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (p *PG) ListSaleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	rows, err := p.pool.Query(ctx, fmt.Sprintf(`
SELECT id, sale_id, product_code, product_name, quantity, weight_kg, unit_price, price_per_gram,
	discount_amount, subtotal, notes
FROM %s WHERE sale_id = $1 ORDER BY created_at`, p.itemsName()), saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var out []domain.SaleItem
	for rows.Next() {
		var it domain.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductCode, &it.ProductName, &it.Quantity,
			&it.WeightKg, &it.UnitPrice, &it.PricePerGram, &it.DiscountAmount, &it.Subtotal, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (p *PG) OpenSale(ctx context.Context, tableID, operatorName string) (domain.Sale, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var next int
	if err := tx.QueryRow(ctx,
		fmt.Sprintf(`SELECT COALESCE(MAX(sale_number), 1000) + 1 FROM %s`, p.salesName())).
		Scan(&next); err != nil {
		return domain.Sale{}, fmt.Errorf("next sale number: %w", err)
	}

	id := uuid.NewString()
	s, err := scanSale(tx.QueryRow(ctx, fmt.Sprintf(`
INSERT INTO %s (id, table_id, sale_number, operator_name, customer_name, customer_count,
	subtotal, discount_amount, total_amount, change_amount, notes, status, opened_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, '', 1, 0, 0, 0, 0, '', 'open', NOW(), NOW(), NOW())
RETURNING %s`, p.salesName(), saleCols), id, tableID, next, operatorName))
	if err != nil {
		return domain.Sale{}, fmt.Errorf("insert sale: %w", err)
	}

	tag, err := tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s SET status = 'occupied', current_sale_id = $1, updated_at = NOW()
WHERE id = $2 AND status = 'free' AND is_active`, p.tablesName()), id, tableID)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("occupy table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Sale{}, ErrTableNotFree
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Sale{}, fmt.Errorf("commit: %w", err)
	}
	return s, nil
}

func (p *PG) AppendSaleItems(ctx context.Context, saleID string, items []domain.CartItem, addedTotal float64) (domain.Sale, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Running totals accumulate across commits; the RHS of the UPDATE sees
	// the pre-update subtotal, so total stays subtotal - discount.
	s, err := scanSale(tx.QueryRow(ctx, fmt.Sprintf(`
UPDATE %s SET subtotal = subtotal + $1,
	total_amount = subtotal + $1 - discount_amount,
	updated_at = NOW()
WHERE id = $2 AND status = 'open'
RETURNING %s`, p.salesName(), saleCols), addedTotal, saleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Sale{}, ErrSaleNotOpen
	}
	if err != nil {
		return domain.Sale{}, fmt.Errorf("update sale totals: %w", err)
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`
INSERT INTO %s (id, sale_id, product_code, product_name, quantity, weight_kg, unit_price,
	price_per_gram, discount_amount, subtotal, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, NOW())`, p.itemsName()),
			uuid.NewString(), saleID, it.ProductCode, it.ProductName, it.Quantity,
			it.WeightKg, it.UnitPrice, it.PricePerGram, it.Subtotal, it.Notes); err != nil {
			return domain.Sale{}, fmt.Errorf("insert sale item %s: %w", it.ProductCode, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Sale{}, fmt.Errorf("commit: %w", err)
	}
	return s, nil
}

func (p *PG) CloseSale(ctx context.Context, saleID string, c domain.Closing) (domain.Sale, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	s, err := scanSale(tx.QueryRow(ctx, fmt.Sprintf(`
UPDATE %s SET customer_name = $1, customer_count = $2, payment_type = $3, change_amount = $4,
	notes = $5, status = 'closed', closed_at = NOW(), updated_at = NOW()
WHERE id = $6 AND status = 'open'
RETURNING %s`, p.salesName(), saleCols),
		c.CustomerName, c.CustomerCount, string(c.PaymentMethod), c.ChangeFor, c.Notes, saleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Sale{}, ErrSaleNotOpen
	}
	if err != nil {
		return domain.Sale{}, fmt.Errorf("close sale: %w", err)
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf(`
UPDATE %s SET status = 'free', current_sale_id = NULL, updated_at = NOW()
WHERE id = $1`, p.tablesName()), s.TableID); err != nil {
		return domain.Sale{}, fmt.Errorf("free table: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Sale{}, fmt.Errorf("commit: %w", err)
	}
	return s, nil
}
