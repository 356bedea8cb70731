package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"table-sales/internal/common/logger"
	"table-sales/internal/domain"
	"table-sales/internal/money"
	"table-sales/internal/pricing"
	"table-sales/internal/repository"
	"table-sales/internal/scale"
	"table-sales/internal/service"
)

type Handler struct {
	svc *service.TableSales
	lg  *logger.Logger
}

func New(svc *service.TableSales, lg *logger.Logger) *Handler {
	return &Handler{svc: svc, lg: lg}
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.ListTables(r.Context())
	if err != nil {
		h.fail(w, "list_tables", err)
		return
	}
	views := make([]domain.TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, tableView(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": views})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		h.fail(w, "list_products", err)
		return
	}
	views := make([]domain.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, productView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": views})
}

func (h *Handler) OpenTable(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.OpenTable(r.Context(), r.PathValue("table_id"))
	if err != nil {
		h.fail(w, "open_table", err)
		return
	}
	items := make([]domain.SaleItemView, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, saleItemView(it))
	}
	writeJSON(w, http.StatusOK, domain.OpenTableResponse{
		Table:   tableView(res.Table),
		Sale:    saleView(res.Sale),
		Items:   items,
		Reentry: res.Reentry,
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	saleID := r.PathValue("sale_id")
	state, err := h.svc.Cart(r.Context(), saleID)
	if err != nil {
		h.fail(w, "get_cart", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(saleID, state))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	saleID := r.PathValue("sale_id")
	var req domain.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}
	var weightKg *float64
	if req.WeightGrams != nil {
		kg, err := scale.Confirm(scale.Reading{Value: *req.WeightGrams, Unit: scale.Grams})
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "bad_weight", err.Error())
			return
		}
		weightKg = &kg
	}
	state, err := h.svc.AddProduct(r.Context(), saleID, req.ProductCode, weightKg)
	if err != nil {
		h.fail(w, "add_item", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(saleID, state))
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	saleID := r.PathValue("sale_id")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_index", "index must be an integer")
		return
	}
	var req domain.SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}
	state, err := h.svc.SetQuantity(r.Context(), saleID, index, req.Quantity)
	if err != nil {
		h.fail(w, "set_quantity", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(saleID, state))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	saleID := r.PathValue("sale_id")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_index", "index must be an integer")
		return
	}
	state, err := h.svc.RemoveItem(r.Context(), saleID, index)
	if err != nil {
		h.fail(w, "remove_item", err)
		return
	}
	writeJSON(w, http.StatusOK, cartView(saleID, state))
}

func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	sale, err := h.svc.CommitCartItems(r.Context(), r.PathValue("sale_id"))
	if err != nil {
		h.fail(w, "commit_items", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sale": saleView(sale)})
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	var req domain.CloseSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "request body is not valid JSON")
		return
	}
	closing := domain.Closing{
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		CustomerName:  req.CustomerName,
		CustomerCount: req.CustomerCount,
		Notes:         req.Notes,
	}
	if req.ChangeFor != nil {
		closing.ChangeFor = *req.ChangeFor
	}
	sale, err := h.svc.CloseSale(r.Context(), r.PathValue("sale_id"), closing)
	if err != nil {
		h.fail(w, "close_sale", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sale": saleView(sale)})
}

// fail maps use-case errors onto problem responses. Store failures are the
// blocking-alert case: logged, 502, no retry.
func (h *Handler) fail(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, repository.ErrTableNotFree):
		writeProblem(w, http.StatusConflict, "table_not_free", err.Error())
	case errors.Is(err, repository.ErrSaleNotOpen):
		writeProblem(w, http.StatusConflict, "sale_not_open", err.Error())
	case errors.Is(err, service.ErrUnknownProduct):
		writeProblem(w, http.StatusNotFound, "unknown_product", err.Error())
	case errors.Is(err, service.ErrWeightRequired):
		writeProblem(w, http.StatusBadRequest, "weight_required", err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		writeProblem(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, service.ErrBadIndex):
		writeProblem(w, http.StatusNotFound, "bad_index", err.Error())
	case errors.Is(err, service.ErrBadPayment):
		writeProblem(w, http.StatusBadRequest, "bad_payment", err.Error())
	default:
		h.lg.Error(action, err, nil)
		writeProblem(w, http.StatusBadGateway, "store_error", "persistence call failed; please retry")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

func tableView(t domain.Table) domain.TableView {
	v := domain.TableView{
		ID:       t.ID,
		Number:   t.Number,
		Name:     t.Name,
		Capacity: t.Capacity,
		Status:   string(t.Status),
		Location: t.Location,
	}
	if t.CurrentSaleID != nil {
		v.SaleID = *t.CurrentSaleID
	}
	return v
}

func productView(p domain.Product) domain.ProductView {
	v := domain.ProductView{
		Code:         p.Code,
		Name:         p.Name,
		Category:     p.Category,
		IsWeighable:  p.IsWeighable,
		UnitPrice:    p.UnitPrice,
		PricePerGram: p.PricePerGram,
	}
	if p.IsWeighable {
		v.PriceDisplay = money.FormatBRL(pricing.PerKilogram(p.PricePerGram)) + "/kg"
	} else {
		var unit float64
		if p.UnitPrice != nil {
			unit = *p.UnitPrice
		}
		v.PriceDisplay = money.FormatBRL(unit)
	}
	return v
}

func cartView(saleID string, s service.CartState) domain.CartView {
	items := make([]domain.CartItemView, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, domain.CartItemView{
			ProductCode:     it.ProductCode,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			WeightKg:        it.WeightKg,
			Subtotal:        it.Subtotal,
			SubtotalDisplay: money.FormatBRL(it.Subtotal),
		})
	}
	return domain.CartView{
		SaleID:       saleID,
		Items:        items,
		Total:        s.Total,
		TotalDisplay: money.FormatBRL(s.Total),
	}
}

func saleItemView(it domain.SaleItem) domain.SaleItemView {
	return domain.SaleItemView{
		ProductCode:     it.ProductCode,
		ProductName:     it.ProductName,
		Quantity:        it.Quantity,
		WeightKg:        it.WeightKg,
		Subtotal:        it.Subtotal,
		SubtotalDisplay: money.FormatBRL(it.Subtotal),
	}
}

func saleView(s domain.Sale) domain.SaleView {
	v := domain.SaleView{
		ID:            s.ID,
		TableID:       s.TableID,
		SaleNumber:    s.SaleNumber,
		OperatorName:  s.OperatorName,
		CustomerName:  s.CustomerName,
		CustomerCount: s.CustomerCount,
		Subtotal:      s.Subtotal,
		TotalAmount:   s.TotalAmount,
		TotalDisplay:  money.FormatBRL(s.TotalAmount),
		Status:        string(s.Status),
		OpenedAt:      s.OpenedAt.Format(time.RFC3339),
	}
	if s.PaymentMethod != nil {
		v.PaymentMethod = string(*s.PaymentMethod)
	}
	if s.ClosedAt != nil {
		v.ClosedAt = s.ClosedAt.Format(time.RFC3339)
	}
	return v
}
