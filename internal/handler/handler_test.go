package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-sales/internal/common/logger"
	"table-sales/internal/domain"
	"table-sales/internal/handler"
	"table-sales/internal/repository"
	"table-sales/internal/service"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := service.New(repository.NewMemory(), service.NopPublisher{}, logger.New("test"), "Operador", 1)
	srv := httptest.NewServer(handler.Router(handler.New(svc, logger.New("test"))))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestListEndpoints(t *testing.T) {
	srv := newServer(t)

	var tables struct {
		Tables []domain.TableView `json:"tables"`
	}
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/tables", nil, &tables)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, tables.Tables, 2)
	assert.Equal(t, "free", tables.Tables[0].Status)

	var products struct {
		Products []domain.ProductView `json:"products"`
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/products", nil, &products)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, products.Products, 2)
	for _, p := range products.Products {
		if p.IsWeighable {
			assert.Equal(t, "R$ 44,99/kg", p.PriceDisplay)
		} else {
			assert.Equal(t, "R$ 15,90", p.PriceDisplay)
		}
	}
}

func TestSaleFlow(t *testing.T) {
	srv := newServer(t)

	var opened domain.OpenTableResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/tables/demo-table-1/open", nil, &opened)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, opened.Reentry)
	assert.Equal(t, "open", opened.Sale.Status)
	saleID := opened.Sale.ID

	// Weighable product, weight given in grams like the scale reports it.
	var cart domain.CartView
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sales/"+saleID+"/cart/items",
		domain.AddItemRequest{ProductCode: "ACAI1KG", WeightGrams: f(300)}, &cart)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 13.497, cart.Items[0].Subtotal, 1e-9)
	assert.Equal(t, "R$ 13,50", cart.TotalDisplay)

	var closed struct {
		Sale domain.SaleView `json:"sale"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sales/"+saleID+"/close",
		domain.CloseSaleRequest{PaymentMethod: "cash", ChangeFor: f(20)}, &closed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "closed", closed.Sale.Status)
	assert.Equal(t, "cash", closed.Sale.PaymentMethod)
	assert.InDelta(t, 13.497, closed.Sale.TotalAmount, 1e-9)
}

func TestProblemResponses(t *testing.T) {
	srv := newServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/tables/no-such/open", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var opened domain.OpenTableResponse
	doJSON(t, http.MethodPost, srv.URL+"/api/v1/tables/demo-table-1/open", nil, &opened)
	saleID := opened.Sale.ID

	var problem struct {
		Type   string `json:"type"`
		Status int    `json:"status"`
	}
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sales/"+saleID+"/cart/items",
		domain.AddItemRequest{ProductCode: "ACAI1KG", WeightGrams: f(0)}, &problem)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_weight", problem.Type)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sales/"+saleID+"/cart/items",
		domain.AddItemRequest{ProductCode: "ACAI1KG"}, &problem)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "weight_required", problem.Type)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/v1/sales/"+saleID+"/commit", nil, &problem)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "empty_cart", problem.Type)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/sales/"+saleID+"/close",
		bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func f(v float64) *float64 { return &v }
