package handler

import "net/http"

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/tables", h.ListTables)
	mux.HandleFunc("GET /api/v1/products", h.ListProducts)
	mux.HandleFunc("POST /api/v1/tables/{table_id}/open", h.OpenTable)
	mux.HandleFunc("GET /api/v1/sales/{sale_id}/cart", h.GetCart)
	mux.HandleFunc("POST /api/v1/sales/{sale_id}/cart/items", h.AddItem)
	mux.HandleFunc("PUT /api/v1/sales/{sale_id}/cart/items/{index}", h.SetQuantity)
	mux.HandleFunc("DELETE /api/v1/sales/{sale_id}/cart/items/{index}", h.RemoveItem)
	mux.HandleFunc("POST /api/v1/sales/{sale_id}/commit", h.Commit)
	mux.HandleFunc("POST /api/v1/sales/{sale_id}/close", h.Close)
	return mux
}
