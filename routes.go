package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"pdv/auth"
	"pdv/finance"
	"pdv/sales"
	"pdv/stock"
)

// SetupRoutes wires the JSON API. Both roles may view stock, record sales
// and edit notes; only admin may mutate the stock table.
func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, sessions *auth.SessionStore, log *zap.SugaredLogger) {

	mux.HandleFunc("/api/login", auth.LoginHandler(dbConn, sessions, log))
	mux.HandleFunc("/api/logout", auth.LogoutHandler(sessions))
	mux.HandleFunc("/api/session", auth.SessionHandler(sessions))

	mux.HandleFunc("/api/estoque", auth.RequireAuth(sessions, stock.ListStockHandler(dbConn)))
	mux.HandleFunc("/api/estoque/replace", auth.RequireAdmin(sessions, stock.ReplaceStockHandler(dbConn, log)))
	mux.HandleFunc("/api/estoque/add", auth.RequireAdmin(sessions, stock.AddStockItemHandler(dbConn, log)))
	mux.HandleFunc("/api/estoque/metrics", auth.RequireAuth(sessions, stock.StockMetricsHandler(dbConn)))
	mux.HandleFunc("/api/estoque/export", auth.RequireAuth(sessions, stock.ExportStockXLSXHandler(dbConn, log)))
	mux.HandleFunc("/api/estoque/export_csv", auth.RequireAuth(sessions, stock.ExportStockCSVHandler(dbConn, log)))

	mux.HandleFunc("/api/vendas", auth.RequireAuth(sessions, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sales.ListSalesHandler(dbConn)(w, r)
		case http.MethodPost:
			sales.RecordSaleHandler(dbConn, log)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}))
	mux.HandleFunc("/api/vendas/export", auth.RequireAuth(sessions, sales.ExportSalesXLSXHandler(dbConn, log)))
	mux.HandleFunc("/api/vendas/export_csv", auth.RequireAuth(sessions, sales.ExportSalesCSVHandler(dbConn, log)))

	mux.HandleFunc("/api/financeiro", auth.RequireAuth(sessions, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			finance.GetNotesHandler(dbConn)(w, r)
		case http.MethodPost:
			finance.SaveNotesHandler(dbConn, log)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	}))
}
