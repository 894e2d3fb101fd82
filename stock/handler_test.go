package stock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pdv/auth"
	"pdv/database"
	"pdv/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db := sqlx.MustOpen("sqlite3", ":memory:")
	db.SetMaxOpenConns(1)
	require.NoError(t, database.ApplySchema(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func sessionCookie(store *auth.SessionStore, role string) *http.Cookie {
	sess := store.Create("tester", role, "Tester")
	return &http.Cookie{Name: auth.CookieName, Value: sess.Token}
}

func TestAddStockItemHandler_AdminOnly(t *testing.T) {
	db := newTestDB(t)
	store := auth.NewSessionStore(time.Hour)
	handler := auth.RequireAdmin(store, AddStockItemHandler(db, zap.NewNop().Sugar()))

	body := `{"item":"Widget","quantidade":10,"precoUnit":5.0}`

	// no session
	req := httptest.NewRequest(http.MethodPost, "/api/estoque/add", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// collaborator
	req = httptest.NewRequest(http.MethodPost, "/api/estoque/add", strings.NewReader(body))
	req.AddCookie(sessionCookie(store, model.RoleCollaborator))
	rr = httptest.NewRecorder()
	handler(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// admin
	req = httptest.NewRequest(http.MethodPost, "/api/estoque/add", strings.NewReader(body))
	req.AddCookie(sessionCookie(store, model.RoleAdmin))
	rr = httptest.NewRecorder()
	handler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var item model.StockItem
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, 1, item.ID)
	assert.Equal(t, "Widget", item.Item)
}

func TestAddStockItemHandler_EmptyName(t *testing.T) {
	db := newTestDB(t)
	handler := AddStockItemHandler(db, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodPost, "/api/estoque/add", strings.NewReader(`{"item":"  "}`))
	rr := httptest.NewRecorder()
	handler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Item")
}

func TestReplaceStockHandler(t *testing.T) {
	db := newTestDB(t)
	_, err := database.InsertStockItem(db, model.StockItem{Item: "Old", Quantidade: 1})
	require.NoError(t, err)

	body := `[{"id":5,"item":"Widget","quantidade":2,"local":"","precoUnit":1.5,"notas":""}]`
	req := httptest.NewRequest(http.MethodPost, "/api/estoque/replace", strings.NewReader(body))
	rr := httptest.NewRecorder()
	ReplaceStockHandler(db, zap.NewNop().Sugar())(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	items, err := database.ListStock(db)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].ID)
	assert.Equal(t, "Widget", items[0].Item)
}

func TestStockMetricsHandler(t *testing.T) {
	db := newTestDB(t)
	_, err := database.InsertStockItem(db, model.StockItem{
		Item: "Widget", Quantidade: 10, PrecoUnit: decimal.NewFromFloat(5.0),
	})
	require.NoError(t, err)
	_, err = database.InsertStockItem(db, model.StockItem{
		Item: "Gadget", Quantidade: 2, PrecoUnit: decimal.NewFromFloat(0.5),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/estoque/metrics", nil)
	rr := httptest.NewRecorder()
	StockMetricsHandler(db)(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var metrics model.StockMetrics
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &metrics))
	assert.Equal(t, 12, metrics.TotalQuantity)
	assert.Contains(t, metrics.TotalValue, "51")
	assert.NotEmpty(t, metrics.RefreshedAt)
}

func TestExportStockXLSXHandler_Headers(t *testing.T) {
	db := newTestDB(t)

	req := httptest.NewRequest(http.MethodGet, "/api/estoque/export", nil)
	rr := httptest.NewRecorder()
	ExportStockXLSXHandler(db, zap.NewNop().Sugar())(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rr.Header().Get("Content-Type"))
	disposition := rr.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "estoque_")
	assert.Contains(t, disposition, ".xlsx")
	assert.NotZero(t, rr.Body.Len())
}
