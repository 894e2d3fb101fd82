package stock

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pdv/database"
	"pdv/export"
	"pdv/model"
)

// ListStockHandler returns the whole stock table in table order.
func ListStockHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := database.ListStock(db)
		if err != nil {
			http.Error(w, "Failed to list stock", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

// ReplaceStockHandler overwrites the whole table from the admin table editor.
func ReplaceStockHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var items []model.StockItem
		if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := database.ReplaceAllStock(db, items); err != nil {
			log.Errorw("stock replace failed", "rows", len(items), "error", err)
			http.Error(w, "Failed to save stock table", http.StatusInternalServerError)
			return
		}
		log.Infow("stock table replaced", "rows", len(items))
		w.WriteHeader(http.StatusNoContent)
	}
}

type addItemPayload struct {
	Item       string          `json:"item"`
	Quantidade int             `json:"quantidade"`
	Local      string          `json:"local"`
	PrecoUnit  decimal.Decimal `json:"precoUnit"`
	Notas      string          `json:"notas"`
}

// AddStockItemHandler appends one item from the add-item form.
func AddStockItemHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload addItemPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		item, err := database.InsertStockItem(db, model.StockItem{
			Item:       payload.Item,
			Quantidade: payload.Quantidade,
			Local:      payload.Local,
			PrecoUnit:  payload.PrecoUnit,
			Notas:      payload.Notas,
		})
		if err != nil {
			switch {
			case errors.Is(err, database.ErrEmptyItemName):
				http.Error(w, "Preencha o campo Item.", http.StatusBadRequest)
			case errors.Is(err, database.ErrNegativeStock), errors.Is(err, database.ErrNegativePrice):
				http.Error(w, "Quantidade e preço devem ser não-negativos.", http.StatusBadRequest)
			default:
				log.Errorw("stock insert failed", "item", payload.Item, "error", err)
				http.Error(w, "Failed to add stock item", http.StatusInternalServerError)
			}
			return
		}
		log.Infow("stock item added", "id", item.ID, "item", item.Item, "quantidade", item.Quantidade)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	}
}

// StockMetricsHandler feeds the summary cards: total units on hand, total
// stock value in BRL, and the refresh timestamp.
func StockMetricsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := database.ListStock(db)
		if err != nil {
			http.Error(w, "Failed to list stock", http.StatusInternalServerError)
			return
		}

		totalQty := 0
		totalValue := decimal.Zero
		for _, it := range items {
			totalQty += it.Quantidade
			totalValue = totalValue.Add(it.PrecoUnit.Mul(decimal.NewFromInt(int64(it.Quantidade))))
		}
		cents := totalValue.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

		metrics := model.StockMetrics{
			TotalQuantity: totalQty,
			TotalValue:    money.New(cents, money.BRL).Display(),
			RefreshedAt:   time.Now().Format(model.TimestampLayout),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics)
	}
}

// ExportStockXLSXHandler streams the stock table as a spreadsheet download.
func ExportStockXLSXHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := database.ListStock(db)
		if err != nil {
			http.Error(w, "Failed to list stock", http.StatusInternalServerError)
			return
		}
		data, err := export.XLSXBytes(export.StockHeaders, export.StockRows(items))
		if err != nil {
			log.Errorw("stock xlsx export failed", "error", err)
			http.Error(w, "Failed to build spreadsheet", http.StatusInternalServerError)
			return
		}
		name := export.Filename("estoque", time.Now())
		w.Header().Set("Content-Type", export.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Write(data)
	}
}

// ExportStockCSVHandler streams the table in the legacy CSV format.
func ExportStockCSVHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := database.ListStock(db)
		if err != nil {
			http.Error(w, "Failed to list stock", http.StatusInternalServerError)
			return
		}
		name := fmt.Sprintf("estoque_%s.csv", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if err := export.WriteCSV(w, export.StockHeaders, export.StockCSVRows(items)); err != nil {
			log.Errorw("stock csv export failed", "error", err)
		}
	}
}
