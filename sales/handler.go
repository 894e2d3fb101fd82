package sales

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pdv/database"
	"pdv/export"
)

// ListSalesHandler returns the full sale history in table order.
func ListSalesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := database.ListSales(db)
		if err != nil {
			http.Error(w, "Failed to list sales", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sales)
	}
}

type recordSalePayload struct {
	Item       string           `json:"item"`
	Quantidade int              `json:"quantidade"`
	PrecoUnit  *decimal.Decimal `json:"precoUnit"`
	Comprador  string           `json:"comprador"`
	Notas      string           `json:"notas"`
}

// RecordSaleHandler registers a sale. The unit price defaults to the item's
// current stock price and may be overridden by the form. Stock decrement and
// sale record are committed together or not at all.
func RecordSaleHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recordSalePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		unitPrice := decimal.Zero
		if payload.PrecoUnit != nil {
			unitPrice = *payload.PrecoUnit
		} else {
			item, err := database.GetStockItemByName(db, payload.Item)
			if err != nil {
				if errors.Is(err, database.ErrItemNotFound) {
					http.Error(w, fmt.Sprintf("Item %q não encontrado no estoque.", payload.Item), http.StatusNotFound)
					return
				}
				http.Error(w, "Failed to look up item", http.StatusInternalServerError)
				return
			}
			unitPrice = item.PrecoUnit
		}

		rec, err := database.RecordSale(db, payload.Item, payload.Quantidade, unitPrice,
			payload.Comprador, payload.Notas, time.Now())
		if err != nil {
			var insufficient *database.InsufficientStockError
			switch {
			case errors.As(err, &insufficient):
				http.Error(w, fmt.Sprintf("Estoque insuficiente. Disponível: %d", insufficient.Available), http.StatusConflict)
			case errors.Is(err, database.ErrItemNotFound):
				http.Error(w, fmt.Sprintf("Item %q não encontrado no estoque.", payload.Item), http.StatusNotFound)
			case errors.Is(err, database.ErrInvalidQuantity), errors.Is(err, database.ErrNegativePrice):
				http.Error(w, "Quantidade deve ser positiva e preço não-negativo.", http.StatusBadRequest)
			default:
				log.Errorw("sale failed", "item", payload.Item, "quantidade", payload.Quantidade, "error", err)
				http.Error(w, "Failed to record sale", http.StatusInternalServerError)
			}
			return
		}
		log.Infow("sale recorded", "id", rec.ID, "item", rec.Item,
			"quantidade", rec.Quantidade, "total", rec.Total.String())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	}
}

// ExportSalesXLSXHandler streams the sale history as a spreadsheet download.
func ExportSalesXLSXHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := database.ListSales(db)
		if err != nil {
			http.Error(w, "Failed to list sales", http.StatusInternalServerError)
			return
		}
		data, err := export.XLSXBytes(export.SalesHeaders, export.SalesRows(sales))
		if err != nil {
			log.Errorw("sales xlsx export failed", "error", err)
			http.Error(w, "Failed to build spreadsheet", http.StatusInternalServerError)
			return
		}
		name := export.Filename("vendas", time.Now())
		w.Header().Set("Content-Type", export.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Write(data)
	}
}

// ExportSalesCSVHandler streams the history in the legacy CSV format.
func ExportSalesCSVHandler(db *sqlx.DB, log *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := database.ListSales(db)
		if err != nil {
			http.Error(w, "Failed to list sales", http.StatusInternalServerError)
			return
		}
		name := fmt.Sprintf("vendas_%s.csv", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if err := export.WriteCSV(w, export.SalesHeaders, export.SalesCSVRows(sales)); err != nil {
			log.Errorw("sales csv export failed", "error", err)
		}
	}
}
