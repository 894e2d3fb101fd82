package export

import (
	"strconv"

	"pdv/model"
)

var (
	StockHeaders = []string{"id", "item", "quantidade", "local", "preco_unit", "notas"}
	SalesHeaders = []string{"id", "timestamp", "item", "quantidade", "preco_unit", "total", "comprador", "notas"}
)

// StockRows converts stock items to typed spreadsheet cells in table order.
func StockRows(items []model.StockItem) [][]any {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		price, _ := it.PrecoUnit.Float64()
		rows = append(rows, []any{it.ID, it.Item, it.Quantidade, it.Local, price, it.Notas})
	}
	return rows
}

func SalesRows(sales []model.SaleRecord) [][]any {
	rows := make([][]any, 0, len(sales))
	for _, s := range sales {
		price, _ := s.PrecoUnit.Float64()
		total, _ := s.Total.Float64()
		rows = append(rows, []any{s.ID, s.Timestamp, s.Item, s.Quantidade, price, total, s.Comprador, s.Notas})
	}
	return rows
}

// StockCSVRows renders the string form used by the legacy CSV export.
func StockCSVRows(items []model.StockItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.ID),
			it.Item,
			strconv.Itoa(it.Quantidade),
			it.Local,
			it.PrecoUnit.String(),
			it.Notas,
		})
	}
	return rows
}

func SalesCSVRows(sales []model.SaleRecord) [][]string {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Timestamp,
			s.Item,
			strconv.Itoa(s.Quantidade),
			s.PrecoUnit.String(),
			s.Total.String(),
			s.Comprador,
			s.Notas,
		})
	}
	return rows
}
