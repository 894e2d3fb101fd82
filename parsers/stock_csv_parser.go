package parsers

import (
	"encoding/csv"
	"errors"
	"io"

	"pdv/model"
)

// ParseStockCSV reads a legacy estoque table. Columns are matched by header
// name; missing columns are backfilled with empty/zero values so every row
// carries the full fixed column set. An empty input yields an empty ledger;
// a malformed one returns *CorruptError.
func ParseStockCSV(r io.Reader) ([]model.StockItem, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []model.StockItem{}, nil
	}
	if err != nil {
		return nil, &CorruptError{Err: err}
	}
	idx := columnIndex(header)

	items := []model.StockItem{}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &CorruptError{Err: err}
		}
		items = append(items, model.StockItem{
			ID:         coerceInt(field(rec, idx, "id")),
			Item:       field(rec, idx, "item"),
			Quantidade: coerceInt(field(rec, idx, "quantidade")),
			Local:      field(rec, idx, "local"),
			PrecoUnit:  coerceDecimal(field(rec, idx, "preco_unit")),
			Notas:      field(rec, idx, "notas"),
		})
	}
	return items, nil
}
