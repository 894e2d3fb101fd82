package parsers

import (
	"encoding/csv"
	"errors"
	"io"

	"pdv/model"
)

// ParseSalesCSV reads a legacy vendas table with the same defaulting and
// coercion discipline as ParseStockCSV, over the sales column set.
func ParseSalesCSV(r io.Reader) ([]model.SaleRecord, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []model.SaleRecord{}, nil
	}
	if err != nil {
		return nil, &CorruptError{Err: err}
	}
	idx := columnIndex(header)

	sales := []model.SaleRecord{}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &CorruptError{Err: err}
		}
		sales = append(sales, model.SaleRecord{
			ID:         coerceInt(field(rec, idx, "id")),
			Timestamp:  field(rec, idx, "timestamp"),
			Item:       field(rec, idx, "item"),
			Quantidade: coerceInt(field(rec, idx, "quantidade")),
			PrecoUnit:  coerceDecimal(field(rec, idx, "preco_unit")),
			Total:      coerceDecimal(field(rec, idx, "total")),
			Comprador:  field(rec, idx, "comprador"),
			Notas:      field(rec, idx, "notas"),
		})
	}
	return sales, nil
}
