package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"pdv/model"
)

const salesColumns = "id, timestamp, item, quantidade, preco_unit, total, comprador, notas"

// ListSales returns all sale records in table order. The reverse-chronological
// history view is a presentation concern.
func ListSales(db *sqlx.DB) ([]model.SaleRecord, error) {
	sales := []model.SaleRecord{}
	err := db.Select(&sales, "SELECT "+salesColumns+" FROM vendas ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// RecordSale decrements the stock row and appends the sale record inside a
// single transaction, so the pair appears or vanishes together. On any
// failure nothing is persisted.
func RecordSale(db *sqlx.DB, itemName string, quantity int, unitPrice decimal.Decimal, buyer, notes string, now time.Time) (model.SaleRecord, error) {
	if quantity <= 0 {
		return model.SaleRecord{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return model.SaleRecord{}, ErrNegativePrice
	}

	tx, err := db.Beginx()
	if err != nil {
		return model.SaleRecord{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := DecrementStockInTx(tx, itemName, quantity); err != nil {
		return model.SaleRecord{}, err
	}

	id, err := nextIDInTx(tx, "vendas")
	if err != nil {
		return model.SaleRecord{}, err
	}

	rec := model.SaleRecord{
		ID:         id,
		Timestamp:  now.Format(model.TimestampLayout),
		Item:       itemName,
		Quantidade: quantity,
		PrecoUnit:  unitPrice,
		Total:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Comprador:  buyer,
		Notas:      notes,
	}
	if err := insertSaleInTx(tx, rec); err != nil {
		return model.SaleRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.SaleRecord{}, fmt.Errorf("failed to commit sale: %w", err)
	}
	return rec, nil
}

func insertSaleInTx(tx *sqlx.Tx, rec model.SaleRecord) error {
	_, err := tx.Exec(
		"INSERT INTO vendas (id, timestamp, item, quantidade, preco_unit, total, comprador, notas) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Timestamp, rec.Item, rec.Quantidade, rec.PrecoUnit, rec.Total, rec.Comprador, rec.Notas)
	if err != nil {
		return fmt.Errorf("failed to insert sale record for %q: %w", rec.Item, err)
	}
	return nil
}

// InsertSaleRecord appends a pre-built record with its id preserved. Used by
// the legacy migration only; regular sales go through RecordSale.
func InsertSaleRecord(db *sqlx.DB, rec model.SaleRecord) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSaleInTx(tx, rec); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale insert: %w", err)
	}
	return nil
}

// CountSales reports the number of sale records.
func CountSales(db *sqlx.DB) (int, error) {
	var n int
	if err := db.Get(&n, "SELECT COUNT(*) FROM vendas"); err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return n, nil
}
