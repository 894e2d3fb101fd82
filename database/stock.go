package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"pdv/model"
)

const stockColumns = "id, item, quantidade, local, preco_unit, notas"

// ListStock returns all stock rows in table order.
func ListStock(db *sqlx.DB) ([]model.StockItem, error) {
	items := []model.StockItem{}
	err := db.Select(&items, "SELECT "+stockColumns+" FROM estoque ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list stock: %w", err)
	}
	return items, nil
}

// GetStockItemByName returns the first row matching the item name in table
// order. Duplicate names resolve to the earliest row.
func GetStockItemByName(db *sqlx.DB, name string) (model.StockItem, error) {
	var item model.StockItem
	err := db.Get(&item,
		"SELECT "+stockColumns+" FROM estoque WHERE item = ? ORDER BY rowid LIMIT 1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.StockItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, name)
		}
		return model.StockItem{}, fmt.Errorf("failed to look up stock item %q: %w", name, err)
	}
	return item, nil
}

// InsertStockItem assigns the next id and appends the item. The name must be
// non-empty; quantity and unit price are re-checked even though the caller's
// form widgets already constrain them.
func InsertStockItem(db *sqlx.DB, item model.StockItem) (model.StockItem, error) {
	if strings.TrimSpace(item.Item) == "" {
		return model.StockItem{}, ErrEmptyItemName
	}
	if item.Quantidade < 0 {
		return model.StockItem{}, ErrNegativeStock
	}
	if item.PrecoUnit.IsNegative() {
		return model.StockItem{}, ErrNegativePrice
	}

	tx, err := db.Beginx()
	if err != nil {
		return model.StockItem{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := nextIDInTx(tx, "estoque")
	if err != nil {
		return model.StockItem{}, err
	}
	item.ID = id

	if err := insertStockItemInTx(tx, item); err != nil {
		return model.StockItem{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.StockItem{}, fmt.Errorf("failed to commit stock insert: %w", err)
	}
	return item, nil
}

func insertStockItemInTx(tx *sqlx.Tx, item model.StockItem) error {
	_, err := tx.Exec(
		"INSERT INTO estoque (id, item, quantidade, local, preco_unit, notas) VALUES (?, ?, ?, ?, ?, ?)",
		item.ID, item.Item, item.Quantidade, item.Local, item.PrecoUnit, item.Notas)
	if err != nil {
		return fmt.Errorf("failed to insert stock item %q: %w", item.Item, err)
	}
	return nil
}

// ReplaceAllStock overwrites the whole table with the given rows, preserving
// their order and ids. The admin table editor is the only caller; contents
// are taken as already validated there.
func ReplaceAllStock(db *sqlx.DB, items []model.StockItem) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM estoque"); err != nil {
		return fmt.Errorf("failed to clear stock table: %w", err)
	}
	for _, item := range items {
		if err := insertStockItemInTx(tx, item); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stock replace: %w", err)
	}
	return nil
}

// DecrementStockInTx subtracts amount from the first row matching itemName.
// It fails without touching the row when the item is missing or the amount
// exceeds the available quantity.
func DecrementStockInTx(tx *sqlx.Tx, itemName string, amount int) (model.StockItem, error) {
	if amount <= 0 {
		return model.StockItem{}, ErrInvalidQuantity
	}

	var row struct {
		Rid int64 `db:"rid"`
		model.StockItem
	}
	err := tx.Get(&row,
		"SELECT rowid AS rid, "+stockColumns+" FROM estoque WHERE item = ? ORDER BY rowid LIMIT 1",
		itemName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.StockItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemName)
		}
		return model.StockItem{}, fmt.Errorf("failed to look up stock item %q: %w", itemName, err)
	}

	if amount > row.Quantidade {
		return model.StockItem{}, &InsufficientStockError{
			Item:      itemName,
			Available: row.Quantidade,
			Requested: amount,
		}
	}

	row.Quantidade -= amount
	if _, err := tx.Exec("UPDATE estoque SET quantidade = ? WHERE rowid = ?", row.Quantidade, row.Rid); err != nil {
		return model.StockItem{}, fmt.Errorf("failed to update stock quantity for %q: %w", itemName, err)
	}
	return row.StockItem, nil
}

// DecrementStock runs DecrementStockInTx in its own transaction.
func DecrementStock(db *sqlx.DB, itemName string, amount int) (model.StockItem, error) {
	tx, err := db.Beginx()
	if err != nil {
		return model.StockItem{}, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	item, err := DecrementStockInTx(tx, itemName, amount)
	if err != nil {
		return model.StockItem{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.StockItem{}, fmt.Errorf("failed to commit stock decrement: %w", err)
	}
	return item, nil
}
