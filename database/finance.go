package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// GetFinanceNotes returns the notes blob, or an empty string when nothing
// has been saved yet.
func GetFinanceNotes(db *sqlx.DB) (string, error) {
	var texto string
	err := db.Get(&texto, "SELECT texto FROM financeiro WHERE id = 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load finance notes: %w", err)
	}
	return texto, nil
}

// SaveFinanceNotes replaces the whole blob. Last write wins.
func SaveFinanceNotes(db *sqlx.DB, texto string) error {
	_, err := db.Exec(
		"INSERT INTO financeiro (id, texto) VALUES (1, ?) ON CONFLICT(id) DO UPDATE SET texto = excluded.texto",
		texto)
	if err != nil {
		return fmt.Errorf("failed to save finance notes: %w", err)
	}
	return nil
}
