package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// nextIDInTx returns MAX(id)+1 for the given ledger table, or 1 when the
// table is empty. Gaps left by manual edits are never refilled: a ledger
// holding ids {1,2,4} hands out 5 next.
func nextIDInTx(tx *sqlx.Tx, table string) (int, error) {
	var maxID sql.NullInt64
	if err := tx.Get(&maxID, fmt.Sprintf("SELECT MAX(id) FROM %s", table)); err != nil {
		return 0, fmt.Errorf("failed to read max id from %s: %w", table, err)
	}
	if !maxID.Valid {
		return 1, nil
	}
	return int(maxID.Int64) + 1, nil
}
