// package repositories provides sqlite-backed session caches for
// backend-owned read models.
//
// The backend is the source of truth for gallery listings and the style
// catalog; these repositories only hold the client's read-through copy,
// replaced wholesale on refresh and evicted on delete.
package repositories

import (
	"database/sql"
	"fmt"
)

// replaceAll clears table and inserts rows inside one transaction, so a
// refresh never leaves the cache half-written.
func replaceAll(db *sql.DB, table string, insert func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s replacement: %w", table, err)
	}

	return nil
}
