// package repositories provides the persistence layer for the search cache.
package repositories

import (
	"database/sql"
	"fmt"
)

// NextSequence returns the next sequence number for the given table.
//
// Sequence numbers provide human-readable insertion ordering. They are not
// exposed in CLI output.
func NextSequence(db *sql.DB, table string) (int, error) {
	var sequence int
	query := fmt.Sprintf("SELECT COALESCE(MAX(sequence), 0) + 1 FROM %s", table)
	if err := db.QueryRow(query).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get next sequence: %w", err)
	}
	return sequence, nil
}
