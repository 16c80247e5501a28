package simlog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const recordsSchema = `
CREATE TABLE IF NOT EXISTS records (
	run     TEXT NOT NULL,
	time    REAL NOT NULL,
	process TEXT NOT NULL,
	state   TEXT NOT NULL,
	item    INTEGER NOT NULL,
	note    TEXT NOT NULL
);`

// SaveSQLite persists the log into a SQLite database at path, creating the
// records table when missing. Each call appends one run's records tagged
// with runID, so several runs can share a results database.
func SaveSQLite(l *Log, path, runID string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(recordsSchema); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO records(run, time, process, state, item, note) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range l.Records() {
		if _, err := stmt.Exec(runID, r.Time, r.Process, string(r.State), r.Item, r.Note); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return tx.Commit()
}

// CountSQLite returns how many records are stored for runID at path.
func CountSQLite(path, runID string) (int, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM records WHERE run = ?", runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
