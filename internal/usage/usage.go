// Package usage keeps a local SQLite log of obtained commands so recently
// used bookmarks can be listed again.
package usage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql
)

// FileName is the database file created inside the sebas home.
const FileName = "usage.db"

const schemaVersion = "1"

// Pick is one obtained command. Count is only populated by Recent.
type Pick struct {
	Hash      string
	Command   string
	Group     string
	StoreRoot string
	PickedAt  time.Time
	Count     int
}

// Log wraps the usage database.
type Log struct {
	db *sql.DB
}

// Open opens (or creates) the usage database at path and initialises the schema.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("usage.Open: %w", err)
	}
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=2000")
	if err != nil {
		return nil, fmt.Errorf("usage.Open: %w", err)
	}
	l := &Log{db: sqldb}
	if err := l.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("usage.Open createSchema: %w", err)
	}
	return l, nil
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (l *Log) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS picks (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			hash       TEXT NOT NULL,
			command    TEXT NOT NULL,
			grp        TEXT NOT NULL,
			store_root TEXT NOT NULL,
			picked_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS picks_hash ON picks(hash)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := l.db.Exec(s); err != nil {
			return fmt.Errorf("createSchema exec: %w\nSQL: %s", err, s)
		}
	}

	if _, ok, err := l.GetMeta("schema_version"); err != nil {
		return err
	} else if !ok {
		return l.SetMeta("schema_version", schemaVersion)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Picks
// ---------------------------------------------------------------------------

// Record appends p to the log. A zero PickedAt is stamped with the current time.
func (l *Log) Record(p Pick) error {
	if p.PickedAt.IsZero() {
		p.PickedAt = time.Now()
	}
	_, err := l.db.Exec(
		`INSERT INTO picks (hash, command, grp, store_root, picked_at) VALUES (?, ?, ?, ?, ?)`,
		p.Hash, p.Command, p.Group, p.StoreRoot, p.PickedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("usage.Record: %w", err)
	}
	return nil
}

// Recent returns at most limit picks, newest first, one per hash. Each row
// carries the details of the latest pick and the total pick count for its hash.
func (l *Log) Recent(limit int) ([]Pick, error) {
	if limit <= 0 {
		limit = 10
	}
	// SQLite takes bare columns from the row that produced MAX(id).
	rows, err := l.db.Query(`
		SELECT hash, command, grp, store_root, picked_at, COUNT(*), MAX(id) AS last_id
		FROM picks
		GROUP BY hash
		ORDER BY last_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("usage.Recent: %w", err)
	}
	defer rows.Close()

	var out []Pick
	for rows.Next() {
		var p Pick
		var pickedAt string
		var lastID int64
		if err := rows.Scan(&p.Hash, &p.Command, &p.Group, &p.StoreRoot, &pickedAt, &p.Count, &lastID); err != nil {
			return nil, fmt.Errorf("usage.Recent scan: %w", err)
		}
		p.PickedAt, _ = time.Parse(time.RFC3339Nano, pickedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Counts returns the number of recorded picks per hash.
func (l *Log) Counts() (map[string]int, error) {
	rows, err := l.db.Query(`SELECT hash, COUNT(*) FROM picks GROUP BY hash`)
	if err != nil {
		return nil, fmt.Errorf("usage.Counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var hash string
		var n int
		if err := rows.Scan(&hash, &n); err != nil {
			return nil, fmt.Errorf("usage.Counts scan: %w", err)
		}
		counts[hash] = n
	}
	return counts, rows.Err()
}

// Forget deletes every pick of hash and returns how many rows were removed.
func (l *Log) Forget(hash string) (int, error) {
	res, err := l.db.Exec(`DELETE FROM picks WHERE hash = ?`, hash)
	if err != nil {
		return 0, fmt.Errorf("usage.Forget: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// ---------------------------------------------------------------------------
// Meta
// ---------------------------------------------------------------------------

// GetMeta returns the value for key, or ("", false, nil) if not set.
func (l *Log) GetMeta(key string) (string, bool, error) {
	var val string
	err := l.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetMeta upserts a key-value pair in the meta table.
func (l *Log) SetMeta(key, value string) error {
	_, err := l.db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value,
	)
	return err
}
