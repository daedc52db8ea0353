package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal (
	seq        INTEGER PRIMARY KEY,
	at_unix_ms INTEGER NOT NULL,
	op         TEXT    NOT NULL,
	caller     TEXT    NOT NULL,
	motion_id  INTEGER NOT NULL,
	prev_hash  TEXT    NOT NULL,
	hash       TEXT    NOT NULL UNIQUE,
	entry_json BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_motion ON journal (motion_id, op);
`

// JournalStore implements JournalRepository on a SQLite database. The full
// entry is stored as JSON next to indexed columns for ad-hoc inspection.
type JournalStore struct {
	db   *sql.DB
	path string
}

// Open opens (and if needed creates) the journal database at path
func Open(path string) (*JournalStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}

	return &JournalStore{db: db, path: cleanPath}, nil
}

// NewJournalStore opens the journal configured in cfg
func NewJournalStore(cfg *config.RuntimeConfig) (*JournalStore, error) {
	return Open(cfg.Storage.Path)
}

// Close closes the underlying database. It is nil-safe.
func (s *JournalStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Exists reports whether the journal holds a genesis entry
func (s *JournalStore) Exists(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal`).Scan(&n); err != nil {
		return false, fmt.Errorf("count journal entries: %w", err)
	}
	return n > 0, nil
}

// Load returns every entry in sequence order
func (s *JournalStore) Load(ctx context.Context) ([]*models.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT seq, entry_json FROM journal ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		var (
			seq  int64
			data []byte
		)
		if err := rows.Scan(&seq, &data); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		var entry models.JournalEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("decode journal entry %d: %w", seq, err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

// Append inserts the entry if it carries the next sequence number
func (s *JournalStore) Append(ctx context.Context, entry *models.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq) + 1, 0) FROM journal`).Scan(&next); err != nil {
		return fmt.Errorf("read journal head: %w", err)
	}
	if uint64(next) != entry.Seq {
		return fmt.Errorf("journal entry %d out of order, next is %d: %w", entry.Seq, next, domain.ErrAlreadyExists)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO journal (seq, at_unix_ms, op, caller, motion_id, prev_hash, hash, entry_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(entry.Seq),
		entry.At.UnixMilli(),
		string(entry.Op),
		entry.Caller.Hex(),
		int64(entry.MotionID),
		entry.PrevHash.Hex(),
		entry.Hash.Hex(),
		data,
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("journal entry %d: %w", entry.Seq, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("append journal entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Location returns the database path
func (s *JournalStore) Location() string {
	return s.path
}

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

// Ensure JournalStore implements JournalRepository
var _ usecase.JournalRepository = (*JournalStore)(nil)
