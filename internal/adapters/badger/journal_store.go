package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

var (
	entryPrefix = []byte("journal/entry/")
	headKey     = []byte("journal/head")
)

// JournalStore implements JournalRepository on a badger key-value store.
// Entries are keyed by big-endian sequence number so that prefix iteration
// yields them in order.
type JournalStore struct {
	db     *badger.DB
	path   string
	logger *slog.Logger
}

// Open opens the journal at dir. An empty dir opens an in-memory store.
func Open(dir string, logger *slog.Logger) (*JournalStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.
		WithLogger(newBadgerLogger(logger)).
		// The default INFO logging is a bit verbose
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger journal: %w", err)
	}
	return &JournalStore{db: db, path: dir, logger: logger}, nil
}

// NewJournalStore opens the journal configured in cfg
func NewJournalStore(cfg *config.RuntimeConfig, logger *slog.Logger) (*JournalStore, error) {
	return Open(cfg.Storage.Path, logger)
}

// Close closes the store. It is nil-safe.
func (s *JournalStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Exists reports whether a head record has been written
func (s *JournalStore) Exists(_ context.Context) (bool, error) {
	exists := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(headKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("read journal head: %w", err)
	}
	return exists, nil
}

// Load returns every entry in sequence order
func (s *JournalStore) Load(_ context.Context) ([]*models.JournalEntry, error) {
	var entries []*models.JournalEntry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: entryPrefix, PrefetchValues: true, PrefetchSize: 100})
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(entryPrefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var entry models.JournalEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return fmt.Errorf("decode journal entry %x: %w", item.Key(), err)
				}
				entries = append(entries, &entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Append stores the entry if it carries the next sequence number. The check
// and the write run in one transaction; badger aborts it on a conflicting
// concurrent append.
func (s *JournalStore) Append(_ context.Context, entry *models.JournalEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode journal entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		next, err := readHead(txn)
		if err != nil {
			return err
		}
		if entry.Seq != next {
			return fmt.Errorf("journal entry %d out of order, next is %d: %w", entry.Seq, next, domain.ErrAlreadyExists)
		}
		if err := txn.Set(entryKey(entry.Seq), data); err != nil {
			return err
		}
		return txn.Set(headKey, encodeSeq(entry.Seq+1))
	})
	if err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return fmt.Errorf("journal entry %d: %w", entry.Seq, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("append journal entry: %w", err)
	}
	s.logger.Debug("journal entry stored", "seq", entry.Seq, "op", entry.Op)
	return nil
}

// Location returns the store directory
func (s *JournalStore) Location() string {
	if s.path == "" {
		return "memory"
	}
	return s.path
}

// readHead returns the next sequence number
func readHead(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(headKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var next uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("corrupt journal head (%d bytes)", len(val))
		}
		next = binary.BigEndian.Uint64(val)
		return nil
	})
	return next, err
}

func entryKey(seq uint64) []byte {
	key := make([]byte, 0, len(entryPrefix)+8)
	key = append(key, entryPrefix...)
	return append(key, encodeSeq(seq)...)
}

func encodeSeq(seq uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	return buf
}

// Ensure JournalStore implements JournalRepository
var _ usecase.JournalRepository = (*JournalStore)(nil)
