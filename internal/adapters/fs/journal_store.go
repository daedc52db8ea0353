package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

// maxEntrySize bounds a single journal line
const maxEntrySize = 1 << 20

// JournalStoreAdapter implements JournalRepository as a JSON lines file, one
// sealed entry per line
type JournalStoreAdapter struct {
	path string
	mu   sync.Mutex
}

// NewJournalStoreAdapter creates a new JournalStoreAdapter
func NewJournalStoreAdapter(cfg *config.RuntimeConfig) *JournalStoreAdapter {
	return &JournalStoreAdapter{
		path: cfg.Storage.Path,
	}
}

// Exists reports whether the journal holds at least one entry
func (s *JournalStoreAdapter) Exists(_ context.Context) (bool, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat journal: %w", err)
	}
	return info.Size() > 0, nil
}

// Load reads every entry. A missing file is an empty journal.
func (s *JournalStoreAdapter) Load(_ context.Context) ([]*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JournalStoreAdapter) load() ([]*models.JournalEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var entries []*models.JournalEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEntrySize)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry models.JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("failed to parse journal line %d: %w", line, err)
		}
		entries = append(entries, &entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return entries, nil
}

// Append writes one entry at the end of the file. The entry must carry the
// next sequence number.
func (s *JournalStoreAdapter) Append(_ context.Context, entry *models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return err
	}
	if entry.Seq != uint64(len(existing)) {
		return fmt.Errorf("journal entry %d out of order, journal holds %d entries: %w",
			entry.Seq, len(existing), domain.ErrAlreadyExists)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return f.Sync()
}

// Location returns the journal file path
func (s *JournalStoreAdapter) Location() string {
	return s.path
}

// Ensure JournalStoreAdapter implements JournalRepository
var _ usecase.JournalRepository = (*JournalStoreAdapter)(nil)
