package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/models"
)

func chain(t *testing.T, n int) []*models.JournalEntry {
	t.Helper()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	founder := common.HexToAddress("0x1111111111111111111111111111111111111111")

	entries := make([]*models.JournalEntry, 0, n)
	var prev *models.JournalEntry
	for i := 0; i < n; i++ {
		e := &models.JournalEntry{At: at.Add(time.Duration(i) * time.Minute), Caller: founder}
		if i == 0 {
			e.Op = models.OpGenesis
			e.Genesis = &models.GenesisPayload{Name: "guild", Founder: founder}
		} else {
			e.Op = models.OpCancel
			e.MotionID = uint64(i - 1)
		}
		require.NoError(t, e.Seal(prev))
		entries = append(entries, e)
		prev = e
	}
	return entries
}

func TestJournalStore_InMemory(t *testing.T) {
	ctx := context.Background()
	store, err := Open("", nil)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "memory", store.Location())

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	entries := chain(t, 4)
	for _, e := range entries {
		require.NoError(t, store.Append(ctx, e))
	}

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.NoError(t, models.VerifyJournal(got))
}

func TestJournalStore_OrderingSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "journal.badger")
	// more than 255 entries so byte-order mistakes in the key would show
	entries := chain(t, 300)

	store, err := Open(dir, nil)
	require.NoError(t, err)
	for _, e := range entries {
		require.NoError(t, store.Append(ctx, e))
	}
	require.NoError(t, store.Close())

	store, err = Open(dir, nil)
	require.NoError(t, err)
	defer store.Close()

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 300)
	assert.NoError(t, models.VerifyJournal(got))
	assert.Equal(t, uint64(299), got[299].Seq)
}

func TestJournalStore_RejectsOutOfOrder(t *testing.T) {
	ctx := context.Background()
	store, err := Open("", nil)
	require.NoError(t, err)
	defer store.Close()

	entries := chain(t, 2)
	assert.ErrorIs(t, store.Append(ctx, entries[1]), domain.ErrAlreadyExists)
	require.NoError(t, store.Append(ctx, entries[0]))
	assert.ErrorIs(t, store.Append(ctx, entries[0]), domain.ErrAlreadyExists)
}
