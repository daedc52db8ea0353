package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/council"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// ShowHistoryParams contains parameters for showing the journal
type ShowHistoryParams struct {
	// MotionID restricts the history to entries about one motion when set
	MotionID *uint64
	// Limit keeps only the most recent entries when positive
	Limit int
}

// ShowHistoryResult contains journal entries and the outcome of verifying them
type ShowHistoryResult struct {
	Entries  []*models.JournalEntry `json:"entries"`
	Total    int                    `json:"total"`
	Location string                 `json:"journal"`
	Verified bool                   `json:"verified"`
	Problem  string                 `json:"problem,omitempty"`
}

// ShowHistory lists the journal and checks its hash chain and replay
type ShowHistory struct {
	journal JournalRepository
}

// NewShowHistory creates a new ShowHistory use case
func NewShowHistory(journal JournalRepository) *ShowHistory {
	return &ShowHistory{journal: journal}
}

// Run executes the show history use case. A journal that fails verification
// is still listed so the damage can be inspected.
func (uc *ShowHistory) Run(ctx context.Context, params ShowHistoryParams) (*ShowHistoryResult, error) {
	entries, err := uc.journal.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrNoCouncil
	}

	result := &ShowHistoryResult{
		Total:    len(entries),
		Location: uc.journal.Location(),
		Verified: true,
	}
	if err := models.VerifyJournal(entries); err != nil {
		result.Verified = false
		result.Problem = err.Error()
	} else if _, err := council.Replay(entries); err != nil {
		result.Verified = false
		result.Problem = err.Error()
	}

	selected := entries
	if params.MotionID != nil {
		selected = make([]*models.JournalEntry, 0)
		for _, e := range entries {
			if e.Op != models.OpGenesis && e.MotionID == *params.MotionID {
				selected = append(selected, e)
			}
		}
	}
	if params.Limit > 0 && len(selected) > params.Limit {
		selected = selected[len(selected)-params.Limit:]
	}
	result.Entries = selected

	return result, nil
}
