package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/council"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// CouncilSession rebuilds the council from its journal and commits new
// operations to it. Every mutating use case goes through commit so that live
// operations and replay share one code path.
type CouncilSession struct {
	journal   JournalRepository
	publisher NotificationPublisher
	clock     Clock
	progress  ProgressSink
	log       *slog.Logger
}

// NewCouncilSession creates a new council session
func NewCouncilSession(
	journal JournalRepository,
	publisher NotificationPublisher,
	clock Clock,
	progress ProgressSink,
	log *slog.Logger,
) *CouncilSession {
	return &CouncilSession{
		journal:   journal,
		publisher: publisher,
		clock:     clock,
		progress:  progress,
		log:       log,
	}
}

// Load replays the verified journal
func (s *CouncilSession) Load(ctx context.Context) (*council.Council, []*models.JournalEntry, error) {
	defer s.progress.OnProgress(ctx, ProgressEvent{Stage: StageReady})

	s.progress.OnProgress(ctx, ProgressEvent{Stage: StageLoading, Message: "Loading journal", Spinner: true})
	entries, err := s.journal.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load journal: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil, domain.ErrNoCouncil
	}

	s.progress.OnProgress(ctx, ProgressEvent{Stage: StageVerifying, Message: "Verifying hash chain", Entries: len(entries), Spinner: true})
	if err := models.VerifyJournal(entries); err != nil {
		return nil, nil, fmt.Errorf("journal at %s failed verification: %w", s.journal.Location(), err)
	}

	s.progress.OnProgress(ctx, ProgressEvent{Stage: StageReplaying, Message: "Replaying journal", Entries: len(entries), Spinner: true})
	c, err := council.Replay(entries)
	if err != nil {
		return nil, nil, err
	}
	s.log.Debug("replayed journal", "entries", len(entries), "location", s.journal.Location())
	return c, entries, nil
}

// Now is the ambient time of the next operation
func (s *CouncilSession) Now() time.Time {
	return s.clock.Now()
}

type commitResult struct {
	council *council.Council
	result  *council.Result
	entry   *models.JournalEntry
}

// commit applies one operation, appends it to the journal and publishes the
// notifications it produced. fill completes the entry's payload.
func (s *CouncilSession) commit(
	ctx context.Context,
	caller common.Address,
	op models.OpType,
	motionID uint64,
	fill func(e *models.JournalEntry),
) (*commitResult, error) {
	c, entries, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	entry := &models.JournalEntry{
		At:       s.clock.Now(),
		Caller:   caller,
		Op:       op,
		MotionID: motionID,
	}
	if fill != nil {
		fill(entry)
	}

	res, err := c.Apply(entry)
	if err != nil {
		return nil, err
	}
	if op == models.OpPropose {
		entry.MotionID = res.MotionID
	}

	if err := entry.Seal(entries[len(entries)-1]); err != nil {
		return nil, err
	}
	if err := s.journal.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append journal entry: %w", err)
	}

	s.log.Debug("operation accepted",
		"op", op,
		"seq", entry.Seq,
		"motion", entry.MotionID,
		"caller", caller.Hex(),
	)
	if len(res.Notifications) > 0 {
		s.publisher.Publish(ctx, res.Notifications)
	}

	return &commitResult{council: c, result: res, entry: entry}, nil
}

// view builds the MotionView of a motion at time at
func view(c *council.Council, id uint64, at time.Time) (*MotionView, error) {
	m, err := c.Motion(id)
	if err != nil {
		return nil, err
	}
	q, err := c.Quorum(id)
	if err != nil {
		return nil, err
	}
	return &MotionView{Motion: m, State: m.State(at), Quorum: q}, nil
}
