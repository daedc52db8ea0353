package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

var (
	t0      = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	founder = common.HexToAddress("0xf0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0f0")
	bob     = common.HexToAddress("0xb0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0")
	outside = common.HexToAddress("0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
)

// memJournal is an in-memory JournalRepository
type memJournal struct {
	entries   []*models.JournalEntry
	appendErr error
}

func (j *memJournal) Exists(ctx context.Context) (bool, error) {
	return len(j.entries) > 0, nil
}

func (j *memJournal) Load(ctx context.Context) ([]*models.JournalEntry, error) {
	out := make([]*models.JournalEntry, len(j.entries))
	for i, e := range j.entries {
		c := *e
		out[i] = &c
	}
	return out, nil
}

func (j *memJournal) Append(ctx context.Context, entry *models.JournalEntry) error {
	if j.appendErr != nil {
		return j.appendErr
	}
	c := *entry
	j.entries = append(j.entries, &c)
	return nil
}

func (j *memJournal) Location() string { return "memory" }

// MockPublisher is a mock implementation of NotificationPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, notes []models.Notification) {
	m.Called(ctx, notes)
}

// MockCouncilFiles is a mock implementation of CouncilFileRepository
type MockCouncilFiles struct {
	mock.Mock
}

func (m *MockCouncilFiles) Exists() bool {
	return m.Called().Bool(0)
}

func (m *MockCouncilFiles) Write(ctx context.Context, cfg *config.CouncilFileConfig) (string, error) {
	args := m.Called(ctx, cfg)
	return args.String(0), args.Error(1)
}

// MockMotionSelector is a mock implementation of MotionSelector
type MockMotionSelector struct {
	mock.Mock
}

func (m *MockMotionSelector) SelectMotion(ctx context.Context, motions []*usecase.MotionView, prompt string) (*usecase.MotionView, error) {
	args := m.Called(ctx, motions, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MotionView), args.Error(1)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingSink struct {
	stages []usecase.ReplayStage
}

func (r *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	r.stages = append(r.stages, event.Stage)
}

type fixture struct {
	cfg       *config.RuntimeConfig
	journal   *memJournal
	publisher *MockPublisher
	clock     *fakeClock
	progress  *recordingSink
	session   *usecase.CouncilSession
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cfg: &config.RuntimeConfig{
			ProjectRoot: "/work/guild",
			DefaultTTL:  72 * time.Hour,
			Storage:     config.StorageConfig{Backend: config.StorageFile},
		},
		journal:   &memJournal{},
		publisher: new(MockPublisher),
		clock:     &fakeClock{now: t0},
		progress:  &recordingSink{},
	}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return()
	f.session = usecase.NewCouncilSession(f.journal, f.publisher, f.clock, f.progress, discardLogger())
	return f
}

// found writes the genesis entry without touching council.toml
func (f *fixture) found(t *testing.T) {
	t.Helper()
	files := new(MockCouncilFiles)
	files.On("Exists").Return(true)
	_, err := usecase.NewInitCouncil(f.cfg, f.journal, files, f.clock, discardLogger()).
		Run(context.Background(), usecase.InitCouncilParams{Name: "guild", Founder: founder})
	require.NoError(t, err)
}

func (f *fixture) proposeElect(t *testing.T, target common.Address) uint64 {
	t.Helper()
	res, err := usecase.NewProposeMotion(f.cfg, f.session).Run(context.Background(), usecase.ProposeMotionParams{
		Caller:      founder,
		Kind:        models.KindElectRepresentative,
		Target:      target,
		Description: "elect",
		Deadline:    f.clock.now.Add(100 * time.Second),
	})
	require.NoError(t, err)
	return res.Motion.Motion.ID
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func notificationTypes(notes []models.Notification) []models.NotificationType {
	out := make([]models.NotificationType, len(notes))
	for i, n := range notes {
		out[i] = n.NotificationType()
	}
	return out
}

func TestInitCouncil(t *testing.T) {
	ctx := context.Background()

	t.Run("founds council and writes council file", func(t *testing.T) {
		f := newFixture(t)
		files := new(MockCouncilFiles)
		files.On("Exists").Return(false)
		files.On("Write", ctx, mock.MatchedBy(func(cfg *config.CouncilFileConfig) bool {
			return cfg.Council.Name == "guild" &&
				cfg.Council.Founder == founder.Hex() &&
				cfg.Council.DefaultTTL == "72h0m0s" &&
				cfg.Storage.Backend == "file"
		})).Return("/work/guild/council.toml", nil)

		uc := usecase.NewInitCouncil(f.cfg, f.journal, files, f.clock, discardLogger())
		result, err := uc.Run(ctx, usecase.InitCouncilParams{Founder: founder})

		require.NoError(t, err)
		files.AssertExpectations(t)
		assert.Equal(t, "guild", result.Snapshot.Name)
		assert.Equal(t, []common.Address{founder}, result.Snapshot.Representatives)
		require.NotNil(t, result.Snapshot.Governor)
		assert.Equal(t, founder, *result.Snapshot.Governor)
		assert.True(t, result.CouncilFileNew)
		assert.Equal(t, "/work/guild/council.toml", result.CouncilFile)

		require.Len(t, f.journal.entries, 1)
		genesis := f.journal.entries[0]
		assert.Equal(t, models.OpGenesis, genesis.Op)
		assert.Equal(t, uint64(0), genesis.Seq)
		assert.NotEqual(t, common.Hash{}, genesis.Hash)
	})

	t.Run("refuses to found twice", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)

		files := new(MockCouncilFiles)
		uc := usecase.NewInitCouncil(f.cfg, f.journal, files, f.clock, discardLogger())
		_, err := uc.Run(ctx, usecase.InitCouncilParams{Founder: bob})

		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
		assert.Len(t, f.journal.entries, 1)
		files.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
	})

	t.Run("requires founder", func(t *testing.T) {
		f := newFixture(t)
		uc := usecase.NewInitCouncil(f.cfg, f.journal, new(MockCouncilFiles), f.clock, discardLogger())
		_, err := uc.Run(ctx, usecase.InitCouncilParams{Name: "guild"})
		assert.Error(t, err)
		assert.Empty(t, f.journal.entries)
	})
}

func TestCouncilSession_RequiresGenesis(t *testing.T) {
	f := newFixture(t)
	_, err := usecase.NewCastVote(f.session).Run(context.Background(), usecase.MotionActionParams{Caller: founder, MotionID: 0})
	assert.ErrorIs(t, err, domain.ErrNoCouncil)
	assert.Equal(t, []usecase.ReplayStage{usecase.StageLoading, usecase.StageReady}, f.progress.stages)
}

func TestCouncilSession_ReportsReplayProgress(t *testing.T) {
	f := newFixture(t)
	f.found(t)

	_, entries, err := f.session.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, []usecase.ReplayStage{
		usecase.StageLoading,
		usecase.StageVerifying,
		usecase.StageReplaying,
		usecase.StageReady,
	}, f.progress.stages)
}

func TestMotionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.found(t)

	id := f.proposeElect(t, bob)
	assert.Equal(t, uint64(0), id)

	f.clock.advance(10 * time.Second)
	voted, err := usecase.NewCastVote(f.session).Run(ctx, usecase.MotionActionParams{Caller: founder, MotionID: id})
	require.NoError(t, err)
	assert.Equal(t, []models.NotificationType{models.NotificationVotePlaced, models.NotificationMotionApproved},
		notificationTypes(voted.Notifications))
	assert.Equal(t, models.MotionStateApproved, voted.Motion.State)
	assert.Equal(t, uint64(1), voted.Motion.Quorum.Cast)

	f.clock.advance(10 * time.Second)
	enacted, err := usecase.NewEnactMotion(f.session).Run(ctx, usecase.MotionActionParams{Caller: founder, MotionID: id})
	require.NoError(t, err)
	assert.Equal(t, []models.NotificationType{models.NotificationRepresentativeElected, models.NotificationMotionEnacted},
		notificationTypes(enacted.Notifications))
	assert.Equal(t, models.MotionStateEnacted, enacted.Motion.State)

	f.publisher.AssertNumberOfCalls(t, "Publish", 2)

	shown, err := usecase.NewShowCouncil(f.session, f.journal).Run(ctx, usecase.ShowCouncilParams{Caller: bob, HasCaller: true})
	require.NoError(t, err)
	assert.Equal(t, []common.Address{founder, bob}, shown.Snapshot.Representatives)
	assert.Equal(t, 1, shown.Snapshot.MotionCount)
	assert.Equal(t, 1, shown.Snapshot.VoteCount)
	assert.Equal(t, 0, shown.OpenMotions)
	assert.Equal(t, 4, shown.JournalEntries)
	require.NotNil(t, shown.Caller)
	assert.True(t, shown.Caller.Representative)
	assert.False(t, shown.Caller.Governor)

	motion, err := usecase.NewShowMotion(f.session).Run(ctx, id)
	require.NoError(t, err)
	require.Len(t, motion.Votes, 1)
	assert.Equal(t, founder, motion.Votes[0].Voter)

	history, err := usecase.NewShowHistory(f.journal).Run(ctx, usecase.ShowHistoryParams{})
	require.NoError(t, err)
	assert.True(t, history.Verified)
	assert.Equal(t, 4, history.Total)
	ops := make([]models.OpType, len(history.Entries))
	for i, e := range history.Entries {
		ops[i] = e.Op
	}
	assert.Equal(t, []models.OpType{models.OpGenesis, models.OpPropose, models.OpVote, models.OpEnact}, ops)
}

func TestRejectedOperationLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.found(t)
	id := f.proposeElect(t, bob)
	f.publisher.Calls = nil

	_, err := usecase.NewCastVote(f.session).Run(ctx, usecase.MotionActionParams{Caller: outside, MotionID: id})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = usecase.NewCancelMotion(f.session).Run(ctx, usecase.MotionActionParams{Caller: founder, MotionID: 7})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = usecase.NewEnactMotion(f.session).Run(ctx, usecase.MotionActionParams{Caller: founder, MotionID: id})
	assert.ErrorIs(t, err, domain.ErrNotApproved)

	assert.Len(t, f.journal.entries, 2)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAppendFailureIsNotPublished(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.found(t)
	id := f.proposeElect(t, bob)
	f.publisher.Calls = nil

	f.journal.appendErr = errors.New("disk full")
	_, err := usecase.NewCastVote(f.session).Run(ctx, usecase.MotionActionParams{Caller: founder, MotionID: id})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)

	f.journal.appendErr = nil
	motion, err := usecase.NewShowMotion(f.session).Run(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, motion.Votes)
}

func TestProposeMotion(t *testing.T) {
	ctx := context.Background()

	t.Run("deadline defaults to ttl", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)

		res, err := usecase.NewProposeMotion(f.cfg, f.session).Run(ctx, usecase.ProposeMotionParams{
			Caller: founder,
			Kind:   models.KindDismissRepresentative,
			Target: founder,
		})
		require.NoError(t, err)
		assert.Equal(t, t0.Add(72*time.Hour), res.Motion.Motion.Deadline)

		res, err = usecase.NewProposeMotion(f.cfg, f.session).Run(ctx, usecase.ProposeMotionParams{
			Caller: founder,
			Kind:   models.KindDismissRepresentative,
			Target: founder,
			TTL:    time.Hour,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), res.Motion.Motion.ID)
		assert.Equal(t, t0.Add(time.Hour), res.Motion.Motion.Deadline)
		assert.Equal(t, uint64(1), res.Entry.MotionID)
	})

	t.Run("revision", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)

		res, err := usecase.NewProposeMotion(f.cfg, f.session).Run(ctx, usecase.ProposeMotionParams{
			Caller: founder,
			Kind:   models.KindReviseApprovalRequirement,
			Revision: &models.RequirementRevision{
				Kind: models.KindElectRepresentative,
				Requirement: models.ApprovalRequirement{
					Policy:    models.PolicyFixedCount,
					Threshold: 2,
					Vetoable:  true,
				},
			},
		})
		require.NoError(t, err)
		rev, ok := res.Motion.Motion.Revision()
		require.True(t, ok)
		assert.Equal(t, models.KindElectRepresentative, rev.Kind)
		assert.Equal(t, uint64(2), rev.Requirement.Threshold)
	})

	t.Run("revision payload required", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)

		_, err := usecase.NewProposeMotion(f.cfg, f.session).Run(ctx, usecase.ProposeMotionParams{
			Caller: founder,
			Kind:   models.KindReviseApprovalRequirement,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)
		assert.Len(t, f.journal.entries, 1)
	})

	t.Run("past deadline", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)

		_, err := usecase.NewProposeMotion(f.cfg, f.session).Run(ctx, usecase.ProposeMotionParams{
			Caller:   founder,
			Kind:     models.KindElectRepresentative,
			Target:   bob,
			Deadline: t0,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDeadline)
	})
}

func TestListMotions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.found(t)

	first := f.proposeElect(t, bob)
	second := f.proposeElect(t, outside)
	_, err := usecase.NewCancelMotion(f.session).Run(ctx, usecase.MotionActionParams{Caller: founder, MotionID: second})
	require.NoError(t, err)

	uc := usecase.NewListMotions(f.session)

	all, err := uc.Run(ctx, usecase.ListMotionsParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Summary.Total)
	assert.Equal(t, 1, all.Summary.ByState[models.MotionStateOpen])
	assert.Equal(t, 1, all.Summary.ByState[models.MotionStateCancelled])
	assert.Equal(t, 2, all.Summary.ByKind[models.KindElectRepresentative])

	open, err := uc.Run(ctx, usecase.ListMotionsParams{States: []models.MotionState{models.MotionStateOpen}})
	require.NoError(t, err)
	require.Len(t, open.Motions, 1)
	assert.Equal(t, first, open.Motions[0].Motion.ID)

	none, err := uc.Run(ctx, usecase.ListMotionsParams{Kinds: []models.MotionKind{models.KindElectGovernor}})
	require.NoError(t, err)
	assert.Empty(t, none.Motions)

	byBob, err := uc.Run(ctx, usecase.ListMotionsParams{Creator: &bob})
	require.NoError(t, err)
	assert.Empty(t, byBob.Motions)

	f.clock.advance(time.Hour)
	expired, err := uc.Run(ctx, usecase.ListMotionsParams{States: []models.MotionState{models.MotionStateExpired}})
	require.NoError(t, err)
	assert.Len(t, expired.Motions, 1)
}

func TestShowHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.found(t)
	id := f.proposeElect(t, bob)
	_, err := usecase.NewCastVote(f.session).Run(ctx, usecase.MotionActionParams{Caller: founder, MotionID: id})
	require.NoError(t, err)

	uc := usecase.NewShowHistory(f.journal)

	t.Run("filters and limits", func(t *testing.T) {
		res, err := uc.Run(ctx, usecase.ShowHistoryParams{MotionID: &id})
		require.NoError(t, err)
		assert.Len(t, res.Entries, 2)

		res, err = uc.Run(ctx, usecase.ShowHistoryParams{Limit: 1})
		require.NoError(t, err)
		require.Len(t, res.Entries, 1)
		assert.Equal(t, models.OpVote, res.Entries[0].Op)
		assert.Equal(t, 3, res.Total)
	})

	t.Run("reports tampering", func(t *testing.T) {
		f.journal.entries[1].Proposal.Description = "rewritten"

		res, err := uc.Run(ctx, usecase.ShowHistoryParams{})
		require.NoError(t, err)
		assert.False(t, res.Verified)
		assert.Contains(t, res.Problem, "hash mismatch")

		_, err = usecase.NewShowMotion(f.session).Run(ctx, id)
		assert.Error(t, err)
	})
}

func TestSelectMotion(t *testing.T) {
	ctx := context.Background()

	t.Run("single candidate skips the prompt", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)
		id := f.proposeElect(t, bob)

		selector := new(MockMotionSelector)
		picked, err := usecase.NewSelectMotion(f.session, selector).Run(ctx, usecase.SelectMotionParams{Op: models.OpVote, Caller: founder})
		require.NoError(t, err)
		assert.Equal(t, id, picked.Motion.ID)
		selector.AssertNotCalled(t, "SelectMotion", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("prompts between candidates", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)
		f.proposeElect(t, bob)
		f.proposeElect(t, outside)

		selector := new(MockMotionSelector)
		selector.On("SelectMotion", ctx, mock.MatchedBy(func(ms []*usecase.MotionView) bool {
			return len(ms) == 2
		}), "Select motion to vote").Return(&usecase.MotionView{Motion: &models.Motion{ID: 1}}, nil)

		picked, err := usecase.NewSelectMotion(f.session, selector).Run(ctx, usecase.SelectMotionParams{Op: models.OpVote, Caller: founder})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), picked.Motion.ID)
		selector.AssertExpectations(t)
	})

	t.Run("only approved motions can be enacted", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)
		f.proposeElect(t, bob)

		_, err := usecase.NewSelectMotion(f.session, new(MockMotionSelector)).Run(ctx, usecase.SelectMotionParams{Op: models.OpEnact, Caller: founder})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("only own motions can be cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.found(t)
		f.proposeElect(t, bob)

		_, err := usecase.NewSelectMotion(f.session, new(MockMotionSelector)).Run(ctx, usecase.SelectMotionParams{Op: models.OpCancel, Caller: bob})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
