package usecase

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// ShowCouncilParams selects whose roles to report alongside the snapshot
type ShowCouncilParams struct {
	Caller    common.Address
	HasCaller bool
}

// CallerRoles reports what the caller may do in the council
type CallerRoles struct {
	Address        common.Address `json:"address"`
	Representative bool           `json:"representative"`
	Governor       bool           `json:"governor"`
}

// ShowCouncilResult is a snapshot of the council between operations
type ShowCouncilResult struct {
	Snapshot        *models.CouncilSnapshot `json:"council"`
	OpenMotions     int                     `json:"openMotions"`
	ApprovedMotions int                     `json:"approvedMotions"`
	Caller          *CallerRoles            `json:"caller,omitempty"`
	JournalLocation string                  `json:"journal"`
	JournalEntries  int                     `json:"journalEntries"`
	At              time.Time               `json:"at"`
}

// ShowCouncil reports roster, governor, requirements and counts
type ShowCouncil struct {
	session *CouncilSession
	journal JournalRepository
}

// NewShowCouncil creates a new ShowCouncil use case
func NewShowCouncil(session *CouncilSession, journal JournalRepository) *ShowCouncil {
	return &ShowCouncil{
		session: session,
		journal: journal,
	}
}

// Run executes the show council use case
func (uc *ShowCouncil) Run(ctx context.Context, params ShowCouncilParams) (*ShowCouncilResult, error) {
	c, entries, err := uc.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	at := uc.session.Now()
	motions := c.Motions()

	result := &ShowCouncilResult{
		Snapshot: c.Snapshot(),
		OpenMotions: lo.CountBy(motions, func(m *models.Motion) bool {
			return m.IsOpen(at)
		}),
		ApprovedMotions: lo.CountBy(motions, func(m *models.Motion) bool {
			return m.State(at) == models.MotionStateApproved
		}),
		JournalLocation: uc.journal.Location(),
		JournalEntries:  len(entries),
		At:              at,
	}
	if params.HasCaller {
		result.Caller = &CallerRoles{
			Address:        params.Caller,
			Representative: c.IsRepresentative(params.Caller),
			Governor:       c.IsGovernor(params.Caller),
		}
	}
	return result, nil
}
