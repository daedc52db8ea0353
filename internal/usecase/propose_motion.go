package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// ProposeMotionParams contains parameters for proposing a motion. Target is
// used by representative kinds, Revision by revise-approval-requirement.
// When Deadline is zero it is derived from TTL, falling back to the
// configured default.
type ProposeMotionParams struct {
	Caller      common.Address
	Kind        models.MotionKind
	Target      common.Address
	Revision    *models.RequirementRevision
	Description string
	Deadline    time.Time
	TTL         time.Duration
}

// ProposeMotionResult contains the newly created motion
type ProposeMotionResult struct {
	Motion *MotionView
	Entry  *models.JournalEntry
}

// ProposeMotion creates a motion
type ProposeMotion struct {
	config  *config.RuntimeConfig
	session *CouncilSession
}

// NewProposeMotion creates a new ProposeMotion use case
func NewProposeMotion(cfg *config.RuntimeConfig, session *CouncilSession) *ProposeMotion {
	return &ProposeMotion{
		config:  cfg,
		session: session,
	}
}

// Run executes the propose motion use case
func (uc *ProposeMotion) Run(ctx context.Context, params ProposeMotionParams) (*ProposeMotionResult, error) {
	if !params.Kind.Valid() {
		return nil, errors.New("unknown motion kind")
	}

	ttl := params.TTL
	if ttl == 0 {
		ttl = uc.config.DefaultTTL
	}

	res, err := uc.session.commit(ctx, params.Caller, models.OpPropose, 0, func(e *models.JournalEntry) {
		p := &models.ProposalPayload{
			Kind:        params.Kind,
			Description: params.Description,
			Deadline:    params.Deadline.UTC(),
		}
		if params.Deadline.IsZero() {
			p.Deadline = e.At.Add(ttl).UTC()
		}
		if params.Kind == models.KindReviseApprovalRequirement {
			p.Revision = params.Revision
		} else {
			target := params.Target
			p.Target = &target
		}
		e.Proposal = p
	})
	if err != nil {
		return nil, err
	}

	v, err := view(res.council, res.result.MotionID, res.entry.At)
	if err != nil {
		return nil, err
	}
	return &ProposeMotionResult{Motion: v, Entry: res.entry}, nil
}
