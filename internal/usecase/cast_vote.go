package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// MotionActionParams identifies the caller and the motion an action targets
type MotionActionParams struct {
	Caller   common.Address
	MotionID uint64
}

// MotionActionResult is the outcome of vote, cancel, veto and enact
type MotionActionResult struct {
	Motion        *MotionView
	VoteID        uint64
	Notifications []models.Notification
	Entry         *models.JournalEntry
}

// CastVote places a vote for an open motion
type CastVote struct {
	session *CouncilSession
}

// NewCastVote creates a new CastVote use case
func NewCastVote(session *CouncilSession) *CastVote {
	return &CastVote{session: session}
}

// Run executes the cast vote use case
func (uc *CastVote) Run(ctx context.Context, params MotionActionParams) (*MotionActionResult, error) {
	return runMotionAction(ctx, uc.session, models.OpVote, params)
}

func runMotionAction(ctx context.Context, session *CouncilSession, op models.OpType, params MotionActionParams) (*MotionActionResult, error) {
	res, err := session.commit(ctx, params.Caller, op, params.MotionID, nil)
	if err != nil {
		return nil, err
	}
	v, err := view(res.council, params.MotionID, res.entry.At)
	if err != nil {
		return nil, err
	}
	return &MotionActionResult{
		Motion:        v,
		VoteID:        res.result.VoteID,
		Notifications: res.result.Notifications,
		Entry:         res.entry,
	}, nil
}
