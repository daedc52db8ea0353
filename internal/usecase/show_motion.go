package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/council/internal/domain/models"
)

// ShowMotionResult is a motion with its votes and live quorum
type ShowMotionResult struct {
	Motion *MotionView   `json:"motion"`
	Votes  []models.Vote `json:"votes"`
	At     time.Time     `json:"at"`
}

// ShowMotion reports a single motion
type ShowMotion struct {
	session *CouncilSession
}

// NewShowMotion creates a new ShowMotion use case
func NewShowMotion(session *CouncilSession) *ShowMotion {
	return &ShowMotion{session: session}
}

// Run executes the show motion use case
func (uc *ShowMotion) Run(ctx context.Context, motionID uint64) (*ShowMotionResult, error) {
	c, _, err := uc.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	at := uc.session.Now()

	v, err := view(c, motionID, at)
	if err != nil {
		return nil, err
	}
	votes, err := c.Votes(motionID)
	if err != nil {
		return nil, err
	}
	return &ShowMotionResult{Motion: v, Votes: votes, At: at}, nil
}
