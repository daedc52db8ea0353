package usecase

import (
	"context"

	"github.com/trebuchet-org/council/internal/domain/models"
)

// CancelMotion withdraws an open motion. Only its creator may cancel it.
type CancelMotion struct {
	session *CouncilSession
}

// NewCancelMotion creates a new CancelMotion use case
func NewCancelMotion(session *CouncilSession) *CancelMotion {
	return &CancelMotion{session: session}
}

// Run executes the cancel motion use case
func (uc *CancelMotion) Run(ctx context.Context, params MotionActionParams) (*MotionActionResult, error) {
	return runMotionAction(ctx, uc.session, models.OpCancel, params)
}
