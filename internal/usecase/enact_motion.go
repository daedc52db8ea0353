package usecase

import (
	"context"

	"github.com/trebuchet-org/council/internal/domain/models"
)

// EnactMotion executes an approved open motion against the council
type EnactMotion struct {
	session *CouncilSession
}

// NewEnactMotion creates a new EnactMotion use case
func NewEnactMotion(session *CouncilSession) *EnactMotion {
	return &EnactMotion{session: session}
}

// Run executes the enact motion use case
func (uc *EnactMotion) Run(ctx context.Context, params MotionActionParams) (*MotionActionResult, error) {
	return runMotionAction(ctx, uc.session, models.OpEnact, params)
}
