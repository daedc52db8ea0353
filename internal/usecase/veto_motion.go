package usecase

import (
	"context"

	"github.com/trebuchet-org/council/internal/domain/models"
)

// VetoMotion lets the governor block an open motion of a vetoable kind
type VetoMotion struct {
	session *CouncilSession
}

// NewVetoMotion creates a new VetoMotion use case
func NewVetoMotion(session *CouncilSession) *VetoMotion {
	return &VetoMotion{session: session}
}

// Run executes the veto motion use case
func (uc *VetoMotion) Run(ctx context.Context, params MotionActionParams) (*MotionActionResult, error) {
	return runMotionAction(ctx, uc.session, models.OpVeto, params)
}
