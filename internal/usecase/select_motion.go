package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// SelectMotionParams describes the action a motion is being picked for
type SelectMotionParams struct {
	Op     models.OpType
	Caller common.Address
}

// SelectMotion offers the motions an action could apply to and lets the user
// pick one. It narrows the list the same way the council would reject the
// others, so the picker never offers a motion that is bound to fail.
type SelectMotion struct {
	session  *CouncilSession
	selector MotionSelector
}

// NewSelectMotion creates a new SelectMotion use case
func NewSelectMotion(session *CouncilSession, selector MotionSelector) *SelectMotion {
	return &SelectMotion{
		session:  session,
		selector: selector,
	}
}

// Run executes the select motion use case
func (uc *SelectMotion) Run(ctx context.Context, params SelectMotionParams) (*MotionView, error) {
	c, _, err := uc.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	at := uc.session.Now()

	var candidates []*MotionView
	for _, m := range c.Motions() {
		if !m.IsOpen(at) {
			continue
		}
		v, err := view(c, m.ID, at)
		if err != nil {
			return nil, err
		}
		switch params.Op {
		case models.OpCancel:
			if m.Creator != params.Caller {
				continue
			}
		case models.OpVeto:
			if !v.Quorum.Requirement.Vetoable {
				continue
			}
		case models.OpEnact:
			if !m.Status.Approved || m.Status.Enacted {
				continue
			}
		}
		candidates = append(candidates, v)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no motion can be %s: %w", pastTense(params.Op), domain.ErrNotFound)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	return uc.selector.SelectMotion(ctx, candidates, fmt.Sprintf("Select motion to %s", params.Op))
}

func pastTense(op models.OpType) string {
	switch op {
	case models.OpVote:
		return "voted on"
	case models.OpCancel:
		return "cancelled"
	case models.OpVeto:
		return "vetoed"
	case models.OpEnact:
		return "enacted"
	default:
		return string(op)
	}
}
