package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// ListMotionsParams contains filters for listing motions. Empty filters match
// everything.
type ListMotionsParams struct {
	States  []models.MotionState
	Kinds   []models.MotionKind
	Creator *common.Address
}

// MotionSummary counts the listed motions
type MotionSummary struct {
	Total   int                        `json:"total"`
	ByState map[models.MotionState]int `json:"byState"`
	ByKind  map[models.MotionKind]int  `json:"byKind"`
}

// MotionListResult contains the filtered motions
type MotionListResult struct {
	Motions []*MotionView `json:"motions"`
	Summary MotionSummary `json:"summary"`
	At      time.Time     `json:"at"`
}

// ListMotions lists motions with their derived state
type ListMotions struct {
	session *CouncilSession
}

// NewListMotions creates a new ListMotions use case
func NewListMotions(session *CouncilSession) *ListMotions {
	return &ListMotions{session: session}
}

// Run executes the list motions use case
func (uc *ListMotions) Run(ctx context.Context, params ListMotionsParams) (*MotionListResult, error) {
	c, _, err := uc.session.Load(ctx)
	if err != nil {
		return nil, err
	}
	at := uc.session.Now()

	views := make([]*MotionView, 0, len(c.Motions()))
	for _, m := range c.Motions() {
		v, err := view(c, m.ID, at)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	views = lo.Filter(views, func(v *MotionView, _ int) bool {
		if len(params.States) > 0 && !lo.Contains(params.States, v.State) {
			return false
		}
		if len(params.Kinds) > 0 && !lo.Contains(params.Kinds, v.Motion.Kind) {
			return false
		}
		if params.Creator != nil && v.Motion.Creator != *params.Creator {
			return false
		}
		return true
	})
	sort.Slice(views, func(i, j int) bool {
		return views[i].Motion.ID < views[j].Motion.ID
	})

	return &MotionListResult{
		Motions: views,
		Summary: MotionSummary{
			Total: len(views),
			ByState: lo.CountValuesBy(views, func(v *MotionView) models.MotionState {
				return v.State
			}),
			ByKind: lo.CountValuesBy(views, func(v *MotionView) models.MotionKind {
				return v.Motion.Kind
			}),
		},
		At: at,
	}, nil
}
