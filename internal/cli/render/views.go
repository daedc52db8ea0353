package render

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

// MotionOutput is the stable structured form of a motion
type MotionOutput struct {
	ID          uint64                      `json:"id" yaml:"id"`
	Kind        models.MotionKind           `json:"kind" yaml:"kind"`
	State       models.MotionState          `json:"state" yaml:"state"`
	Target      *common.Address             `json:"target,omitempty" yaml:"target,omitempty"`
	Revision    *models.RequirementRevision `json:"revision,omitempty" yaml:"revision,omitempty"`
	Description string                      `json:"description" yaml:"description"`
	Creator     common.Address              `json:"creator" yaml:"creator"`
	CreatedAt   time.Time                   `json:"createdAt" yaml:"createdAt"`
	Deadline    time.Time                   `json:"deadline" yaml:"deadline"`
	Status      models.MotionStatus         `json:"status" yaml:"status"`
	Quorum      QuorumOutput                `json:"quorum" yaml:"quorum"`
	Votes       []VoteOutput                `json:"votes,omitempty" yaml:"votes,omitempty"`
}

// QuorumOutput is the live quorum of a motion
type QuorumOutput struct {
	Requirement string `json:"requirement" yaml:"requirement"`
	Members     uint64 `json:"members" yaml:"members"`
	Required    uint64 `json:"required" yaml:"required"`
	Cast        uint64 `json:"cast" yaml:"cast"`
	Reached     bool   `json:"reached" yaml:"reached"`
}

// VoteOutput is one cast vote
type VoteOutput struct {
	ID     uint64         `json:"id" yaml:"id"`
	Voter  common.Address `json:"voter" yaml:"voter"`
	CastAt time.Time      `json:"castAt" yaml:"castAt"`
}

// NotificationOutput is a notification tagged with its type
type NotificationOutput struct {
	Type   models.NotificationType `json:"type" yaml:"type"`
	Motion uint64                  `json:"motion" yaml:"motion"`
	Detail string                  `json:"detail" yaml:"detail"`
}

func motionOutput(v *usecase.MotionView, votes []models.Vote) MotionOutput {
	m := v.Motion
	out := MotionOutput{
		ID:          m.ID,
		Kind:        m.Kind,
		State:       v.State,
		Description: m.Description,
		Creator:     m.Creator,
		CreatedAt:   m.CreatedAt,
		Deadline:    m.Deadline,
		Status:      m.Status,
		Quorum: QuorumOutput{
			Requirement: v.Quorum.Requirement.String(),
			Members:     v.Quorum.Members,
			Required:    v.Quorum.Required,
			Cast:        v.Quorum.Cast,
			Reached:     v.Quorum.Reached(),
		},
	}
	if addr, ok := m.RepresentativeAddress(); ok {
		out.Target = &addr
	}
	if rev, ok := m.Revision(); ok {
		out.Revision = &rev
	}
	for _, vote := range votes {
		out.Votes = append(out.Votes, VoteOutput{ID: vote.ID, Voter: vote.Voter, CastAt: vote.CastAt})
	}
	return out
}

func notificationOutputs(notes []models.Notification) []NotificationOutput {
	out := make([]NotificationOutput, len(notes))
	for i, n := range notes {
		out[i] = NotificationOutput{Type: n.NotificationType(), Motion: n.Motion(), Detail: n.String()}
	}
	return out
}
