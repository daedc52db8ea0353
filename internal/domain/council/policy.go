package council

import (
	"github.com/trebuchet-org/council/internal/domain/models"
)

// PolicyTable holds the approval requirement of each motion kind
type PolicyTable struct {
	requirements [models.MotionKindCount]models.ApprovalRequirement
}

// NewPolicyTable starts every kind at the default requirement
func NewPolicyTable() *PolicyTable {
	t := &PolicyTable{}
	for _, kind := range models.AllMotionKinds {
		t.requirements[kind] = models.DefaultApprovalRequirement()
	}
	return t
}

// Get returns the requirement for kind. kind must be valid.
func (t *PolicyTable) Get(kind models.MotionKind) models.ApprovalRequirement {
	return t.requirements[kind]
}

// Set overwrites the requirement for kind. Only enactment calls this.
func (t *PolicyTable) Set(kind models.MotionKind, req models.ApprovalRequirement) {
	t.requirements[kind] = req
}

// All returns a copy of the table keyed by kind
func (t *PolicyTable) All() map[models.MotionKind]models.ApprovalRequirement {
	out := make(map[models.MotionKind]models.ApprovalRequirement, models.MotionKindCount)
	for _, kind := range models.AllMotionKinds {
		out[kind] = t.requirements[kind]
	}
	return out
}
