package council

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/council/internal/domain/models"
)

func TestRequiredVotes(t *testing.T) {
	majority := models.DefaultApprovalRequirement()
	count := func(n uint64) models.ApprovalRequirement {
		return models.ApprovalRequirement{Policy: models.PolicyFixedCount, Threshold: n}
	}
	percent := func(n uint64) models.ApprovalRequirement {
		return models.ApprovalRequirement{Policy: models.PolicyFixedPercent, Threshold: n}
	}

	tests := []struct {
		name     string
		req      models.ApprovalRequirement
		members  uint64
		expected uint64
	}{
		{name: "majority of one needs none", req: majority, members: 1, expected: 0},
		{name: "majority of two", req: majority, members: 2, expected: 1},
		{name: "majority of four is exactly half", req: majority, members: 4, expected: 2},
		{name: "majority of five floors", req: majority, members: 5, expected: 2},
		{name: "majority of empty council", req: majority, members: 0, expected: 0},
		{name: "fixed count ignores roster", req: count(3), members: 50, expected: 3},
		{name: "fixed count zero", req: count(0), members: 7, expected: 0},
		{name: "percent below one hundred members", req: percent(60), members: 99, expected: 0},
		{name: "percent at one hundred members", req: percent(60), members: 100, expected: 60},
		{name: "percent divides before multiplying", req: percent(50), members: 250, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredVotes(tt.req, tt.members))
		})
	}
}

func TestApproves(t *testing.T) {
	majority := models.DefaultApprovalRequirement()

	assert.False(t, Approves(majority, 5, 1))
	assert.True(t, Approves(majority, 5, 2))
	assert.True(t, Approves(majority, 5, 3))

	fixed := models.ApprovalRequirement{Policy: models.PolicyFixedCount, Threshold: 3}
	assert.False(t, Approves(fixed, 10, 2))
	assert.True(t, Approves(fixed, 10, 3))
}
