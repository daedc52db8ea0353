package interactive

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

func motionView(id uint64, desc string, deadline time.Time) *usecase.MotionView {
	return &usecase.MotionView{
		Motion: &models.Motion{
			ID:          id,
			Kind:        models.KindElectRepresentative,
			Target:      models.RepresentativeTarget{Address: common.HexToAddress("0x2222222222222222222222222222222222222222")},
			Description: desc,
			Deadline:    deadline,
		},
		Quorum: models.QuorumStatus{Required: 2, Cast: 1},
	}
}

func TestSelectMotion_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
	_, err := s.SelectMotion(context.Background(), []*usecase.MotionView{motionView(0, "", time.Now())}, "pick")
	assert.Error(t, err)
}

func TestSelectMotion_SingleChoice(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{})
	only := motionView(4, "", time.Now())
	picked, err := s.SelectMotion(context.Background(), []*usecase.MotionView{only}, "pick")
	require.NoError(t, err)
	assert.Same(t, only, picked)

	_, err = s.SelectMotion(context.Background(), nil, "pick")
	assert.Error(t, err)
}

func TestFormatMotionOptions(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	options := formatMotionOptions([]*usecase.MotionView{
		motionView(3, "welcome bob", now.Add(5*time.Hour)),
	}, now)

	require.Len(t, options, 1)
	assert.Contains(t, options[0], "#3 elect-representative")
	assert.Contains(t, options[0], "(1/2 votes, 5h0m0s left)")
	assert.Contains(t, options[0], "welcome bob")
}

func TestFuzzySearch(t *testing.T) {
	search := createFuzzySearchFunc([]string{"#0 elect-representative welcome bob", "#1 revise-approval-requirement"})
	assert.True(t, search("", 0))
	assert.True(t, search("bob", 0))
	assert.False(t, search("bob", 1))
	assert.True(t, search("rvs", 1))
}
