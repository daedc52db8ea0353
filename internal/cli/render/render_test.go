package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
	"gopkg.in/yaml.v3"
)

var (
	alice = common.HexToAddress("0x1111000000000000000000000000000000000001")
	bob   = common.HexToAddress("0x2222000000000000000000000000000000000002")
	t0    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func init() {
	color.NoColor = true
}

func electView() *usecase.MotionView {
	return &usecase.MotionView{
		Motion: &models.Motion{
			ID:          3,
			Kind:        models.KindElectRepresentative,
			Target:      models.RepresentativeTarget{Address: bob},
			Description: "welcome bob",
			Creator:     alice,
			CreatedAt:   t0,
			Deadline:    t0.Add(5 * time.Hour),
		},
		State: models.MotionStateOpen,
		Quorum: models.QuorumStatus{
			Requirement: models.DefaultApprovalRequirement(),
			Members:     3,
			Required:    2,
			Cast:        1,
		},
	}
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ Motion not open", FormatError("motion not open"))
	assert.Equal(t, "❌ Vote: motion not open", FormatError("failed: vote: motion not open"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Elect Representative", Title("elect-representative"))
	assert.Equal(t, "0x1111…0001", ShortAddress(alice))
}

func TestStructured(t *testing.T) {
	var buf bytes.Buffer
	ok, err := Structured(&buf, config.OutputTable, struct{}{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, buf.String())

	out := motionOutput(electView(), []models.Vote{{ID: 1, MotionID: 3, Voter: alice, CastAt: t0}})

	ok, err = Structured(&buf, config.OutputJSON, out)
	require.NoError(t, err)
	assert.True(t, ok)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "elect-representative", decoded["kind"])
	assert.Equal(t, bob.Hex(), decoded["target"])
	assert.NotContains(t, decoded, "revision")

	buf.Reset()
	ok, err = Structured(&buf, config.OutputYAML, out)
	require.NoError(t, err)
	assert.True(t, ok)
	var y map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &y))
	assert.Equal(t, "open", y["state"])
	assert.Equal(t, 3, y["id"])
}

func TestMotionsRenderer(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewMotionsRenderer(&buf, config.OutputTable)
		require.NoError(t, r.RenderMotionList(&usecase.MotionListResult{
			Motions: []*usecase.MotionView{electView()},
			Summary: usecase.MotionSummary{
				Total:   1,
				ByState: map[models.MotionState]int{models.MotionStateOpen: 1},
			},
			At: t0.Add(time.Hour),
		}))

		out := buf.String()
		assert.Contains(t, out, "#3")
		assert.Contains(t, out, "Elect Representative")
		assert.Contains(t, out, "1/2 votes")
		assert.Contains(t, out, "4h0m0s left")
		assert.Contains(t, out, "1 motions (1 open)")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewMotionsRenderer(&buf, config.OutputTable).RenderMotionList(&usecase.MotionListResult{}))
		assert.Equal(t, "No motions found\n", buf.String())
	})

	t.Run("detail", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewMotionsRenderer(&buf, config.OutputTable).RenderMotion(&usecase.ShowMotionResult{
			Motion: electView(),
			Votes:  []models.Vote{{ID: 1, MotionID: 3, Voter: alice, CastAt: t0}},
			At:     t0.Add(6 * time.Hour),
		}))

		out := buf.String()
		assert.Contains(t, out, "Motion #3")
		assert.Contains(t, out, "welcome bob")
		assert.Contains(t, out, "closed")
		assert.Contains(t, out, "Votes (1)")
		assert.Contains(t, out, alice.Hex())
	})
}

func TestCouncilRenderer_RenderAction(t *testing.T) {
	view := electView()
	view.Quorum.Cast = 2
	view.Motion.Status.Approved = true
	result := &usecase.MotionActionResult{
		Motion: view,
		VoteID: 7,
		Notifications: []models.Notification{
			models.VotePlacedNotification{MotionID: 3, Voter: alice},
			models.MotionApprovedNotification{MotionID: 3},
		},
		Entry: &models.JournalEntry{Seq: 9, Op: models.OpVote, MotionID: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, NewCouncilRenderer(&buf, config.OutputTable).RenderAction(result))
	assert.Contains(t, buf.String(), "Voted for motion #3 (2/2 votes, reached)")
	assert.Contains(t, buf.String(), "MotionApproved")

	buf.Reset()
	require.NoError(t, NewCouncilRenderer(&buf, config.OutputJSON).RenderAction(result))
	var decoded ActionOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, uint64(9), decoded.Seq)
	assert.Equal(t, uint64(7), decoded.VoteID)
	require.Len(t, decoded.Notifications, 2)
	assert.Equal(t, models.NotificationMotionApproved, decoded.Notifications[1].Type)
}
