package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

// MotionListOutput is the structured form of a motion listing
type MotionListOutput struct {
	Motions []MotionOutput        `json:"motions" yaml:"motions"`
	Summary usecase.MotionSummary `json:"summary" yaml:"summary"`
}

// MotionsRenderer renders motion listings and single motions
type MotionsRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewMotionsRenderer creates a new motions renderer
func NewMotionsRenderer(out io.Writer, format config.OutputFormat) *MotionsRenderer {
	return &MotionsRenderer{
		out:    out,
		format: format,
	}
}

func stateStyle(state models.MotionState) *color.Color {
	switch state {
	case models.MotionStateOpen:
		return color.New(color.FgYellow)
	case models.MotionStateApproved:
		return color.New(color.FgCyan, color.Bold)
	case models.MotionStateEnacted:
		return color.New(color.FgGreen)
	case models.MotionStateVetoed:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func remaining(deadline, at time.Time) string {
	if at.After(deadline) {
		return "closed"
	}
	return deadline.Sub(at).Truncate(time.Minute).String() + " left"
}

// RenderMotionList renders motions as a table followed by a summary
func (r *MotionsRenderer) RenderMotionList(result *usecase.MotionListResult) error {
	out := MotionListOutput{Motions: make([]MotionOutput, 0, len(result.Motions)), Summary: result.Summary}
	for _, v := range result.Motions {
		out.Motions = append(out.Motions, motionOutput(v, nil))
	}
	if ok, err := Structured(r.out, r.format, out); ok {
		return err
	}

	if len(result.Motions) == 0 {
		fmt.Fprintln(r.out, "No motions found")
		return nil
	}

	rows := TableData{}
	for _, v := range result.Motions {
		m := v.Motion
		rows = append(rows, []string{
			motionStyle.Sprintf("#%d", m.ID),
			Title(m.Kind.String()),
			m.Target.String(),
			stateStyle(v.State).Sprint(v.State),
			quorumLabel(v.Quorum),
			labelStyle.Sprint(remaining(m.Deadline, result.At)),
			m.Description,
		})
	}
	fmt.Fprintln(r.out, renderTable(rows, ""))
	fmt.Fprintln(r.out)

	states := make([]string, 0, len(result.Summary.ByState))
	for state, n := range result.Summary.ByState {
		states = append(states, fmt.Sprintf("%d %s", n, state))
	}
	sort.Strings(states)
	fmt.Fprintf(r.out, "%d motions", result.Summary.Total)
	if len(states) > 0 {
		fmt.Fprintf(r.out, " (%s)", joinRoles(states))
	}
	fmt.Fprintln(r.out)
	return nil
}

// RenderMotion renders one motion with its votes
func (r *MotionsRenderer) RenderMotion(result *usecase.ShowMotionResult) error {
	if ok, err := Structured(r.out, r.format, motionOutput(result.Motion, result.Votes)); ok {
		return err
	}

	v := result.Motion
	m := v.Motion
	fmt.Fprintf(r.out, "%s %s  %s\n",
		motionStyle.Sprintf("Motion #%d", m.ID), Title(m.Kind.String()), stateStyle(v.State).Sprint(v.State))
	if m.Description != "" {
		fmt.Fprintf(r.out, "   %s\n", m.Description)
	}
	fmt.Fprintln(r.out)

	rows := TableData{
		{labelStyle.Sprint("Target"), m.Target.String()},
		{labelStyle.Sprint("Creator"), addressStyle.Sprint(m.Creator.Hex())},
		{labelStyle.Sprint("Created"), m.CreatedAt.Format(time.RFC3339)},
		{labelStyle.Sprint("Deadline"), fmt.Sprintf("%s (%s)", m.Deadline.Format(time.RFC3339), remaining(m.Deadline, result.At))},
		{labelStyle.Sprint("Requirement"), v.Quorum.Requirement.String()},
		{labelStyle.Sprint("Quorum"), fmt.Sprintf("%s of %d members", quorumLabel(v.Quorum), v.Quorum.Members)},
	}
	fmt.Fprintln(r.out, renderTable(rows, "   "))

	if len(result.Votes) == 0 {
		fmt.Fprintf(r.out, "\n%s\n", labelStyle.Sprint("No votes cast"))
		return nil
	}

	fmt.Fprintf(r.out, "\n%s (%d)\n", headerStyle.Sprint("Votes"), len(result.Votes))
	votes := TableData{}
	for _, vote := range result.Votes {
		votes = append(votes, []string{
			fmt.Sprintf("%d", vote.ID),
			addressStyle.Sprint(vote.Voter.Hex()),
			vote.CastAt.Format(time.RFC3339),
		})
	}
	fmt.Fprintln(r.out, renderTable(votes, "   "))
	return nil
}
