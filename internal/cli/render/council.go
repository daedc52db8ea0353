package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/trebuchet-org/council/internal/domain/config"
	"github.com/trebuchet-org/council/internal/domain/models"
	"github.com/trebuchet-org/council/internal/usecase"
)

var (
	labelStyle    = color.New(color.Faint)
	headerStyle   = color.New(color.Bold, color.FgHiWhite)
	governorStyle = color.New(color.FgMagenta, color.Bold)
	addressStyle  = color.New(color.FgCyan)
	motionStyle   = color.New(color.Bold)
)

// CouncilOutput is the structured form of a council snapshot
type CouncilOutput struct {
	Name            string              `json:"name" yaml:"name"`
	CreatedAt       time.Time           `json:"createdAt" yaml:"createdAt"`
	LastActivity    time.Time           `json:"lastActivity" yaml:"lastActivity"`
	Governor        *common.Address     `json:"governor,omitempty" yaml:"governor,omitempty"`
	Representatives []common.Address    `json:"representatives" yaml:"representatives"`
	Requirements    []RequirementOutput `json:"requirements" yaml:"requirements"`
	Motions         int                 `json:"motions" yaml:"motions"`
	OpenMotions     int                 `json:"openMotions" yaml:"openMotions"`
	ApprovedMotions int                 `json:"approvedMotions" yaml:"approvedMotions"`
	Votes           int                 `json:"votes" yaml:"votes"`
	Caller          *CallerOutput       `json:"caller,omitempty" yaml:"caller,omitempty"`
	Journal         string              `json:"journal" yaml:"journal"`
	JournalEntries  int                 `json:"journalEntries" yaml:"journalEntries"`
}

// RequirementOutput is the approval requirement of one motion kind
type RequirementOutput struct {
	Kind      models.MotionKind     `json:"kind" yaml:"kind"`
	Policy    models.ApprovalPolicy `json:"policy" yaml:"policy"`
	Threshold uint64                `json:"threshold" yaml:"threshold"`
	Vetoable  bool                  `json:"vetoable" yaml:"vetoable"`
}

// CallerOutput reports the roles of the configured caller
type CallerOutput struct {
	Address        common.Address `json:"address" yaml:"address"`
	Representative bool           `json:"representative" yaml:"representative"`
	Governor       bool           `json:"governor" yaml:"governor"`
}

// ActionOutput is the structured result of a motion operation
type ActionOutput struct {
	Seq           uint64               `json:"seq" yaml:"seq"`
	Op            models.OpType        `json:"op" yaml:"op"`
	VoteID        uint64               `json:"voteId,omitempty" yaml:"voteId,omitempty"`
	Motion        MotionOutput         `json:"motion" yaml:"motion"`
	Notifications []NotificationOutput `json:"notifications" yaml:"notifications"`
}

// CouncilRenderer renders council state and the results of operations
type CouncilRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

// NewCouncilRenderer creates a new council renderer
func NewCouncilRenderer(out io.Writer, format config.OutputFormat) *CouncilRenderer {
	return &CouncilRenderer{
		out:    out,
		format: format,
	}
}

func requirementOutputs(reqs map[models.MotionKind]models.ApprovalRequirement) []RequirementOutput {
	out := make([]RequirementOutput, 0, len(reqs))
	for kind, req := range reqs {
		out = append(out, RequirementOutput{Kind: kind, Policy: req.Policy, Threshold: req.Threshold, Vetoable: req.Vetoable})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// RenderInit renders the result of founding a council
func (r *CouncilRenderer) RenderInit(result *usecase.InitCouncilResult) error {
	if ok, err := Structured(r.out, r.format, r.councilOutput(result.Snapshot)); ok {
		return err
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Founded council %q", result.Snapshot.Name)))
	fmt.Fprintf(r.out, "   Governor: %s\n", governorStyle.Sprint(result.Genesis.Genesis.Founder.Hex()))
	fmt.Fprintf(r.out, "   Genesis:  %s\n", labelStyle.Sprint(result.Genesis.Hash.Hex()))
	fmt.Fprintf(r.out, "📁 journal: %s\n", getRelativePath(result.JournalLocation))
	if result.CouncilFileNew {
		fmt.Fprintf(r.out, "📁 created %s\n", getRelativePath(result.CouncilFile))
	}
	return nil
}

func (r *CouncilRenderer) councilOutput(s *models.CouncilSnapshot) CouncilOutput {
	return CouncilOutput{
		Name:            s.Name,
		CreatedAt:       s.CreatedAt,
		LastActivity:    s.LastActivity,
		Governor:        s.Governor,
		Representatives: s.Representatives,
		Requirements:    requirementOutputs(s.Requirements),
		Motions:         s.MotionCount,
		Votes:           s.VoteCount,
	}
}

// RenderCouncil renders the council overview
func (r *CouncilRenderer) RenderCouncil(result *usecase.ShowCouncilResult) error {
	out := r.councilOutput(result.Snapshot)
	out.OpenMotions = result.OpenMotions
	out.ApprovedMotions = result.ApprovedMotions
	out.Journal = result.JournalLocation
	out.JournalEntries = result.JournalEntries
	if result.Caller != nil {
		out.Caller = &CallerOutput{
			Address:        result.Caller.Address,
			Representative: result.Caller.Representative,
			Governor:       result.Caller.Governor,
		}
	}
	if ok, err := Structured(r.out, r.format, out); ok {
		return err
	}

	s := result.Snapshot
	fmt.Fprintf(r.out, "🏛  %s\n", headerStyle.Sprint(s.Name))
	fmt.Fprintf(r.out, "   %s %s   %s %s\n\n",
		labelStyle.Sprint("founded"), s.CreatedAt.Format(time.RFC3339),
		labelStyle.Sprint("last activity"), s.LastActivity.Format(time.RFC3339))

	fmt.Fprintln(r.out, headerStyle.Sprint("Governor"))
	if s.Governor != nil {
		fmt.Fprintf(r.out, "   %s\n\n", governorStyle.Sprint(s.Governor.Hex()))
	} else {
		fmt.Fprintf(r.out, "   %s\n\n", labelStyle.Sprint("(vacant)"))
	}

	fmt.Fprintf(r.out, "%s (%d)\n", headerStyle.Sprint("Representatives"), len(s.Representatives))
	for i, rep := range s.Representatives {
		line := addressStyle.Sprint(rep.Hex())
		if s.Governor != nil && *s.Governor == rep {
			line += " " + governorStyle.Sprint("governor")
		}
		fmt.Fprintf(r.out, "   %2d. %s\n", i+1, line)
	}
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, headerStyle.Sprint("Approval requirements"))
	rows := TableData{}
	for _, req := range out.Requirements {
		rows = append(rows, []string{
			Title(req.Kind.String()),
			models.ApprovalRequirement{Policy: req.Policy, Threshold: req.Threshold, Vetoable: req.Vetoable}.String(),
		})
	}
	fmt.Fprintln(r.out, renderTable(rows, "   "))
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "%s %d total, %d open, %d awaiting enactment, %d votes\n",
		headerStyle.Sprint("Motions"), s.MotionCount, result.OpenMotions, result.ApprovedMotions, s.VoteCount)

	if result.Caller != nil {
		roles := []string{}
		if result.Caller.Governor {
			roles = append(roles, "governor")
		}
		if result.Caller.Representative {
			roles = append(roles, "representative")
		}
		if len(roles) == 0 {
			roles = append(roles, "not a member")
		}
		fmt.Fprintf(r.out, "%s %s (%s)\n", headerStyle.Sprint("You"), ShortAddress(result.Caller.Address), joinRoles(roles))
	}
	fmt.Fprintf(r.out, "\n📁 journal: %s (%d entries)\n", getRelativePath(result.JournalLocation), result.JournalEntries)
	return nil
}

func joinRoles(roles []string) string {
	s := roles[0]
	for _, role := range roles[1:] {
		s += ", " + role
	}
	return s
}

// RenderProposed renders a newly created motion
func (r *CouncilRenderer) RenderProposed(result *usecase.ProposeMotionResult) error {
	if ok, err := Structured(r.out, r.format, ActionOutput{
		Seq:           result.Entry.Seq,
		Op:            result.Entry.Op,
		Motion:        motionOutput(result.Motion, nil),
		Notifications: []NotificationOutput{},
	}); ok {
		return err
	}

	m := result.Motion.Motion
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Proposed motion #%d: %s", m.ID, Title(m.Kind.String()))))
	fmt.Fprintf(r.out, "   Target:   %s\n", m.Target.String())
	fmt.Fprintf(r.out, "   Deadline: %s\n", m.Deadline.Format(time.RFC3339))
	fmt.Fprintf(r.out, "   Quorum:   %s\n", quorumLabel(result.Motion.Quorum))
	return nil
}

// RenderAction renders the outcome of vote, cancel, veto and enact
func (r *CouncilRenderer) RenderAction(result *usecase.MotionActionResult) error {
	if ok, err := Structured(r.out, r.format, ActionOutput{
		Seq:           result.Entry.Seq,
		Op:            result.Entry.Op,
		VoteID:        result.VoteID,
		Motion:        motionOutput(result.Motion, nil),
		Notifications: notificationOutputs(result.Notifications),
	}); ok {
		return err
	}

	m := result.Motion.Motion
	switch result.Entry.Op {
	case models.OpVote:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Voted for motion #%d (%s)", m.ID, quorumLabel(result.Motion.Quorum))))
	case models.OpCancel:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Cancelled motion #%d", m.ID)))
	case models.OpVeto:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Vetoed motion #%d", m.ID)))
	case models.OpEnact:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Enacted motion #%d: %s %s", m.ID, Title(m.Kind.String()), m.Target.String())))
	}

	for _, n := range result.Notifications {
		fmt.Fprintf(r.out, "   🔔 %s %s\n", notificationStyle(n.NotificationType()).Sprint(n.NotificationType()), labelStyle.Sprint(n.String()))
	}
	return nil
}

func notificationStyle(t models.NotificationType) *color.Color {
	switch t {
	case models.NotificationMotionApproved, models.NotificationMotionEnacted:
		return color.New(color.FgGreen)
	case models.NotificationMotionVetoed, models.NotificationMotionCancelled, models.NotificationRepresentativeDismissed:
		return color.New(color.FgRed)
	case models.NotificationGovernorChanged, models.NotificationApprovalRequirementRevised:
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgCyan)
	}
}

func quorumLabel(q models.QuorumStatus) string {
	label := fmt.Sprintf("%d/%d votes", q.Cast, q.Required)
	if q.Reached() {
		label += ", reached"
	}
	return label
}
