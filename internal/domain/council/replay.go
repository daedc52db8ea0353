package council

import (
	"fmt"

	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// Result is the outcome of applying one journal entry
type Result struct {
	MotionID      uint64
	VoteID        uint64
	Notifications []models.Notification
}

// FromGenesis founds a council from a genesis entry
func FromGenesis(e *models.JournalEntry) (*Council, error) {
	if e.Op != models.OpGenesis || e.Genesis == nil {
		return nil, fmt.Errorf("journal entry %d is %q, expected genesis", e.Seq, e.Op)
	}
	return New(e.Genesis.Name, e.Genesis.Founder, e.At), nil
}

// Apply performs the operation recorded in e. It is the single entry point
// for both live operations and replay.
func (c *Council) Apply(e *models.JournalEntry) (*Result, error) {
	actor := Actor{Caller: e.Caller, At: e.At}

	switch e.Op {
	case models.OpPropose:
		id, err := c.applyProposal(actor, e.Proposal)
		if err != nil {
			return nil, err
		}
		return &Result{MotionID: id}, nil

	case models.OpVote:
		voteID, notes, err := c.Vote(actor, e.MotionID)
		if err != nil {
			return nil, err
		}
		return &Result{MotionID: e.MotionID, VoteID: voteID, Notifications: notes}, nil

	case models.OpCancel:
		notes, err := c.Cancel(actor, e.MotionID)
		if err != nil {
			return nil, err
		}
		return &Result{MotionID: e.MotionID, Notifications: notes}, nil

	case models.OpVeto:
		notes, err := c.Veto(actor, e.MotionID)
		if err != nil {
			return nil, err
		}
		return &Result{MotionID: e.MotionID, Notifications: notes}, nil

	case models.OpEnact:
		notes, err := c.Enact(actor, e.MotionID)
		if err != nil {
			return nil, err
		}
		return &Result{MotionID: e.MotionID, Notifications: notes}, nil

	case models.OpGenesis:
		return nil, fmt.Errorf("council %q already founded", c.Name())

	default:
		return nil, fmt.Errorf("unknown journal operation %q", e.Op)
	}
}

func (c *Council) applyProposal(actor Actor, p *models.ProposalPayload) (uint64, error) {
	if p == nil {
		return 0, &domain.OperationError{Op: "propose", Err: domain.ErrInvalidTarget}
	}
	target, err := p.MotionTarget()
	if err != nil {
		return 0, &domain.OperationError{Op: "propose", Err: fmt.Errorf("%w: %v", domain.ErrInvalidTarget, err)}
	}

	switch t := target.(type) {
	case models.RequirementRevision:
		return c.ProposeReviseApprovalRequirement(actor, p.Description,
			t.Kind, t.Requirement.Policy, t.Requirement.Threshold, t.Requirement.Vetoable, p.Deadline)
	case models.RepresentativeTarget:
		switch p.Kind {
		case models.KindElectRepresentative:
			return c.ProposeElectRepresentative(actor, p.Description, t.Address, p.Deadline)
		case models.KindDismissRepresentative:
			return c.ProposeDismissRepresentative(actor, p.Description, t.Address, p.Deadline)
		case models.KindElectGovernor:
			return c.ProposeElectGovernor(actor, p.Description, t.Address, p.Deadline)
		}
	}
	return 0, &domain.OperationError{Op: "propose", Err: domain.ErrInvalidTarget}
}

// Replay rebuilds a council from a complete journal. Every entry must apply
// cleanly and propose entries must reproduce their recorded motion id.
func Replay(entries []*models.JournalEntry) (*Council, error) {
	if len(entries) == 0 {
		return nil, domain.ErrNoCouncil
	}
	c, err := FromGenesis(entries[0])
	if err != nil {
		return nil, err
	}
	for _, e := range entries[1:] {
		res, err := c.Apply(e)
		if err != nil {
			return nil, fmt.Errorf("replay of journal entry %d (%s) failed: %w", e.Seq, e.Op, err)
		}
		if e.Op == models.OpPropose && res.MotionID != e.MotionID {
			return nil, fmt.Errorf("replay of journal entry %d produced motion %d, journal recorded %d", e.Seq, res.MotionID, e.MotionID)
		}
	}
	return c, nil
}
