// Package council implements the motion lifecycle of a governance council:
// representatives propose motions, vote on them under a per-kind quorum rule,
// and enact approved motions to change the roster, the governor seat or the
// quorum rules themselves.
//
// A Council owns every component behind a single lock. Each operation checks
// all of its preconditions before it mutates anything, so a failed operation
// leaves no trace.
package council

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// Actor is the authenticated caller and the ambient time of an operation
type Actor struct {
	Caller common.Address
	At     time.Time
}

// Council is the single owning context of all council state
type Council struct {
	mu sync.RWMutex

	name      string
	createdAt time.Time
	lastAt    time.Time

	registry *Registry
	policies *PolicyTable
	motions  *MotionStore
	votes    *VoteLedger
	governor GovernorSeat
}

// New founds a council. The founder becomes its sole representative and its
// governor.
func New(name string, founder common.Address, at time.Time) *Council {
	c := &Council{
		name:      name,
		createdAt: at,
		lastAt:    at,
		registry:  NewRegistry(),
		policies:  NewPolicyTable(),
		motions:   NewMotionStore(),
		votes:     NewVoteLedger(),
	}
	c.registry.Add(founder)
	c.governor.Set(founder)
	return c
}

// ProposeElectRepresentative proposes adding target to the roster
func (c *Council) ProposeElectRepresentative(actor Actor, description string, target common.Address, deadline time.Time) (uint64, error) {
	return c.proposeForRepresentative(actor, models.KindElectRepresentative, description, target, deadline)
}

// ProposeDismissRepresentative proposes removing target from the roster
func (c *Council) ProposeDismissRepresentative(actor Actor, description string, target common.Address, deadline time.Time) (uint64, error) {
	return c.proposeForRepresentative(actor, models.KindDismissRepresentative, description, target, deadline)
}

// ProposeElectGovernor proposes seating target as governor
func (c *Council) ProposeElectGovernor(actor Actor, description string, target common.Address, deadline time.Time) (uint64, error) {
	return c.proposeForRepresentative(actor, models.KindElectGovernor, description, target, deadline)
}

// ProposeReviseApprovalRequirement proposes replacing the requirement of
// targetKind. Unlike a revision that only ever touches its own kind's slot,
// the revision records the kind it applies to.
func (c *Council) ProposeReviseApprovalRequirement(
	actor Actor,
	description string,
	targetKind models.MotionKind,
	policy models.ApprovalPolicy,
	threshold uint64,
	vetoable bool,
	deadline time.Time,
) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "propose"
	if err := c.admit(op, actor); err != nil {
		return 0, err
	}
	if !targetKind.Valid() || !policy.Valid() {
		return 0, &domain.OperationError{Op: op, Err: domain.ErrInvalidTarget}
	}
	revision := models.RequirementRevision{
		Kind: targetKind,
		Requirement: models.ApprovalRequirement{
			Policy:    policy,
			Threshold: threshold,
			Vetoable:  vetoable,
		},
	}
	return c.create(op, actor, models.KindReviseApprovalRequirement, revision, description, deadline)
}

func (c *Council) proposeForRepresentative(
	actor Actor,
	kind models.MotionKind,
	description string,
	target common.Address,
	deadline time.Time,
) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "propose"
	if err := c.admit(op, actor); err != nil {
		return 0, err
	}

	var valid bool
	switch kind {
	case models.KindElectRepresentative:
		valid = !c.registry.Contains(target)
	case models.KindDismissRepresentative:
		valid = c.registry.Contains(target)
	case models.KindElectGovernor:
		valid = !c.governor.Is(target)
	}
	if !valid {
		return 0, &domain.OperationError{Op: op, Err: domain.ErrInvalidTarget}
	}
	return c.create(op, actor, kind, models.RepresentativeTarget{Address: target}, description, deadline)
}

func (c *Council) create(
	op string,
	actor Actor,
	kind models.MotionKind,
	target models.MotionTarget,
	description string,
	deadline time.Time,
) (uint64, error) {
	id, err := c.motions.Create(kind, target, description, actor.Caller, deadline, actor.At)
	if err != nil {
		return 0, &domain.OperationError{Op: op, Err: err}
	}
	c.lastAt = actor.At
	return id, nil
}

// Vote casts a vote by the caller and approves the motion when its quorum is
// reached for the first time.
func (c *Council) Vote(actor Actor, motionID uint64) (uint64, []models.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "vote"
	if err := c.admit(op, actor); err != nil {
		return 0, nil, err
	}
	m, err := c.openMotion(op, motionID, actor.At)
	if err != nil {
		return 0, nil, err
	}

	voteID := c.votes.Cast(motionID, actor.Caller, actor.At)
	notes := []models.Notification{
		models.VotePlacedNotification{MotionID: motionID, VoteID: voteID, Voter: actor.Caller},
	}

	q := c.quorum(m)
	if !m.Status.Approved && q.Reached() {
		c.motions.markApproved(m)
		notes = append(notes, models.MotionApprovedNotification{
			MotionID: motionID,
			Votes:    q.Cast,
			Required: q.Required,
		})
	}
	c.lastAt = actor.At
	return voteID, notes, nil
}

// Cancel withdraws an open motion. Only its creator may cancel, and only
// while still a representative or the governor.
func (c *Council) Cancel(actor Actor, motionID uint64) ([]models.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "cancel"
	if err := c.admit(op, actor); err != nil {
		return nil, err
	}
	m, err := c.motions.Get(motionID)
	if err != nil {
		return nil, domain.NewMotionError(op, motionID, err)
	}
	if m.Creator != actor.Caller {
		return nil, domain.NewMotionError(op, motionID, domain.ErrNotCreator)
	}
	if !m.IsOpen(actor.At) {
		return nil, domain.NewMotionError(op, motionID, domain.ErrMotionNotOpen)
	}

	c.motions.markCancelled(m)
	c.lastAt = actor.At
	return []models.Notification{
		models.MotionCancelledNotification{MotionID: motionID, By: actor.Caller},
	}, nil
}

// Veto rejects an open motion whose kind is vetoable. Only the governor may veto.
func (c *Council) Veto(actor Actor, motionID uint64) ([]models.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "veto"
	if err := c.checkClock(op, actor.At); err != nil {
		return nil, err
	}
	if !c.governor.Is(actor.Caller) {
		return nil, &domain.OperationError{Op: op, Err: domain.ErrUnauthorized}
	}
	m, err := c.openMotion(op, motionID, actor.At)
	if err != nil {
		return nil, err
	}
	if !c.policies.Get(m.Kind).Vetoable {
		return nil, domain.NewMotionError(op, motionID, domain.ErrNotVetoable)
	}

	c.motions.markVetoed(m)
	c.lastAt = actor.At
	return []models.Notification{
		models.MotionVetoedNotification{MotionID: motionID, By: actor.Caller},
	}, nil
}

// Enact applies an approved, open motion. The kind-specific notifications are
// followed by MotionEnacted.
func (c *Council) Enact(actor Actor, motionID uint64) ([]models.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const op = "enact"
	if err := c.admit(op, actor); err != nil {
		return nil, err
	}
	m, err := c.openMotion(op, motionID, actor.At)
	if err != nil {
		return nil, err
	}
	if !m.Status.Approved {
		return nil, domain.NewMotionError(op, motionID, domain.ErrNotApproved)
	}
	if m.Status.Enacted {
		return nil, domain.NewMotionError(op, motionID, domain.ErrAlreadyEnacted)
	}
	// The roster may have changed since the motion was proposed.
	if err := c.checkEffect(m); err != nil {
		return nil, domain.NewMotionError(op, motionID, err)
	}

	c.motions.markEnacted(m)
	notes := c.applyEffect(m)
	notes = append(notes, models.MotionEnactedNotification{
		MotionID: motionID,
		Kind:     m.Kind,
		By:       actor.Caller,
	})
	c.lastAt = actor.At
	return notes, nil
}

func (c *Council) checkEffect(m *models.Motion) error {
	switch m.Kind {
	case models.KindElectRepresentative:
		addr, _ := m.RepresentativeAddress()
		if c.registry.Contains(addr) {
			return domain.ErrInvalidTarget
		}
	case models.KindDismissRepresentative:
		addr, _ := m.RepresentativeAddress()
		if !c.registry.Contains(addr) {
			return domain.ErrInvalidTarget
		}
	}
	return nil
}

func (c *Council) applyEffect(m *models.Motion) []models.Notification {
	switch m.Kind {
	case models.KindElectRepresentative:
		addr, _ := m.RepresentativeAddress()
		c.registry.Add(addr)
		return []models.Notification{
			models.RepresentativeElectedNotification{MotionID: m.ID, Representative: addr},
		}

	case models.KindDismissRepresentative:
		addr, _ := m.RepresentativeAddress()
		var notes []models.Notification
		if c.governor.Is(addr) {
			c.governor.Vacate()
			prev := addr
			notes = append(notes, models.GovernorChangedNotification{MotionID: m.ID, Previous: &prev})
		}
		c.registry.Remove(addr)
		return append(notes, models.RepresentativeDismissedNotification{MotionID: m.ID, Representative: addr})

	case models.KindElectGovernor:
		addr, _ := m.RepresentativeAddress()
		n := models.GovernorChangedNotification{MotionID: m.ID, Governor: &addr}
		if prev, ok := c.governor.Get(); ok {
			n.Previous = &prev
		}
		if !c.registry.Contains(addr) {
			c.registry.Add(addr)
			n.Inducted = true
		}
		c.governor.Set(addr)
		return []models.Notification{n}

	case models.KindReviseApprovalRequirement:
		rev, _ := m.Revision()
		prev := c.policies.Get(rev.Kind)
		c.policies.Set(rev.Kind, rev.Requirement)
		return []models.Notification{
			models.ApprovalRequirementRevisedNotification{
				MotionID:    m.ID,
				Kind:        rev.Kind,
				Previous:    prev,
				Requirement: rev.Requirement,
			},
		}
	}
	return nil
}

// admit checks the clock and that the caller is a representative or the governor
func (c *Council) admit(op string, actor Actor) error {
	if err := c.checkClock(op, actor.At); err != nil {
		return err
	}
	if !c.isMember(actor.Caller) {
		return &domain.OperationError{Op: op, Err: domain.ErrUnauthorized}
	}
	return nil
}

func (c *Council) checkClock(op string, at time.Time) error {
	if at.Before(c.lastAt) {
		return &domain.OperationError{Op: op, Err: domain.ErrClockRegression}
	}
	return nil
}

func (c *Council) openMotion(op string, motionID uint64, at time.Time) (*models.Motion, error) {
	m, err := c.motions.Get(motionID)
	if err != nil {
		return nil, domain.NewMotionError(op, motionID, err)
	}
	if !m.IsOpen(at) {
		return nil, domain.NewMotionError(op, motionID, domain.ErrMotionNotOpen)
	}
	return m, nil
}

func (c *Council) isMember(addr common.Address) bool {
	return c.registry.Contains(addr) || c.governor.Is(addr)
}

func (c *Council) quorum(m *models.Motion) models.QuorumStatus {
	req := c.policies.Get(m.Kind)
	n := uint64(c.registry.Count())
	return models.QuorumStatus{
		Requirement: req,
		Members:     n,
		Required:    RequiredVotes(req, n),
		Cast:        c.votes.CountFor(m.ID),
	}
}
