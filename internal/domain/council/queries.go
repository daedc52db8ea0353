package council

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// Name is the council name recorded at genesis
func (c *Council) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// LastActivity is the time of the last accepted operation
func (c *Council) LastActivity() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastAt
}

func (c *Council) IsGovernor(addr common.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.governor.Is(addr)
}

func (c *Council) IsRepresentative(addr common.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.Contains(addr)
}

func (c *Council) RepresentativeCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.Count()
}

// Governor returns the governor, if the seat is occupied
func (c *Council) Governor() (common.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.governor.Get()
}

// Representatives returns the roster in position order
func (c *Council) Representatives() []common.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.registry.Members()
}

// Requirement returns the current approval requirement of kind
func (c *Council) Requirement(kind models.MotionKind) (models.ApprovalRequirement, error) {
	if !kind.Valid() {
		return models.ApprovalRequirement{}, domain.ErrInvalidTarget
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.policies.Get(kind), nil
}

// Motion returns a copy of a motion
func (c *Council) Motion(id uint64) (*models.Motion, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, err := c.motions.Get(id)
	if err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

// Motions returns copies of all motions in id order
func (c *Council) Motions() []*models.Motion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.motions.All()
}

// Votes returns the votes cast on a motion
func (c *Council) Votes(id uint64) ([]models.Vote, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, err := c.motions.Get(id); err != nil {
		return nil, err
	}
	return c.votes.VotesFor(id), nil
}

// VotesBy returns every vote cast by addr
func (c *Council) VotesBy(addr common.Address) []models.Vote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.votes.VotesBy(addr)
}

// Quorum evaluates the live quorum arithmetic of a motion against the
// current roster and requirement.
func (c *Council) Quorum(id uint64) (models.QuorumStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, err := c.motions.Get(id)
	if err != nil {
		return models.QuorumStatus{}, err
	}
	return c.quorum(m), nil
}

// Snapshot copies the council state under one read lock
func (c *Council) Snapshot() *models.CouncilSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := &models.CouncilSnapshot{
		Name:            c.name,
		CreatedAt:       c.createdAt,
		LastActivity:    c.lastAt,
		Representatives: c.registry.Members(),
		Requirements:    c.policies.All(),
		MotionCount:     c.motions.Len(),
		VoteCount:       c.votes.Len(),
	}
	if gov, ok := c.governor.Get(); ok {
		s.Governor = &gov
	}
	return s
}
