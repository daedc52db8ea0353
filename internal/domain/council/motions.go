package council

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// MotionStore is the append-only sequence of motions. A motion's id is its
// index and entries are never removed or reordered.
type MotionStore struct {
	motions []*models.Motion
}

// NewMotionStore creates an empty store
func NewMotionStore() *MotionStore {
	return &MotionStore{}
}

// Create appends a motion. Target-state preconditions are checked by the
// caller; Create only enforces that the deadline lies after now.
func (s *MotionStore) Create(
	kind models.MotionKind,
	target models.MotionTarget,
	description string,
	creator common.Address,
	deadline time.Time,
	now time.Time,
) (uint64, error) {
	if !deadline.After(now) {
		return 0, domain.ErrInvalidDeadline
	}
	id := uint64(len(s.motions))
	s.motions = append(s.motions, &models.Motion{
		ID:          id,
		Kind:        kind,
		Target:      target,
		Description: description,
		Creator:     creator,
		Deadline:    deadline,
		CreatedAt:   now,
	})
	return id, nil
}

// NextID is the id the next created motion will receive
func (s *MotionStore) NextID() uint64 {
	return uint64(len(s.motions))
}

// Get returns the stored motion. The pointer is owned by the store.
func (s *MotionStore) Get(id uint64) (*models.Motion, error) {
	if id >= uint64(len(s.motions)) {
		return nil, domain.ErrNotFound
	}
	return s.motions[id], nil
}

func (s *MotionStore) markApproved(m *models.Motion)  { m.Status.Approved = true }
func (s *MotionStore) markEnacted(m *models.Motion)   { m.Status.Enacted = true }
func (s *MotionStore) markVetoed(m *models.Motion)    { m.Status.Vetoed = true }
func (s *MotionStore) markCancelled(m *models.Motion) { m.Status.Cancelled = true }

// Len is the number of motions ever created
func (s *MotionStore) Len() int {
	return len(s.motions)
}

// All returns copies of every motion in id order
func (s *MotionStore) All() []*models.Motion {
	out := make([]*models.Motion, len(s.motions))
	for i, m := range s.motions {
		out[i] = m.Clone()
	}
	return out
}
