package council

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/council/internal/domain/models"
)

// VoteLedger records cast votes in a global append-only sequence, indexed by
// motion and by voter. Repeated votes by one voter are kept and counted.
type VoteLedger struct {
	votes    []models.Vote
	byMotion map[uint64][]uint64
	byVoter  map[common.Address][]uint64
}

// NewVoteLedger creates an empty ledger
func NewVoteLedger() *VoteLedger {
	return &VoteLedger{
		byMotion: make(map[uint64][]uint64),
		byVoter:  make(map[common.Address][]uint64),
	}
}

// Cast appends a vote and returns its id
func (l *VoteLedger) Cast(motionID uint64, voter common.Address, at time.Time) uint64 {
	id := uint64(len(l.votes))
	l.votes = append(l.votes, models.Vote{
		ID:       id,
		MotionID: motionID,
		Voter:    voter,
		CastAt:   at,
	})
	l.byMotion[motionID] = append(l.byMotion[motionID], id)
	l.byVoter[voter] = append(l.byVoter[voter], id)
	return id
}

// CountFor is the number of votes cast on a motion, duplicates included
func (l *VoteLedger) CountFor(motionID uint64) uint64 {
	return uint64(len(l.byMotion[motionID]))
}

// VotesFor returns the votes cast on a motion in cast order
func (l *VoteLedger) VotesFor(motionID uint64) []models.Vote {
	return l.collect(l.byMotion[motionID])
}

// VotesBy returns the votes cast by a voter in cast order
func (l *VoteLedger) VotesBy(voter common.Address) []models.Vote {
	return l.collect(l.byVoter[voter])
}

// Len is the number of votes ever cast
func (l *VoteLedger) Len() int {
	return len(l.votes)
}

func (l *VoteLedger) collect(ids []uint64) []models.Vote {
	out := make([]models.Vote, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.votes[id])
	}
	return out
}
