package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// OpType is the operation recorded by a journal entry
type OpType string

const (
	OpGenesis OpType = "genesis"
	OpPropose OpType = "propose"
	OpVote    OpType = "vote"
	OpCancel  OpType = "cancel"
	OpVeto    OpType = "veto"
	OpEnact   OpType = "enact"
)

// GenesisPayload founds a council
type GenesisPayload struct {
	Name    string         `json:"name"`
	Founder common.Address `json:"founder"`
}

// ProposalPayload carries the inputs of a propose operation. Exactly one of
// Target and Revision is set, depending on Kind.
type ProposalPayload struct {
	Kind        MotionKind           `json:"kind"`
	Description string               `json:"description"`
	Deadline    time.Time            `json:"deadline"`
	Target      *common.Address      `json:"target,omitempty"`
	Revision    *RequirementRevision `json:"revision,omitempty"`
}

// MotionTarget rebuilds the tagged target from the payload
func (p *ProposalPayload) MotionTarget() (MotionTarget, error) {
	if p.Kind == KindReviseApprovalRequirement {
		if p.Revision == nil {
			return nil, fmt.Errorf("proposal of kind %s has no revision", p.Kind)
		}
		return *p.Revision, nil
	}
	if p.Target == nil {
		return nil, fmt.Errorf("proposal of kind %s has no target", p.Kind)
	}
	return RepresentativeTarget{Address: *p.Target}, nil
}

// JournalEntry is one accepted operation together with the ambient time and
// caller it was accepted with. Replaying all entries in Seq order rebuilds the
// council deterministically.
type JournalEntry struct {
	Seq      uint64           `json:"seq"`
	At       time.Time        `json:"at"`
	Caller   common.Address   `json:"caller"`
	Op       OpType           `json:"op"`
	MotionID uint64           `json:"motionId"`
	Genesis  *GenesisPayload  `json:"genesis,omitempty"`
	Proposal *ProposalPayload `json:"proposal,omitempty"`
	PrevHash common.Hash      `json:"prevHash"`
	Hash     common.Hash      `json:"hash"`
}

// ComputeHash hashes the canonical JSON encoding of the entry with Hash zeroed
func (e *JournalEntry) ComputeHash() (common.Hash, error) {
	c := *e
	c.Hash = common.Hash{}
	data, err := json.Marshal(&c)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode journal entry %d: %w", e.Seq, err)
	}
	return crypto.Keccak256Hash(data), nil
}

// Seal links the entry after prev (nil for genesis) and fills in its hash
func (e *JournalEntry) Seal(prev *JournalEntry) error {
	e.At = e.At.UTC()
	if prev == nil {
		e.Seq = 0
		e.PrevHash = common.Hash{}
	} else {
		e.Seq = prev.Seq + 1
		e.PrevHash = prev.Hash
	}
	h, err := e.ComputeHash()
	if err != nil {
		return err
	}
	e.Hash = h
	return nil
}

// VerifyJournal checks sequence numbers and the hash chain
func VerifyJournal(entries []*JournalEntry) error {
	var prev common.Hash
	for i, e := range entries {
		if e.Seq != uint64(i) {
			return fmt.Errorf("journal entry %d has sequence %d", i, e.Seq)
		}
		if e.PrevHash != prev {
			return fmt.Errorf("journal entry %d does not link to its predecessor", i)
		}
		h, err := e.ComputeHash()
		if err != nil {
			return err
		}
		if h != e.Hash {
			return fmt.Errorf("journal entry %d hash mismatch: stored %s, computed %s", i, e.Hash.Hex(), h.Hex())
		}
		prev = e.Hash
	}
	return nil
}
