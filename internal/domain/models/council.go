package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MotionKind identifies which part of the council a motion changes
type MotionKind uint8

const (
	KindElectRepresentative MotionKind = iota
	KindDismissRepresentative
	KindElectGovernor
	KindReviseApprovalRequirement
)

// MotionKindCount is the number of fixed motion kinds
const MotionKindCount = 4

// AllMotionKinds lists every motion kind in table order
var AllMotionKinds = []MotionKind{
	KindElectRepresentative,
	KindDismissRepresentative,
	KindElectGovernor,
	KindReviseApprovalRequirement,
}

var motionKindNames = [MotionKindCount]string{
	"elect-representative",
	"dismiss-representative",
	"elect-governor",
	"revise-approval-requirement",
}

// Valid reports whether k is one of the four fixed kinds
func (k MotionKind) Valid() bool {
	return k < MotionKindCount
}

func (k MotionKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("MotionKind(%d)", uint8(k))
	}
	return motionKindNames[k]
}

func (k MotionKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid motion kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *MotionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseMotionKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseMotionKind accepts the canonical name or a short alias
func ParseMotionKind(s string) (MotionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elect-representative", "elect":
		return KindElectRepresentative, nil
	case "dismiss-representative", "dismiss":
		return KindDismissRepresentative, nil
	case "elect-governor", "governor":
		return KindElectGovernor, nil
	case "revise-approval-requirement", "revise":
		return KindReviseApprovalRequirement, nil
	default:
		return 0, fmt.Errorf("unknown motion kind %q", s)
	}
}

// ApprovalPolicy selects the quorum arithmetic for a motion kind
type ApprovalPolicy uint8

const (
	PolicyMajority ApprovalPolicy = iota
	PolicyFixedCount
	PolicyFixedPercent
)

var approvalPolicyNames = [...]string{"majority", "fixed-count", "fixed-percent"}

// Valid reports whether p is a known policy
func (p ApprovalPolicy) Valid() bool {
	return int(p) < len(approvalPolicyNames)
}

func (p ApprovalPolicy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("ApprovalPolicy(%d)", uint8(p))
	}
	return approvalPolicyNames[p]
}

func (p ApprovalPolicy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid approval policy %d", uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *ApprovalPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseApprovalPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseApprovalPolicy parses a policy name such as "majority" or "count"
func ParseApprovalPolicy(s string) (ApprovalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "majority":
		return PolicyMajority, nil
	case "fixed-count", "count":
		return PolicyFixedCount, nil
	case "fixed-percent", "percent":
		return PolicyFixedPercent, nil
	default:
		return 0, fmt.Errorf("unknown approval policy %q", s)
	}
}

// ApprovalRequirement is the quorum rule for one motion kind
type ApprovalRequirement struct {
	Policy    ApprovalPolicy `json:"policy" yaml:"policy"`
	Threshold uint64         `json:"threshold" yaml:"threshold"`
	Vetoable  bool           `json:"vetoable" yaml:"vetoable"`
}

// DefaultApprovalRequirement is the rule every kind starts with
func DefaultApprovalRequirement() ApprovalRequirement {
	return ApprovalRequirement{Policy: PolicyMajority, Threshold: 1, Vetoable: false}
}

func (r ApprovalRequirement) String() string {
	s := r.Policy.String()
	switch r.Policy {
	case PolicyFixedCount:
		s = fmt.Sprintf("%s(%d)", s, r.Threshold)
	case PolicyFixedPercent:
		s = fmt.Sprintf("%s(%d%%)", s, r.Threshold)
	}
	if r.Vetoable {
		s += ", vetoable"
	}
	return s
}

// MotionTarget is the kind-specific payload of a motion. It is either a
// RepresentativeTarget or a RequirementRevision.
type MotionTarget interface {
	isMotionTarget()
	String() string
}

// RepresentativeTarget names the identity an elect/dismiss/governor motion acts on
type RepresentativeTarget struct {
	Address common.Address `json:"address"`
}

func (RepresentativeTarget) isMotionTarget() {}

func (t RepresentativeTarget) String() string {
	return t.Address.Hex()
}

// RequirementRevision replaces the approval requirement of Kind
type RequirementRevision struct {
	Kind        MotionKind          `json:"kind"`
	Requirement ApprovalRequirement `json:"requirement"`
}

func (RequirementRevision) isMotionTarget() {}

func (r RequirementRevision) String() string {
	return fmt.Sprintf("%s -> %s", r.Kind, r.Requirement)
}

// MotionStatus holds the set-once lifecycle flags of a motion
type MotionStatus struct {
	Approved  bool `json:"approved"`
	Enacted   bool `json:"enacted"`
	Vetoed    bool `json:"vetoed"`
	Cancelled bool `json:"cancelled"`
}

// MotionState is a display label derived from status flags and time
type MotionState string

const (
	MotionStateOpen      MotionState = "open"
	MotionStateApproved  MotionState = "approved"
	MotionStateEnacted   MotionState = "enacted"
	MotionStateVetoed    MotionState = "vetoed"
	MotionStateCancelled MotionState = "cancelled"
	MotionStateExpired   MotionState = "expired"
)

// Motion is a proposed change request
type Motion struct {
	ID          uint64         `json:"id"`
	Kind        MotionKind     `json:"kind"`
	Target      MotionTarget   `json:"target"`
	Description string         `json:"description"`
	Creator     common.Address `json:"creator"`
	Deadline    time.Time      `json:"deadline"`
	CreatedAt   time.Time      `json:"createdAt"`
	Status      MotionStatus   `json:"status"`
}

// IsOpen reports whether the motion still accepts votes, cancellation, veto
// and enactment at the given time.
func (m *Motion) IsOpen(at time.Time) bool {
	return !at.After(m.Deadline) && !m.Status.Vetoed && !m.Status.Cancelled
}

// State summarises the motion for listings
func (m *Motion) State(at time.Time) MotionState {
	switch {
	case m.Status.Enacted:
		return MotionStateEnacted
	case m.Status.Vetoed:
		return MotionStateVetoed
	case m.Status.Cancelled:
		return MotionStateCancelled
	case at.After(m.Deadline):
		return MotionStateExpired
	case m.Status.Approved:
		return MotionStateApproved
	default:
		return MotionStateOpen
	}
}

// RepresentativeAddress returns the target identity for representative-target kinds
func (m *Motion) RepresentativeAddress() (common.Address, bool) {
	t, ok := m.Target.(RepresentativeTarget)
	return t.Address, ok
}

// Revision returns the payload of a revise-approval-requirement motion
func (m *Motion) Revision() (RequirementRevision, bool) {
	r, ok := m.Target.(RequirementRevision)
	return r, ok
}

// Clone returns a copy that shares no mutable state with m
func (m *Motion) Clone() *Motion {
	c := *m
	return &c
}

// Vote is one cast vote. The same voter may appear many times for one motion.
type Vote struct {
	ID       uint64         `json:"id"`
	MotionID uint64         `json:"motionId"`
	Voter    common.Address `json:"voter"`
	CastAt   time.Time      `json:"castAt"`
}

// QuorumStatus is the live quorum arithmetic of a motion
type QuorumStatus struct {
	Requirement ApprovalRequirement `json:"requirement"`
	Members     uint64              `json:"members"`
	Required    uint64              `json:"required"`
	Cast        uint64              `json:"cast"`
}

// Reached reports whether cast votes meet the requirement
func (q QuorumStatus) Reached() bool {
	return q.Cast >= q.Required
}

// CouncilSnapshot is a consistent copy of council state between operations
type CouncilSnapshot struct {
	Name            string                             `json:"name"`
	CreatedAt       time.Time                          `json:"createdAt"`
	LastActivity    time.Time                          `json:"lastActivity"`
	Representatives []common.Address                   `json:"representatives"`
	Governor        *common.Address                    `json:"governor,omitempty"`
	Requirements    map[MotionKind]ApprovalRequirement `json:"requirements"`
	MotionCount     int                                `json:"motionCount"`
	VoteCount       int                                `json:"voteCount"`
}
