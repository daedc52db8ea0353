package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

type NotificationType string

const (
	NotificationVotePlaced                 NotificationType = "VotePlaced"
	NotificationMotionApproved             NotificationType = "MotionApproved"
	NotificationMotionCancelled            NotificationType = "MotionCancelled"
	NotificationMotionVetoed               NotificationType = "MotionVetoed"
	NotificationMotionEnacted              NotificationType = "MotionEnacted"
	NotificationRepresentativeElected      NotificationType = "RepresentativeElected"
	NotificationRepresentativeDismissed    NotificationType = "RepresentativeDismissed"
	NotificationGovernorChanged            NotificationType = "GovernorChanged"
	NotificationApprovalRequirementRevised NotificationType = "ApprovalRequirementRevised"
)

// Notification is an observation of a successful state transition
type Notification interface {
	NotificationType() NotificationType
	Motion() uint64
	String() string
}

func short(a common.Address) string {
	return a.Hex()[:10] + "..."
}

// VotePlacedNotification is emitted for every accepted vote
type VotePlacedNotification struct {
	MotionID uint64         `json:"motionId"`
	VoteID   uint64         `json:"voteId"`
	Voter    common.Address `json:"voter"`
}

func (VotePlacedNotification) NotificationType() NotificationType {
	return NotificationVotePlaced
}

func (n VotePlacedNotification) Motion() uint64 { return n.MotionID }

func (n VotePlacedNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, vote=%d, voter=%s",
		n.NotificationType(), n.MotionID, n.VoteID, short(n.Voter))
}

// MotionApprovedNotification is emitted once, when quorum is first reached
type MotionApprovedNotification struct {
	MotionID uint64 `json:"motionId"`
	Votes    uint64 `json:"votes"`
	Required uint64 `json:"required"`
}

func (MotionApprovedNotification) NotificationType() NotificationType {
	return NotificationMotionApproved
}

func (n MotionApprovedNotification) Motion() uint64 { return n.MotionID }

func (n MotionApprovedNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, votes=%d/%d",
		n.NotificationType(), n.MotionID, n.Votes, n.Required)
}

type MotionCancelledNotification struct {
	MotionID uint64         `json:"motionId"`
	By       common.Address `json:"by"`
}

func (MotionCancelledNotification) NotificationType() NotificationType {
	return NotificationMotionCancelled
}

func (n MotionCancelledNotification) Motion() uint64 { return n.MotionID }

func (n MotionCancelledNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, by=%s", n.NotificationType(), n.MotionID, short(n.By))
}

type MotionVetoedNotification struct {
	MotionID uint64         `json:"motionId"`
	By       common.Address `json:"by"`
}

func (MotionVetoedNotification) NotificationType() NotificationType {
	return NotificationMotionVetoed
}

func (n MotionVetoedNotification) Motion() uint64 { return n.MotionID }

func (n MotionVetoedNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, by=%s", n.NotificationType(), n.MotionID, short(n.By))
}

// MotionEnactedNotification follows the kind-specific enactment notification
type MotionEnactedNotification struct {
	MotionID uint64         `json:"motionId"`
	Kind     MotionKind     `json:"kind"`
	By       common.Address `json:"by"`
}

func (MotionEnactedNotification) NotificationType() NotificationType {
	return NotificationMotionEnacted
}

func (n MotionEnactedNotification) Motion() uint64 { return n.MotionID }

func (n MotionEnactedNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, kind=%s", n.NotificationType(), n.MotionID, n.Kind)
}

type RepresentativeElectedNotification struct {
	MotionID       uint64         `json:"motionId"`
	Representative common.Address `json:"representative"`
}

func (RepresentativeElectedNotification) NotificationType() NotificationType {
	return NotificationRepresentativeElected
}

func (n RepresentativeElectedNotification) Motion() uint64 { return n.MotionID }

func (n RepresentativeElectedNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, representative=%s",
		n.NotificationType(), n.MotionID, short(n.Representative))
}

type RepresentativeDismissedNotification struct {
	MotionID       uint64         `json:"motionId"`
	Representative common.Address `json:"representative"`
}

func (RepresentativeDismissedNotification) NotificationType() NotificationType {
	return NotificationRepresentativeDismissed
}

func (n RepresentativeDismissedNotification) Motion() uint64 { return n.MotionID }

func (n RepresentativeDismissedNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, representative=%s",
		n.NotificationType(), n.MotionID, short(n.Representative))
}

// GovernorChangedNotification covers both election and vacancy. Previous and
// Governor are nil when the seat was or became vacant.
type GovernorChangedNotification struct {
	MotionID uint64          `json:"motionId"`
	Previous *common.Address `json:"previous,omitempty"`
	Governor *common.Address `json:"governor,omitempty"`
	Inducted bool            `json:"inducted,omitempty"`
}

func (GovernorChangedNotification) NotificationType() NotificationType {
	return NotificationGovernorChanged
}

func (n GovernorChangedNotification) Motion() uint64 { return n.MotionID }

func (n GovernorChangedNotification) String() string {
	prev, next := "vacant", "vacant"
	if n.Previous != nil {
		prev = short(*n.Previous)
	}
	if n.Governor != nil {
		next = short(*n.Governor)
	}
	return fmt.Sprintf("%s: motion=%d, old=%s, new=%s", n.NotificationType(), n.MotionID, prev, next)
}

type ApprovalRequirementRevisedNotification struct {
	MotionID    uint64              `json:"motionId"`
	Kind        MotionKind          `json:"kind"`
	Previous    ApprovalRequirement `json:"previous"`
	Requirement ApprovalRequirement `json:"requirement"`
}

func (ApprovalRequirementRevisedNotification) NotificationType() NotificationType {
	return NotificationApprovalRequirementRevised
}

func (n ApprovalRequirementRevisedNotification) Motion() uint64 { return n.MotionID }

func (n ApprovalRequirementRevisedNotification) String() string {
	return fmt.Sprintf("%s: motion=%d, kind=%s, old=%s, new=%s",
		n.NotificationType(), n.MotionID, n.Kind, n.Previous, n.Requirement)
}
