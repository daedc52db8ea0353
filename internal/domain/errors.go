package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for council operations
var (
	// ErrNotFound is returned when a motion id is out of range
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when trying to found a council that already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized is returned when the caller lacks the role required by an operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidDeadline is returned when a proposal deadline is not in the future
	ErrInvalidDeadline = errors.New("invalid deadline")

	// ErrInvalidTarget is returned when the target identity or revision does not
	// fit the motion kind
	ErrInvalidTarget = errors.New("invalid target")

	// ErrMotionNotOpen is returned once a motion is past its deadline, vetoed or cancelled
	ErrMotionNotOpen = errors.New("motion not open")

	// ErrNotVetoable is returned when vetoing a kind whose requirement is not vetoable
	ErrNotVetoable = errors.New("motion not vetoable")

	// ErrNotApproved is returned when enacting a motion that has not reached quorum
	ErrNotApproved = errors.New("motion not approved")

	// ErrAlreadyEnacted is returned when enacting a motion twice
	ErrAlreadyEnacted = errors.New("motion already enacted")

	// ErrNotCreator is returned when someone other than the creator cancels a motion
	ErrNotCreator = errors.New("not the motion creator")

	// ErrClockRegression is returned when an operation is timestamped before
	// the last accepted operation
	ErrClockRegression = errors.New("clock moved backwards")

	// ErrNoCouncil is returned when no journal has been initialised yet
	ErrNoCouncil = errors.New("council not initialised")
)

// MotionError attaches the operation and motion to a sentinel error
type MotionError struct {
	Op       string
	MotionID uint64
	Err      error
}

func (e *MotionError) Error() string {
	return fmt.Sprintf("%s motion %d: %v", e.Op, e.MotionID, e.Err)
}

func (e *MotionError) Unwrap() error {
	return e.Err
}

// NewMotionError wraps err for the given operation and motion
func NewMotionError(op string, motionID uint64, err error) error {
	return &MotionError{Op: op, MotionID: motionID, Err: err}
}

// OperationError attaches the operation to a sentinel error when no motion is involved
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
