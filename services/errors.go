package services

import "errors"

// Domain errors surfaced by the goal engine. Handlers translate these to
// HTTP statuses; storage faults propagate unchanged and roll back the
// enclosing transaction.
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrAlarmNotExist  = errors.New("alarm does not exist")
	ErrGoalNotExist   = errors.New("goal does not exist")
	ErrRecordNotExist = errors.New("record does not exist")
	ErrNoActiveGoal   = errors.New("member has no active goal of this type")
	ErrAlreadyHasGoal = errors.New("member already has an active goal of this type")
	ErrNotRecordOwner = errors.New("record belongs to another member")
	ErrInvalidAmount  = errors.New("goal amount must be positive")
	ErrInvalidType    = errors.New("unknown record type")
)
