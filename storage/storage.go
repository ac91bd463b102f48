package storage

import (
	"context"
	"errors"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
)

// ErrNotFound indicates a requested row is missing.
var ErrNotFound = errors.New("record not found")

// MemberStore resolves members and mutates their active-goal references.
// Goal membership is the set of members pointing at a goal id, so attaching
// and detaching are reference updates keyed by member id.
type MemberStore interface {
	MemberByID(ctx context.Context, id string) (*models.Member, error)
	MemberByNickname(ctx context.Context, nickname string) (*models.Member, error)
	SetChallengeGoal(ctx context.Context, memberID string, goalID *string) error
	SetGroupGoal(ctx context.Context, memberID string, goalID *string) error
}

// ChallengeGoalStore persists active challenge goals.
type ChallengeGoalStore interface {
	CreateChallengeGoal(ctx context.Context, g *models.ChallengeGoal) error
	ChallengeGoalByID(ctx context.Context, id string) (*models.ChallengeGoal, error)
	ChallengeGoalMembers(ctx context.Context, goalID string) ([]models.Member, error)
	DeleteChallengeGoal(ctx context.Context, id string) error
}

// GroupGoalStore persists active group goals.
type GroupGoalStore interface {
	CreateGroupGoal(ctx context.Context, g *models.GroupGoal) error
	GroupGoalByID(ctx context.Context, id string) (*models.GroupGoal, error)
	GroupGoalMembers(ctx context.Context, goalID string) ([]models.Member, error)
	DeleteGroupGoal(ctx context.Context, id string) error
}

// WaitingGoalStore persists pending goal proposals and their per-invitee
// acceptance rows.
type WaitingGoalStore interface {
	CreateWaitingGoal(ctx context.Context, w *models.WaitingGoal) error
	WaitingGoalByID(ctx context.Context, id string) (*models.WaitingGoal, error)
	DeleteWaitingGoal(ctx context.Context, id string) error

	CreateMemberWaitingGoal(ctx context.Context, mw *models.MemberWaitingGoal) error
	MemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) (*models.MemberWaitingGoal, error)
	MemberWaitingGoalsByWaitingGoal(ctx context.Context, waitingGoalID string) ([]models.MemberWaitingGoal, error)
	WaitingGoalsByMember(ctx context.Context, memberID string) ([]models.WaitingGoal, error)
	AcceptMemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) error
	DeleteMemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) error
	DeleteMemberWaitingGoalsByWaitingGoal(ctx context.Context, waitingGoalID string) error
}

// RecordStore persists monetary transactions.
type RecordStore interface {
	CreateRecord(ctx context.Context, r *models.Record) error
	RecordByID(ctx context.Context, id string) (*models.Record, error)
	RecordsByTypeAndMember(ctx context.Context, rt models.RecordType, memberID string) ([]models.Record, error)
	RecordsByDayAndMember(ctx context.Context, day time.Time, memberID string) ([]models.Record, error)
	DeleteRecord(ctx context.Context, id string) error
}

// DoneGoalStore archives completed goals.
type DoneGoalStore interface {
	CreateDoneGoal(ctx context.Context, d *models.DoneGoal) error
	DoneGoalsByMember(ctx context.Context, memberID string) ([]models.DoneGoal, error)
}

// AlarmStore persists lifecycle notifications.
type AlarmStore interface {
	CreateAlarm(ctx context.Context, a *models.Alarm) error
	AlarmByID(ctx context.Context, id string) (*models.Alarm, error)
	AlarmsByMember(ctx context.Context, memberID string) ([]models.Alarm, error)
	DeleteAlarm(ctx context.Context, id string) error
	DeleteAlarmsByWaitingGoalAndDetail(ctx context.Context, waitingGoalID string, detail models.AlarmDetailType) error
	DeleteAlarmsByMemberAndDetail(ctx context.Context, memberID string, at models.AlarmType, detail models.AlarmDetailType) error
}

// Store is the full persistence boundary of the goal engine. Transact runs fn
// against a store bound to one transaction; every lifecycle operation commits
// all of its mutations through a single Transact call or not at all.
type Store interface {
	MemberStore
	ChallengeGoalStore
	GroupGoalStore
	WaitingGoalStore
	RecordStore
	DoneGoalStore
	AlarmStore

	Transact(ctx context.Context, fn func(Store) error) error
}
