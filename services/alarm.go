package services

import (
	"context"
	"errors"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"

	"github.com/google/uuid"
)

// ============================================================================
// NOTIFICATION DISPATCH
// ============================================================================
// Alarms are append-only rows; fan-out is decided by the callers. Persistence
// is the only durability guarantee, the live websocket push on top is
// best-effort and happens after commit.

// Notifier pushes a committed alarm signal to a live channel. Implementations
// must not block; a nil Notifier disables pushes.
type Notifier interface {
	NotifyAlarm(memberID string)
}

// AlarmService serves a member's notification inbox.
type AlarmService struct {
	store storage.Store
}

func NewAlarmService(store storage.Store) *AlarmService {
	return &AlarmService{store: store}
}

// List returns the member's alarms, newest first. Invite alarms carry the
// waiting goal reference the accept/refuse endpoints key on.
func (s *AlarmService) List(ctx context.Context, memberID string) ([]models.Alarm, error) {
	alarms, err := s.store.AlarmsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	return alarms, nil
}

// Dismiss deletes one of the member's own alarms. Invite alarms are consumed
// through accept/refuse instead, but nothing stops a member discarding one.
func (s *AlarmService) Dismiss(ctx context.Context, memberID, alarmID string) error {
	return s.store.Transact(ctx, func(tx storage.Store) error {
		alarm, err := tx.AlarmByID(ctx, alarmID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrAlarmNotExist
			}
			return err
		}
		if alarm.MemberID != memberID {
			return ErrAlarmNotExist
		}
		return tx.DeleteAlarm(ctx, alarmID)
	})
}

// goalAlarm persists one lifecycle notification addressed to the target
// member and returns it.
func goalAlarm(ctx context.Context, st storage.AlarmStore, targetID, fromNickname string,
	at models.AlarmType, detail models.AlarmDetailType, goalName string, goalAmount int,
	waitingGoalID *string) (*models.Alarm, error) {

	alarm := &models.Alarm{
		ID:            uuid.New().String(),
		AlarmType:     at,
		DetailType:    detail,
		GoalName:      goalName,
		GoalAmount:    goalAmount,
		WaitingGoalID: waitingGoalID,
		FromNickname:  fromNickname,
		MemberID:      targetID,
		CreatedAt:     time.Now(),
	}
	if err := st.CreateAlarm(ctx, alarm); err != nil {
		return nil, err
	}
	return alarm, nil
}

// sendGoalAlarm fans a waiting-goal notification out to every invitee row
// except the acting member, returning the nicknames it reached.
func sendGoalAlarm(ctx context.Context, st storage.AlarmStore, rows []models.MemberWaitingGoal,
	current *models.Member, at models.AlarmType, detail models.AlarmDetailType,
	waitingGoal *models.WaitingGoal) ([]string, error) {

	var nicknames []string
	for _, row := range rows {
		if row.MemberID == current.ID {
			continue
		}
		_, err := goalAlarm(ctx, st, row.MemberID, current.Nickname, at, detail,
			waitingGoal.Name, waitingGoal.Amount, &waitingGoal.ID)
		if err != nil {
			return nil, err
		}
		nicknames = append(nicknames, row.MemberNickname)
	}
	return nicknames, nil
}

// notifyAll pushes committed alarms to the live channel. Call only after the
// enclosing transaction committed.
func notifyAll(n Notifier, memberIDs []string) {
	if n == nil {
		return
	}
	for _, id := range memberIDs {
		n.NotifyAlarm(id)
	}
}
