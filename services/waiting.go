package services

import (
	"context"
	"errors"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"

	"github.com/google/uuid"
)

// WaitingGoalService coordinates the pending-invitation phase of a goal:
// tracking per-invitee acceptance, activating on unanimity, tearing down on
// refusal. The proposer holds no acceptance row; their agreement is implied
// and they join the goal when it activates.
type WaitingGoalService struct {
	store  storage.Store
	notify Notifier
}

func NewWaitingGoalService(store storage.Store, notify Notifier) *WaitingGoalService {
	return &WaitingGoalService{store: store, notify: notify}
}

func alarmTypeFor(gt models.GoalType) models.AlarmType {
	if gt == models.GoalTypeGroup {
		return models.AlarmGroup
	}
	return models.AlarmChallenge
}

// Propose opens an invitation round for a new goal: one WaitingGoal plus one
// acceptance row and one invite alarm per invitee. Without invitees the goal
// is created outright and only the proposer is notified.
func (s *WaitingGoalService) Propose(ctx context.Context, memberID string, gt models.GoalType, req models.GoalProposalRequest) error {
	if req.GoalAmount <= 0 {
		return ErrInvalidAmount
	}
	var recipients []string
	err := s.store.Transact(ctx, func(tx storage.Store) error {
		proposer, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if gt == models.GoalTypeChallenge && proposer.ChallengeGoalID != nil {
			return ErrAlreadyHasGoal
		}
		if gt == models.GoalTypeGroup && proposer.GroupGoalID != nil {
			return ErrAlreadyHasGoal
		}

		if len(req.FriendNicknames) == 0 {
			if gt == models.GoalTypeChallenge {
				_, err = buildChallengeGoal(ctx, tx, req.GoalName, req.GoalAmount, []models.Member{*proposer})
			} else {
				_, err = buildGroupGoal(ctx, tx, req.GoalName, req.GoalAmount, []models.Member{*proposer})
			}
			if err != nil {
				return err
			}
			if _, err := goalAlarm(ctx, tx, proposer.ID, proposer.Nickname, alarmTypeFor(gt),
				models.AlarmDetailCreate, req.GoalName, req.GoalAmount, nil); err != nil {
				return err
			}
			recipients = append(recipients, proposer.ID)
			return nil
		}

		waitingGoal := &models.WaitingGoal{
			ID:         uuid.New().String(),
			Name:       req.GoalName,
			Amount:     req.GoalAmount,
			GoalType:   gt,
			ProposerID: proposer.ID,
			CreatedAt:  time.Now(),
		}
		if err := tx.CreateWaitingGoal(ctx, waitingGoal); err != nil {
			return err
		}

		for _, nickname := range req.FriendNicknames {
			friend, err := memberByNickname(ctx, tx, nickname)
			if err != nil {
				return err
			}
			mw := &models.MemberWaitingGoal{
				ID:            uuid.New().String(),
				MemberID:      friend.ID,
				WaitingGoalID: waitingGoal.ID,
				Accepted:      false,
			}
			if err := tx.CreateMemberWaitingGoal(ctx, mw); err != nil {
				return err
			}
			if _, err := goalAlarm(ctx, tx, friend.ID, proposer.Nickname, alarmTypeFor(gt),
				models.AlarmDetailInvite, waitingGoal.Name, waitingGoal.Amount, &waitingGoal.ID); err != nil {
				return err
			}
			recipients = append(recipients, friend.ID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	notifyAll(s.notify, recipients)
	return nil
}

// Accept flips the member's acceptance flag on the waiting goal behind the
// given invite alarm. Short of unanimity the round stays open and the other
// parties are told of the progress; the last acceptance activates the goal.
func (s *WaitingGoalService) Accept(ctx context.Context, memberID, alarmID string) error {
	var recipients []string
	err := s.store.Transact(ctx, func(tx storage.Store) error {
		alarm, err := tx.AlarmByID(ctx, alarmID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrAlarmNotExist
			}
			return err
		}
		member, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if alarm.MemberID != member.ID {
			return ErrAlarmNotExist
		}
		if alarm.WaitingGoalID == nil {
			return ErrGoalNotExist
		}
		waitingGoal, err := tx.WaitingGoalByID(ctx, *alarm.WaitingGoalID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrGoalNotExist
			}
			return err
		}
		if err := tx.AcceptMemberWaitingGoal(ctx, member.ID, waitingGoal.ID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrGoalNotExist
			}
			return err
		}
		rows, err := tx.MemberWaitingGoalsByWaitingGoal(ctx, waitingGoal.ID)
		if err != nil {
			return err
		}

		at := alarmTypeFor(waitingGoal.GoalType)

		if !allAccepted(rows) {
			if _, err := sendGoalAlarm(ctx, tx, rows, member, at, models.AlarmDetailAccept, waitingGoal); err != nil {
				return err
			}
			if _, err := goalAlarm(ctx, tx, waitingGoal.ProposerID, member.Nickname, at,
				models.AlarmDetailAccept, waitingGoal.Name, waitingGoal.Amount, &waitingGoal.ID); err != nil {
				return err
			}
			recipients = rowRecipients(rows, member.ID, waitingGoal.ProposerID)
			return tx.DeleteAlarm(ctx, alarm.ID)
		}

		return s.activate(ctx, tx, member, waitingGoal, rows, alarm.ID, &recipients)
	})
	if err != nil {
		return err
	}
	notifyAll(s.notify, recipients)
	return nil
}

// activate turns a unanimously accepted WaitingGoal into the real goal:
// create alarms all around, goal instantiation with invitees plus proposer,
// and deletion of the pending state. A challenge activation additionally
// dissolves every other pending challenge its new members were part of,
// because a member races at most one challenge at a time.
func (s *WaitingGoalService) activate(ctx context.Context, tx storage.Store, member *models.Member,
	waitingGoal *models.WaitingGoal, rows []models.MemberWaitingGoal, alarmID string, recipients *[]string) error {

	at := alarmTypeFor(waitingGoal.GoalType)

	if _, err := sendGoalAlarm(ctx, tx, rows, member, at, models.AlarmDetailCreate, waitingGoal); err != nil {
		return err
	}
	if _, err := goalAlarm(ctx, tx, member.ID, member.Nickname, at,
		models.AlarmDetailCreate, waitingGoal.Name, waitingGoal.Amount, &waitingGoal.ID); err != nil {
		return err
	}
	if _, err := goalAlarm(ctx, tx, waitingGoal.ProposerID, member.Nickname, at,
		models.AlarmDetailCreate, waitingGoal.Name, waitingGoal.Amount, &waitingGoal.ID); err != nil {
		return err
	}
	*recipients = rowRecipients(rows, "", waitingGoal.ProposerID)

	goalMembers := make([]models.Member, 0, len(rows)+1)
	for _, row := range rows {
		m, err := memberByID(ctx, tx, row.MemberID)
		if err != nil {
			return err
		}
		goalMembers = append(goalMembers, *m)
	}
	proposer, err := memberByID(ctx, tx, waitingGoal.ProposerID)
	if err != nil {
		return err
	}
	goalMembers = append(goalMembers, *proposer)

	if waitingGoal.GoalType == models.GoalTypeChallenge {
		if _, err := buildChallengeGoal(ctx, tx, waitingGoal.Name, waitingGoal.Amount, goalMembers); err != nil {
			return err
		}
	} else {
		if _, err := buildGroupGoal(ctx, tx, waitingGoal.Name, waitingGoal.Amount, goalMembers); err != nil {
			return err
		}
	}

	if err := tx.DeleteMemberWaitingGoalsByWaitingGoal(ctx, waitingGoal.ID); err != nil {
		return err
	}
	if err := tx.DeleteWaitingGoal(ctx, waitingGoal.ID); err != nil {
		return err
	}
	if err := tx.DeleteAlarm(ctx, alarmID); err != nil {
		return err
	}

	if waitingGoal.GoalType != models.GoalTypeChallenge {
		return nil
	}

	// The first challenge to reach unanimity wins: every other pending
	// challenge of the now-committed members becomes void.
	dissolved := map[string]*models.WaitingGoal{}
	for _, m := range goalMembers {
		others, err := tx.WaitingGoalsByMember(ctx, m.ID)
		if err != nil {
			return err
		}
		for i := range others {
			if others[i].GoalType == models.GoalTypeChallenge {
				dissolved[others[i].ID] = &others[i]
			}
		}
	}
	for _, w := range dissolved {
		wRows, err := tx.MemberWaitingGoalsByWaitingGoal(ctx, w.ID)
		if err != nil {
			return err
		}
		if _, err := sendGoalAlarm(ctx, tx, wRows, member, models.AlarmChallenge, models.AlarmDetailBoom, w); err != nil {
			return err
		}
		if _, err := goalAlarm(ctx, tx, w.ProposerID, member.Nickname, models.AlarmChallenge,
			models.AlarmDetailBoom, w.Name, w.Amount, &w.ID); err != nil {
			return err
		}
		*recipients = append(*recipients, rowRecipients(wRows, member.ID, w.ProposerID)...)
		if err := tx.DeleteAlarmsByWaitingGoalAndDetail(ctx, w.ID, models.AlarmDetailInvite); err != nil {
			return err
		}
		if err := tx.DeleteMemberWaitingGoalsByWaitingGoal(ctx, w.ID); err != nil {
			return err
		}
		if err := tx.DeleteWaitingGoal(ctx, w.ID); err != nil {
			return err
		}
	}

	// Challenge invites addressed to the committed members are stale now.
	// Group invites stay: their rounds are still live.
	for _, m := range goalMembers {
		if err := tx.DeleteAlarmsByMemberAndDetail(ctx, m.ID, models.AlarmChallenge, models.AlarmDetailInvite); err != nil {
			return err
		}
	}
	return nil
}

// Refuse dissolves the waiting goal behind the given invite alarm: boom
// alarms to every other party, then the pending state and its invite alarms
// are deleted.
func (s *WaitingGoalService) Refuse(ctx context.Context, memberID, alarmID string) error {
	var recipients []string
	err := s.store.Transact(ctx, func(tx storage.Store) error {
		alarm, err := tx.AlarmByID(ctx, alarmID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrAlarmNotExist
			}
			return err
		}
		member, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if alarm.MemberID != member.ID {
			return ErrAlarmNotExist
		}
		if alarm.WaitingGoalID == nil {
			return ErrGoalNotExist
		}
		waitingGoal, err := tx.WaitingGoalByID(ctx, *alarm.WaitingGoalID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrGoalNotExist
			}
			return err
		}
		rows, err := tx.MemberWaitingGoalsByWaitingGoal(ctx, waitingGoal.ID)
		if err != nil {
			return err
		}

		at := alarmTypeFor(waitingGoal.GoalType)
		if _, err := sendGoalAlarm(ctx, tx, rows, member, at, models.AlarmDetailBoom, waitingGoal); err != nil {
			return err
		}
		if waitingGoal.ProposerID != member.ID {
			if _, err := goalAlarm(ctx, tx, waitingGoal.ProposerID, member.Nickname, at,
				models.AlarmDetailBoom, waitingGoal.Name, waitingGoal.Amount, &waitingGoal.ID); err != nil {
				return err
			}
		}
		recipients = rowRecipients(rows, member.ID, waitingGoal.ProposerID)

		if err := tx.DeleteAlarmsByWaitingGoalAndDetail(ctx, waitingGoal.ID, models.AlarmDetailInvite); err != nil {
			return err
		}
		if err := tx.DeleteMemberWaitingGoalsByWaitingGoal(ctx, waitingGoal.ID); err != nil {
			return err
		}
		return tx.DeleteWaitingGoal(ctx, waitingGoal.ID)
	})
	if err != nil {
		return err
	}
	notifyAll(s.notify, recipients)
	return nil
}

// Withdraw removes the member's own pending invitation without resolving the
// round. The last row leaving takes the WaitingGoal with it.
func (s *WaitingGoalService) Withdraw(ctx context.Context, memberID, waitingGoalID string) error {
	return s.store.Transact(ctx, func(tx storage.Store) error {
		member, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if _, err := tx.WaitingGoalByID(ctx, waitingGoalID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrGoalNotExist
			}
			return err
		}
		if err := tx.DeleteMemberWaitingGoal(ctx, member.ID, waitingGoalID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrGoalNotExist
			}
			return err
		}
		rows, err := tx.MemberWaitingGoalsByWaitingGoal(ctx, waitingGoalID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			if err := tx.DeleteAlarmsByWaitingGoalAndDetail(ctx, waitingGoalID, models.AlarmDetailInvite); err != nil {
				return err
			}
			return tx.DeleteWaitingGoal(ctx, waitingGoalID)
		}
		return nil
	})
}

func allAccepted(rows []models.MemberWaitingGoal) bool {
	for _, row := range rows {
		if !row.Accepted {
			return false
		}
	}
	return true
}

// rowRecipients collects the member ids behind rows, skipping skipID, plus
// the extra ids (deduplicated).
func rowRecipients(rows []models.MemberWaitingGoal, skipID string, extra ...string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, row := range rows {
		if row.MemberID == skipID || seen[row.MemberID] {
			continue
		}
		seen[row.MemberID] = true
		ids = append(ids, row.MemberID)
	}
	for _, id := range extra {
		if id == skipID || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
