package services

import (
	"context"
	"errors"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"

	"github.com/google/uuid"
)

// GoalService is the settlement engine for active challenge and group goals:
// creation, status views, and exit/teardown. Contribution-triggered
// completion lives in RecordService; the pending-invitation phase in
// WaitingGoalService.
type GoalService struct {
	store  storage.Store
	notify Notifier
}

func NewGoalService(store storage.Store, notify Notifier) *GoalService {
	return &GoalService{store: store, notify: notify}
}

// ============================================================================
// LOOKUP HELPERS
// ============================================================================

func memberByID(ctx context.Context, st storage.MemberStore, id string) (*models.Member, error) {
	m, err := st.MemberByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

func memberByNickname(ctx context.Context, st storage.MemberStore, nickname string) (*models.Member, error) {
	m, err := st.MemberByNickname(ctx, nickname)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

// ============================================================================
// GOAL CONSTRUCTION
// ============================================================================
// A goal exists for as long as at least one member references it; membership
// is attached by pointing each member's active-goal reference at the new row.

func buildChallengeGoal(ctx context.Context, tx storage.Store, name string, amount int, members []models.Member) (*models.ChallengeGoal, error) {
	goal := &models.ChallengeGoal{
		ID:        uuid.New().String(),
		Name:      name,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	if err := tx.CreateChallengeGoal(ctx, goal); err != nil {
		return nil, err
	}
	for _, m := range members {
		if err := tx.SetChallengeGoal(ctx, m.ID, &goal.ID); err != nil {
			return nil, err
		}
	}
	return goal, nil
}

func buildGroupGoal(ctx context.Context, tx storage.Store, name string, amount int, members []models.Member) (*models.GroupGoal, error) {
	goal := &models.GroupGoal{
		ID:        uuid.New().String(),
		Name:      name,
		Amount:    amount,
		Accepted:  true,
		CreatedAt: time.Now(),
	}
	if err := tx.CreateGroupGoal(ctx, goal); err != nil {
		return nil, err
	}
	for _, m := range members {
		if err := tx.SetGroupGoal(ctx, m.ID, &goal.ID); err != nil {
			return nil, err
		}
	}
	return goal, nil
}

// CreateChallenge builds an active challenge goal for the proposer and the
// resolved friend nicknames. Fails if any nickname is unknown or the
// proposer already races a challenge.
func (s *GoalService) CreateChallenge(ctx context.Context, memberID string, req models.GoalProposalRequest) error {
	if req.GoalAmount <= 0 {
		return ErrInvalidAmount
	}
	return s.store.Transact(ctx, func(tx storage.Store) error {
		proposer, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if proposer.ChallengeGoalID != nil {
			return ErrAlreadyHasGoal
		}
		members := []models.Member{*proposer}
		for _, nickname := range req.FriendNicknames {
			friend, err := memberByNickname(ctx, tx, nickname)
			if err != nil {
				return err
			}
			members = append(members, *friend)
		}
		_, err = buildChallengeGoal(ctx, tx, req.GoalName, req.GoalAmount, members)
		return err
	})
}

// CreateGroup is the group-goal counterpart of CreateChallenge. The goal is
// instantiated already accepted; a pending group proposal lives as a
// WaitingGoal instead.
func (s *GoalService) CreateGroup(ctx context.Context, memberID string, req models.GoalProposalRequest) error {
	if req.GoalAmount <= 0 {
		return ErrInvalidAmount
	}
	return s.store.Transact(ctx, func(tx storage.Store) error {
		proposer, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if proposer.GroupGoalID != nil {
			return ErrAlreadyHasGoal
		}
		members := []models.Member{*proposer}
		for _, nickname := range req.FriendNicknames {
			friend, err := memberByNickname(ctx, tx, nickname)
			if err != nil {
				return err
			}
			members = append(members, *friend)
		}
		_, err = buildGroupGoal(ctx, tx, req.GoalName, req.GoalAmount, members)
		return err
	})
}

// ============================================================================
// STATUS VIEWS
// ============================================================================

// ChallengeInfo assembles the member's challenge view: the active goal with
// per-member progress, or pending invitations, or nothing.
func (s *GoalService) ChallengeInfo(ctx context.Context, memberID string) (*models.ChallengeInfoResponse, error) {
	member, err := memberByID(ctx, s.store, memberID)
	if err != nil {
		return nil, err
	}

	doneNames, err := s.doneNames(ctx, memberID, models.GoalTypeChallenge)
	if err != nil {
		return nil, err
	}

	if member.ChallengeGoalID == nil {
		waiting, err := s.waitingDTOs(ctx, memberID, models.GoalTypeChallenge)
		if err != nil {
			return nil, err
		}
		if len(waiting) > 0 {
			return &models.ChallengeInfoResponse{
				GoalStatus:   models.GoalStatusWaiting,
				DoneGoals:    doneNames,
				WaitingGoals: waiting,
			}, nil
		}
		return &models.ChallengeInfoResponse{
			GoalStatus: models.GoalStatusNone,
			DoneGoals:  doneNames,
		}, nil
	}

	goal, err := s.store.ChallengeGoalByID(ctx, *member.ChallengeGoalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGoalNotExist
		}
		return nil, err
	}
	goalMembers, err := s.store.ChallengeGoalMembers(ctx, goal.ID)
	if err != nil {
		return nil, err
	}

	var memberDTOs []models.ChallengeMemberDTO
	for _, m := range goalMembers {
		since := goal.CreatedAt
		total, err := contributionTotal(ctx, s.store, models.RecordTypeChallenge, m.ID, &since)
		if err != nil {
			return nil, err
		}
		memberDTOs = append(memberDTOs, models.ChallengeMemberDTO{
			Nickname:   m.Nickname,
			Hero:       m.Hero,
			LeftAmount: leftOf(total, goal.Amount),
			NowPercent: percentOf(total, goal.Amount),
		})
	}

	records, err := contributionRecords(ctx, s.store, models.RecordTypeChallenge, memberID, goal.CreatedAt)
	if err != nil {
		return nil, err
	}
	var recordDTOs []models.ChallengeRecordDTO
	for _, r := range records {
		recordDTOs = append(recordDTOs, models.ChallengeRecordDTO{
			RecordDate: r.RecordDate,
			Memo:       r.Memo,
			Amount:     r.Amount,
		})
	}

	return &models.ChallengeInfoResponse{
		GoalStatus: models.GoalStatusActive,
		Members:    memberDTOs,
		Name:       goal.Name,
		GoalAmount: goal.Amount,
		DoneGoals:  doneNames,
		Records:    recordDTOs,
	}, nil
}

// GroupInfo assembles the member's group view. Progress is pooled: every
// member's contributions count toward one shared sum.
func (s *GoalService) GroupInfo(ctx context.Context, memberID string) (*models.GroupInfoResponse, error) {
	member, err := memberByID(ctx, s.store, memberID)
	if err != nil {
		return nil, err
	}

	doneNames, err := s.doneNames(ctx, memberID, models.GoalTypeGroup)
	if err != nil {
		return nil, err
	}

	if member.GroupGoalID == nil {
		waiting, err := s.waitingDTOs(ctx, memberID, models.GoalTypeGroup)
		if err != nil {
			return nil, err
		}
		if len(waiting) > 0 {
			return &models.GroupInfoResponse{
				GoalStatus:   models.GoalStatusWaiting,
				DoneGoals:    doneNames,
				WaitingGoals: waiting,
			}, nil
		}
		return &models.GroupInfoResponse{
			GoalStatus: models.GoalStatusNone,
			DoneGoals:  doneNames,
		}, nil
	}

	goal, err := s.store.GroupGoalByID(ctx, *member.GroupGoalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGoalNotExist
		}
		return nil, err
	}
	goalMembers, err := s.store.GroupGoalMembers(ctx, goal.ID)
	if err != nil {
		return nil, err
	}

	var memberDTOs []models.GroupMemberDTO
	var recordDTOs []models.GroupRecordDTO
	currentAmount := 0
	for _, m := range goalMembers {
		memberDTOs = append(memberDTOs, models.GroupMemberDTO{Nickname: m.Nickname, Hero: m.Hero})

		records, err := contributionRecords(ctx, s.store, models.RecordTypeGroup, m.ID, goal.CreatedAt)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			recordDTOs = append(recordDTOs, models.GroupRecordDTO{
				RecordDate: r.RecordDate,
				Hero:       m.Hero,
				Nickname:   m.Nickname,
				Memo:       r.Memo,
				Amount:     r.Amount,
			})
			currentAmount += r.Amount
		}
	}

	return &models.GroupInfoResponse{
		GoalStatus: models.GoalStatusActive,
		Members:    memberDTOs,
		Name:       goal.Name,
		LeftAmount: leftOf(currentAmount, goal.Amount),
		NowPercent: percentOf(currentAmount, goal.Amount),
		DoneGoals:  doneNames,
		Records:    recordDTOs,
	}, nil
}

// ============================================================================
// EXITS
// ============================================================================

// ExitChallenge detaches the member from their active challenge goal. The
// sole remaining participant tears the goal down with a boom alarm to self;
// otherwise the others get a talju alarm and the goal lives on.
func (s *GoalService) ExitChallenge(ctx context.Context, memberID string) error {
	var recipients []string
	err := s.store.Transact(ctx, func(tx storage.Store) error {
		member, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if member.ChallengeGoalID == nil {
			return ErrNoActiveGoal
		}
		goal, err := tx.ChallengeGoalByID(ctx, *member.ChallengeGoalID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrGoalNotExist
			}
			return err
		}
		goalMembers, err := tx.ChallengeGoalMembers(ctx, goal.ID)
		if err != nil {
			return err
		}

		if len(goalMembers) == 1 {
			if _, err := goalAlarm(ctx, tx, member.ID, member.Nickname, models.AlarmChallenge,
				models.AlarmDetailBoom, goal.Name, goal.Amount, nil); err != nil {
				return err
			}
			recipients = append(recipients, member.ID)
			if err := tx.SetChallengeGoal(ctx, member.ID, nil); err != nil {
				return err
			}
			return tx.DeleteChallengeGoal(ctx, goal.ID)
		}

		for _, m := range goalMembers {
			if m.ID == member.ID {
				continue
			}
			if _, err := goalAlarm(ctx, tx, m.ID, member.Nickname, models.AlarmChallenge,
				models.AlarmDetailExit, goal.Name, goal.Amount, nil); err != nil {
				return err
			}
			recipients = append(recipients, m.ID)
		}
		return tx.SetChallengeGoal(ctx, member.ID, nil)
	})
	if err != nil {
		return err
	}
	notifyAll(s.notify, recipients)
	return nil
}

// ExitGroup detaches the member from their active group goal. A group of two
// or fewer cannot survive a departure: the whole goal is torn down and every
// remaining membership released.
func (s *GoalService) ExitGroup(ctx context.Context, memberID string) error {
	var recipients []string
	err := s.store.Transact(ctx, func(tx storage.Store) error {
		member, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if member.GroupGoalID == nil {
			return ErrNoActiveGoal
		}
		goal, err := tx.GroupGoalByID(ctx, *member.GroupGoalID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrGoalNotExist
			}
			return err
		}
		goalMembers, err := tx.GroupGoalMembers(ctx, goal.ID)
		if err != nil {
			return err
		}

		if len(goalMembers) <= 2 {
			for _, m := range goalMembers {
				if _, err := goalAlarm(ctx, tx, m.ID, member.Nickname, models.AlarmGroup,
					models.AlarmDetailBoom, goal.Name, goal.Amount, nil); err != nil {
					return err
				}
				recipients = append(recipients, m.ID)
				if err := tx.SetGroupGoal(ctx, m.ID, nil); err != nil {
					return err
				}
			}
			return tx.DeleteGroupGoal(ctx, goal.ID)
		}

		for _, m := range goalMembers {
			if m.ID == member.ID {
				continue
			}
			if _, err := goalAlarm(ctx, tx, m.ID, member.Nickname, models.AlarmGroup,
				models.AlarmDetailExit, goal.Name, goal.Amount, nil); err != nil {
				return err
			}
			recipients = append(recipients, m.ID)
		}
		return tx.SetGroupGoal(ctx, member.ID, nil)
	})
	if err != nil {
		return err
	}
	notifyAll(s.notify, recipients)
	return nil
}

// ============================================================================
// VIEW HELPERS
// ============================================================================

func (s *GoalService) doneNames(ctx context.Context, memberID string, gt models.GoalType) ([]string, error) {
	done, err := s.store.DoneGoalsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, d := range done {
		if d.GoalType == gt {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

func (s *GoalService) waitingDTOs(ctx context.Context, memberID string, gt models.GoalType) ([]models.WaitingGoalDTO, error) {
	waiting, err := s.store.WaitingGoalsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	var dtos []models.WaitingGoalDTO
	for _, w := range waiting {
		if w.GoalType == gt {
			dtos = append(dtos, models.WaitingGoalDTO{ID: w.ID, Name: w.Name})
		}
	}
	return dtos, nil
}
