package services

import (
	"context"
	"errors"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"

	"github.com/google/uuid"
)

const (
	challengeDoneMemo = "Défi terminé !"
	groupDoneMemo     = "Cagnotte terminée !"
)

// RecordService appends monetary records and drives contribution-triggered
// goal completion.
type RecordService struct {
	store  storage.Store
	notify Notifier
}

func NewRecordService(store storage.Store, notify Notifier) *RecordService {
	return &RecordService{store: store, notify: notify}
}

// Save appends a record. A challenge or group contribution while the member
// holds an active goal of the matching kind alerts the co-members and checks
// the goal for completion; completion settles inside the same transaction.
func (s *RecordService) Save(ctx context.Context, memberID string, req models.RecordRequest) (*models.RecordResponse, error) {
	if !req.RecordType.Valid() {
		return nil, ErrInvalidType
	}

	var resp *models.RecordResponse
	var recipients []string
	err := s.store.Transact(ctx, func(tx storage.Store) error {
		member, err := memberByID(ctx, tx, memberID)
		if err != nil {
			return err
		}

		record := &models.Record{
			ID:         uuid.New().String(),
			MemberID:   member.ID,
			RecordType: req.RecordType,
			RecordDate: req.RecordDate,
			Memo:       req.Memo,
			Amount:     req.Amount,
			CreatedAt:  time.Now(),
		}
		if err := tx.CreateRecord(ctx, record); err != nil {
			return err
		}
		resp = &models.RecordResponse{Record: *record}

		switch {
		case req.RecordType == models.RecordTypeChallenge && member.ChallengeGoalID != nil:
			complete, alerted, err := s.settleChallenge(ctx, tx, member, req.RecordDate)
			if err != nil {
				return err
			}
			resp.IsComplete = complete
			recipients = alerted
		case req.RecordType == models.RecordTypeGroup && member.GroupGoalID != nil:
			complete, alerted, err := s.settleGroup(ctx, tx, member, req.RecordDate)
			if err != nil {
				return err
			}
			resp.IsComplete = complete
			recipients = alerted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	notifyAll(s.notify, recipients)
	return resp, nil
}

// settleChallenge alerts the co-members of the new contribution and, once the
// member's own contributions since the goal epoch reach the target, settles:
// the pot is drained back to income, the goal archived for the member, and
// the member detached. The last member leaving deletes the goal.
func (s *RecordService) settleChallenge(ctx context.Context, tx storage.Store, member *models.Member, recordDate time.Time) (bool, []string, error) {
	goal, err := tx.ChallengeGoalByID(ctx, *member.ChallengeGoalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil, ErrGoalNotExist
		}
		return false, nil, err
	}
	goalMembers, err := tx.ChallengeGoalMembers(ctx, goal.ID)
	if err != nil {
		return false, nil, err
	}

	var recipients []string
	for _, m := range goalMembers {
		if m.ID == member.ID {
			continue
		}
		if _, err := goalAlarm(ctx, tx, m.ID, member.Nickname, models.AlarmChallenge,
			models.AlarmDetailRecord, goal.Name, goal.Amount, nil); err != nil {
			return false, nil, err
		}
		recipients = append(recipients, m.ID)
	}

	since := goal.CreatedAt
	currentAmount, err := contributionTotal(ctx, tx, models.RecordTypeChallenge, member.ID, &since)
	if err != nil {
		return false, nil, err
	}
	if currentAmount < goal.Amount {
		return false, recipients, nil
	}

	for _, m := range goalMembers {
		if _, err := goalAlarm(ctx, tx, m.ID, member.Nickname, models.AlarmChallenge,
			models.AlarmDetailSuccess, goal.Name, goal.Amount, nil); err != nil {
			return false, nil, err
		}
	}
	recipients = append(recipients, member.ID)

	// Drain the pot and pay it back: net zero for the member, while the
	// archived DoneGoal carries the target amount.
	now := time.Now()
	minus := &models.Record{
		ID:         uuid.New().String(),
		MemberID:   member.ID,
		RecordType: models.RecordTypeChallenge,
		RecordDate: recordDate,
		Memo:       challengeDoneMemo,
		Amount:     -currentAmount,
		CreatedAt:  now,
	}
	plus := &models.Record{
		ID:         uuid.New().String(),
		MemberID:   member.ID,
		RecordType: models.RecordTypeIncome,
		RecordDate: recordDate,
		Memo:       challengeDoneMemo,
		Amount:     currentAmount,
		CreatedAt:  now,
	}
	if err := tx.CreateRecord(ctx, minus); err != nil {
		return false, nil, err
	}
	if err := tx.CreateRecord(ctx, plus); err != nil {
		return false, nil, err
	}

	done := &models.DoneGoal{
		ID:        uuid.New().String(),
		MemberID:  member.ID,
		Name:      goal.Name,
		Amount:    goal.Amount,
		GoalType:  models.GoalTypeChallenge,
		CreatedAt: now,
	}
	if err := tx.CreateDoneGoal(ctx, done); err != nil {
		return false, nil, err
	}

	if err := tx.SetChallengeGoal(ctx, member.ID, nil); err != nil {
		return false, nil, err
	}
	if len(goalMembers) == 1 {
		if err := tx.DeleteChallengeGoal(ctx, goal.ID); err != nil {
			return false, nil, err
		}
	}
	return true, recipients, nil
}

// settleGroup alerts the co-members and, once the pooled contributions since
// the goal epoch reach the target, settles per member: everyone who put
// money in gets a compensating record of exactly their own share (consumed,
// not paid back), a DoneGoal, and is detached. Members who contributed
// nothing stay. The goal is deleted when nobody is left.
func (s *RecordService) settleGroup(ctx context.Context, tx storage.Store, member *models.Member, recordDate time.Time) (bool, []string, error) {
	goal, err := tx.GroupGoalByID(ctx, *member.GroupGoalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil, ErrGoalNotExist
		}
		return false, nil, err
	}
	goalMembers, err := tx.GroupGoalMembers(ctx, goal.ID)
	if err != nil {
		return false, nil, err
	}

	var recipients []string
	for _, m := range goalMembers {
		if m.ID == member.ID {
			continue
		}
		if _, err := goalAlarm(ctx, tx, m.ID, member.Nickname, models.AlarmGroup,
			models.AlarmDetailRecord, goal.Name, goal.Amount, nil); err != nil {
			return false, nil, err
		}
		recipients = append(recipients, m.ID)
	}

	since := goal.CreatedAt
	shares := make([]int, len(goalMembers))
	currentAmount := 0
	for i, m := range goalMembers {
		share, err := contributionTotal(ctx, tx, models.RecordTypeGroup, m.ID, &since)
		if err != nil {
			return false, nil, err
		}
		shares[i] = share
		currentAmount += share
	}
	if currentAmount < goal.Amount {
		return false, recipients, nil
	}

	for _, m := range goalMembers {
		if _, err := goalAlarm(ctx, tx, m.ID, member.Nickname, models.AlarmGroup,
			models.AlarmDetailSuccess, goal.Name, goal.Amount, nil); err != nil {
			return false, nil, err
		}
	}
	recipients = append(recipients, member.ID)

	now := time.Now()
	remaining := 0
	for i, m := range goalMembers {
		if shares[i] == 0 {
			remaining++
			continue
		}
		minus := &models.Record{
			ID:         uuid.New().String(),
			MemberID:   m.ID,
			RecordType: models.RecordTypeGroup,
			RecordDate: recordDate,
			Memo:       groupDoneMemo,
			Amount:     -shares[i],
			CreatedAt:  now,
		}
		if err := tx.CreateRecord(ctx, minus); err != nil {
			return false, nil, err
		}
		done := &models.DoneGoal{
			ID:        uuid.New().String(),
			MemberID:  m.ID,
			Name:      goal.Name,
			Amount:    goal.Amount,
			GoalType:  models.GoalTypeGroup,
			CreatedAt: now,
		}
		if err := tx.CreateDoneGoal(ctx, done); err != nil {
			return false, nil, err
		}
		if err := tx.SetGroupGoal(ctx, m.ID, nil); err != nil {
			return false, nil, err
		}
	}
	if remaining == 0 {
		if err := tx.DeleteGroupGoal(ctx, goal.ID); err != nil {
			return false, nil, err
		}
	}
	return true, recipients, nil
}

// DayList returns the member's records of one day with per-type totals.
func (s *RecordService) DayList(ctx context.Context, memberID string, day time.Time) (*models.DayListResponse, error) {
	records, err := s.store.RecordsByDayAndMember(ctx, day, memberID)
	if err != nil {
		return nil, err
	}

	resp := &models.DayListResponse{Records: []models.DayRecordDTO{}}
	for _, r := range records {
		resp.Records = append(resp.Records, models.DayRecordDTO{
			ID:         r.ID,
			RecordType: r.RecordType,
			RecordDate: r.RecordDate,
			Memo:       r.Memo,
			Amount:     r.Amount,
		})
		switch r.RecordType {
		case models.RecordTypeIncome:
			resp.IncomeAmount += r.Amount
		case models.RecordTypeExpense:
			resp.ExpenseAmount += r.Amount
		case models.RecordTypeChallenge:
			resp.ChallengeAmount += r.Amount
		case models.RecordTypeGroup:
			resp.GroupAmount += r.Amount
		}
	}
	return resp, nil
}

// Delete removes a record after checking ownership.
func (s *RecordService) Delete(ctx context.Context, memberID, recordID string) error {
	return s.store.Transact(ctx, func(tx storage.Store) error {
		record, err := tx.RecordByID(ctx, recordID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrRecordNotExist
			}
			return err
		}
		if record.MemberID != memberID {
			return ErrNotRecordOwner
		}
		return tx.DeleteRecord(ctx, recordID)
	})
}
