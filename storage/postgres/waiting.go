package postgres

import (
	"context"
	"database/sql"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"
)

func (s *Store) CreateWaitingGoal(ctx context.Context, w *models.WaitingGoal) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO waiting_goals (id, name, amount, goal_type, proposer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.ID, w.Name, w.Amount, w.GoalType, w.ProposerID, w.CreatedAt)
	return err
}

func (s *Store) WaitingGoalByID(ctx context.Context, id string) (*models.WaitingGoal, error) {
	var w models.WaitingGoal
	err := s.q.QueryRowContext(ctx, `
		SELECT id, name, amount, goal_type, proposer_id, created_at
		FROM waiting_goals WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.Amount, &w.GoalType, &w.ProposerID, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) DeleteWaitingGoal(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM waiting_goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (s *Store) CreateMemberWaitingGoal(ctx context.Context, mw *models.MemberWaitingGoal) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO member_waiting_goals (id, member_id, waiting_goal_id, accepted)
		VALUES ($1, $2, $3, $4)
	`, mw.ID, mw.MemberID, mw.WaitingGoalID, mw.Accepted)
	return err
}

func (s *Store) MemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) (*models.MemberWaitingGoal, error) {
	var mw models.MemberWaitingGoal
	err := s.q.QueryRowContext(ctx, `
		SELECT mw.id, mw.member_id, mw.waiting_goal_id, mw.accepted, m.nickname
		FROM member_waiting_goals mw
		JOIN members m ON mw.member_id = m.id
		WHERE mw.member_id = $1 AND mw.waiting_goal_id = $2
	`, memberID, waitingGoalID).Scan(&mw.ID, &mw.MemberID, &mw.WaitingGoalID, &mw.Accepted, &mw.MemberNickname)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mw, nil
}

func (s *Store) MemberWaitingGoalsByWaitingGoal(ctx context.Context, waitingGoalID string) ([]models.MemberWaitingGoal, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT mw.id, mw.member_id, mw.waiting_goal_id, mw.accepted, m.nickname
		FROM member_waiting_goals mw
		JOIN members m ON mw.member_id = m.id
		WHERE mw.waiting_goal_id = $1
		ORDER BY mw.id
	`, waitingGoalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mws []models.MemberWaitingGoal
	for rows.Next() {
		var mw models.MemberWaitingGoal
		if err := rows.Scan(&mw.ID, &mw.MemberID, &mw.WaitingGoalID, &mw.Accepted, &mw.MemberNickname); err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	return mws, rows.Err()
}

func (s *Store) WaitingGoalsByMember(ctx context.Context, memberID string) ([]models.WaitingGoal, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT w.id, w.name, w.amount, w.goal_type, w.proposer_id, w.created_at
		FROM waiting_goals w
		JOIN member_waiting_goals mw ON mw.waiting_goal_id = w.id
		WHERE mw.member_id = $1
		ORDER BY w.created_at
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.WaitingGoal
	for rows.Next() {
		var w models.WaitingGoal
		if err := rows.Scan(&w.ID, &w.Name, &w.Amount, &w.GoalType, &w.ProposerID, &w.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, w)
	}
	return goals, rows.Err()
}

func (s *Store) AcceptMemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE member_waiting_goals SET accepted = TRUE
		WHERE member_id = $1 AND waiting_goal_id = $2
	`, memberID, waitingGoalID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (s *Store) DeleteMemberWaitingGoal(ctx context.Context, memberID, waitingGoalID string) error {
	res, err := s.q.ExecContext(ctx, `
		DELETE FROM member_waiting_goals
		WHERE member_id = $1 AND waiting_goal_id = $2
	`, memberID, waitingGoalID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (s *Store) DeleteMemberWaitingGoalsByWaitingGoal(ctx context.Context, waitingGoalID string) error {
	_, err := s.q.ExecContext(ctx, `
		DELETE FROM member_waiting_goals WHERE waiting_goal_id = $1
	`, waitingGoalID)
	return err
}
