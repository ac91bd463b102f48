package postgres

import (
	"context"
	"database/sql"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"
)

func (s *Store) CreateAlarm(ctx context.Context, a *models.Alarm) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO alarms (id, alarm_type, detail_type, goal_name, goal_amount,
		                    waiting_goal_id, from_nickname, member_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.AlarmType, a.DetailType, a.GoalName, a.GoalAmount,
		a.WaitingGoalID, a.FromNickname, a.MemberID, a.CreatedAt)
	return err
}

func (s *Store) AlarmByID(ctx context.Context, id string) (*models.Alarm, error) {
	var a models.Alarm
	var waitingGoalID sql.NullString
	err := s.q.QueryRowContext(ctx, `
		SELECT id, alarm_type, detail_type, goal_name, goal_amount,
		       waiting_goal_id, from_nickname, member_id, created_at
		FROM alarms WHERE id = $1
	`, id).Scan(&a.ID, &a.AlarmType, &a.DetailType, &a.GoalName, &a.GoalAmount,
		&waitingGoalID, &a.FromNickname, &a.MemberID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if waitingGoalID.Valid {
		a.WaitingGoalID = &waitingGoalID.String
	}
	return &a, nil
}

func (s *Store) AlarmsByMember(ctx context.Context, memberID string) ([]models.Alarm, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, alarm_type, detail_type, goal_name, goal_amount,
		       waiting_goal_id, from_nickname, member_id, created_at
		FROM alarms
		WHERE member_id = $1
		ORDER BY created_at DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alarms []models.Alarm
	for rows.Next() {
		var a models.Alarm
		var waitingGoalID sql.NullString
		err := rows.Scan(&a.ID, &a.AlarmType, &a.DetailType, &a.GoalName, &a.GoalAmount,
			&waitingGoalID, &a.FromNickname, &a.MemberID, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		if waitingGoalID.Valid {
			a.WaitingGoalID = &waitingGoalID.String
		}
		alarms = append(alarms, a)
	}
	return alarms, rows.Err()
}

func (s *Store) DeleteAlarm(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM alarms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (s *Store) DeleteAlarmsByWaitingGoalAndDetail(ctx context.Context, waitingGoalID string, detail models.AlarmDetailType) error {
	_, err := s.q.ExecContext(ctx, `
		DELETE FROM alarms WHERE waiting_goal_id = $1 AND detail_type = $2
	`, waitingGoalID, detail)
	return err
}

func (s *Store) DeleteAlarmsByMemberAndDetail(ctx context.Context, memberID string, at models.AlarmType, detail models.AlarmDetailType) error {
	_, err := s.q.ExecContext(ctx, `
		DELETE FROM alarms WHERE member_id = $1 AND alarm_type = $2 AND detail_type = $3
	`, memberID, at, detail)
	return err
}
