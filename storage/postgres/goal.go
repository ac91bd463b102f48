package postgres

import (
	"context"
	"database/sql"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"
)

// ============================================================================
// CHALLENGE GOALS
// ============================================================================

func (s *Store) CreateChallengeGoal(ctx context.Context, g *models.ChallengeGoal) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO challenge_goals (id, name, amount, created_at)
		VALUES ($1, $2, $3, $4)
	`, g.ID, g.Name, g.Amount, g.CreatedAt)
	return err
}

func (s *Store) ChallengeGoalByID(ctx context.Context, id string) (*models.ChallengeGoal, error) {
	var g models.ChallengeGoal
	err := s.q.QueryRowContext(ctx, `
		SELECT id, name, amount, created_at FROM challenge_goals WHERE id = $1
	`, id).Scan(&g.ID, &g.Name, &g.Amount, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) ChallengeGoalMembers(ctx context.Context, goalID string) ([]models.Member, error) {
	return s.membersWhere(ctx, `challenge_goal_id = $1`, goalID)
}

func (s *Store) DeleteChallengeGoal(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM challenge_goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// ============================================================================
// GROUP GOALS
// ============================================================================

func (s *Store) CreateGroupGoal(ctx context.Context, g *models.GroupGoal) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO group_goals (id, name, amount, accepted, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, g.ID, g.Name, g.Amount, g.Accepted, g.CreatedAt)
	return err
}

func (s *Store) GroupGoalByID(ctx context.Context, id string) (*models.GroupGoal, error) {
	var g models.GroupGoal
	err := s.q.QueryRowContext(ctx, `
		SELECT id, name, amount, accepted, created_at FROM group_goals WHERE id = $1
	`, id).Scan(&g.ID, &g.Name, &g.Amount, &g.Accepted, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Store) GroupGoalMembers(ctx context.Context, goalID string) ([]models.Member, error) {
	return s.membersWhere(ctx, `group_goal_id = $1`, goalID)
}

func (s *Store) DeleteGroupGoal(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM group_goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// ============================================================================
// DONE GOALS
// ============================================================================

func (s *Store) CreateDoneGoal(ctx context.Context, d *models.DoneGoal) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO done_goals (id, member_id, name, amount, goal_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, d.ID, d.MemberID, d.Name, d.Amount, d.GoalType, d.CreatedAt)
	return err
}

func (s *Store) DoneGoalsByMember(ctx context.Context, memberID string) ([]models.DoneGoal, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, member_id, name, amount, goal_type, created_at
		FROM done_goals
		WHERE member_id = $1
		ORDER BY created_at
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.DoneGoal
	for rows.Next() {
		var d models.DoneGoal
		if err := rows.Scan(&d.ID, &d.MemberID, &d.Name, &d.Amount, &d.GoalType, &d.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, d)
	}
	return goals, rows.Err()
}

func (s *Store) membersWhere(ctx context.Context, where string, arg interface{}) ([]models.Member, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM members WHERE `+where+` ORDER BY created_at
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var challengeID, groupID sql.NullString
		err := rows.Scan(
			&m.ID, &m.Email, &m.Nickname, &m.Hero, &m.PasswordHash,
			&m.TOTPSecret, &m.TOTPEnabled,
			&challengeID, &groupID, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if challengeID.Valid {
			m.ChallengeGoalID = &challengeID.String
		}
		if groupID.Valid {
			m.GroupGoalID = &groupID.String
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
