package postgres

import (
	"context"
	"database/sql"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"
)

const memberColumns = `
	id, email, nickname, COALESCE(hero, ''), password_hash,
	COALESCE(totp_secret, ''), totp_enabled,
	challenge_goal_id, group_goal_id, created_at, updated_at
`

func scanMember(row *sql.Row) (*models.Member, error) {
	var m models.Member
	var challengeID, groupID sql.NullString
	err := row.Scan(
		&m.ID, &m.Email, &m.Nickname, &m.Hero, &m.PasswordHash,
		&m.TOTPSecret, &m.TOTPEnabled,
		&challengeID, &groupID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if challengeID.Valid {
		m.ChallengeGoalID = &challengeID.String
	}
	if groupID.Valid {
		m.GroupGoalID = &groupID.String
	}
	return &m, nil
}

func (s *Store) MemberByID(ctx context.Context, id string) (*models.Member, error) {
	return scanMember(s.q.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
}

func (s *Store) MemberByNickname(ctx context.Context, nickname string) (*models.Member, error) {
	return scanMember(s.q.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE nickname = $1`, nickname))
}

func (s *Store) SetChallengeGoal(ctx context.Context, memberID string, goalID *string) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE members SET challenge_goal_id = $1, updated_at = NOW() WHERE id = $2
	`, goalID, memberID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (s *Store) SetGroupGoal(ctx context.Context, memberID string, goalID *string) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE members SET group_goal_id = $1, updated_at = NOW() WHERE id = $2
	`, goalID, memberID)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
