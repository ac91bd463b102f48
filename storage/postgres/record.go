package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/storage"
)

func (s *Store) CreateRecord(ctx context.Context, r *models.Record) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO records (id, member_id, record_type, record_date, memo, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.ID, r.MemberID, r.RecordType, r.RecordDate, r.Memo, r.Amount, r.CreatedAt)
	return err
}

func (s *Store) RecordByID(ctx context.Context, id string) (*models.Record, error) {
	var r models.Record
	err := s.q.QueryRowContext(ctx, `
		SELECT id, member_id, record_type, record_date, memo, amount, created_at
		FROM records WHERE id = $1
	`, id).Scan(&r.ID, &r.MemberID, &r.RecordType, &r.RecordDate, &r.Memo, &r.Amount, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) RecordsByTypeAndMember(ctx context.Context, rt models.RecordType, memberID string) ([]models.Record, error) {
	return s.queryRecords(ctx, `
		SELECT id, member_id, record_type, record_date, memo, amount, created_at
		FROM records
		WHERE record_type = $1 AND member_id = $2
		ORDER BY created_at
	`, rt, memberID)
}

func (s *Store) RecordsByDayAndMember(ctx context.Context, day time.Time, memberID string) ([]models.Record, error) {
	return s.queryRecords(ctx, `
		SELECT id, member_id, record_type, record_date, memo, amount, created_at
		FROM records
		WHERE record_date::date = $1::date AND member_id = $2
		ORDER BY record_date
	`, day, memberID)
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...interface{}) ([]models.Record, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.MemberID, &r.RecordType, &r.RecordDate, &r.Memo, &r.Amount, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
