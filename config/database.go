package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS challenge_goals (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			amount BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS group_goals (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			amount BIGINT NOT NULL,
			accepted BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS members (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			nickname VARCHAR(50) UNIQUE NOT NULL,
			hero VARCHAR(50),
			password_hash VARCHAR(255) NOT NULL,
			totp_secret VARCHAR(255),
			totp_enabled BOOLEAN DEFAULT FALSE,
			challenge_goal_id UUID REFERENCES challenge_goals(id) ON DELETE SET NULL,
			group_goal_id UUID REFERENCES group_goals(id) ON DELETE SET NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS waiting_goals (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			amount BIGINT NOT NULL,
			goal_type VARCHAR(20) NOT NULL,
			proposer_id UUID REFERENCES members(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS member_waiting_goals (
			id UUID PRIMARY KEY,
			member_id UUID REFERENCES members(id) ON DELETE CASCADE,
			waiting_goal_id UUID REFERENCES waiting_goals(id) ON DELETE CASCADE,
			accepted BOOLEAN DEFAULT FALSE,
			UNIQUE(member_id, waiting_goal_id)
		)`,

		`CREATE TABLE IF NOT EXISTS records (
			id UUID PRIMARY KEY,
			member_id UUID REFERENCES members(id) ON DELETE CASCADE,
			record_type VARCHAR(20) NOT NULL,
			record_date TIMESTAMP NOT NULL,
			memo TEXT DEFAULT '',
			amount BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS done_goals (
			id UUID PRIMARY KEY,
			member_id UUID REFERENCES members(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			amount BIGINT NOT NULL,
			goal_type VARCHAR(20) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS alarms (
			id UUID PRIMARY KEY,
			alarm_type VARCHAR(20) NOT NULL,
			detail_type VARCHAR(20) NOT NULL,
			goal_name VARCHAR(255) NOT NULL,
			goal_amount BIGINT NOT NULL,
			waiting_goal_id UUID,
			from_nickname VARCHAR(50) NOT NULL,
			member_id UUID REFERENCES members(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_members_challenge_goal_id ON members(challenge_goal_id)`,
		`CREATE INDEX IF NOT EXISTS idx_members_group_goal_id ON members(group_goal_id)`,
		`CREATE INDEX IF NOT EXISTS idx_member_waiting_goals_member_id ON member_waiting_goals(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_member_waiting_goals_waiting_goal_id ON member_waiting_goals(waiting_goal_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_member_type ON records(member_id, record_type)`,
		`CREATE INDEX IF NOT EXISTS idx_records_member_date ON records(member_id, record_date)`,
		`CREATE INDEX IF NOT EXISTS idx_done_goals_member_id ON done_goals(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alarms_member_id ON alarms(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alarms_waiting_goal_id ON alarms(waiting_goal_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
