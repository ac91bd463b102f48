package postgres

import (
	"context"
	"database/sql"

	"github.com/LovationAdmin/cagnotte-api/storage"
	"github.com/LovationAdmin/cagnotte-api/utils"
)

// queryer is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store implements storage.Store on Postgres.
type Store struct {
	db *sql.DB // nil when already bound to a transaction
	q  queryer
}

func New(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

// Transact runs fn within one database transaction. A nested call joins the
// enclosing transaction instead of opening a second one.
func (s *Store) Transact(ctx context.Context, fn func(storage.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return fn(&Store{q: tx})
	})
}
