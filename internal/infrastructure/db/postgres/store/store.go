// Package store binds the Postgres repositories into a unit of work.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/infrastructure/db/postgres"
	accountRepo "hospital-admin-api/internal/infrastructure/db/postgres/account"
	auditRepo "hospital-admin-api/internal/infrastructure/db/postgres/audit"
)

type Store struct {
	pool     postgres.TxStarter
	tx       pgx.Tx
	accounts account.Repository
	audit    audit.Repository
}

func New(pool postgres.TxStarter) *Store {
	return &Store{
		pool:     pool,
		accounts: accountRepo.NewRepository(pool),
		audit:    auditRepo.NewRepository(pool),
	}
}

func (s *Store) Accounts() account.Repository { return s.accounts }

func (s *Store) Audit() audit.Repository { return s.audit }

// WithinTx runs fn on repositories bound to a single transaction. Calls made
// on an already transactional store join it.
func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err = fn(&Store{
		pool:     s.pool,
		tx:       tx,
		accounts: accountRepo.NewRepository(tx),
		audit:    auditRepo.NewRepository(tx),
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
