package ports

import (
	"context"

	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
)

// Store is the unit of work over accounts and the audit trail. Inside
// WithinTx both repositories share one transaction: either every write in
// fn commits or none does.
type Store interface {
	Accounts() account.Repository
	Audit() audit.Repository
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
