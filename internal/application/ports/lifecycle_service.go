package ports

import (
	"context"

	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
)

type LifecycleService interface {
	CreateDoctor(ctx context.Context, in account.DoctorInput, actor audit.Actor) (*account.Account, account.Credentials, error)
	DeactivateAccount(ctx context.Context, role account.Role, id account.ID, reasonCode, notes string, actor audit.Actor) (*account.Account, error)
	ReactivateAccount(ctx context.Context, role account.Role, id account.ID, actor audit.Actor) (*account.Account, error)
	FindAccount(ctx context.Context, role account.Role, id account.ID) (*account.Account, error)
	FindAccounts(ctx context.Context, role account.Role, page int) (account.Accounts, error)
	ExportAccounts(ctx context.Context, role account.Role, actor audit.Actor) (account.Accounts, error)
}
