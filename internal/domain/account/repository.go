package account

import (
	"context"
	"math"
)

const (
	PageSize = 50
	// MaxPage keeps (page-1)*PageSize inside an int32 offset.
	MaxPage = math.MaxInt32 / PageSize

	DimensionSpecialization Dimension = "specialization"
	DimensionGovernorate    Dimension = "governorate"
)

type (
	Dimension string

	StateCounts struct {
		Active   int
		Inactive int
	}
)

// Repository reads return (nil, nil) when nothing matches.
type Repository interface {
	FetchAccountByID(ctx context.Context, role Role, id ID) (*Account, error)
	// FetchAccountForUpdate locks the row until the surrounding transaction ends.
	FetchAccountForUpdate(ctx context.Context, role Role, id ID) (*Account, error)
	FetchAccountByNationalID(ctx context.Context, role Role, nationalID string) (*Account, error)
	FetchAccountByEmail(ctx context.Context, role Role, email string) (*Account, error)
	FetchDoctorByLicenseNumber(ctx context.Context, licenseNumber string) (*Account, error)
	FetchAccounts(ctx context.Context, role Role, page int) (Accounts, error)
	FetchAllAccounts(ctx context.Context, role Role) (Accounts, error)
	CreateAccount(ctx context.Context, a Account) (*Account, error)
	UpdateAccountState(ctx context.Context, a Account) (*Account, error)
	CountByState(ctx context.Context, role Role) (StateCounts, error)
	CountDoctorsBy(ctx context.Context, dim Dimension) (map[string]int, error)
}
