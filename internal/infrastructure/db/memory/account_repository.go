package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/apperr"
)

type accountRepository struct {
	s *Store
}

func (r *accountRepository) FetchAccountByID(_ context.Context, role account.Role, id account.ID) (*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if a, ok := r.s.data.accounts[role][id]; ok {
		return a.Clone(), nil
	}
	return nil, nil
}

// FetchAccountForUpdate needs no row lock here: transactions are serialized.
func (r *accountRepository) FetchAccountForUpdate(ctx context.Context, role account.Role, id account.ID) (*account.Account, error) {
	return r.FetchAccountByID(ctx, role, id)
}

func (r *accountRepository) FetchAccountByNationalID(_ context.Context, role account.Role, nationalID string) (*account.Account, error) {
	return r.find(role, func(a *account.Account) bool { return a.NationalID == nationalID }), nil
}

func (r *accountRepository) FetchAccountByEmail(_ context.Context, role account.Role, email string) (*account.Account, error) {
	return r.find(role, func(a *account.Account) bool { return strings.EqualFold(a.Email, email) }), nil
}

func (r *accountRepository) FetchDoctorByLicenseNumber(_ context.Context, licenseNumber string) (*account.Account, error) {
	return r.find(account.RoleDoctor, func(a *account.Account) bool {
		return a.Doctor != nil && a.Doctor.LicenseNumber == licenseNumber
	}), nil
}

func (r *accountRepository) FetchAccounts(_ context.Context, role account.Role, page int) (account.Accounts, error) {
	if page < 1 {
		page = 1
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.data.order[role]
	// compare page counts first so the offset cannot overflow
	if page-1 >= (len(ids)+pageSize-1)/pageSize {
		return account.Accounts{}, nil
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(ids))

	out := make(account.Accounts, 0, end-start)
	for _, id := range ids[start:end] {
		out = append(out, r.s.data.accounts[role][id].Clone())
	}

	return out, nil
}

func (r *accountRepository) FetchAllAccounts(_ context.Context, role account.Role) (account.Accounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.data.order[role]
	out := make(account.Accounts, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.data.accounts[role][id].Clone())
	}

	return out, nil
}

// CreateAccount enforces the same uniqueness a database would with constraints.
func (r *accountRepository) CreateAccount(_ context.Context, a account.Account) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byID, ok := r.s.data.accounts[a.Role]
	if !ok {
		return nil, apperr.NewValidation(map[string]string{"role": "must be doctor or patient"})
	}
	for _, other := range byID {
		switch {
		case other.NationalID == a.NationalID:
			return nil, &apperr.ConflictError{Field: "national_id", Value: a.NationalID}
		case strings.EqualFold(other.Email, a.Email):
			return nil, &apperr.ConflictError{Field: "email", Value: a.Email}
		case a.Doctor != nil && other.Doctor != nil && other.Doctor.LicenseNumber == a.Doctor.LicenseNumber:
			return nil, &apperr.ConflictError{Field: "license_number", Value: a.Doctor.LicenseNumber}
		}
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := r.s.clock().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}

	stored := a.Clone()
	byID[a.ID] = stored
	r.s.data.order[a.Role] = append(r.s.data.order[a.Role], a.ID)

	return stored.Clone(), nil
}

// UpdateAccountState persists the lifecycle fields only.
func (r *accountRepository) UpdateAccountState(_ context.Context, a account.Account) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.data.accounts[a.Role][a.ID]
	if !ok {
		return nil, nil
	}

	src := a.Clone()
	stored.IsActive = src.IsActive
	stored.Deactivation = src.Deactivation
	stored.Reactivation = src.Reactivation
	stored.UpdatedAt = src.UpdatedAt

	return stored.Clone(), nil
}

func (r *accountRepository) CountByState(_ context.Context, role account.Role) (account.StateCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var c account.StateCounts
	for _, a := range r.s.data.accounts[role] {
		if a.IsActive {
			c.Active++
		} else {
			c.Inactive++
		}
	}

	return c, nil
}

func (r *accountRepository) CountDoctorsBy(_ context.Context, dim account.Dimension) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]int)
	for _, a := range r.s.data.accounts[account.RoleDoctor] {
		if a.Doctor == nil {
			continue
		}
		switch dim {
		case account.DimensionSpecialization:
			out[a.Doctor.SpecializationCode]++
		case account.DimensionGovernorate:
			out[a.Doctor.GovernorateCode]++
		}
	}

	return out, nil
}

func (r *accountRepository) find(role account.Role, match func(*account.Account) bool) *account.Account {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, id := range r.s.data.order[role] {
		if a := r.s.data.accounts[role][id]; match(a) {
			return a.Clone()
		}
	}
	return nil
}
