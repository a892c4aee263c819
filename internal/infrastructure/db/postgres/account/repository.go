package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/apperr"
	"hospital-admin-api/internal/infrastructure/db/postgres"
)

type (
	Repository struct {
		db postgres.DBTX
	}

	roleQueries struct {
		byID, forUpdate, byNationalID, byEmail string
		page, all, updateState, countByState   string
	}
)

var queriesByRole = map[domain.Role]roleQueries{
	domain.RoleDoctor: {
		byID:         SelectDoctorByID,
		forUpdate:    SelectDoctorForUpdate,
		byNationalID: SelectDoctorByNationalID,
		byEmail:      SelectDoctorByEmail,
		page:         SelectDoctors,
		all:          SelectAllDoctors,
		updateState:  UpdateDoctorState,
		countByState: CountDoctorsByState,
	},
	domain.RolePatient: {
		byID:         SelectPatientByID,
		forUpdate:    SelectPatientForUpdate,
		byNationalID: SelectPatientByNationalID,
		byEmail:      SelectPatientByEmail,
		page:         SelectPatients,
		all:          SelectAllPatients,
		updateState:  UpdatePatientState,
		countByState: CountPatientsByState,
	},
}

// unique constraints and indexes from the schema, by the field they guard
var conflictFields = map[string]string{
	"doctors_license_number_key": "license_number",
	"doctors_national_id_key":    "national_id",
	"doctors_email_key":          "email",
	"patients_national_id_key":   "national_id",
	"patients_email_key":         "email",
}

func NewRepository(db postgres.DBTX) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchAccountByID(ctx context.Context, role domain.Role, id domain.ID) (*domain.Account, error) {
	q, err := queriesFor(role)
	if err != nil {
		return nil, err
	}
	return r.fetchOne(ctx, role, q.byID, id.String())
}

// FetchAccountForUpdate locks the row until the surrounding transaction ends.
func (r *Repository) FetchAccountForUpdate(ctx context.Context, role domain.Role, id domain.ID) (*domain.Account, error) {
	q, err := queriesFor(role)
	if err != nil {
		return nil, err
	}
	return r.fetchOne(ctx, role, q.forUpdate, id.String())
}

func (r *Repository) FetchAccountByNationalID(ctx context.Context, role domain.Role, nationalID string) (*domain.Account, error) {
	q, err := queriesFor(role)
	if err != nil {
		return nil, err
	}
	return r.fetchOne(ctx, role, q.byNationalID, nationalID)
}

func (r *Repository) FetchAccountByEmail(ctx context.Context, role domain.Role, email string) (*domain.Account, error) {
	q, err := queriesFor(role)
	if err != nil {
		return nil, err
	}
	return r.fetchOne(ctx, role, q.byEmail, email)
}

func (r *Repository) FetchDoctorByLicenseNumber(ctx context.Context, licenseNumber string) (*domain.Account, error) {
	return r.fetchOne(ctx, domain.RoleDoctor, SelectDoctorByLicense, licenseNumber)
}

func (r *Repository) FetchAccounts(ctx context.Context, role domain.Role, page int) (domain.Accounts, error) {
	q, err := queriesFor(role)
	if err != nil {
		return nil, err
	}
	return r.fetchMany(ctx, role, q.page, page)
}

func (r *Repository) FetchAllAccounts(ctx context.Context, role domain.Role) (domain.Accounts, error) {
	q, err := queriesFor(role)
	if err != nil {
		return nil, err
	}
	return r.fetchMany(ctx, role, q.all)
}

func (r *Repository) CreateAccount(ctx context.Context, req domain.Account) (*domain.Account, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	var row pgx.Row
	switch req.Role {
	case domain.RoleDoctor:
		if req.Doctor == nil {
			return nil, apperr.NewValidation(map[string]string{"doctor": "profile is required"})
		}
		p := req.Doctor
		row = r.db.QueryRow(ctx, InsertDoctor,
			req.ID.String(), req.FirstName, req.LastName, req.NationalID, req.Email, req.PasswordHash,
			p.LicenseNumber, p.SpecializationCode, p.SubSpecialization, p.GovernorateCode, p.ClinicAddress, p.PhoneNumber,
			p.EducationCode, p.YearsOfExperience, p.Institution,
			req.CreatedAt,
		)
	case domain.RolePatient:
		if req.Patient == nil {
			return nil, apperr.NewValidation(map[string]string{"patient": "profile is required"})
		}
		p := req.Patient
		row = r.db.QueryRow(ctx, InsertPatient,
			req.ID.String(), req.FirstName, req.LastName, req.NationalID, req.Email, req.PasswordHash,
			p.DateOfBirth, p.Gender, p.PhoneNumber, p.Address,
			req.CreatedAt,
		)
	default:
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}

	a, err := scanAccount(req.Role, row)
	if err != nil {
		if constraint, ok := postgres.IsPgUniqueViolation(err); ok {
			return nil, conflict(constraint, req)
		}
		return nil, err
	}

	return a, nil
}

// UpdateAccountState writes the lifecycle columns only. A missing row yields nil, nil.
func (r *Repository) UpdateAccountState(ctx context.Context, req domain.Account) (*domain.Account, error) {
	q, err := queriesFor(req.Role)
	if err != nil {
		return nil, err
	}

	l := toLifecycle(req)
	row := r.db.QueryRow(ctx, q.updateState,
		req.ID.String(),
		l.IsActive,
		l.DeactivationReason,
		l.DeactivationNotes,
		l.DeactivatedBy,
		l.DeactivatedAt,
		l.ReactivatedBy,
		l.ReactivatedAt,
		req.UpdatedAt,
	)

	a, err := scanAccount(req.Role, row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return a, nil
}

func (r *Repository) CountByState(ctx context.Context, role domain.Role) (domain.StateCounts, error) {
	q, err := queriesFor(role)
	if err != nil {
		return domain.StateCounts{}, err
	}

	var active, inactive int64
	if err = r.db.QueryRow(ctx, q.countByState).Scan(&active, &inactive); err != nil {
		return domain.StateCounts{}, err
	}

	return domain.StateCounts{Active: int(active), Inactive: int(inactive)}, nil
}

func (r *Repository) CountDoctorsBy(ctx context.Context, dim domain.Dimension) (map[string]int, error) {
	var query string
	switch dim {
	case domain.DimensionSpecialization:
		query = CountDoctorsBySpecialization
	case domain.DimensionGovernorate:
		query = CountDoctorsByGovernorate
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			code string
			n    int64
		)
		if err = rows.Scan(&code, &n); err != nil {
			return nil, err
		}
		out[code] = int(n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *Repository) fetchOne(ctx context.Context, role domain.Role, query string, arg any) (*domain.Account, error) {
	a, err := scanAccount(role, r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return a, nil
}

func (r *Repository) fetchMany(ctx context.Context, role domain.Role, query string, args ...any) (domain.Accounts, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := domain.Accounts{}
	for rows.Next() {
		a, err := scanAccount(role, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanAccount(role domain.Role, row scanner) (*domain.Account, error) {
	switch role {
	case domain.RoleDoctor:
		d := new(Doctor)
		if err := d.scan(row); err != nil {
			return nil, err
		}
		return fromDoctorModel(d), nil
	case domain.RolePatient:
		p := new(Patient)
		if err := p.scan(row); err != nil {
			return nil, err
		}
		return fromPatientModel(p), nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

func queriesFor(role domain.Role) (roleQueries, error) {
	q, ok := queriesByRole[role]
	if !ok {
		return roleQueries{}, fmt.Errorf("unknown role %q", role)
	}
	return q, nil
}

func conflict(constraint string, req domain.Account) error {
	field, ok := conflictFields[constraint]
	if !ok {
		field = constraint
	}

	value := ""
	switch field {
	case "national_id":
		value = req.NationalID
	case "email":
		value = req.Email
	case "license_number":
		if req.Doctor != nil {
			value = req.Doctor.LicenseNumber
		}
	}

	return &apperr.ConflictError{Field: field, Value: value}
}
