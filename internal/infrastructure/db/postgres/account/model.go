package account

import (
	"time"

	"github.com/google/uuid"
)

type (
	Lifecycle struct {
		IsActive           bool
		DeactivationReason *string
		DeactivationNotes  *string
		DeactivatedBy      *string
		DeactivatedAt      *time.Time
		ReactivatedBy      *string
		ReactivatedAt      *time.Time
	}

	Doctor struct {
		ID           uuid.UUID
		FirstName    string
		LastName     string
		NationalID   string
		Email        string
		PasswordHash *string

		LicenseNumber      string
		SpecializationCode string
		SubSpecialization  string
		GovernorateCode    string
		ClinicAddress      string
		PhoneNumber        string
		EducationCode      string
		YearsOfExperience  int
		Institution        string

		Lifecycle

		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Patient struct {
		ID           uuid.UUID
		FirstName    string
		LastName     string
		NationalID   string
		Email        string
		PasswordHash *string

		DateOfBirth time.Time
		Gender      string
		PhoneNumber string
		Address     string

		Lifecycle

		CreatedAt time.Time
		UpdatedAt time.Time
	}

	scanner interface {
		Scan(dest ...any) error
	}
)

func (d *Doctor) scan(row scanner) error {
	return row.Scan(
		&d.ID,
		&d.FirstName,
		&d.LastName,
		&d.NationalID,
		&d.Email,
		&d.PasswordHash,

		&d.LicenseNumber,
		&d.SpecializationCode,
		&d.SubSpecialization,
		&d.GovernorateCode,
		&d.ClinicAddress,
		&d.PhoneNumber,
		&d.EducationCode,
		&d.YearsOfExperience,
		&d.Institution,

		&d.IsActive,
		&d.DeactivationReason,
		&d.DeactivationNotes,
		&d.DeactivatedBy,
		&d.DeactivatedAt,
		&d.ReactivatedBy,
		&d.ReactivatedAt,

		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func (p *Patient) scan(row scanner) error {
	return row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.NationalID,
		&p.Email,
		&p.PasswordHash,

		&p.DateOfBirth,
		&p.Gender,
		&p.PhoneNumber,
		&p.Address,

		&p.IsActive,
		&p.DeactivationReason,
		&p.DeactivationNotes,
		&p.DeactivatedBy,
		&p.DeactivatedAt,
		&p.ReactivatedBy,
		&p.ReactivatedAt,

		&p.CreatedAt,
		&p.UpdatedAt,
	)
}
