package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

var (
	ErrAlreadyInactive = errors.New("account is already inactive")
	ErrAlreadyActive   = errors.New("account is already active")
)

type (
	ID   = uuid.UUID
	Role string

	Deactivation struct {
		ReasonCode string
		Notes      string
		ByAdminID  string
		At         time.Time
	}
	Reactivation struct {
		ByAdminID string
		At        time.Time
	}

	DoctorProfile struct {
		LicenseNumber      string
		SpecializationCode string
		SubSpecialization  string
		GovernorateCode    string
		ClinicAddress      string
		PhoneNumber        string
		EducationCode      string
		YearsOfExperience  int
		Institution        string
	}
	PatientProfile struct {
		DateOfBirth time.Time
		Gender      string
		PhoneNumber string
		Address     string
	}

	// Account is a doctor or patient record. Exactly one of Doctor/Patient is
	// set, matching Role. Deactivation is non-nil iff IsActive is false.
	Account struct {
		ID           ID
		Role         Role
		FirstName    string
		LastName     string
		NationalID   string
		Email        string
		PasswordHash *string

		IsActive     bool
		Deactivation *Deactivation
		Reactivation *Reactivation

		Doctor  *DoctorProfile
		Patient *PatientProfile

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Accounts []*Account
)

func (r Role) Valid() bool { return r == RoleDoctor || r == RolePatient }

func (r Role) String() string { return string(r) }

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

func (a *Account) FullName() string { return a.FirstName + " " + a.LastName }

// State reports "active" or "inactive".
func (a *Account) State() string {
	if a.IsActive {
		return "active"
	}
	return "inactive"
}

// Deactivate moves an active account to inactive.
func (a *Account) Deactivate(d Deactivation) error {
	if !a.IsActive {
		return ErrAlreadyInactive
	}
	a.IsActive = false
	a.Deactivation = &d
	a.UpdatedAt = d.At

	return nil
}

// Reactivate moves an inactive account back to active. The previous
// deactivation is dropped from the live record; the audit trail keeps it.
func (a *Account) Reactivate(r Reactivation) error {
	if a.IsActive {
		return ErrAlreadyActive
	}
	a.IsActive = true
	a.Deactivation = nil
	a.Reactivation = &r
	a.UpdatedAt = r.At

	return nil
}

// Clone returns a deep copy so stores can hand out records without sharing.
func (a *Account) Clone() *Account {
	c := *a
	if a.PasswordHash != nil {
		h := *a.PasswordHash
		c.PasswordHash = &h
	}
	if a.Deactivation != nil {
		d := *a.Deactivation
		c.Deactivation = &d
	}
	if a.Reactivation != nil {
		r := *a.Reactivation
		c.Reactivation = &r
	}
	if a.Doctor != nil {
		d := *a.Doctor
		c.Doctor = &d
	}
	if a.Patient != nil {
		p := *a.Patient
		c.Patient = &p
	}

	return &c
}
