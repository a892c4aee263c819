package account

import (
	"time"

	"github.com/google/uuid"
)

type (
	Deactivation struct {
		ReasonCode string    `json:"reason_code"`
		Notes      string    `json:"notes"`
		ByAdminID  string    `json:"by_admin_id"`
		At         time.Time `json:"at"`
	}
	Reactivation struct {
		ByAdminID string    `json:"by_admin_id"`
		At        time.Time `json:"at"`
	}
	Doctor struct {
		LicenseNumber      string `json:"license_number"`
		SpecializationCode string `json:"specialization_code"`
		SubSpecialization  string `json:"sub_specialization,omitempty"`
		GovernorateCode    string `json:"governorate_code"`
		ClinicAddress      string `json:"clinic_address"`
		PhoneNumber        string `json:"phone_number"`
		EducationCode      string `json:"education_code,omitempty"`
		YearsOfExperience  int    `json:"years_of_experience"`
		Institution        string `json:"institution,omitempty"`
	}
	Patient struct {
		DateOfBirth string `json:"date_of_birth"`
		Gender      string `json:"gender"`
		PhoneNumber string `json:"phone_number"`
		Address     string `json:"address"`
	}
	Account struct {
		ID           uuid.UUID     `json:"id"`
		Role         string        `json:"role"`
		FirstName    string        `json:"first_name"`
		LastName     string        `json:"last_name"`
		NationalID   string        `json:"national_id"`
		Email        string        `json:"email"`
		IsActive     bool          `json:"is_active"`
		Deactivation *Deactivation `json:"deactivation,omitempty"`
		Reactivation *Reactivation `json:"reactivation,omitempty"`
		Doctor       *Doctor       `json:"doctor,omitempty"`
		Patient      *Patient      `json:"patient,omitempty"`
		CreatedAt    time.Time     `json:"created_at"`
		UpdatedAt    time.Time     `json:"updated_at"`
	}
	Accounts     []Account
	ResponseData struct {
		Data Accounts `json:"data"`
	}

	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// CreatedDoctor is the only response that ever carries a plaintext password.
	CreatedDoctor struct {
		Doctor      Account     `json:"doctor"`
		Credentials Credentials `json:"credentials"`
	}
)
