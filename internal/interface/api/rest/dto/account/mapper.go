package account

import (
	"strings"

	"hospital-admin-api/internal/domain/account"
)

const dateLayout = "2006-01-02"

func ToResponseAccount(a account.Account) Account {
	var out = Account{
		ID:         a.ID,
		Role:       string(a.Role),
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		NationalID: a.NationalID,
		Email:      a.Email,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}

	if d := a.Deactivation; d != nil {
		out.Deactivation = &Deactivation{
			ReasonCode: d.ReasonCode,
			Notes:      d.Notes,
			ByAdminID:  d.ByAdminID,
			At:         d.At,
		}
	}
	if r := a.Reactivation; r != nil {
		out.Reactivation = &Reactivation{ByAdminID: r.ByAdminID, At: r.At}
	}
	if d := a.Doctor; d != nil {
		out.Doctor = &Doctor{
			LicenseNumber:      d.LicenseNumber,
			SpecializationCode: d.SpecializationCode,
			SubSpecialization:  d.SubSpecialization,
			GovernorateCode:    d.GovernorateCode,
			ClinicAddress:      d.ClinicAddress,
			PhoneNumber:        d.PhoneNumber,
			EducationCode:      d.EducationCode,
			YearsOfExperience:  d.YearsOfExperience,
			Institution:        d.Institution,
		}
	}
	if p := a.Patient; p != nil {
		out.Patient = &Patient{
			Gender:      p.Gender,
			PhoneNumber: p.PhoneNumber,
			Address:     p.Address,
		}
		if !p.DateOfBirth.IsZero() {
			out.Patient.DateOfBirth = p.DateOfBirth.Format(dateLayout)
		}
	}

	return out
}

func ToResponseAccounts(as account.Accounts) Accounts {
	out := make(Accounts, len(as))
	for idx, a := range as {
		out[idx] = ToResponseAccount(*a)
	}

	return out
}

func ToCreatedDoctor(a account.Account, c account.Credentials) CreatedDoctor {
	return CreatedDoctor{
		Doctor:      ToResponseAccount(a),
		Credentials: Credentials{Email: c.Email, Password: c.Password},
	}
}

func ToDomainDoctorInput(r DoctorRequest) account.DoctorInput {
	return account.DoctorInput{
		FirstName:          strings.TrimSpace(r.FirstName),
		LastName:           strings.TrimSpace(r.LastName),
		NationalID:         strings.TrimSpace(r.NationalID),
		LicenseNumber:      strings.TrimSpace(r.LicenseNumber),
		SpecializationCode: strings.TrimSpace(r.SpecializationCode),
		SubSpecialization:  strings.TrimSpace(r.SubSpecialization),
		GovernorateCode:    strings.TrimSpace(r.GovernorateCode),
		ClinicAddress:      strings.TrimSpace(r.ClinicAddress),
		PhoneNumber:        strings.TrimSpace(r.PhoneNumber),
		EducationCode:      strings.TrimSpace(r.EducationCode),
		YearsOfExperience:  r.YearsOfExperience,
		Institution:        strings.TrimSpace(r.Institution),
	}
}
