package account

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"hospital-admin-api/internal/domain/account"
)

var (
	commonHeader = []string{
		"id", "first_name", "last_name", "national_id", "email", "is_active",
		"deactivation_reason", "deactivated_at", "created_at",
	}
	doctorHeader = []string{
		"license_number", "specialization_code", "sub_specialization", "governorate_code",
		"clinic_address", "phone_number", "education_code", "years_of_experience", "institution",
	}
	patientHeader = []string{
		"date_of_birth", "gender", "phone_number", "address",
	}
)

// WriteCSV writes one header row and one row per account. Password hashes
// are never exported.
func WriteCSV(w io.Writer, role account.Role, as account.Accounts) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, commonHeader...)
	if role == account.RolePatient {
		header = append(header, patientHeader...)
	} else {
		header = append(header, doctorHeader...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, a := range as {
		if err := cw.Write(csvRecord(a)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRecord(a *account.Account) []string {
	var reason, deactivatedAt string
	if d := a.Deactivation; d != nil {
		reason = d.ReasonCode
		deactivatedAt = d.At.UTC().Format(time.RFC3339)
	}

	rec := []string{
		a.ID.String(),
		a.FirstName,
		a.LastName,
		a.NationalID,
		a.Email,
		strconv.FormatBool(a.IsActive),
		reason,
		deactivatedAt,
		a.CreatedAt.UTC().Format(time.RFC3339),
	}

	switch {
	case a.Doctor != nil:
		d := a.Doctor
		rec = append(rec,
			d.LicenseNumber,
			d.SpecializationCode,
			d.SubSpecialization,
			d.GovernorateCode,
			d.ClinicAddress,
			d.PhoneNumber,
			d.EducationCode,
			strconv.Itoa(d.YearsOfExperience),
			d.Institution,
		)
	case a.Patient != nil:
		p := a.Patient
		var dob string
		if !p.DateOfBirth.IsZero() {
			dob = p.DateOfBirth.Format(dateLayout)
		}
		rec = append(rec, dob, p.Gender, p.PhoneNumber, p.Address)
	}

	return rec
}
