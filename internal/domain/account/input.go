package account

type (
	// DoctorInput is everything an administrator supplies when adding a doctor.
	// Email and password are never part of it.
	DoctorInput struct {
		FirstName          string
		LastName           string
		NationalID         string
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

	// Credentials are returned exactly once, at creation.
	Credentials struct {
		Email    string
		Password string
	}
)
