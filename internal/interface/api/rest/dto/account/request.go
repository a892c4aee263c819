package account

type (
	DoctorRequest struct {
		FirstName          string `json:"first_name"`
		LastName           string `json:"last_name"`
		NationalID         string `json:"national_id" binding:"omitempty,numeric"`
		LicenseNumber      string `json:"license_number" binding:"max=32"`
		SpecializationCode string `json:"specialization_code" binding:"max=64"`
		SubSpecialization  string `json:"sub_specialization" binding:"max=128"`
		GovernorateCode    string `json:"governorate_code" binding:"max=64"`
		ClinicAddress      string `json:"clinic_address" binding:"max=255"`
		PhoneNumber        string `json:"phone_number" binding:"max=32"`
		EducationCode      string `json:"education_code" binding:"max=64"`
		YearsOfExperience  int    `json:"years_of_experience" binding:"gte=0,lte=80"`
		Institution        string `json:"institution" binding:"max=255"`
	}
	DeactivateRequest struct {
		ReasonCode string `json:"reason_code" binding:"required,max=64"`
		Notes      string `json:"notes" binding:"max=1000"`
	}
)
