package account

const (
	doctorColumns = `
		id, first_name, last_name, national_id, email, password_hash,
		license_number, specialization_code, sub_specialization, governorate_code, clinic_address, phone_number,
		education_code, years_of_experience, institution,
		is_active, deactivation_reason, deactivation_notes, deactivated_by, deactivated_at, reactivated_by, reactivated_at,
		created_at, updated_at
	`
	patientColumns = `
		id, first_name, last_name, national_id, email, password_hash,
		date_of_birth, gender, phone_number, address,
		is_active, deactivation_reason, deactivation_notes, deactivated_by, deactivated_at, reactivated_by, reactivated_at,
		created_at, updated_at
	`

	SelectDoctorByID          = `SELECT` + doctorColumns + `FROM doctors WHERE id = $1`
	SelectDoctorForUpdate     = `SELECT` + doctorColumns + `FROM doctors WHERE id = $1 FOR UPDATE`
	SelectDoctorByNationalID  = `SELECT` + doctorColumns + `FROM doctors WHERE national_id = $1`
	SelectDoctorByEmail       = `SELECT` + doctorColumns + `FROM doctors WHERE lower(email) = lower($1)`
	SelectDoctorByLicense     = `SELECT` + doctorColumns + `FROM doctors WHERE license_number = $1`
	SelectDoctors             = `SELECT` + doctorColumns + `FROM doctors ORDER BY created_at, id LIMIT 50 OFFSET (($1 - 1) * 50)`
	SelectAllDoctors          = `SELECT` + doctorColumns + `FROM doctors ORDER BY created_at, id`
	SelectPatientByID         = `SELECT` + patientColumns + `FROM patients WHERE id = $1`
	SelectPatientForUpdate    = `SELECT` + patientColumns + `FROM patients WHERE id = $1 FOR UPDATE`
	SelectPatientByNationalID = `SELECT` + patientColumns + `FROM patients WHERE national_id = $1`
	SelectPatientByEmail      = `SELECT` + patientColumns + `FROM patients WHERE lower(email) = lower($1)`
	SelectPatients            = `SELECT` + patientColumns + `FROM patients ORDER BY created_at, id LIMIT 50 OFFSET (($1 - 1) * 50)`
	SelectAllPatients         = `SELECT` + patientColumns + `FROM patients ORDER BY created_at, id`

	CountDoctorsByState          = `SELECT count(*) FILTER (WHERE is_active), count(*) FILTER (WHERE NOT is_active) FROM doctors`
	CountPatientsByState         = `SELECT count(*) FILTER (WHERE is_active), count(*) FILTER (WHERE NOT is_active) FROM patients`
	CountDoctorsBySpecialization = `SELECT specialization_code, count(*) FROM doctors GROUP BY specialization_code`
	CountDoctorsByGovernorate    = `SELECT governorate_code, count(*) FROM doctors GROUP BY governorate_code`

	InsertDoctor = `
		INSERT INTO doctors (
			id, first_name, last_name, national_id, email, password_hash,
			license_number, specialization_code, sub_specialization, governorate_code, clinic_address, phone_number,
			education_code, years_of_experience, institution,
			is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, TRUE, $16, $16)
		RETURNING` + doctorColumns
	InsertPatient = `
		INSERT INTO patients (
			id, first_name, last_name, national_id, email, password_hash,
			date_of_birth, gender, phone_number, address,
			is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11, $11)
		RETURNING` + patientColumns

	updateState = `
		SET is_active = $2,
		    deactivation_reason = $3,
		    deactivation_notes = $4,
		    deactivated_by = $5,
		    deactivated_at = $6,
		    reactivated_by = $7,
		    reactivated_at = $8,
		    updated_at = $9
		WHERE id = $1
		RETURNING`
	UpdateDoctorState  = `UPDATE doctors` + updateState + doctorColumns
	UpdatePatientState = `UPDATE patients` + updateState + patientColumns
)
