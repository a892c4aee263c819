package account

import (
	domain "hospital-admin-api/internal/domain/account"
)

func fromDoctorModel(model *Doctor) *domain.Account {
	a := &domain.Account{
		ID:           model.ID,
		Role:         domain.RoleDoctor,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		NationalID:   model.NationalID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Doctor: &domain.DoctorProfile{
			LicenseNumber:      model.LicenseNumber,
			SpecializationCode: model.SpecializationCode,
			SubSpecialization:  model.SubSpecialization,
			GovernorateCode:    model.GovernorateCode,
			ClinicAddress:      model.ClinicAddress,
			PhoneNumber:        model.PhoneNumber,
			EducationCode:      model.EducationCode,
			YearsOfExperience:  model.YearsOfExperience,
			Institution:        model.Institution,
		},

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	model.Lifecycle.apply(a)

	return a
}

func fromPatientModel(model *Patient) *domain.Account {
	a := &domain.Account{
		ID:           model.ID,
		Role:         domain.RolePatient,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		NationalID:   model.NationalID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Patient: &domain.PatientProfile{
			DateOfBirth: model.DateOfBirth,
			Gender:      model.Gender,
			PhoneNumber: model.PhoneNumber,
			Address:     model.Address,
		},

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	model.Lifecycle.apply(a)

	return a
}

func (l Lifecycle) apply(a *domain.Account) {
	a.IsActive = l.IsActive

	if !l.IsActive {
		d := &domain.Deactivation{}
		if l.DeactivationReason != nil {
			d.ReasonCode = *l.DeactivationReason
		}
		if l.DeactivationNotes != nil {
			d.Notes = *l.DeactivationNotes
		}
		if l.DeactivatedBy != nil {
			d.ByAdminID = *l.DeactivatedBy
		}
		if l.DeactivatedAt != nil {
			d.At = *l.DeactivatedAt
		}
		a.Deactivation = d
	}

	if l.ReactivatedAt != nil {
		r := &domain.Reactivation{At: *l.ReactivatedAt}
		if l.ReactivatedBy != nil {
			r.ByAdminID = *l.ReactivatedBy
		}
		a.Reactivation = r
	}
}

func toLifecycle(a domain.Account) Lifecycle {
	l := Lifecycle{IsActive: a.IsActive}

	if d := a.Deactivation; d != nil && !a.IsActive {
		l.DeactivationReason = &d.ReasonCode
		l.DeactivationNotes = &d.Notes
		l.DeactivatedBy = &d.ByAdminID
		l.DeactivatedAt = &d.At
	}
	if r := a.Reactivation; r != nil {
		l.ReactivatedBy = &r.ByAdminID
		l.ReactivatedAt = &r.At
	}

	return l
}
