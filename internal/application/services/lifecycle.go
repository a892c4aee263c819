package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/apperr"
	"hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/domain/catalog"
	"hospital-admin-api/internal/infrastructure/mq"
)

const nationalIDLength = 11

// license numbers become part of the generated email address
var licenseRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

type LifecycleService struct {
	store       ports.Store
	catalog     catalog.Provider
	credentials *CredentialGenerator
	publisher   ports.EventPublisher
	mCounter    *prometheus.CounterVec
	logger      *zap.Logger
	now         func() time.Time
	bcryptCost  int
}

func NewLifecycleService(
	store ports.Store,
	catalogProvider catalog.Provider,
	credentials *CredentialGenerator,
	publisher ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		store:       store,
		catalog:     catalogProvider,
		credentials: credentials,
		publisher:   publisher,
		mCounter:    mCounter,
		logger:      logger,
		now:         time.Now,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

func (ls *LifecycleService) CreateDoctor(
	ctx context.Context,
	in account.DoctorInput,
	actor audit.Actor,
) (*account.Account, account.Credentials, error) {
	if err := ls.validateDoctorInput(in, actor); err != nil {
		return nil, account.Credentials{}, err
	}

	creds, err := ls.credentials.GenerateCredentials(in.FirstName, in.LastName, in.LicenseNumber)
	if err != nil {
		return nil, account.Credentials{}, fmt.Errorf("generate credentials: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), ls.bcryptCost)
	if err != nil {
		return nil, account.Credentials{}, fmt.Errorf("hash password: %w", err)
	}
	passwordHash := string(hash)

	var (
		created *account.Account
		entry   *audit.Entry
	)
	err = ls.store.WithinTx(ctx, func(tx ports.Store) error {
		accounts := tx.Accounts()

		existing, err := accounts.FetchDoctorByLicenseNumber(ctx, in.LicenseNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return &apperr.ConflictError{Field: "license_number", Value: in.LicenseNumber}
		}
		if existing, err = accounts.FetchAccountByNationalID(ctx, account.RoleDoctor, in.NationalID); err != nil {
			return err
		}
		if existing != nil {
			return &apperr.ConflictError{Field: "national_id", Value: in.NationalID}
		}
		if existing, err = accounts.FetchAccountByEmail(ctx, account.RoleDoctor, creds.Email); err != nil {
			return err
		}
		if existing != nil {
			return &apperr.ConflictError{Field: "email", Value: creds.Email}
		}

		now := ls.now().UTC()
		created, err = accounts.CreateAccount(ctx, account.Account{
			Role:         account.RoleDoctor,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			NationalID:   in.NationalID,
			Email:        creds.Email,
			PasswordHash: &passwordHash,
			IsActive:     true,
			Doctor: &account.DoctorProfile{
				LicenseNumber:      in.LicenseNumber,
				SpecializationCode: in.SpecializationCode,
				SubSpecialization:  in.SubSpecialization,
				GovernorateCode:    in.GovernorateCode,
				ClinicAddress:      in.ClinicAddress,
				PhoneNumber:        in.PhoneNumber,
				EducationCode:      in.EducationCode,
				YearsOfExperience:  in.YearsOfExperience,
				Institution:        in.Institution,
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}

		entry, err = tx.Audit().AppendEntry(ctx, audit.Entry{
			ActionCode:  audit.ActionAddDoctor,
			Description: ls.describeAddDoctor(created),
			AdminID:     actor.ID,
			AdminName:   actor.Name,
			TargetID:    &created.ID,
			TargetRole:  account.RoleDoctor,
		})
		return err
	})
	if err != nil {
		return nil, account.Credentials{}, err
	}

	ls.committed(*entry, "doctor_created_total")

	return created, creds, nil
}

func (ls *LifecycleService) DeactivateAccount(
	ctx context.Context,
	role account.Role,
	id account.ID,
	reasonCode, notes string,
	actor audit.Actor,
) (*account.Account, error) {
	reasonCode = strings.TrimSpace(reasonCode)
	notes = strings.TrimSpace(notes)

	errs := make(map[string]string)
	checkRoleAndActor(errs, role, actor)
	if reasonCode == "" {
		errs["reason_code"] = "is required"
	} else if !ls.catalog.Contains(catalog.KindDeactivationReason, reasonCode) {
		errs["reason_code"] = "unknown deactivation reason"
	}
	if len(errs) > 0 {
		return nil, apperr.NewValidation(errs)
	}

	// resolved once, at write time
	reasonLabel, ok := ls.catalog.ResolveLabel(catalog.KindDeactivationReason, reasonCode)
	if !ok || reasonLabel == "" {
		reasonLabel = reasonCode
	}

	var (
		updated *account.Account
		entry   *audit.Entry
	)
	err := ls.store.WithinTx(ctx, func(tx ports.Store) error {
		a, err := tx.Accounts().FetchAccountForUpdate(ctx, role, id)
		if err != nil {
			return err
		}
		if a == nil {
			return &apperr.NotFoundError{Resource: role.String(), ID: id.String()}
		}

		if err = a.Deactivate(account.Deactivation{
			ReasonCode: reasonCode,
			Notes:      notes,
			ByAdminID:  actor.ID,
			At:         ls.now().UTC(),
		}); err != nil {
			return &apperr.InvalidStateError{ID: id.String(), State: a.State(), Op: "deactivate"}
		}

		if updated, err = tx.Accounts().UpdateAccountState(ctx, *a); err != nil {
			return err
		}
		if updated == nil {
			return &apperr.NotFoundError{Resource: role.String(), ID: id.String()}
		}

		entry, err = tx.Audit().AppendEntry(ctx, audit.Entry{
			ActionCode:  audit.DeactivateAction(role),
			Description: describeDeactivation(updated, reasonLabel, notes),
			AdminID:     actor.ID,
			AdminName:   actor.Name,
			TargetID:    &updated.ID,
			TargetRole:  role,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	ls.committed(*entry, role.String()+"_deactivated_total")

	return updated, nil
}

func (ls *LifecycleService) ReactivateAccount(
	ctx context.Context,
	role account.Role,
	id account.ID,
	actor audit.Actor,
) (*account.Account, error) {
	errs := make(map[string]string)
	checkRoleAndActor(errs, role, actor)
	if len(errs) > 0 {
		return nil, apperr.NewValidation(errs)
	}

	var (
		updated *account.Account
		entry   *audit.Entry
	)
	err := ls.store.WithinTx(ctx, func(tx ports.Store) error {
		a, err := tx.Accounts().FetchAccountForUpdate(ctx, role, id)
		if err != nil {
			return err
		}
		if a == nil {
			return &apperr.NotFoundError{Resource: role.String(), ID: id.String()}
		}

		if err = a.Reactivate(account.Reactivation{
			ByAdminID: actor.ID,
			At:        ls.now().UTC(),
		}); err != nil {
			return &apperr.InvalidStateError{ID: id.String(), State: a.State(), Op: "reactivate"}
		}

		if updated, err = tx.Accounts().UpdateAccountState(ctx, *a); err != nil {
			return err
		}
		if updated == nil {
			return &apperr.NotFoundError{Resource: role.String(), ID: id.String()}
		}

		entry, err = tx.Audit().AppendEntry(ctx, audit.Entry{
			ActionCode:  audit.ReactivateAction(role),
			Description: fmt.Sprintf("Reactivated %s %s", role, updated.FullName()),
			AdminID:     actor.ID,
			AdminName:   actor.Name,
			TargetID:    &updated.ID,
			TargetRole:  role,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	ls.committed(*entry, role.String()+"_reactivated_total")

	return updated, nil
}

func (ls *LifecycleService) FindAccount(ctx context.Context, role account.Role, id account.ID) (*account.Account, error) {
	if !role.Valid() {
		return nil, apperr.NewValidation(map[string]string{"role": "must be doctor or patient"})
	}

	a, err := ls.store.Accounts().FetchAccountByID(ctx, role, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, &apperr.NotFoundError{Resource: role.String(), ID: id.String()}
	}

	return a, nil
}

func (ls *LifecycleService) FindAccounts(ctx context.Context, role account.Role, page int) (account.Accounts, error) {
	errs := make(map[string]string)
	if !role.Valid() {
		errs["role"] = "must be doctor or patient"
	}
	if page < 1 || page > account.MaxPage {
		errs["page"] = fmt.Sprintf("must be between 1 and %d", account.MaxPage)
	}
	if len(errs) > 0 {
		return nil, apperr.NewValidation(errs)
	}

	return ls.store.Accounts().FetchAccounts(ctx, role, page)
}

// ExportAccounts returns every account of the role and records the export.
func (ls *LifecycleService) ExportAccounts(ctx context.Context, role account.Role, actor audit.Actor) (account.Accounts, error) {
	errs := make(map[string]string)
	checkRoleAndActor(errs, role, actor)
	if len(errs) > 0 {
		return nil, apperr.NewValidation(errs)
	}

	var (
		accounts account.Accounts
		entry    *audit.Entry
	)
	err := ls.store.WithinTx(ctx, func(tx ports.Store) error {
		var err error
		if accounts, err = tx.Accounts().FetchAllAccounts(ctx, role); err != nil {
			return err
		}

		entry, err = tx.Audit().AppendEntry(ctx, audit.Entry{
			ActionCode:  audit.ExportAction(role),
			Description: fmt.Sprintf("Exported %d %s records", len(accounts), role),
			AdminID:     actor.ID,
			AdminName:   actor.Name,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	ls.committed(*entry, role.String()+"_exported_total")

	return accounts, nil
}

// committed runs the side effects that must only follow a successful commit.
func (ls *LifecycleService) committed(e audit.Entry, counter string) {
	ls.publisher.Publish(mq.NewEvent(e))
	ls.mCounter.WithLabelValues(counter).Inc()

	ls.logger.Info("account action committed",
		zap.String("action", string(e.ActionCode)),
		zap.Uint64("audit_id", uint64(e.ID)),
		zap.String("admin_id", e.AdminID),
	)
}

func (ls *LifecycleService) validateDoctorInput(in account.DoctorInput, actor audit.Actor) error {
	errs := make(map[string]string)

	required := []struct{ field, value string }{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"national_id", in.NationalID},
		{"license_number", in.LicenseNumber},
		{"specialization_code", in.SpecializationCode},
		{"governorate_code", in.GovernorateCode},
		{"clinic_address", in.ClinicAddress},
		{"phone_number", in.PhoneNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = "is required"
		}
	}

	if _, set := errs["national_id"]; !set && !isDigits(in.NationalID, nationalIDLength) {
		errs["national_id"] = "must be exactly 11 digits"
	}
	if _, set := errs["license_number"]; !set && !licenseRe.MatchString(strings.TrimSpace(in.LicenseNumber)) {
		errs["license_number"] = "allowed characters: letters, digits, '-'"
	}
	if _, set := errs["specialization_code"]; !set && !ls.catalog.Contains(catalog.KindSpecialization, in.SpecializationCode) {
		errs["specialization_code"] = "unknown specialization"
	}
	if _, set := errs["governorate_code"]; !set && !ls.catalog.Contains(catalog.KindGovernorate, in.GovernorateCode) {
		errs["governorate_code"] = "unknown governorate"
	}
	if in.EducationCode != "" && !ls.catalog.Contains(catalog.KindEducation, in.EducationCode) {
		errs["education_code"] = "unknown education level"
	}
	if in.YearsOfExperience < 0 {
		errs["years_of_experience"] = "must not be negative"
	}
	if actor.ID == "" {
		errs["admin_id"] = "is required"
	}

	if len(errs) > 0 {
		return apperr.NewValidation(errs)
	}
	return nil
}

func (ls *LifecycleService) describeAddDoctor(a *account.Account) string {
	spec := a.Doctor.SpecializationCode
	if label, ok := ls.catalog.ResolveLabel(catalog.KindSpecialization, spec); ok {
		spec = label
	}
	return fmt.Sprintf("Added doctor %s (license %s, %s)", a.FullName(), a.Doctor.LicenseNumber, spec)
}

func describeDeactivation(a *account.Account, reasonLabel, notes string) string {
	d := fmt.Sprintf("Deactivated %s %s. Reason: %s", a.Role, a.FullName(), reasonLabel)
	if notes != "" {
		d += ". Notes: " + notes
	}
	return d
}

func checkRoleAndActor(errs map[string]string, role account.Role, actor audit.Actor) {
	if !role.Valid() {
		errs["role"] = "must be doctor or patient"
	}
	if actor.ID == "" {
		errs["admin_id"] = "is required"
	}
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
