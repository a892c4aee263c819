package services

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/apperr"
	"hospital-admin-api/internal/domain/audit"
)

func TestLifecycleService_CreateDoctor(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, pub := newLifecycle(t, store)

	created, creds, err := ls.CreateDoctor(ctx, omarSaid(), admin)
	require.NoError(t, err)

	assert.Equal(t, "omar.said.l900@hospital.local", creds.Email)
	assert.Equal(t, creds.Email, created.Email)
	assert.Len(t, creds.Password, passwordLength)
	assert.True(t, created.IsActive)
	assert.Equal(t, account.RoleDoctor, created.Role)
	assert.Equal(t, "L900", created.Doctor.LicenseNumber)

	require.NotNil(t, created.PasswordHash)
	assert.NotEqual(t, creds.Password, *created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte(creds.Password)))

	entries, err := store.Audit().ListEntries(ctx, audit.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionAddDoctor, entries[0].ActionCode)
	assert.Equal(t, "Added doctor Omar Said (license L900, Cardiology)", entries[0].Description)
	assert.Equal(t, admin.ID, entries[0].AdminID)
	assert.Equal(t, admin.Name, entries[0].AdminName)
	require.NotNil(t, entries[0].TargetID)
	assert.Equal(t, created.ID, *entries[0].TargetID)

	events := pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.ActionAddDoctor), events[0].Action)
	assert.Equal(t, created.ID.String(), events[0].AccountID)
}

func TestLifecycleService_CreateDoctorDuplicate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, pub := newLifecycle(t, store)

	_, _, err := ls.CreateDoctor(ctx, omarSaid(), admin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(in *account.DoctorInput)
		field  string
	}{
		{"identical input", func(*account.DoctorInput) {}, "license_number"},
		{"same national id", func(in *account.DoctorInput) {
			in.LicenseNumber = "L901"
		}, "national_id"},
		{"same derived email", func(in *account.DoctorInput) {
			in.NationalID = "29001019999"
			in.LicenseNumber = "l900 "
		}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := omarSaid()
			tt.mutate(&in)

			_, _, err := ls.CreateDoctor(ctx, in, admin)

			var conflict *apperr.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.field, conflict.Field)
		})
	}

	entries, err := store.Audit().ListEntries(ctx, audit.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Len(t, pub.Events(), 1)
}

func TestLifecycleService_CreateDoctorValidation(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, _ := newLifecycle(t, store)

	tests := []struct {
		name   string
		mutate func(in *account.DoctorInput)
		actor  audit.Actor
		fields []string
	}{
		{"missing names", func(in *account.DoctorInput) {
			in.FirstName = " "
			in.LastName = ""
		}, admin, []string{"first_name", "last_name"}},
		{"short national id", func(in *account.DoctorInput) {
			in.NationalID = "123"
		}, admin, []string{"national_id"}},
		{"non digit national id", func(in *account.DoctorInput) {
			in.NationalID = "2900101123a"
		}, admin, []string{"national_id"}},
		{"unknown catalog codes", func(in *account.DoctorInput) {
			in.SpecializationCode = "astrology"
			in.GovernorateCode = "atlantis"
			in.EducationCode = "phd"
		}, admin, []string{"specialization_code", "governorate_code", "education_code"}},
		{"license with symbols", func(in *account.DoctorInput) {
			in.LicenseNumber = "L@9"
		}, admin, []string{"license_number"}},
		{"license with separators", func(in *account.DoctorInput) {
			in.LicenseNumber = "L/9,x"
		}, admin, []string{"license_number"}},
		{"negative experience", func(in *account.DoctorInput) {
			in.YearsOfExperience = -1
		}, admin, []string{"years_of_experience"}},
		{"missing actor", func(*account.DoctorInput) {}, audit.Actor{}, []string{"admin_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := omarSaid()
			tt.mutate(&in)

			_, _, err := ls.CreateDoctor(ctx, in, tt.actor)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}

	counts, err := store.Accounts().CountByState(ctx, account.RoleDoctor)
	require.NoError(t, err)
	assert.Zero(t, counts.Active+counts.Inactive)
}

func TestLifecycleService_DeactivateAndReactivate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, pub := newLifecycle(t, store)

	doc, _, err := ls.CreateDoctor(ctx, omarSaid(), admin)
	require.NoError(t, err)

	deactivated, err := ls.DeactivateAccount(ctx, account.RoleDoctor, doc.ID, "retirement", "—", admin)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)
	require.NotNil(t, deactivated.Deactivation)
	assert.Equal(t, "retirement", deactivated.Deactivation.ReasonCode)
	assert.Equal(t, admin.ID, deactivated.Deactivation.ByAdminID)

	entries, err := store.Audit().ListEntries(ctx, audit.Filter{})
	require.NoError(t, err)
	assert.Equal(t, audit.ActionDeactivateDoctor, entries[0].ActionCode)
	assert.Equal(t, "Deactivated doctor Omar Said. Reason: Retirement. Notes: —", entries[0].Description)

	stored, err := ls.FindAccount(ctx, account.RoleDoctor, doc.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	_, err = ls.DeactivateAccount(ctx, account.RoleDoctor, doc.ID, "retirement", "", admin)
	var invalid *apperr.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "inactive", invalid.State)

	reactivated, err := ls.ReactivateAccount(ctx, account.RoleDoctor, doc.ID, admin)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)
	assert.Nil(t, reactivated.Deactivation)
	require.NotNil(t, reactivated.Reactivation)

	_, err = ls.ReactivateAccount(ctx, account.RoleDoctor, doc.ID, admin)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "active", invalid.State)

	entries, err = store.Audit().ListEntries(ctx, audit.Filter{TargetID: &doc.ID})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, audit.ActionReactivateDoctor, entries[0].ActionCode)
	assert.Equal(t, "Reactivated doctor Omar Said", entries[0].Description)
	assert.Equal(t, audit.ActionDeactivateDoctor, entries[1].ActionCode)
	assert.Equal(t, audit.ActionAddDoctor, entries[2].ActionCode)

	assert.Len(t, pub.Events(), 3)
}

func TestLifecycleService_DeactivatePatient(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, _ := newLifecycle(t, store)

	p := seedPatient(t, store, "29505051234")

	_, err := ls.DeactivateAccount(ctx, account.RolePatient, p.ID, "relocation", "", admin)
	require.NoError(t, err)

	entries, err := store.Audit().ListEntries(ctx, audit.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionDeactivatePatient, entries[0].ActionCode)
	assert.Equal(t, "Deactivated patient Mona Adel. Reason: Relocation", entries[0].Description)
	assert.Equal(t, account.RolePatient, entries[0].TargetRole)

	// the same id under the wrong role does not resolve
	_, err = ls.ReactivateAccount(ctx, account.RoleDoctor, p.ID, admin)
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLifecycleService_DeactivateErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, pub := newLifecycle(t, store)

	doc, _, err := ls.CreateDoctor(ctx, omarSaid(), admin)
	require.NoError(t, err)

	tests := []struct {
		name    string
		role    account.Role
		id      uuid.UUID
		reason  string
		actor   audit.Actor
		checkFn func(t *testing.T, err error)
	}{
		{
			name: "unknown id", role: account.RoleDoctor, id: uuid.New(), reason: "retirement", actor: admin,
			checkFn: func(t *testing.T, err error) {
				var nf *apperr.NotFoundError
				require.ErrorAs(t, err, &nf)
			},
		},
		{
			name: "unknown reason", role: account.RoleDoctor, id: doc.ID, reason: "bored", actor: admin,
			checkFn: func(t *testing.T, err error) {
				var v *apperr.ValidationError
				require.ErrorAs(t, err, &v)
				assert.Contains(t, v.Fields, "reason_code")
			},
		},
		{
			name: "empty reason", role: account.RoleDoctor, id: doc.ID, reason: "  ", actor: admin,
			checkFn: func(t *testing.T, err error) {
				var v *apperr.ValidationError
				require.ErrorAs(t, err, &v)
				assert.Equal(t, "is required", v.Fields["reason_code"])
			},
		},
		{
			name: "bad role", role: account.Role("nurse"), id: doc.ID, reason: "retirement", actor: admin,
			checkFn: func(t *testing.T, err error) {
				var v *apperr.ValidationError
				require.ErrorAs(t, err, &v)
				assert.Contains(t, v.Fields, "role")
			},
		},
		{
			name: "no actor", role: account.RoleDoctor, id: doc.ID, reason: "retirement", actor: audit.Actor{},
			checkFn: func(t *testing.T, err error) {
				var v *apperr.ValidationError
				require.ErrorAs(t, err, &v)
				assert.Contains(t, v.Fields, "admin_id")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ls.DeactivateAccount(ctx, tt.role, tt.id, tt.reason, "", tt.actor)
			tt.checkFn(t, err)
		})
	}

	entries, err := store.Audit().ListEntries(ctx, audit.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1, "failed operations must not append")
	assert.Len(t, pub.Events(), 1)

	stored, err := ls.FindAccount(ctx, account.RoleDoctor, doc.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestLifecycleService_AuditFailureLeavesAccountUntouched(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, _ := newLifecycle(t, store)

	doc, _, err := ls.CreateDoctor(ctx, omarSaid(), admin)
	require.NoError(t, err)

	broken, pub := newLifecycle(t, failingAuditStore{store})

	_, err = broken.DeactivateAccount(ctx, account.RoleDoctor, doc.ID, "retirement", "", admin)
	require.ErrorIs(t, err, errAppend)

	in := omarSaid()
	in.NationalID = "29001017777"
	in.LicenseNumber = "L777"
	_, _, err = broken.CreateDoctor(ctx, in, admin)
	require.ErrorIs(t, err, errAppend)

	stored, err := ls.FindAccount(ctx, account.RoleDoctor, doc.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	counts, err := store.Accounts().CountByState(ctx, account.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, account.StateCounts{Active: 1}, counts)
	assert.Empty(t, pub.Events())
}

func TestLifecycleService_ConcurrentDeactivate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, _ := newLifecycle(t, store)

	doc, _, err := ls.CreateDoctor(ctx, omarSaid(), admin)
	require.NoError(t, err)

	const workers = 10
	results := make([]error, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, results[i] = ls.DeactivateAccount(ctx, account.RoleDoctor, doc.ID, "retirement", "", admin)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var invalid *apperr.InvalidStateError
		assert.ErrorAs(t, err, &invalid)
	}
	assert.Equal(t, 1, succeeded)

	entries, err := store.Audit().ListEntries(ctx, audit.Filter{ActionCode: audit.ActionDeactivateDoctor})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLifecycleService_FindAccounts(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, _ := newLifecycle(t, store)

	seedPatient(t, store, "29505051234")
	seedPatient(t, store, "29505055678")

	got, err := ls.FindAccounts(ctx, account.RolePatient, 1)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = ls.FindAccounts(ctx, account.RolePatient, 0)
	var v *apperr.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "page")

	assert.NotPanics(t, func() {
		_, err = ls.FindAccounts(ctx, account.RolePatient, math.MaxInt)
	})
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "page")

	_, err = ls.FindAccounts(ctx, account.RolePatient, account.MaxPage)
	require.NoError(t, err)

	_, err = ls.FindAccount(ctx, account.RolePatient, uuid.New())
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestLifecycleService_ExportAccounts(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	ls, pub := newLifecycle(t, store)

	empty, err := ls.ExportAccounts(ctx, account.RoleDoctor, admin)
	require.NoError(t, err)
	assert.Empty(t, empty)

	seedPatient(t, store, "29505051234")
	patients, err := ls.ExportAccounts(ctx, account.RolePatient, admin)
	require.NoError(t, err)
	assert.Len(t, patients, 1)

	entries, err := store.Audit().ListEntries(ctx, audit.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, audit.ActionExportPatients, entries[0].ActionCode)
	assert.Equal(t, "Exported 1 patient records", entries[0].Description)
	assert.Nil(t, entries[0].TargetID)
	assert.Equal(t, audit.ActionExportDoctors, entries[1].ActionCode)
	assert.Equal(t, "Exported 0 doctor records", entries[1].Description)

	assert.Len(t, pub.Events(), 2)
}
