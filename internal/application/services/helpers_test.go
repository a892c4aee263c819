package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/domain/catalog"
	"hospital-admin-api/internal/infrastructure/catalogfile"
	"hospital-admin-api/internal/infrastructure/db/memory"
	"hospital-admin-api/internal/infrastructure/mq"
)

var admin = audit.Actor{ID: "admin-1", Name: "Head Admin"}

type FakePublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *FakePublisher) Publish(e mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *FakePublisher) Events() []mq.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mq.Event(nil), p.events...)
}

// failingAuditStore wraps a store whose audit appends always fail.
type failingAuditStore struct {
	ports.Store
}

func (s failingAuditStore) Audit() audit.Repository { return failingAudit{s.Store.Audit()} }

func (s failingAuditStore) WithinTx(ctx context.Context, fn func(tx ports.Store) error) error {
	return s.Store.WithinTx(ctx, func(tx ports.Store) error {
		return fn(failingAuditStore{tx})
	})
}

type failingAudit struct {
	audit.Repository
}

var errAppend = errors.New("audit append failed")

func (failingAudit) AppendEntry(context.Context, audit.Entry) (*audit.Entry, error) {
	return nil, errAppend
}

func testCatalog(t *testing.T) *catalogfile.Provider {
	t.Helper()

	p, err := catalogfile.New("test-1", map[catalog.Kind]catalog.Entries{
		catalog.KindSpecialization: {
			{Code: "cardiology", Label: "Cardiology"},
			{Code: "pediatrics", Label: "Pediatrics"},
			{Code: "neurology", Label: "Neurology"},
		},
		catalog.KindGovernorate: {
			{Code: "cairo", Label: "Cairo"},
			{Code: "giza", Label: "Giza"},
		},
		catalog.KindEducation: {
			{Code: "md", Label: "Doctor of Medicine"},
		},
		catalog.KindDeactivationReason: {
			{Code: "retirement", Label: "Retirement"},
			{Code: "relocation", Label: "Relocation"},
		},
	})
	require.NoError(t, err)

	return p
}

func newLifecycle(t *testing.T, store ports.Store) (*LifecycleService, *FakePublisher) {
	t.Helper()

	pub := &FakePublisher{}
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_counter"}, []string{"result"})

	ls := NewLifecycleService(store, testCatalog(t), NewCredentialGenerator("hospital.local"), pub, counter, zap.NewNop())
	ls.bcryptCost = bcrypt.MinCost

	return ls, pub
}

func newMemoryStore() *memory.Store {
	return memory.New(nil)
}

func omarSaid() account.DoctorInput {
	return account.DoctorInput{
		FirstName:          "Omar",
		LastName:           "Said",
		NationalID:         "29001011234",
		LicenseNumber:      "L900",
		SpecializationCode: "cardiology",
		GovernorateCode:    "cairo",
		ClinicAddress:      "12 Tahrir St",
		PhoneNumber:        "+201000000000",
		EducationCode:      "md",
		YearsOfExperience:  7,
	}
}

// seedPatient inserts a patient directly; there is no create operation for them.
func seedPatient(t *testing.T, store ports.Store, nationalID string) *account.Account {
	t.Helper()

	a, err := store.Accounts().CreateAccount(context.Background(), account.Account{
		Role:       account.RolePatient,
		FirstName:  "Mona",
		LastName:   "Adel",
		NationalID: nationalID,
		Email:      "mona." + nationalID + "@example.com",
		IsActive:   true,
		Patient: &account.PatientProfile{
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:      "female",
		},
	})
	require.NoError(t, err)

	return a
}
