package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/domain/statistics"
	"hospital-admin-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

type FakeLifecycleService struct {
	CreateDoctorFunc      func(ctx context.Context, in domain.DoctorInput, actor audit.Actor) (*domain.Account, domain.Credentials, error)
	DeactivateAccountFunc func(ctx context.Context, role domain.Role, id domain.ID, reasonCode, notes string, actor audit.Actor) (*domain.Account, error)
	ReactivateAccountFunc func(ctx context.Context, role domain.Role, id domain.ID, actor audit.Actor) (*domain.Account, error)
	FindAccountFunc       func(ctx context.Context, role domain.Role, id domain.ID) (*domain.Account, error)
	FindAccountsFunc      func(ctx context.Context, role domain.Role, page int) (domain.Accounts, error)
	ExportAccountsFunc    func(ctx context.Context, role domain.Role, actor audit.Actor) (domain.Accounts, error)
}

func (f *FakeLifecycleService) CreateDoctor(ctx context.Context, in domain.DoctorInput, actor audit.Actor) (*domain.Account, domain.Credentials, error) {
	if f.CreateDoctorFunc == nil {
		return nil, domain.Credentials{}, errors.New("not used")
	}
	return f.CreateDoctorFunc(ctx, in, actor)
}
func (f *FakeLifecycleService) DeactivateAccount(ctx context.Context, role domain.Role, id domain.ID, reasonCode, notes string, actor audit.Actor) (*domain.Account, error) {
	if f.DeactivateAccountFunc == nil {
		return nil, errors.New("not used")
	}
	return f.DeactivateAccountFunc(ctx, role, id, reasonCode, notes, actor)
}
func (f *FakeLifecycleService) ReactivateAccount(ctx context.Context, role domain.Role, id domain.ID, actor audit.Actor) (*domain.Account, error) {
	if f.ReactivateAccountFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ReactivateAccountFunc(ctx, role, id, actor)
}
func (f *FakeLifecycleService) FindAccount(ctx context.Context, role domain.Role, id domain.ID) (*domain.Account, error) {
	if f.FindAccountFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindAccountFunc(ctx, role, id)
}
func (f *FakeLifecycleService) FindAccounts(ctx context.Context, role domain.Role, page int) (domain.Accounts, error) {
	if f.FindAccountsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindAccountsFunc(ctx, role, page)
}
func (f *FakeLifecycleService) ExportAccounts(ctx context.Context, role domain.Role, actor audit.Actor) (domain.Accounts, error) {
	if f.ExportAccountsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ExportAccountsFunc(ctx, role, actor)
}

type FakeAuditService struct {
	ListEntriesFunc func(ctx context.Context, f audit.Filter) (audit.Entries, error)
}

func (f *FakeAuditService) ListEntries(ctx context.Context, filter audit.Filter) (audit.Entries, error) {
	if f.ListEntriesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ListEntriesFunc(ctx, filter)
}

type FakeStatisticsService struct {
	ComputeStatisticsFunc func(ctx context.Context) (*statistics.Snapshot, error)
}

func (f *FakeStatisticsService) ComputeStatistics(ctx context.Context) (*statistics.Snapshot, error) {
	if f.ComputeStatisticsFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ComputeStatisticsFunc(ctx)
}

func newRouter(t *testing.T) (*gin.Engine, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return gin.New(), jwt.New(testSecret)
}

func bearer(t *testing.T, j *jwt.Service, role string) map[string]string {
	t.Helper()

	tok, err := j.GenerateJWT("admin-1", "Head Admin", role, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func nopLogger() *zap.Logger { return zap.NewNop() }
