package validator

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/interface/api/rest/dto/account"
)

func TestValidatePage(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 1, false},
		{"3", 3, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"abc", 0, true},
		{"42949672", 42949672, false},
		{"42949673", 0, true},
		{"9223372036854775807", 0, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			got, err := ValidatePage(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDoctor(t *testing.T) {
	ok := account.DoctorRequest{FirstName: "Omar", LastName: "El-Said", PhoneNumber: "+20 100-123-4567"}
	assert.Nil(t, ValidateDoctor(ok))

	// empty fields are left to the service
	assert.Nil(t, ValidateDoctor(account.DoctorRequest{}))

	bad := account.DoctorRequest{FirstName: "Omar1", LastName: "Said", PhoneNumber: "call me"}
	errs := ValidateDoctor(bad)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "phone_number")
	assert.NotContains(t, errs, "last_name")

	for _, license := range []string{"L@9", "L/9,x", "l 900"} {
		errs = ValidateDoctor(account.DoctorRequest{FirstName: "Omar", LastName: "Said", LicenseNumber: license})
		assert.Contains(t, errs, "license_number", license)
	}
	assert.Nil(t, ValidateDoctor(account.DoctorRequest{FirstName: "Omar", LastName: "Said", LicenseNumber: " L-900 "}))
}

func TestParseAuditFilter(t *testing.T) {
	f, errs := ParseAuditFilter("deactivate_doctor", "", "2026-01-01T00:00:00Z", "", "20")
	require.Nil(t, errs)
	assert.Equal(t, audit.ActionDeactivateDoctor, f.ActionCode)
	require.NotNil(t, f.From)
	assert.True(t, f.From.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, f.To)
	assert.Equal(t, 20, f.Limit)

	_, errs = ParseAuditFilter("DROP", "nope", "yesterday", "2026-13-01", "-1")
	assert.Len(t, errs, 5)
}

func TestBindingDetails(t *testing.T) {
	RegisterJSONNames()

	err := binding.Validator.ValidateStruct(account.DeactivateRequest{})
	details, ok := BindingDetails(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"reason_code": "is required"}, details)

	_, ok = BindingDetails(assert.AnError)
	assert.False(t, ok)
}
