package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	s := New("super-secret")

	tok, err := s.GenerateJWT("admin-7", "Head Admin", RoleAdmin, time.Hour)
	require.NoError(t, err, "GenerateJWT should not error")
	require.NotEmpty(t, tok, "token must not be empty")

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err, "ValidateToken should not error for fresh token")
	require.NotNil(t, claims)

	assert.Equal(t, "admin-7", claims.AdminID)
	assert.Equal(t, "Head Admin", claims.Name)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin-7", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now().Add(-1*time.Second)))
}

func TestValidateToken_Table(t *testing.T) {
	type want struct {
		ok    bool
		err   string
		check func(t *testing.T, c *Claims)
	}

	makeToken := func(secret, adminID string, exp time.Duration) string {
		tok, err := New(secret).GenerateJWT(adminID, "Ops", "viewer", exp)
		require.NoError(t, err)
		return tok
	}

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		AdminID:          "admin-1",
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{AdminID: "admin-1", Role: RoleAdmin}).
		SignedString([]byte("k1"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
		want   want
	}{
		{
			name:   "valid token",
			secret: "k1",
			token:  makeToken("k1", "admin-42", 5*time.Minute),
			want: want{
				ok: true,
				check: func(t *testing.T, c *Claims) {
					assert.Equal(t, "admin-42", c.AdminID)
					assert.Equal(t, "viewer", c.Role)
				},
			},
		},
		{
			name:   "invalid secret (signature mismatch)",
			secret: "k2",
			token:  makeToken("k1", "admin-42", 5*time.Minute),
			want:   want{err: "invalid token"},
		},
		{
			name:   "expired token",
			secret: "k1",
			token:  makeToken("k1", "admin-42", -1*time.Minute),
			want:   want{err: "invalid token"},
		},
		{
			name:   "malformed token string",
			secret: "k1",
			token:  "not-a-jwt",
			want:   want{err: "invalid token"},
		},
		{
			name:   "unsigned token",
			secret: "k1",
			token:  noneAlg,
			want:   want{err: "invalid token"},
		},
		{
			name:   "missing expiry",
			secret: "k1",
			token:  noExpiry,
			want:   want{err: "invalid token"},
		},
		{
			name:   "missing admin id",
			secret: "k1",
			token:  makeToken("k1", "", 5*time.Minute),
			want:   want{err: "invalid claims"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := New(tt.secret).ValidateToken(tt.token)
			if tt.want.ok {
				require.NoError(t, err)
				require.NotNil(t, claims)
				if tt.want.check != nil {
					tt.want.check(t, claims)
				}
			} else {
				require.Error(t, err)
				assert.EqualError(t, err, tt.want.err)
				assert.Nil(t, claims)
			}
		})
	}
}
