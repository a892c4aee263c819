package ports

import (
	"hospital-admin-api/internal/infrastructure/jwt"
)

type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}
