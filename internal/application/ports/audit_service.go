package ports

import (
	"context"

	"hospital-admin-api/internal/domain/audit"
)

type AuditService interface {
	ListEntries(ctx context.Context, f audit.Filter) (audit.Entries, error)
}
