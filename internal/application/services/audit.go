package services

import (
	"context"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/apperr"
	"hospital-admin-api/internal/domain/audit"
)

type AuditService struct {
	store ports.Store
}

func NewAuditService(store ports.Store) *AuditService {
	return &AuditService{store: store}
}

// ListEntries returns matching entries, most recent first.
func (as *AuditService) ListEntries(ctx context.Context, f audit.Filter) (audit.Entries, error) {
	errs := make(map[string]string)
	if f.ActionCode != "" && !f.ActionCode.Valid() {
		errs["action"] = "unknown action code"
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		errs["from"] = "must not be after to"
	}
	if f.Limit < 0 {
		errs["limit"] = "must not be negative"
	}
	if len(errs) > 0 {
		return nil, apperr.NewValidation(errs)
	}

	f.Limit = f.NormalizedLimit()

	return as.store.Audit().ListEntries(ctx, f)
}
