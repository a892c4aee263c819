package audit

import (
	"fmt"

	"github.com/google/uuid"

	"hospital-admin-api/internal/domain/account"
	domain "hospital-admin-api/internal/domain/audit"
)

func fromDBModel(model *Entry) (*domain.Entry, error) {
	e := &domain.Entry{
		ID:          domain.ID(model.ID),
		ActionCode:  domain.ActionCode(model.ActionCode),
		Description: model.Description,
		AdminID:     model.AdminID,
		AdminName:   model.AdminName,
		CreatedAt:   model.CreatedAt,
	}
	if model.TargetID != nil {
		id, err := uuid.Parse(*model.TargetID)
		if err != nil {
			return nil, fmt.Errorf("audit entry %d: target id: %w", model.ID, err)
		}
		e.TargetID = &id
	}
	if model.TargetRole != nil {
		e.TargetRole = account.Role(*model.TargetRole)
	}

	return e, nil
}

func fromDBModels(models Entries) (domain.Entries, error) {
	es := make(domain.Entries, len(models))
	for idx, m := range models {
		e, err := fromDBModel(m)
		if err != nil {
			return nil, err
		}
		es[idx] = e
	}

	return es, nil
}

func targetID(e domain.Entry) *string {
	if e.TargetID == nil {
		return nil
	}
	s := e.TargetID.String()
	return &s
}
