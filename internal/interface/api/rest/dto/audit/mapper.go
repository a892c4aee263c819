package audit

import (
	"hospital-admin-api/internal/domain/audit"
)

func ToResponseEntry(e audit.Entry) Entry {
	return Entry{
		ID:          uint64(e.ID),
		ActionCode:  string(e.ActionCode),
		Description: e.Description,
		AdminID:     e.AdminID,
		AdminName:   e.AdminName,
		TargetID:    e.TargetID,
		TargetRole:  string(e.TargetRole),
		CreatedAt:   e.CreatedAt,
	}
}

func ToResponseEntries(es audit.Entries) Entries {
	out := make(Entries, len(es))
	for idx, e := range es {
		out[idx] = ToResponseEntry(*e)
	}

	return out
}
