package audit

import "time"

type (
	Entry struct {
		ID          int64
		ActionCode  string
		Description string
		AdminID     string
		AdminName   string
		TargetID    *string
		TargetRole  *string
		CreatedAt   time.Time
	}
	Entries []*Entry
)
