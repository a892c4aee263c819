package audit

import (
	"time"

	"github.com/google/uuid"
)

type (
	Entry struct {
		ID          uint64     `json:"id"`
		ActionCode  string     `json:"action_code"`
		Description string     `json:"description"`
		AdminID     string     `json:"admin_id"`
		AdminName   string     `json:"admin_name"`
		TargetID    *uuid.UUID `json:"target_id,omitempty"`
		TargetRole  string     `json:"target_role,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
	}
	Entries      []Entry
	ResponseData struct {
		Data Entries `json:"data"`
	}
)
