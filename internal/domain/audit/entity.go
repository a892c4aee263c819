package audit

import (
	"time"

	"github.com/google/uuid"

	"hospital-admin-api/internal/domain/account"
)

const (
	ActionAddDoctor         ActionCode = "ADD_DOCTOR"
	ActionDeactivateDoctor  ActionCode = "DEACTIVATE_DOCTOR"
	ActionDeactivatePatient ActionCode = "DEACTIVATE_PATIENT"
	ActionReactivateDoctor  ActionCode = "REACTIVATE_DOCTOR"
	ActionReactivatePatient ActionCode = "REACTIVATE_PATIENT"
	ActionExportDoctors     ActionCode = "EXPORT_DOCTORS"
	ActionExportPatients    ActionCode = "EXPORT_PATIENTS"
)

var actionCodes = []ActionCode{
	ActionAddDoctor,
	ActionDeactivateDoctor,
	ActionDeactivatePatient,
	ActionReactivateDoctor,
	ActionReactivatePatient,
	ActionExportDoctors,
	ActionExportPatients,
}

type (
	ID         uint64
	ActionCode string

	// Actor is the administrator performing an action.
	Actor struct {
		ID   string
		Name string
	}

	// Entry is immutable once appended. CreatedAt is assigned by the store.
	Entry struct {
		ID          ID
		ActionCode  ActionCode
		Description string
		AdminID     string
		AdminName   string
		TargetID    *uuid.UUID
		TargetRole  account.Role
		CreatedAt   time.Time
	}
	Entries []*Entry
)

func ActionCodes() []ActionCode {
	out := make([]ActionCode, len(actionCodes))
	copy(out, actionCodes)
	return out
}

func (c ActionCode) Valid() bool {
	for _, ac := range actionCodes {
		if ac == c {
			return true
		}
	}
	return false
}

func DeactivateAction(role account.Role) ActionCode {
	if role == account.RolePatient {
		return ActionDeactivatePatient
	}
	return ActionDeactivateDoctor
}

func ReactivateAction(role account.Role) ActionCode {
	if role == account.RolePatient {
		return ActionReactivatePatient
	}
	return ActionReactivateDoctor
}

func ExportAction(role account.Role) ActionCode {
	if role == account.RolePatient {
		return ActionExportPatients
	}
	return ActionExportDoctors
}
