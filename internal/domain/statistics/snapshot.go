package statistics

import (
	"time"

	"hospital-admin-api/internal/domain/audit"
)

type (
	RoleCounts struct {
		Total    int
		Active   int
		Inactive int
	}
	Group struct {
		Code  string
		Label string
		Count int
	}
	Groups []Group

	// Snapshot is computed on every request and never stored.
	Snapshot struct {
		Doctors          RoleCounts
		Patients         RoleCounts
		BySpecialization Groups
		ByGovernorate    Groups
		ActionTotals     map[audit.ActionCode]int
		RecentActivity   audit.Entries
		CatalogVersion   string
		GeneratedAt      time.Time
	}
)
