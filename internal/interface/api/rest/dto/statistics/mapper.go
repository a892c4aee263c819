package statistics

import (
	"hospital-admin-api/internal/domain/statistics"
	"hospital-admin-api/internal/interface/api/rest/dto/audit"
)

func ToResponseSnapshot(s statistics.Snapshot) Snapshot {
	totals := make(map[string]int, len(s.ActionTotals))
	for k, v := range s.ActionTotals {
		totals[string(k)] = v
	}

	return Snapshot{
		Doctors:          RoleCounts(s.Doctors),
		Patients:         RoleCounts(s.Patients),
		BySpecialization: toGroups(s.BySpecialization),
		ByGovernorate:    toGroups(s.ByGovernorate),
		ActionTotals:     totals,
		RecentActivity:   audit.ToResponseEntries(s.RecentActivity),
		CatalogVersion:   s.CatalogVersion,
		GeneratedAt:      s.GeneratedAt,
	}
}

func toGroups(gs statistics.Groups) []Group {
	out := make([]Group, len(gs))
	for idx, g := range gs {
		out[idx] = Group(g)
	}

	return out
}
