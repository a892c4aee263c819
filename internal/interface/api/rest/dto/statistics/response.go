package statistics

import (
	"time"

	"hospital-admin-api/internal/interface/api/rest/dto/audit"
)

type (
	RoleCounts struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		Inactive int `json:"inactive"`
	}
	Group struct {
		Code  string `json:"code"`
		Label string `json:"label"`
		Count int    `json:"count"`
	}
	Snapshot struct {
		Doctors          RoleCounts     `json:"doctors"`
		Patients         RoleCounts     `json:"patients"`
		BySpecialization []Group        `json:"by_specialization"`
		ByGovernorate    []Group        `json:"by_governorate"`
		ActionTotals     map[string]int `json:"action_totals"`
		RecentActivity   audit.Entries  `json:"recent_activity"`
		CatalogVersion   string         `json:"catalog_version"`
		GeneratedAt      time.Time      `json:"generated_at"`
	}
)
