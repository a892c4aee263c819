package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/account"
	"hospital-admin-api/internal/domain/audit"
	"hospital-admin-api/internal/domain/catalog"
	"hospital-admin-api/internal/domain/statistics"
)

const defaultRecentActivity = 10

// StatisticsService computes a fresh snapshot on every call; nothing is cached.
type StatisticsService struct {
	store          ports.Store
	catalog        catalog.Provider
	recentActivity int
	now            func() time.Time
}

func NewStatisticsService(store ports.Store, catalogProvider catalog.Provider, recentActivity int) *StatisticsService {
	if recentActivity <= 0 {
		recentActivity = defaultRecentActivity
	}

	return &StatisticsService{
		store:          store,
		catalog:        catalogProvider,
		recentActivity: recentActivity,
		now:            time.Now,
	}
}

func (ss *StatisticsService) ComputeStatistics(ctx context.Context) (*statistics.Snapshot, error) {
	var (
		doctors, patients account.StateCounts
		bySpec, byGov     map[string]int
		totals            map[audit.ActionCode]int
		recent            audit.Entries
	)

	accounts := ss.store.Accounts()
	trail := ss.store.Audit()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		doctors, err = accounts.CountByState(gctx, account.RoleDoctor)
		return err
	})
	g.Go(func() (err error) {
		patients, err = accounts.CountByState(gctx, account.RolePatient)
		return err
	})
	g.Go(func() (err error) {
		bySpec, err = accounts.CountDoctorsBy(gctx, account.DimensionSpecialization)
		return err
	})
	g.Go(func() (err error) {
		byGov, err = accounts.CountDoctorsBy(gctx, account.DimensionGovernorate)
		return err
	})
	g.Go(func() (err error) {
		totals, err = trail.CountByAction(gctx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = trail.ListEntries(gctx, audit.Filter{Limit: ss.recentActivity})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if totals == nil {
		totals = make(map[audit.ActionCode]int)
	}

	return &statistics.Snapshot{
		Doctors:          roleCounts(doctors),
		Patients:         roleCounts(patients),
		BySpecialization: ss.groups(catalog.KindSpecialization, bySpec),
		ByGovernorate:    ss.groups(catalog.KindGovernorate, byGov),
		ActionTotals:     totals,
		RecentActivity:   recent,
		CatalogVersion:   ss.catalog.Version(),
		GeneratedAt:      ss.now().UTC(),
	}, nil
}

func roleCounts(c account.StateCounts) statistics.RoleCounts {
	return statistics.RoleCounts{
		Total:    c.Active + c.Inactive,
		Active:   c.Active,
		Inactive: c.Inactive,
	}
}

// groups lists every catalog entry (zero counts included) plus any observed
// code the catalog no longer knows, largest first.
func (ss *StatisticsService) groups(kind catalog.Kind, counts map[string]int) statistics.Groups {
	out := make(statistics.Groups, 0, len(counts))
	seen := make(map[string]struct{}, len(counts))

	for _, e := range ss.catalog.Entries(kind) {
		out = append(out, statistics.Group{Code: e.Code, Label: e.Label, Count: counts[e.Code]})
		seen[e.Code] = struct{}{}
	}
	for code, n := range counts {
		if _, ok := seen[code]; ok {
			continue
		}
		out = append(out, statistics.Group{Code: code, Label: code, Count: n})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})

	return out
}
