package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/account"
)

const refreshTimeout = 10 * time.Second

// AccountsGauges mirrors active/inactive counts per role into prometheus.
type AccountsGauges struct {
	store  ports.Store
	gauge  *prometheus.GaugeVec
	logger *zap.Logger
}

func NewAccountsGauges(store ports.Store, gauge *prometheus.GaugeVec, logger *zap.Logger) *AccountsGauges {
	return &AccountsGauges{
		store:  store,
		gauge:  gauge,
		logger: logger,
	}
}

func (g *AccountsGauges) Refresh(ctx context.Context) error {
	for _, role := range []account.Role{account.RoleDoctor, account.RolePatient} {
		counts, err := g.store.Accounts().CountByState(ctx, role)
		if err != nil {
			return fmt.Errorf("count %s accounts: %w", role, err)
		}

		g.gauge.WithLabelValues(role.String(), "active").Set(float64(counts.Active))
		g.gauge.WithLabelValues(role.String(), "inactive").Set(float64(counts.Inactive))
	}

	return nil
}

// Run is the cron entry point; failures are logged and retried on the next tick.
func (g *AccountsGauges) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := g.Refresh(ctx); err != nil {
		g.logger.Error("accounts gauge refresh failed", zap.Error(err))
	}
}
