package ports

import (
	"context"

	"hospital-admin-api/internal/domain/statistics"
)

type StatisticsService interface {
	ComputeStatistics(ctx context.Context) (*statistics.Snapshot, error)
}
