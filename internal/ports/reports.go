package ports

import (
	"context"

	"stepviz/internal/domain"
)

// ReportStore archives finished run reports
type ReportStore interface {
	// Lifecycle
	Open(dataDir string) error
	Close() error

	SaveReport(ctx context.Context, report *domain.Report) error
	ListReports(ctx context.Context, limit int) ([]domain.Report, error)
	GetReport(ctx context.Context, id string) (*domain.Report, error)
}
