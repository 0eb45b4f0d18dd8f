package services

import (
	"context"
	"fmt"

	"github.com/ghuser/autospares/services/inventory/domain/repositories"
)

// Report is a point-in-time view of parts at or below a quantity threshold.
// LowStock holds 0 < qty <= threshold, OutOfStock holds qty == 0; the two
// sets are disjoint and come from the same repository sweep.
type Report struct {
	Threshold  int
	LowStock   []repositories.LowStockPart
	OutOfStock []repositories.LowStockPart
}

// All returns the full sweep (low and out-of-stock), category order preserved.
func (r Report) All() []repositories.LowStockPart {
	all := make([]repositories.LowStockPart, 0, len(r.LowStock)+len(r.OutOfStock))
	all = append(all, r.OutOfStock...)
	all = append(all, r.LowStock...)
	return all
}

// StockReportService is the low-stock scanner: a pure read over the
// inventory store, safe to run concurrently with sale commits. Results may
// be immediately stale; this is a reporting view, not a control mechanism.
type StockReportService struct {
	repo             repositories.PartRepository
	defaultThreshold int
}

// NewStockReportService returns a scanner with the configured default
// threshold (LOW_STOCK_THRESHOLD).
func NewStockReportService(repo repositories.PartRepository, defaultThreshold int) *StockReportService {
	return &StockReportService{repo: repo, defaultThreshold: defaultThreshold}
}

// DefaultThreshold returns the configured threshold used when a caller does
// not supply one.
func (s *StockReportService) DefaultThreshold() int {
	return s.defaultThreshold
}

// Scan sweeps the inventory for parts with qty <= threshold and splits the
// result into the disjoint low-stock and out-of-stock sets. A negative
// threshold falls back to the configured default.
func (s *StockReportService) Scan(ctx context.Context, threshold int) (Report, error) {
	if threshold < 0 {
		threshold = s.defaultThreshold
	}

	rows, err := s.repo.FindLowStock(ctx, threshold)
	if err != nil {
		return Report{}, fmt.Errorf("low stock sweep: %w", err)
	}

	report := Report{Threshold: threshold}
	for _, row := range rows {
		if row.Qty == 0 {
			report.OutOfStock = append(report.OutOfStock, row)
		} else {
			report.LowStock = append(report.LowStock, row)
		}
	}
	return report, nil
}
