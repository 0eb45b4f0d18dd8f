package services

import (
	"github.com/ghuser/autospares/pkg/app"
	"github.com/ghuser/autospares/pkg/cache"
	"github.com/ghuser/autospares/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Part        *PartService
	Category    *CategoryService
	StockReport *StockReportService
	StockAlert  *StockAlertService
}

// New wires all inventory application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	partRepo := postgres.NewPartRepository(a.Db, a.EventBus)
	categoryRepo := postgres.NewCategoryRepository(a.Db)
	partCache := cache.NewPartCache(a.Redis)
	scanner := NewStockReportService(partRepo, a.Cfg.LowStockThreshold)
	return &Services{
		Part:        NewPartService(partRepo, categoryRepo, partCache),
		Category:    NewCategoryService(categoryRepo),
		StockReport: scanner,
		StockAlert:  NewStockAlertService(scanner, a.Mailer, a.Logger),
	}
}
