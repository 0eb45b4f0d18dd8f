package services

import (
	"time"

	"github.com/ghuser/autospares/pkg/app"
	"github.com/ghuser/autospares/pkg/cache"
	inventorypg "github.com/ghuser/autospares/services/inventory/infrastructure/persistence/postgres"
	"github.com/ghuser/autospares/services/sales/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Sale *SaleService
}

// New wires the sales application services with infrastructure from the
// Application container. Stock reads and decrements go through the inventory
// context's part repository; the two contexts share one database.
func New(a *app.Application) *Services {
	partRepo := inventorypg.NewPartRepository(a.Db, a.EventBus)
	saleRepo := postgres.NewSaleRepository(a.Db, a.EventBus)

	var idem *cache.SaleIdempotency
	if a.Redis != nil {
		ttl := time.Duration(a.Cfg.SaleIdempotencyTTL) * time.Second
		idem = cache.NewSaleIdempotency(a.Redis, ttl)
	}

	var guard IdempotencyGuard
	if idem != nil {
		guard = idem
	}

	return &Services{
		Sale: NewSaleService(partRepo, saleRepo, guard, a.Cfg.AtomicSaleCommit, a.Logger),
	}
}
