package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/autospares/pkg/app"
	"github.com/ghuser/autospares/pkg/auth"
	"github.com/ghuser/autospares/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/autospares/services/inventory/application/services"
)

// InventoryRoutes registers spare part and category endpoints on the provided
// chi router. Category mutations and bulk imports are admin-only.
func InventoryRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	adminOnly := auth.RequireAdmin(a.Logger)

	r.Route("/spare-parts", func(r chi.Router) {
		r.Get("/", handlers.NewListPartsHandler(svcs).Execute)
		r.Post("/", handlers.NewCreatePartHandler(svcs).Execute)
		r.Get("/low-stock", handlers.NewLowStockHandler(svcs).Execute)
		r.With(adminOnly).Post("/bulk-insert", handlers.NewBulkInsertPartsHandler(svcs).Execute)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetPartHandler(svcs).Execute)
			r.Put("/", handlers.NewUpdatePartHandler(svcs).Execute)
			r.Patch("/", handlers.NewUpdatePartHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeletePartHandler(svcs).Execute)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", handlers.NewListCategoriesHandler(svcs).Execute)
		r.With(adminOnly).Post("/", handlers.NewCreateCategoryHandler(svcs).Execute)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetCategoryHandler(svcs).Execute)
			r.With(adminOnly).Put("/", handlers.NewUpdateCategoryHandler(svcs).Execute)
			r.With(adminOnly).Delete("/", handlers.NewDeleteCategoryHandler(svcs).Execute)
		})
	})

	return svcs
}
