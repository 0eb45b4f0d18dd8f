package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/autospares/pkg/app"
	"github.com/ghuser/autospares/services/sales/application/handlers"
	appsvcs "github.com/ghuser/autospares/services/sales/application/services"
)

// SalesRoutes registers sale endpoints on the provided chi router.
func SalesRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", handlers.NewPostSaleHandler(svcs).Execute)
		r.Get("/", handlers.NewGetSalesHandler(svcs).Execute)
	})

	return svcs
}
