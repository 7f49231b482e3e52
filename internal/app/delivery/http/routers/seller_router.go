package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSellerRoutes(router chi.Router, mw *middlewares.Middlewares, sellerController *controllers.SellerController) {
	router.Use(mw.Authenticate)

	router.Route("/me", func(r chi.Router) {
		r.Use(mw.RequireRoles(constvars.RoleSeller))
		r.Get("/commissions", sellerController.GetCommissionSummary)
		r.Post("/payouts/read", sellerController.MarkPayoutsRead)
	})

	router.Get("/marketing", sellerController.ListMarketingMaterials)
}
