package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachMarketingRoutes(router chi.Router, mw *middlewares.Middlewares, marketingController *controllers.MarketingController) {
	router.Use(mw.Authenticate)

	router.Get("/", marketingController.List)
	router.With(mw.RequireRoles(constvars.RoleAdmin)).Post("/", marketingController.Upload)
	router.With(mw.RequireRoles(constvars.RoleAdmin)).Delete("/{materialID}", marketingController.Delete)
}
