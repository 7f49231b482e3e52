package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSettingsRoutes(router chi.Router, mw *middlewares.Middlewares, settingsController *controllers.SettingsController) {
	router.Get("/", settingsController.GetSettings)
	router.With(mw.Authenticate, mw.RequireRoles(constvars.RoleAdmin)).Put("/city-fees", settingsController.UpdateCityFees)
}
