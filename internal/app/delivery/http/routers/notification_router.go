package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, mw *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	router.Use(mw.Authenticate)

	router.Get("/", notificationController.List)
	router.Post("/read", notificationController.MarkAllRead)
}
