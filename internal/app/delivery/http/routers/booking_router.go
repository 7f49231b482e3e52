package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, mw *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.Use(mw.Authenticate)
	router.Use(mw.RequireRoles(constvars.RolePatient))

	router.Post("/start", bookingController.Start)
	router.Get("/draft", bookingController.GetDraft)
	router.Delete("/draft", bookingController.Abandon)
	router.Post("/datetime", bookingController.SelectDateTime)
	router.Post("/services/toggle", bookingController.ToggleService)
	router.Post("/coupon", bookingController.ApplyCoupon)
	router.Delete("/coupon", bookingController.RemoveCoupon)
	router.Post("/payment", bookingController.SelectPayment)
	router.Post("/back", bookingController.GoBack)
	router.Post("/confirm", bookingController.Confirm)
}
