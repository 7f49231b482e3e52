package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(
	router chi.Router,
	mw *middlewares.Middlewares,
	doctorController *controllers.DoctorController,
	bookingController *controllers.BookingController,
	financeController *controllers.FinanceController,
) {
	// Public catalog: browsing doctors and their open slots needs no session.
	router.Get("/", doctorController.ListDoctors)
	router.Get("/{doctorID}", doctorController.GetDoctor)
	router.Get("/{doctorID}/availability", bookingController.GetAvailability)

	router.Route("/me", func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Use(mw.RequireRoles(constvars.RoleDoctor))

		r.Put("/schedule", doctorController.UpdateSchedule)
		r.Put("/services", doctorController.UpdateServices)
		r.Put("/coupons", doctorController.UpdateCoupons)
		r.Put("/bank-details", doctorController.UpdateBankDetails)
		r.Post("/bookings/read", doctorController.MarkBookingsRead)

		r.Post("/payments", financeController.SubmitPayment)
		r.Get("/payments", financeController.ListPayments)
		r.Post("/payments/{paymentID}/proof", financeController.UploadProof)
	})
}
