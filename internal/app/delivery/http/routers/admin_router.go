package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(
	router chi.Router,
	mw *middlewares.Middlewares,
	financeController *controllers.FinanceController,
	sellerController *controllers.SellerController,
) {
	router.Use(mw.Authenticate)
	router.Use(mw.RequireRoles(constvars.RoleAdmin))

	router.Post("/payments/{paymentID}/approve", financeController.ApprovePayment)
	router.Get("/doctors/{doctorID}/payments", financeController.ListPayments)
	router.Post("/sellers/{sellerID}/payouts", sellerController.RecordPayout)
}
