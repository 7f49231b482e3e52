package routers

import (
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Controllers struct {
	Auth         *controllers.AuthController
	Doctor       *controllers.DoctorController
	Booking      *controllers.BookingController
	Appointment  *controllers.AppointmentController
	Seller       *controllers.SellerController
	Notification *controllers.NotificationController
	Support      *controllers.SupportController
	Settings     *controllers.SettingsController
	Finance      *controllers.FinanceController
	Marketing    *controllers.MarketingController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	mw *middlewares.Middlewares,
	ctrl *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	router.Use(mw.RequestID)
	router.Use(mw.Logging)

	loginLimiter := middlewares.NewRateLimiter(
		mw.Log,
		internalConfig.App.LoginAttemptsPerMinute,
		time.Minute,
		5*time.Minute,
	)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			attachAuthRoutes(r, mw, loginLimiter, ctrl.Auth)
		})
		r.Route("/doctors", func(r chi.Router) {
			attachDoctorRoutes(r, mw, ctrl.Doctor, ctrl.Booking, ctrl.Finance)
		})
		r.Route("/booking", func(r chi.Router) {
			attachBookingRoutes(r, mw, ctrl.Booking)
		})
		r.Route("/appointments", func(r chi.Router) {
			attachAppointmentRoutes(r, mw, ctrl.Appointment)
		})
		r.Route("/sellers", func(r chi.Router) {
			attachSellerRoutes(r, mw, ctrl.Seller)
		})
		r.Route("/notifications", func(r chi.Router) {
			attachNotificationRoutes(r, mw, ctrl.Notification)
		})
		r.Route("/support", func(r chi.Router) {
			attachSupportRoutes(r, mw, ctrl.Support)
		})
		r.Route("/settings", func(r chi.Router) {
			attachSettingsRoutes(r, mw, ctrl.Settings)
		})
		r.Route("/marketing", func(r chi.Router) {
			attachMarketingRoutes(r, mw, ctrl.Marketing)
		})
		r.Route("/admin", func(r chi.Router) {
			attachAdminRoutes(r, mw, ctrl.Finance, ctrl.Seller)
		})
	})
}
