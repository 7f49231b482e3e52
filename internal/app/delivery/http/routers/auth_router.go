package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, mw *middlewares.Middlewares, loginLimiter *middlewares.RateLimiter, authController *controllers.AuthController) {
	router.Post("/register/patient", authController.RegisterPatient)
	router.Post("/register/doctor", authController.RegisterDoctor)
	router.Post("/register/seller", authController.RegisterSeller)
	router.With(loginLimiter.Limit).Post("/login", authController.Login)
	router.With(mw.Authenticate).Post("/logout", authController.Logout)
}
