package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"
	"suma-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachSupportRoutes(router chi.Router, mw *middlewares.Middlewares, supportController *controllers.SupportController) {
	router.Use(mw.Authenticate)

	router.Post("/", supportController.CreateTicket)
	router.Get("/", supportController.ListTickets)
	router.Get("/{ticketID}", supportController.GetTicket)
	router.Post("/{ticketID}/reply", supportController.Reply)
	router.With(mw.RequireRoles(constvars.RoleAdmin)).Post("/{ticketID}/close", supportController.CloseTicket)
}
