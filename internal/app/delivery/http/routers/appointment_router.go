package routers

import (
	"suma-service/internal/app/delivery/http/controllers"
	"suma-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, mw *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(mw.Authenticate)

	router.Get("/doctor", appointmentController.ListForDoctor)
	router.Get("/patient", appointmentController.ListForPatient)
	router.Get("/{appointmentID}", appointmentController.GetByID)
	router.Post("/{appointmentID}/approve-payment", appointmentController.ApprovePayment)
	router.Post("/{appointmentID}/attendance", appointmentController.MarkAttendance)
	router.Post("/{appointmentID}/confirmation", appointmentController.ConfirmByPatient)
	router.Post("/{appointmentID}/notes", appointmentController.WriteClinicalNotes)
	router.Post("/{appointmentID}/messages", appointmentController.AppendMessage)
	router.Post("/{appointmentID}/messages/read", appointmentController.MarkMessagesRead)
}
