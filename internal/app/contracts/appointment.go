package contracts

import (
	"context"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
)

type AppointmentUsecase interface {
	ListForDoctor(ctx context.Context, session *models.Session, params *requests.QueryParams) ([]models.Appointment, error)
	ListForPatient(ctx context.Context, session *models.Session, params *requests.QueryParams) ([]models.Appointment, error)
	GetByID(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	ApprovePayment(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)
	MarkAttendance(ctx context.Context, session *models.Session, appointmentID string, request *requests.MarkAttendance) (*models.Appointment, error)
	ConfirmByPatient(ctx context.Context, session *models.Session, appointmentID string, request *requests.PatientConfirmation) (*models.Appointment, error)
	WriteClinicalNotes(ctx context.Context, session *models.Session, appointmentID string, request *requests.ClinicalNotes) (*models.Appointment, error)
	AppendMessage(ctx context.Context, session *models.Session, appointmentID string, request *requests.AppendMessage) (*models.Appointment, error)
	MarkMessagesRead(ctx context.Context, session *models.Session, appointmentID string) error
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAppointmentsByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindAppointmentsByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindAppointmentsByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	FindAppointmentBySlot(ctx context.Context, doctorID, date, timeOfDay string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
}
