package appointments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PatientRepository     contracts.PatientRepository
	MailerQueue           contracts.MailerQueue
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	mailerQueue contracts.MailerQueue,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			PatientRepository:     patientRepository,
			MailerQueue:           mailerQueue,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) ListForDoctor(ctx context.Context, session *models.Session, params *requests.QueryParams) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.ProfileID),
	)

	if !session.IsDoctor() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot list a doctor agenda", session.Role))
	}
	if params != nil && params.Date != "" {
		return uc.AppointmentRepository.FindAppointmentsByDoctorAndDate(ctx, session.ProfileID, params.Date)
	}
	return uc.AppointmentRepository.FindAppointmentsByDoctor(ctx, session.ProfileID)
}

func (uc *appointmentUsecase) ListForPatient(ctx context.Context, session *models.Session, params *requests.QueryParams) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ListForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, session.ProfileID),
	)

	if !session.IsPatient() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot list patient appointments", session.Role))
	}
	return uc.AppointmentRepository.FindAppointmentsByPatient(ctx, session.ProfileID)
}

func (uc *appointmentUsecase) GetByID(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !uc.canSee(session, appointment) {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("appointment %s does not belong to caller", appointmentID))
	}
	return appointment, nil
}

// ApprovePayment moves paymentStatus Pendiente -> Pagado. Approving an
// already paid appointment is a no-op, never a rollback.
func (uc *appointmentUsecase) ApprovePayment(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ApprovePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.ownedByDoctor(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.PaymentStatus == constvars.PaymentStatusPaid {
		return appointment, nil
	}

	appointment.PaymentStatus = constvars.PaymentStatusPaid
	appointment.UpdatedAt = time.Now()
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	uc.notifyPatient(ctx, appointment, "Pago confirmado",
		fmt.Sprintf("Tu pago de la cita del %s fue confirmado.", appointment.Date))
	return appointment, nil
}

func (uc *appointmentUsecase) MarkAttendance(ctx context.Context, session *models.Session, appointmentID string, request *requests.MarkAttendance) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.MarkAttendance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.ownedByDoctor(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Locked() {
		return nil, exceptions.ErrAppointmentLocked(fmt.Errorf("attendance already %s", appointment.Attendance))
	}

	appointment.Attendance = request.Attendance
	appointment.UpdatedAt = time.Now()
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (uc *appointmentUsecase) ConfirmByPatient(ctx context.Context, session *models.Session, appointmentID string, request *requests.PatientConfirmation) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.ConfirmByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.ownedByPatient(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.PatientConfirmationStatus != constvars.ConfirmationPending {
		return nil, exceptions.ErrConfirmationAlreadySet(fmt.Errorf("confirmation already %s", appointment.PatientConfirmationStatus))
	}

	appointment.PatientConfirmationStatus = request.Status
	appointment.UpdatedAt = time.Now()
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (uc *appointmentUsecase) WriteClinicalNotes(ctx context.Context, session *models.Session, appointmentID string, request *requests.ClinicalNotes) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.WriteClinicalNotes called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.ownedByDoctor(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Attendance != constvars.AttendanceAttended {
		return nil, exceptions.ErrNotesNeedAttended(fmt.Errorf("attendance is %q", appointment.Attendance))
	}

	appointment.ClinicalNotes = request.Notes
	appointment.Prescription = request.Prescription
	appointment.UpdatedAt = time.Now()
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (uc *appointmentUsecase) AppendMessage(ctx context.Context, session *models.Session, appointmentID string, request *requests.AppendMessage) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.AppendMessage called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	var sender string
	switch {
	case session.IsPatient() && appointment.PatientID == session.ProfileID:
		sender = constvars.MessageSenderPatient
		appointment.UnreadByDoctor = true
	case session.IsDoctor() && appointment.DoctorID == session.ProfileID:
		sender = constvars.MessageSenderDoctor
		appointment.UnreadByPatient = true
	default:
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("caller is not a party of appointment %s", appointmentID))
	}

	appointment.Messages = append(appointment.Messages, models.ChatMessage{
		ID:     uuid.NewString(),
		Sender: sender,
		Text:   request.Text,
		SentAt: time.Now(),
	})
	appointment.UpdatedAt = time.Now()
	if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (uc *appointmentUsecase) MarkMessagesRead(ctx context.Context, session *models.Session, appointmentID string) error {
	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	switch {
	case session.IsPatient() && appointment.PatientID == session.ProfileID:
		appointment.UnreadByPatient = false
	case session.IsDoctor() && appointment.DoctorID == session.ProfileID:
		appointment.UnreadByDoctor = false
	default:
		return exceptions.ErrRoleNotAllowed(fmt.Errorf("caller is not a party of appointment %s", appointmentID))
	}

	appointment.UpdatedAt = time.Now()
	return uc.AppointmentRepository.UpdateAppointment(ctx, appointment)
}

func (uc *appointmentUsecase) findAppointment(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(fmt.Errorf("appointment %s not found", appointmentID))
	}
	return appointment, nil
}

func (uc *appointmentUsecase) ownedByDoctor(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !session.IsDoctor() || appointment.DoctorID != session.ProfileID {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("appointment %s is not handled by caller", appointmentID))
	}
	return appointment, nil
}

func (uc *appointmentUsecase) ownedByPatient(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !session.IsPatient() || appointment.PatientID != session.ProfileID {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("appointment %s does not belong to caller", appointmentID))
	}
	return appointment, nil
}

func (uc *appointmentUsecase) canSee(session *models.Session, appointment *models.Appointment) bool {
	switch {
	case session.IsAdmin():
		return true
	case session.IsPatient():
		return appointment.PatientID == session.ProfileID
	case session.IsDoctor():
		return appointment.DoctorID == session.ProfileID
	default:
		return false
	}
}

func (uc *appointmentUsecase) notifyPatient(ctx context.Context, appointment *models.Appointment, subject, body string) {
	patient, err := uc.PatientRepository.FindPatientByID(ctx, appointment.PatientID)
	if err != nil || patient == nil {
		return
	}
	if err := uc.MailerQueue.Enqueue(ctx, contracts.MailJob{To: patient.Email, Subject: subject, Body: body}); err != nil {
		uc.Log.Warn("appointmentUsecase could not enqueue patient mail",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
}
