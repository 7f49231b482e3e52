package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository  contracts.NotificationRepository
	AppointmentRepository   contracts.AppointmentRepository
	DoctorRepository        contracts.DoctorRepository
	DoctorPaymentRepository contracts.DoctorPaymentRepository
	SellerPaymentRepository contracts.SellerPaymentRepository
	SupportTicketRepository contracts.SupportTicketRepository
	Log                     *zap.Logger
}

var (
	notificationUsecaseInstance contracts.NotificationUsecase
	onceNotificationUsecase     sync.Once
)

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	doctorPaymentRepository contracts.DoctorPaymentRepository,
	sellerPaymentRepository contracts.SellerPaymentRepository,
	supportTicketRepository contracts.SupportTicketRepository,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	onceNotificationUsecase.Do(func() {
		notificationUsecaseInstance = &notificationUsecase{
			NotificationRepository:  notificationRepository,
			AppointmentRepository:   appointmentRepository,
			DoctorRepository:        doctorRepository,
			DoctorPaymentRepository: doctorPaymentRepository,
			SellerPaymentRepository: sellerPaymentRepository,
			SupportTicketRepository: supportTicketRepository,
			Log:                     logger,
		}
	})
	return notificationUsecaseInstance
}

func (uc *notificationUsecase) ListForUser(ctx context.Context, session *models.Session) (*responses.NotificationList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.ListForUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.ProfileID),
	)

	if err := uc.SyncForUser(ctx, session.ProfileID, session.Role); err != nil {
		return nil, err
	}

	notifications, err := uc.NotificationRepository.FindNotificationsByUser(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}

	unread := 0
	items := make([]responses.Notification, 0, len(notifications))
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
		items = append(items, responses.Notification{
			ID:        n.ID,
			Kind:      n.Key.Kind,
			EntityID:  n.Key.EntityID,
			Title:     n.Title,
			Message:   n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return &responses.NotificationList{Unread: unread, Notifications: items}, nil
}

// MarkAllRead flips stored notifications to read and clears the unread flags
// on the entities the scans derive from, so the next scan does not resurface
// the same items as unread elsewhere in the UI.
func (uc *notificationUsecase) MarkAllRead(ctx context.Context, session *models.Session) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("notificationUsecase.MarkAllRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.ProfileID),
	)

	if err := uc.NotificationRepository.MarkNotificationsRead(ctx, session.ProfileID); err != nil {
		return err
	}

	switch session.Role {
	case constvars.RoleSeller:
		return uc.SellerPaymentRepository.MarkSellerPaymentsRead(ctx, session.ProfileID)
	case constvars.RoleDoctor:
		doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, session.ProfileID)
		if err != nil || doctor == nil {
			return err
		}
		if doctor.HasUnreadBookings {
			doctor.HasUnreadBookings = false
			return uc.DoctorRepository.UpdateDoctor(ctx, doctor)
		}
	}
	return nil
}

// SyncForUser derives notifications from the user's current entity snapshot.
// Every derived item carries a structural key; known keys are skipped, so the
// scan is idempotent over an unchanged snapshot.
func (uc *notificationUsecase) SyncForUser(ctx context.Context, userID, role string) error {
	switch role {
	case constvars.RolePatient:
		return uc.syncPatient(ctx, userID)
	case constvars.RoleDoctor:
		return uc.syncDoctor(ctx, userID)
	case constvars.RoleSeller:
		return uc.syncSeller(ctx, userID)
	}
	return nil
}

func (uc *notificationUsecase) syncPatient(ctx context.Context, patientID string) error {
	appointments, err := uc.AppointmentRepository.FindAppointmentsByPatient(ctx, patientID)
	if err != nil {
		return err
	}

	for i := range appointments {
		appt := &appointments[i]
		if appt.PaymentStatus == constvars.PaymentStatusPaid {
			if err := uc.insertIfNew(ctx, patientID, models.NotificationKey{
				Kind:     models.NotifKindPaymentApproved,
				EntityID: appt.ID,
				SubKey:   appt.PaymentStatus,
			}, "Pago confirmado", fmt.Sprintf("Tu pago de la cita del %s a las %s fue confirmado.", appt.Date, appt.Time)); err != nil {
				return err
			}
		}
		if appt.Locked() {
			if err := uc.insertIfNew(ctx, patientID, models.NotificationKey{
				Kind:     models.NotifKindAttendanceSet,
				EntityID: appt.ID,
				SubKey:   appt.Attendance,
			}, "Asistencia registrada", fmt.Sprintf("Tu cita del %s fue marcada: %s.", appt.Date, appt.Attendance)); err != nil {
				return err
			}
		}
		for _, msg := range appt.Messages {
			if msg.Sender != constvars.MessageSenderDoctor {
				continue
			}
			if err := uc.insertIfNew(ctx, patientID, models.NotificationKey{
				Kind:     models.NotifKindChatMessage,
				EntityID: appt.ID,
				SubKey:   msg.ID,
			}, "Nuevo mensaje del médico", msg.Text); err != nil {
				return err
			}
		}
	}

	return uc.syncSupportReplies(ctx, patientID)
}

func (uc *notificationUsecase) syncDoctor(ctx context.Context, doctorID string) error {
	appointments, err := uc.AppointmentRepository.FindAppointmentsByDoctor(ctx, doctorID)
	if err != nil {
		return err
	}

	for i := range appointments {
		appt := &appointments[i]
		if err := uc.insertIfNew(ctx, doctorID, models.NotificationKey{
			Kind:     models.NotifKindBookingCreated,
			EntityID: appt.ID,
			SubKey:   "created",
		}, "Nueva reserva", fmt.Sprintf("Reserva para el %s a las %s.", appt.Date, appt.Time)); err != nil {
			return err
		}
		if appt.PatientConfirmationStatus != "" && appt.PatientConfirmationStatus != constvars.ConfirmationPending {
			if err := uc.insertIfNew(ctx, doctorID, models.NotificationKey{
				Kind:     models.NotifKindPatientConfirmation,
				EntityID: appt.ID,
				SubKey:   appt.PatientConfirmationStatus,
			}, "Respuesta del paciente", fmt.Sprintf("La cita del %s fue %s por el paciente.", appt.Date, appt.PatientConfirmationStatus)); err != nil {
				return err
			}
		}
		for _, msg := range appt.Messages {
			if msg.Sender != constvars.MessageSenderPatient {
				continue
			}
			if err := uc.insertIfNew(ctx, doctorID, models.NotificationKey{
				Kind:     models.NotifKindChatMessage,
				EntityID: appt.ID,
				SubKey:   msg.ID,
			}, "Nuevo mensaje del paciente", msg.Text); err != nil {
				return err
			}
		}
	}

	payments, err := uc.DoctorPaymentRepository.FindDoctorPaymentsByDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	for _, payment := range payments {
		if payment.Status != constvars.PaymentStatusPaid {
			continue
		}
		if err := uc.insertIfNew(ctx, doctorID, models.NotificationKey{
			Kind:     models.NotifKindDoctorPayment,
			EntityID: payment.ID,
			SubKey:   payment.Status,
		}, "Suscripción al día", fmt.Sprintf("Tu pago del período %s fue aprobado.", payment.Period)); err != nil {
			return err
		}
	}

	return uc.syncSupportReplies(ctx, doctorID)
}

func (uc *notificationUsecase) syncSeller(ctx context.Context, sellerID string) error {
	payments, err := uc.SellerPaymentRepository.FindSellerPaymentsBySeller(ctx, sellerID)
	if err != nil {
		return err
	}
	for _, payment := range payments {
		if err := uc.insertIfNew(ctx, sellerID, models.NotificationKey{
			Kind:     models.NotifKindSellerPayout,
			EntityID: payment.ID,
			SubKey:   payment.Period,
		}, "Comisión pagada", fmt.Sprintf("Recibiste el pago de comisiones de %s.", payment.Period)); err != nil {
			return err
		}
	}

	return uc.syncSupportReplies(ctx, sellerID)
}

func (uc *notificationUsecase) syncSupportReplies(ctx context.Context, userID string) error {
	tickets, err := uc.SupportTicketRepository.FindTicketsByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	for i := range tickets {
		ticket := &tickets[i]
		for _, msg := range ticket.Messages {
			if msg.Sender != constvars.RoleAdmin {
				continue
			}
			if err := uc.insertIfNew(ctx, userID, models.NotificationKey{
				Kind:     models.NotifKindSupportReply,
				EntityID: ticket.ID,
				SubKey:   msg.ID,
			}, "Respuesta de soporte", msg.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

func (uc *notificationUsecase) insertIfNew(ctx context.Context, userID string, key models.NotificationKey, title, body string) error {
	exists, err := uc.NotificationRepository.ExistsNotification(ctx, userID, key)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = uc.NotificationRepository.CreateNotification(ctx, &models.Notification{
		UserID:    userID,
		Key:       key,
		Title:     title,
		Body:      body,
		Read:      false,
		CreatedAt: time.Now(),
	})
	return err
}
