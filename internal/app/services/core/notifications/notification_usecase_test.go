package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeNotificationRepo struct {
	notifications []models.Notification
	nextID        int
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) (string, error) {
	f.nextID++
	n.ID = fmt.Sprintf("n-%d", f.nextID)
	f.notifications = append(f.notifications, *n)
	return n.ID, nil
}

func (f *fakeNotificationRepo) FindNotificationsByUser(_ context.Context, userID string) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) ExistsNotification(_ context.Context, userID string, key models.NotificationKey) (bool, error) {
	for _, n := range f.notifications {
		if n.UserID == userID && n.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) MarkNotificationsRead(_ context.Context, userID string) error {
	for i := range f.notifications {
		if f.notifications[i].UserID == userID {
			f.notifications[i].Read = true
		}
	}
	return nil
}

type fakeApptRepo struct {
	appointments []models.Appointment
}

func (f *fakeApptRepo) CreateAppointment(_ context.Context, a *models.Appointment) (string, error) {
	f.appointments = append(f.appointments, *a)
	return a.ID, nil
}

func (f *fakeApptRepo) FindAppointmentByID(_ context.Context, id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			return &f.appointments[i], nil
		}
	}
	return nil, nil
}

func (f *fakeApptRepo) FindAppointmentsByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) FindAppointmentsByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) FindAppointmentsByDoctorAndDate(_ context.Context, doctorID, date string) ([]models.Appointment, error) {
	out := []models.Appointment{}
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) FindAppointmentBySlot(_ context.Context, doctorID, date, timeSlot string) (*models.Appointment, error) {
	for i := range f.appointments {
		a := &f.appointments[i]
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeSlot {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeApptRepo) UpdateAppointment(_ context.Context, a *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == a.ID {
			f.appointments[i] = *a
		}
	}
	return nil
}

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorRepo) CreateDoctor(_ context.Context, d *models.Doctor) (string, error) {
	f.doctors[d.ID] = d
	return d.ID, nil
}

func (f *fakeDoctorRepo) FindDoctorByID(_ context.Context, id string) (*models.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) FindDoctors(_ context.Context, _, _ int) ([]models.Doctor, int64, error) {
	out := []models.Doctor{}
	for _, d := range f.doctors {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDoctorRepo) FindDoctorsBySeller(_ context.Context, _ string) ([]models.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateDoctor(_ context.Context, d *models.Doctor) error {
	f.doctors[d.ID] = d
	return nil
}

type fakeDoctorPaymentRepo struct {
	payments []models.DoctorPayment
}

func (f *fakeDoctorPaymentRepo) CreateDoctorPayment(_ context.Context, p *models.DoctorPayment) (string, error) {
	f.payments = append(f.payments, *p)
	return p.ID, nil
}

func (f *fakeDoctorPaymentRepo) FindDoctorPaymentByID(_ context.Context, id string) (*models.DoctorPayment, error) {
	for i := range f.payments {
		if f.payments[i].ID == id {
			return &f.payments[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorPaymentRepo) FindDoctorPaymentsByDoctor(_ context.Context, doctorID string) ([]models.DoctorPayment, error) {
	out := []models.DoctorPayment{}
	for _, p := range f.payments {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeDoctorPaymentRepo) UpdateDoctorPayment(_ context.Context, _ *models.DoctorPayment) error {
	return nil
}

type fakeSellerPaymentRepo struct {
	payments   []models.SellerPayment
	readCalled bool
}

func (f *fakeSellerPaymentRepo) CreateSellerPayment(_ context.Context, p *models.SellerPayment) (string, error) {
	f.payments = append(f.payments, *p)
	return p.ID, nil
}

func (f *fakeSellerPaymentRepo) FindSellerPaymentsBySeller(_ context.Context, sellerID string) ([]models.SellerPayment, error) {
	out := []models.SellerPayment{}
	for _, p := range f.payments {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSellerPaymentRepo) MarkSellerPaymentsRead(_ context.Context, _ string) error {
	f.readCalled = true
	return nil
}

type fakeTicketRepo struct {
	tickets []models.SupportTicket
}

func (f *fakeTicketRepo) CreateTicket(_ context.Context, t *models.SupportTicket) (string, error) {
	f.tickets = append(f.tickets, *t)
	return t.ID, nil
}

func (f *fakeTicketRepo) FindTicketByID(_ context.Context, id string) (*models.SupportTicket, error) {
	for i := range f.tickets {
		if f.tickets[i].ID == id {
			return &f.tickets[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTicketRepo) FindTicketsByAuthor(_ context.Context, authorID string) ([]models.SupportTicket, error) {
	out := []models.SupportTicket{}
	for _, t := range f.tickets {
		if t.AuthorID == authorID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) FindAllTickets(_ context.Context) ([]models.SupportTicket, error) {
	return f.tickets, nil
}

func (f *fakeTicketRepo) UpdateTicket(_ context.Context, _ *models.SupportTicket) error {
	return nil
}

func newNotificationFixture() (*notificationUsecase, *fakeNotificationRepo, *fakeApptRepo, *fakeDoctorRepo, *fakeDoctorPaymentRepo, *fakeSellerPaymentRepo, *fakeTicketRepo) {
	notifRepo := &fakeNotificationRepo{}
	apptRepo := &fakeApptRepo{}
	doctorRepo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{}}
	doctorPaymentRepo := &fakeDoctorPaymentRepo{}
	sellerPaymentRepo := &fakeSellerPaymentRepo{}
	ticketRepo := &fakeTicketRepo{}
	uc := &notificationUsecase{
		NotificationRepository:  notifRepo,
		AppointmentRepository:   apptRepo,
		DoctorRepository:        doctorRepo,
		DoctorPaymentRepository: doctorPaymentRepo,
		SellerPaymentRepository: sellerPaymentRepo,
		SupportTicketRepository: ticketRepo,
		Log:                     zap.NewNop(),
	}
	return uc, notifRepo, apptRepo, doctorRepo, doctorPaymentRepo, sellerPaymentRepo, ticketRepo
}

func TestSyncForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("patient sees payment, attendance and doctor chat", func(t *testing.T) {
		uc, notifRepo, apptRepo, _, _, _, _ := newNotificationFixture()
		apptRepo.appointments = []models.Appointment{{
			ID: "appt-1", PatientID: "pat-1", DoctorID: "doc-1",
			Date: "2026-08-31", Time: "09:00",
			PaymentStatus: constvars.PaymentStatusPaid,
			Attendance:    constvars.AttendanceAttended,
			Messages: []models.ChatMessage{
				{ID: "m1", Sender: constvars.MessageSenderDoctor, Text: "Hola"},
				{ID: "m2", Sender: constvars.MessageSenderPatient, Text: "Hola doctor"},
			},
		}}

		err := uc.SyncForUser(ctx, "pat-1", constvars.RolePatient)

		assert.NoError(t, err)
		kinds := []string{}
		for _, n := range notifRepo.notifications {
			kinds = append(kinds, n.Key.Kind)
		}
		assert.ElementsMatch(t, []string{
			models.NotifKindPaymentApproved,
			models.NotifKindAttendanceSet,
			models.NotifKindChatMessage,
		}, kinds, "own messages must not notify the sender")
	})

	t.Run("rescanning an unchanged snapshot adds nothing", func(t *testing.T) {
		uc, notifRepo, apptRepo, _, _, _, _ := newNotificationFixture()
		apptRepo.appointments = []models.Appointment{{
			ID: "appt-1", PatientID: "pat-1", DoctorID: "doc-1",
			Date: "2026-08-31", Time: "09:00",
			PaymentStatus: constvars.PaymentStatusPaid,
		}}

		assert.NoError(t, uc.SyncForUser(ctx, "pat-1", constvars.RolePatient))
		first := len(notifRepo.notifications)
		assert.NoError(t, uc.SyncForUser(ctx, "pat-1", constvars.RolePatient))

		assert.Equal(t, first, len(notifRepo.notifications))
	})

	t.Run("changed attendance produces a new entry", func(t *testing.T) {
		uc, notifRepo, apptRepo, _, _, _, _ := newNotificationFixture()
		apptRepo.appointments = []models.Appointment{{
			ID: "appt-1", PatientID: "pat-1", DoctorID: "doc-1",
			Date: "2026-08-31", Time: "09:00",
			Attendance: constvars.AttendanceAttended,
		}}
		assert.NoError(t, uc.SyncForUser(ctx, "pat-1", constvars.RolePatient))
		assert.Len(t, notifRepo.notifications, 1)

		apptRepo.appointments[0].Messages = append(apptRepo.appointments[0].Messages,
			models.ChatMessage{ID: "m9", Sender: constvars.MessageSenderDoctor, Text: "Resultados listos"})
		assert.NoError(t, uc.SyncForUser(ctx, "pat-1", constvars.RolePatient))

		assert.Len(t, notifRepo.notifications, 2)
	})

	t.Run("doctor sees bookings, confirmations and subscription approval", func(t *testing.T) {
		uc, notifRepo, apptRepo, _, doctorPaymentRepo, _, _ := newNotificationFixture()
		apptRepo.appointments = []models.Appointment{{
			ID: "appt-1", PatientID: "pat-1", DoctorID: "doc-1",
			Date: "2026-08-31", Time: "09:00",
			PatientConfirmationStatus: constvars.ConfirmationConfirmed,
		}}
		doctorPaymentRepo.payments = []models.DoctorPayment{
			{ID: "dp-1", DoctorID: "doc-1", Period: "August 2026", Status: constvars.PaymentStatusPaid},
			{ID: "dp-2", DoctorID: "doc-1", Period: "September 2026", Status: constvars.PaymentStatusPending},
		}

		err := uc.SyncForUser(ctx, "doc-1", constvars.RoleDoctor)

		assert.NoError(t, err)
		kinds := []string{}
		for _, n := range notifRepo.notifications {
			kinds = append(kinds, n.Key.Kind)
		}
		assert.ElementsMatch(t, []string{
			models.NotifKindBookingCreated,
			models.NotifKindPatientConfirmation,
			models.NotifKindDoctorPayment,
		}, kinds, "pending subscription payments must not notify")
	})

	t.Run("seller sees payouts and support replies", func(t *testing.T) {
		uc, notifRepo, _, _, _, sellerPaymentRepo, ticketRepo := newNotificationFixture()
		sellerPaymentRepo.payments = []models.SellerPayment{
			{ID: "sp-1", SellerID: "seller-1", Period: "August 2026", PaymentDate: time.Now()},
		}
		ticketRepo.tickets = []models.SupportTicket{{
			ID: "tk-1", AuthorID: "seller-1", AuthorRole: constvars.RoleSeller,
			Messages: []models.TicketMessage{
				{ID: "tm-1", Sender: constvars.RoleSeller, Text: "No veo mis comisiones"},
				{ID: "tm-2", Sender: constvars.RoleAdmin, Text: "Revisado, ya aparecen"},
			},
		}}

		err := uc.SyncForUser(ctx, "seller-1", constvars.RoleSeller)

		assert.NoError(t, err)
		assert.Len(t, notifRepo.notifications, 2)
	})
}

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()

	t.Run("flips read flags for the caller only", func(t *testing.T) {
		uc, notifRepo, _, _, _, _, _ := newNotificationFixture()
		notifRepo.notifications = []models.Notification{
			{ID: "n1", UserID: "pat-1", Read: false},
			{ID: "n2", UserID: "pat-2", Read: false},
		}

		err := uc.MarkAllRead(ctx, &models.Session{SessionID: "s1", Role: constvars.RolePatient, ProfileID: "pat-1"})

		assert.NoError(t, err)
		assert.True(t, notifRepo.notifications[0].Read)
		assert.False(t, notifRepo.notifications[1].Read)
	})

	t.Run("seller mark-all-read clears payout unread flags", func(t *testing.T) {
		uc, _, _, _, _, sellerPaymentRepo, _ := newNotificationFixture()

		err := uc.MarkAllRead(ctx, &models.Session{SessionID: "s1", Role: constvars.RoleSeller, ProfileID: "seller-1"})

		assert.NoError(t, err)
		assert.True(t, sellerPaymentRepo.readCalled)
	})

	t.Run("doctor mark-all-read clears the unread bookings flag", func(t *testing.T) {
		uc, _, _, doctorRepo, _, _, _ := newNotificationFixture()
		doctorRepo.doctors["doc-1"] = &models.Doctor{ID: "doc-1", HasUnreadBookings: true}

		err := uc.MarkAllRead(ctx, &models.Session{SessionID: "s1", Role: constvars.RoleDoctor, ProfileID: "doc-1"})

		assert.NoError(t, err)
		assert.False(t, doctorRepo.doctors["doc-1"].HasUnreadBookings)
	})
}
