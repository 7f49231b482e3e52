package booking

import (
	"context"
	"testing"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorRepo) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	f.doctors[doctor.ID] = doctor
	return doctor.ID, nil
}

func (f *fakeDoctorRepo) FindDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, ok := f.doctors[doctorID]
	if !ok {
		return nil, nil
	}
	copied := *doctor
	return &copied, nil
}

func (f *fakeDoctorRepo) FindDoctors(ctx context.Context, page, pageSize int) ([]models.Doctor, int64, error) {
	return nil, 0, nil
}

func (f *fakeDoctorRepo) FindDoctorsBySeller(ctx context.Context, sellerID string) ([]models.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	f.doctors[doctor.ID] = doctor
	return nil
}

type fakeAppointmentRepo struct {
	appointments []*models.Appointment
	nextID       int
}

func (f *fakeAppointmentRepo) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	f.nextID++
	appointment.ID = string(rune('a' + f.nextID))
	f.appointments = append(f.appointments, appointment)
	return appointment.ID, nil
}

func (f *fakeAppointmentRepo) FindAppointmentByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == appointmentID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindAppointmentsByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindAppointmentsByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindAppointmentsByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date == date {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindAppointmentBySlot(ctx context.Context, doctorID, date, timeOfDay string) (*models.Appointment, error) {
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeOfDay {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return nil
}

type fakeRedis struct {
	store map[string]string
}

func (f *fakeRedis) Delete(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = string(raw)
	return nil
}

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if _, exists := f.store[key]; exists {
		return false, nil
	}
	return true, f.Set(ctx, key, value, exp)
}

type fakeLocker struct {
	acquired bool
	locks    []string
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if !f.acquired {
		return false, "", nil
	}
	f.locks = append(f.locks, key)
	return true, "lock-value", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	return nil
}

type fakeMailer struct {
	jobs []contracts.MailJob
}

func (f *fakeMailer) Enqueue(ctx context.Context, job contracts.MailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

// 2026-08-31 is a Monday.
const testDate = "2026-08-31"

func testDoctor() *models.Doctor {
	return &models.Doctor{
		ID:              "64f000000000000000000001",
		Name:            "Dra. Morales",
		Email:           "morales@suma.example",
		ConsultationFee: 25,
		SlotDuration:    30,
		Schedule: models.WeekSchedule{
			"monday": {Active: true, Slots: []models.TimeRange{{Start: "09:00", End: "12:00"}}},
		},
		Services: []models.Service{
			{ID: "svc-1", Name: "Consulta general", Price: 50},
			{ID: "svc-2", Name: "Electrocardiograma", Price: 30},
		},
		BankDetails: []models.BankAccount{
			{ID: "bank-1", BankName: "Banco Uno", AccountNumber: "0102", HolderName: "Dra. Morales"},
		},
		Coupons: []models.Coupon{
			{Code: "VERANO20", DiscountType: constvars.DiscountTypePercentage, Value: 20, Scope: constvars.CouponScopeGeneral},
		},
	}
}

func newTestUsecase(doctor *models.Doctor) (*bookingUsecase, *fakeAppointmentRepo, *fakeRedis, *fakeLocker, *fakeMailer) {
	doctorRepo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{doctor.ID: doctor}}
	appointmentRepo := &fakeAppointmentRepo{}
	redisRepo := &fakeRedis{store: map[string]string{}}
	locker := &fakeLocker{acquired: true}
	mailer := &fakeMailer{}

	uc := &bookingUsecase{
		DoctorRepository:      doctorRepo,
		AppointmentRepository: appointmentRepo,
		RedisRepository:       redisRepo,
		LockService:           locker,
		MailerQueue:           mailer,
		InternalConfig: &config.InternalConfig{
			App: config.App{BookingDraftTTLInMinutes: 30, SlotLockTTLInSeconds: 15},
		},
		Log: zap.NewNop(),
	}
	return uc, appointmentRepo, redisRepo, locker, mailer
}

func patientSession() *models.Session {
	return &models.Session{
		SessionID: "sess-1",
		AccountID: "acc-1",
		ProfileID: "64f000000000000000000002",
		Role:      constvars.RolePatient,
	}
}

func driveToConfirmation(t *testing.T, uc *bookingUsecase, session *models.Session, doctor *models.Doctor) {
	t.Helper()
	ctx := context.Background()

	_, err := uc.StartBooking(ctx, session, &requests.StartBooking{DoctorID: doctor.ID})
	assert.NoError(t, err)

	_, err = uc.SelectDateTime(ctx, session, &requests.SelectDateTime{Date: testDate, Time: "10:00"})
	assert.NoError(t, err)

	_, err = uc.ToggleService(ctx, session, &requests.ToggleService{ServiceID: "svc-1"})
	assert.NoError(t, err)
	_, err = uc.ToggleService(ctx, session, &requests.ToggleService{ServiceID: "svc-2"})
	assert.NoError(t, err)

	_, err = uc.SelectPayment(ctx, session, &requests.SelectPayment{Method: constvars.PaymentMethodCash})
	assert.NoError(t, err)
}

func TestBookingWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path commits a snapshot appointment", func(t *testing.T) {
		doctor := testDoctor()
		uc, appointmentRepo, redisRepo, _, mailer := newTestUsecase(doctor)
		session := patientSession()

		driveToConfirmation(t, uc, session, doctor)

		view, err := uc.ApplyCoupon(ctx, session, &requests.ApplyCoupon{Code: "verano20"})
		assert.NoError(t, err)
		assert.InDelta(t, 80.0, view.Subtotal, 1e-9)
		assert.InDelta(t, 16.0, view.Discount, 1e-9)
		assert.InDelta(t, 64.0, view.Total, 1e-9)

		result, err := uc.Confirm(ctx, session)
		assert.NoError(t, err)
		assert.InDelta(t, 64.0, result.Total, 1e-9)
		assert.Equal(t, constvars.PaymentStatusPending, result.PaymentStatus)

		assert.Len(t, appointmentRepo.appointments, 1)
		appointment := appointmentRepo.appointments[0]
		assert.Equal(t, testDate, appointment.Date)
		assert.Equal(t, "10:00", appointment.Time)
		assert.Len(t, appointment.Services, 2)
		assert.InDelta(t, 25.0, appointment.ConsultationFee, 1e-9, "fee snapshot comes from doctor at commit time")
		assert.Equal(t, constvars.AttendancePending, appointment.Attendance)
		assert.Equal(t, constvars.ConfirmationPending, appointment.PatientConfirmationStatus)
		assert.True(t, appointment.UnreadByDoctor)

		assert.Empty(t, redisRepo.store[draftKey(session.ProfileID)], "draft must be cleared after commit")
		assert.Len(t, mailer.jobs, 1)
	})

	t.Run("second confirm fails after draft clears", func(t *testing.T) {
		doctor := testDoctor()
		uc, appointmentRepo, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		driveToConfirmation(t, uc, session, doctor)
		_, err := uc.Confirm(ctx, session)
		assert.NoError(t, err)

		_, err = uc.Confirm(ctx, session)
		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
		assert.Len(t, appointmentRepo.appointments, 1, "no duplicate appointment")
	})

	t.Run("confirm refuses when slot lock is held", func(t *testing.T) {
		doctor := testDoctor()
		uc, appointmentRepo, _, locker, _ := newTestUsecase(doctor)
		locker.acquired = false
		session := patientSession()

		driveToConfirmation(t, uc, session, doctor)
		_, err := uc.Confirm(ctx, session)
		assert.Error(t, err)
		assert.Empty(t, appointmentRepo.appointments)
	})

	t.Run("confirm refuses a slot persisted meanwhile", func(t *testing.T) {
		doctor := testDoctor()
		uc, appointmentRepo, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		driveToConfirmation(t, uc, session, doctor)

		appointmentRepo.appointments = append(appointmentRepo.appointments, &models.Appointment{
			ID: "other", DoctorID: doctor.ID, Date: testDate, Time: "10:00",
		})

		_, err := uc.Confirm(ctx, session)
		assert.Error(t, err)
		assert.Len(t, appointmentRepo.appointments, 1)
	})

	t.Run("selecting a booked time is rejected", func(t *testing.T) {
		doctor := testDoctor()
		uc, appointmentRepo, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		appointmentRepo.appointments = append(appointmentRepo.appointments, &models.Appointment{
			ID: "other", DoctorID: doctor.ID, Date: testDate, Time: "09:00",
		})

		_, err := uc.StartBooking(ctx, session, &requests.StartBooking{DoctorID: doctor.ID})
		assert.NoError(t, err)
		_, err = uc.SelectDateTime(ctx, session, &requests.SelectDateTime{Date: testDate, Time: "09:00"})
		assert.Error(t, err)
	})

	t.Run("payment step requires at least one service", func(t *testing.T) {
		doctor := testDoctor()
		uc, _, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		_, err := uc.StartBooking(ctx, session, &requests.StartBooking{DoctorID: doctor.ID})
		assert.NoError(t, err)
		_, err = uc.SelectDateTime(ctx, session, &requests.SelectDateTime{Date: testDate, Time: "10:00"})
		assert.NoError(t, err)

		_, err = uc.SelectPayment(ctx, session, &requests.SelectPayment{Method: constvars.PaymentMethodCash})
		assert.Error(t, err)
	})

	t.Run("bank transfer requires account and proof", func(t *testing.T) {
		doctor := testDoctor()
		uc, _, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		_, err := uc.StartBooking(ctx, session, &requests.StartBooking{DoctorID: doctor.ID})
		assert.NoError(t, err)
		_, err = uc.SelectDateTime(ctx, session, &requests.SelectDateTime{Date: testDate, Time: "10:00"})
		assert.NoError(t, err)
		_, err = uc.ToggleService(ctx, session, &requests.ToggleService{ServiceID: "svc-1"})
		assert.NoError(t, err)

		_, err = uc.SelectPayment(ctx, session, &requests.SelectPayment{Method: constvars.PaymentMethodBankTransfer})
		assert.Error(t, err)

		_, err = uc.SelectPayment(ctx, session, &requests.SelectPayment{
			Method:          constvars.PaymentMethodBankTransfer,
			BankAccountID:   "bank-1",
			PaymentProofURL: "payment_proof_x.png",
		})
		assert.NoError(t, err)
	})

	t.Run("second coupon requires removing the first", func(t *testing.T) {
		doctor := testDoctor()
		doctor.Coupons = append(doctor.Coupons, models.Coupon{
			Code: "OTRO", DiscountType: constvars.DiscountTypeFixed, Value: 5, Scope: constvars.CouponScopeGeneral,
		})
		uc, _, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		driveToConfirmation(t, uc, session, doctor)

		_, err := uc.ApplyCoupon(ctx, session, &requests.ApplyCoupon{Code: "VERANO20"})
		assert.NoError(t, err)
		_, err = uc.ApplyCoupon(ctx, session, &requests.ApplyCoupon{Code: "OTRO"})
		assert.Error(t, err)

		_, err = uc.RemoveCoupon(ctx, session)
		assert.NoError(t, err)
		view, err := uc.ApplyCoupon(ctx, session, &requests.ApplyCoupon{Code: "OTRO"})
		assert.NoError(t, err)
		assert.Equal(t, "OTRO", view.CouponCode)
	})

	t.Run("booking again after commit starts clean", func(t *testing.T) {
		doctor := testDoctor()
		uc, _, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		driveToConfirmation(t, uc, session, doctor)
		_, err := uc.ApplyCoupon(ctx, session, &requests.ApplyCoupon{Code: "VERANO20"})
		assert.NoError(t, err)
		_, err = uc.Confirm(ctx, session)
		assert.NoError(t, err)

		view, err := uc.StartBooking(ctx, session, &requests.StartBooking{DoctorID: doctor.ID})
		assert.NoError(t, err)
		assert.Equal(t, constvars.BookingStateSelectDateTime, view.State)
		assert.Empty(t, view.Services, "previous services must not leak")
		assert.Empty(t, view.CouponCode, "previous coupon must not leak")
		assert.Zero(t, view.Discount)
	})

	t.Run("back transitions preserve selections", func(t *testing.T) {
		doctor := testDoctor()
		uc, _, _, _, _ := newTestUsecase(doctor)
		session := patientSession()

		driveToConfirmation(t, uc, session, doctor)

		view, err := uc.GoBack(ctx, session, &requests.BookingBack{To: constvars.BookingStateSelectServices})
		assert.NoError(t, err)
		assert.Equal(t, constvars.BookingStateSelectServices, view.State)
		assert.Len(t, view.Services, 2)
		assert.Equal(t, testDate, view.Date)

		view, err = uc.GoBack(ctx, session, &requests.BookingBack{To: constvars.BookingStateSelectDateTime})
		assert.NoError(t, err)
		assert.Equal(t, constvars.BookingStateSelectDateTime, view.State)
		assert.Len(t, view.Services, 2, "services survive going back to date selection")
	})

	t.Run("non-patient cannot start a booking", func(t *testing.T) {
		doctor := testDoctor()
		uc, _, _, _, _ := newTestUsecase(doctor)
		session := patientSession()
		session.Role = constvars.RoleDoctor

		_, err := uc.StartBooking(ctx, session, &requests.StartBooking{DoctorID: doctor.ID})
		assert.Error(t, err)
	})
}
