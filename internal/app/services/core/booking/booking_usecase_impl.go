package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/dto/responses"
	"suma-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// bookingDraft is the redis-cached workflow state. Nothing is persisted to
// mongo until Confirm succeeds.
type bookingDraft struct {
	PatientID       string   `json:"patientId"`
	DoctorID        string   `json:"doctorId"`
	State           string   `json:"state"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	ServiceIDs      []string `json:"serviceIds"`
	CouponCode      string   `json:"couponCode"`
	PaymentMethod   string   `json:"paymentMethod"`
	BankAccountID   string   `json:"bankAccountId"`
	PaymentProofURL string   `json:"paymentProofUrl"`
}

type bookingUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	RedisRepository       contracts.RedisRepository
	LockService           contracts.LockerService
	MailerQueue           contracts.MailerQueue
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	redisRepository contracts.RedisRepository,
	lockService contracts.LockerService,
	mailerQueue contracts.MailerQueue,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			DoctorRepository:      doctorRepository,
			AppointmentRepository: appointmentRepository,
			RedisRepository:       redisRepository,
			LockService:           lockService,
			MailerQueue:           mailerQueue,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return bookingUsecaseInstance
}

func (uc *bookingUsecase) GetAvailability(ctx context.Context, doctorID, date string) (*responses.Availability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	booked, err := uc.bookedTimes(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	slots, err := ResolveAvailableSlots(doctor.Schedule, date, doctor.SlotDuration, booked)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}

	return &responses.Availability{Date: date, Slots: slots}, nil
}

func (uc *bookingUsecase) StartBooking(ctx context.Context, session *models.Session, request *requests.StartBooking) (*responses.BookingDraft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.StartBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, session.ProfileID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	if !session.IsPatient() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot book appointments", session.Role))
	}

	doctor, err := uc.findDoctor(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}

	draft := &bookingDraft{
		PatientID:  session.ProfileID,
		DoctorID:   doctor.ID,
		State:      constvars.BookingStateSelectDateTime,
		ServiceIDs: []string{},
	}
	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

func (uc *bookingUsecase) GetDraft(ctx context.Context, session *models.Session) (*responses.BookingDraft, error) {
	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

func (uc *bookingUsecase) SelectDateTime(ctx context.Context, session *models.Session, request *requests.SelectDateTime) (*responses.BookingDraft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.SelectDateTime called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, session.ProfileID),
	)

	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	if draft.State != constvars.BookingStateSelectDateTime {
		return nil, exceptions.ErrBookingGuardViolated(
			fmt.Errorf("state %s cannot select date/time", draft.State),
			constvars.ErrClientBookingStepNotAllowed,
		)
	}

	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}

	booked, err := uc.bookedTimes(ctx, draft.DoctorID, request.Date)
	if err != nil {
		return nil, err
	}
	slots, err := ResolveAvailableSlots(doctor.Schedule, request.Date, doctor.SlotDuration, booked)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if !containsSlot(slots, request.Time) {
		return nil, exceptions.ErrSlotNotAvailable(fmt.Errorf("time %s not offered on %s", request.Time, request.Date))
	}

	draft.Date = request.Date
	draft.Time = request.Time
	draft.State = constvars.BookingStateSelectServices
	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

func (uc *bookingUsecase) ToggleService(ctx context.Context, session *models.Session, request *requests.ToggleService) (*responses.BookingDraft, error) {
	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	if draft.State != constvars.BookingStateSelectServices {
		return nil, exceptions.ErrBookingGuardViolated(
			fmt.Errorf("state %s cannot toggle services", draft.State),
			constvars.ErrClientBookingStepNotAllowed,
		)
	}

	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}
	if findService(doctor.Services, request.ServiceID) == nil {
		return nil, exceptions.WrapWithoutError(constvars.StatusNotFound, "service not offered by this doctor", "toggled service id missing from doctor catalog")
	}

	toggled := make([]string, 0, len(draft.ServiceIDs)+1)
	removed := false
	for _, id := range draft.ServiceIDs {
		if id == request.ServiceID {
			removed = true
			continue
		}
		toggled = append(toggled, id)
	}
	if !removed {
		toggled = append(toggled, request.ServiceID)
	}
	draft.ServiceIDs = toggled

	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

func (uc *bookingUsecase) ApplyCoupon(ctx context.Context, session *models.Session, request *requests.ApplyCoupon) (*responses.BookingDraft, error) {
	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	if draft.State == constvars.BookingStateSelectDateTime {
		return nil, exceptions.ErrBookingGuardViolated(
			fmt.Errorf("coupons apply after services are chosen"),
			constvars.ErrClientBookingStepNotAllowed,
		)
	}
	if draft.CouponCode != "" {
		return nil, exceptions.ErrCouponAlreadyApplied(fmt.Errorf("coupon %s is active", draft.CouponCode))
	}

	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}

	subtotal := subtotalFor(doctor.Services, draft.ServiceIDs)
	_, coupon, ok := ResolveCoupon(doctor.Coupons, request.Code, doctor.ID, subtotal)
	if !ok {
		return nil, exceptions.ErrCouponNotFound(fmt.Errorf("code %s not resolvable for doctor %s", request.Code, doctor.ID))
	}

	draft.CouponCode = coupon.Code
	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

func (uc *bookingUsecase) RemoveCoupon(ctx context.Context, session *models.Session) (*responses.BookingDraft, error) {
	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	draft.CouponCode = ""
	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

func (uc *bookingUsecase) SelectPayment(ctx context.Context, session *models.Session, request *requests.SelectPayment) (*responses.BookingDraft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.SelectPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, session.ProfileID),
	)

	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	if draft.State != constvars.BookingStateSelectServices && draft.State != constvars.BookingStateSelectPayment {
		return nil, exceptions.ErrBookingGuardViolated(
			fmt.Errorf("state %s cannot select payment", draft.State),
			constvars.ErrClientBookingStepNotAllowed,
		)
	}
	if len(draft.ServiceIDs) == 0 {
		return nil, exceptions.ErrBookingGuardViolated(
			fmt.Errorf("no services selected"),
			constvars.ErrClientBookingNeedsServices,
		)
	}

	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}

	if request.Method == constvars.PaymentMethodBankTransfer {
		if request.BankAccountID == "" || request.PaymentProofURL == "" {
			return nil, exceptions.ErrBookingGuardViolated(
				fmt.Errorf("bank transfer missing account or proof"),
				constvars.ErrClientBookingNeedsBankProof,
			)
		}
		if findBankAccount(doctor.BankDetails, request.BankAccountID) == nil {
			return nil, exceptions.ErrBookingGuardViolated(
				fmt.Errorf("bank account %s not offered by doctor", request.BankAccountID),
				constvars.ErrClientBookingNeedsBankProof,
			)
		}
	}

	draft.PaymentMethod = request.Method
	draft.BankAccountID = request.BankAccountID
	draft.PaymentProofURL = request.PaymentProofURL
	draft.State = constvars.BookingStateConfirmation
	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

func (uc *bookingUsecase) GoBack(ctx context.Context, session *models.Session, request *requests.BookingBack) (*responses.BookingDraft, error) {
	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}

	// Back transitions keep every prior selection; only the step pointer moves.
	switch request.To {
	case constvars.BookingStateSelectDateTime:
		draft.State = constvars.BookingStateSelectDateTime
	case constvars.BookingStateSelectServices:
		if draft.Date == "" || draft.Time == "" {
			return nil, exceptions.ErrBookingGuardViolated(
				fmt.Errorf("no date/time selected yet"),
				constvars.ErrClientBookingNeedsDateTime,
			)
		}
		draft.State = constvars.BookingStateSelectServices
	default:
		return nil, exceptions.ErrBookingGuardViolated(
			fmt.Errorf("cannot go back to %s", request.To),
			constvars.ErrClientBookingStepNotAllowed,
		)
	}

	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}
	return uc.draftView(ctx, draft, doctor)
}

// Confirm persists the appointment exactly once. The slot is re-resolved
// server side, then guarded by a redis lock plus an in-lock uniqueness
// re-check so two confirmations of the same slot cannot both commit.
func (uc *bookingUsecase) Confirm(ctx context.Context, session *models.Session) (*responses.ConfirmBooking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Confirm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, session.ProfileID),
	)

	draft, err := uc.loadDraft(ctx, session)
	if err != nil {
		return nil, err
	}
	if draft.State != constvars.BookingStateConfirmation {
		return nil, exceptions.ErrBookingGuardViolated(
			fmt.Errorf("state %s cannot confirm", draft.State),
			constvars.ErrClientBookingNeedsPayment,
		)
	}

	doctor, err := uc.findDoctor(ctx, draft.DoctorID)
	if err != nil {
		return nil, err
	}

	booked, err := uc.bookedTimes(ctx, draft.DoctorID, draft.Date)
	if err != nil {
		return nil, err
	}
	slots, err := ResolveAvailableSlots(doctor.Schedule, draft.Date, doctor.SlotDuration, booked)
	if err != nil {
		return nil, exceptions.ErrCannotParseDate(err)
	}
	if !containsSlot(slots, draft.Time) {
		return nil, exceptions.ErrSlotNotAvailable(fmt.Errorf("slot %s %s gone before confirm", draft.Date, draft.Time))
	}

	lockKey := fmt.Sprintf(constvars.RedisSlotLockKeyFormat, draft.DoctorID, draft.Date, draft.Time)
	lockTTL := time.Duration(uc.InternalConfig.App.SlotLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotBeingBooked(fmt.Errorf("lock %s held by another booking", lockKey))
	}
	defer uc.LockService.Unlock(ctx, lockKey, lockValue)

	existing, err := uc.AppointmentRepository.FindAppointmentBySlot(ctx, draft.DoctorID, draft.Date, draft.Time)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrSlotNotAvailable(fmt.Errorf("slot %s %s already persisted", draft.Date, draft.Time))
	}

	services := servicesFor(doctor.Services, draft.ServiceIDs)
	subtotal := 0.0
	for _, service := range services {
		subtotal += service.Price
	}
	discount := 0.0
	couponCode := ""
	if draft.CouponCode != "" {
		var coupon *models.Coupon
		var ok bool
		discount, coupon, ok = ResolveCoupon(doctor.Coupons, draft.CouponCode, doctor.ID, subtotal)
		if ok {
			couponCode = coupon.Code
		}
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	now := time.Now()
	appointment := &models.Appointment{
		PatientID:                 draft.PatientID,
		DoctorID:                  draft.DoctorID,
		Date:                      draft.Date,
		Time:                      draft.Time,
		Services:                  services,
		ConsultationFee:           doctor.ConsultationFee,
		CouponCode:                couponCode,
		Discount:                  discount,
		TotalPrice:                total,
		PaymentMethod:             draft.PaymentMethod,
		BankAccountID:             draft.BankAccountID,
		PaymentProofURL:           draft.PaymentProofURL,
		PaymentStatus:             constvars.PaymentStatusPending,
		Attendance:                constvars.AttendancePending,
		PatientConfirmationStatus: constvars.ConfirmationPending,
		Messages:                  []models.ChatMessage{},
		UnreadByDoctor:            true,
		TimeModel:                 models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}

	doctor.HasUnreadBookings = true
	doctor.UpdatedAt = now
	if err := uc.DoctorRepository.UpdateDoctor(ctx, doctor); err != nil {
		uc.Log.Error("bookingUsecase.Confirm could not flag doctor unread bookings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
			zap.Error(err),
		)
	}

	if err := uc.MailerQueue.Enqueue(ctx, contracts.MailJob{
		To:      doctor.Email,
		Subject: "Nueva cita reservada",
		Body:    fmt.Sprintf("Tienes una nueva cita el %s a las %s.", draft.Date, draft.Time),
	}); err != nil {
		uc.Log.Warn("bookingUsecase.Confirm could not enqueue booking mail",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.RedisRepository.Delete(ctx, draftKey(draft.PatientID)); err != nil {
		uc.Log.Warn("bookingUsecase.Confirm could not delete draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("bookingUsecase.Confirm committed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	return &responses.ConfirmBooking{
		AppointmentID: appointmentID,
		Total:         total,
		PaymentStatus: appointment.PaymentStatus,
	}, nil
}

func (uc *bookingUsecase) Abandon(ctx context.Context, session *models.Session) error {
	return uc.RedisRepository.Delete(ctx, draftKey(session.ProfileID))
}

func (uc *bookingUsecase) findDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}
	return doctor, nil
}

func (uc *bookingUsecase) bookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	appointments, err := uc.AppointmentRepository.FindAppointmentsByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	times := make([]string, 0, len(appointments))
	for _, appointment := range appointments {
		times = append(times, appointment.Time)
	}
	return times, nil
}

func (uc *bookingUsecase) loadDraft(ctx context.Context, session *models.Session) (*bookingDraft, error) {
	if !session.IsPatient() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s has no booking draft", session.Role))
	}
	raw, err := uc.RedisRepository.Get(ctx, draftKey(session.ProfileID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrBookingDraftNotFound(fmt.Errorf("no draft for patient %s", session.ProfileID))
	}
	var draft bookingDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &draft, nil
}

func (uc *bookingUsecase) saveDraft(ctx context.Context, draft *bookingDraft) error {
	ttl := time.Duration(uc.InternalConfig.App.BookingDraftTTLInMinutes) * time.Minute
	return uc.RedisRepository.Set(ctx, draftKey(draft.PatientID), draft, ttl)
}

func (uc *bookingUsecase) draftView(ctx context.Context, draft *bookingDraft, doctor *models.Doctor) (*responses.BookingDraft, error) {
	services := servicesFor(doctor.Services, draft.ServiceIDs)
	viewServices := make([]responses.BookingService, 0, len(services))
	subtotal := 0.0
	for _, service := range services {
		viewServices = append(viewServices, responses.BookingService{Name: service.Name, Price: service.Price})
		subtotal += service.Price
	}

	discount := 0.0
	if draft.CouponCode != "" {
		discount, _, _ = ResolveCoupon(doctor.Coupons, draft.CouponCode, doctor.ID, subtotal)
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	view := &responses.BookingDraft{
		DoctorID:      doctor.ID,
		DoctorName:    doctor.Name,
		State:         draft.State,
		Date:          draft.Date,
		Time:          draft.Time,
		Services:      viewServices,
		Subtotal:      subtotal,
		CouponCode:    draft.CouponCode,
		Discount:      discount,
		Total:         total,
		PaymentMethod: draft.PaymentMethod,
	}

	if draft.State == constvars.BookingStateSelectDateTime && draft.Date != "" {
		booked, err := uc.bookedTimes(ctx, draft.DoctorID, draft.Date)
		if err == nil {
			if slots, slotErr := ResolveAvailableSlots(doctor.Schedule, draft.Date, doctor.SlotDuration, booked); slotErr == nil {
				view.AvailableSlots = slots
			}
		}
	}
	return view, nil
}

func containsSlot(slots []string, target string) bool {
	for _, slot := range slots {
		if slot == target {
			return true
		}
	}
	return false
}

func findService(services []models.Service, serviceID string) *models.Service {
	for i := range services {
		if services[i].ID == serviceID {
			return &services[i]
		}
	}
	return nil
}

func findBankAccount(accounts []models.BankAccount, accountID string) *models.BankAccount {
	for i := range accounts {
		if accounts[i].ID == accountID {
			return &accounts[i]
		}
	}
	return nil
}

func servicesFor(catalog []models.Service, selectedIDs []string) []models.Service {
	selected := make([]models.Service, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if service := findService(catalog, id); service != nil {
			selected = append(selected, *service)
		}
	}
	return selected
}

func subtotalFor(catalog []models.Service, selectedIDs []string) float64 {
	subtotal := 0.0
	for _, service := range servicesFor(catalog, selectedIDs) {
		subtotal += service.Price
	}
	return subtotal
}

func draftKey(patientID string) string {
	return fmt.Sprintf(constvars.RedisBookingDraftKeyFormat, patientID)
}
