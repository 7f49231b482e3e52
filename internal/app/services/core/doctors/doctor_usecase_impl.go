package doctors

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
	"suma-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository contracts.DoctorRepository
	Log              *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(doctorRepository contracts.DoctorRepository, logger *zap.Logger) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = &doctorUsecase{
			DoctorRepository: doctorRepository,
			Log:              logger,
		}
	})
	return doctorUsecaseInstance
}

var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func (uc *doctorUsecase) ListDoctors(ctx context.Context, params *requests.QueryParams) ([]models.Doctor, int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	doctors, total, err := uc.DoctorRepository.FindDoctors(ctx, params.Page, params.PageSize)
	if err != nil {
		uc.Log.Error("doctorUsecase.ListDoctors error fetching doctors",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return doctors, total, nil
}

func (uc *doctorUsecase) GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", doctorID))
	}
	return doctor, nil
}

func (uc *doctorUsecase) UpdateSchedule(ctx context.Context, session *models.Session, request *requests.UpdateSchedule) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.ProfileID),
	)

	doctor, err := uc.ownDoctor(ctx, session)
	if err != nil {
		return nil, err
	}

	schedule := models.WeekSchedule{}
	for day, daySchedule := range request.Schedule {
		if !validWeekdays[day] {
			return nil, exceptions.WrapWithoutError(constvars.StatusBadRequest, fmt.Sprintf("unknown weekday %q", day), "schedule keys must be lowercase english weekdays")
		}
		slots := make([]models.TimeRange, 0, len(daySchedule.Slots))
		for _, slot := range daySchedule.Slots {
			start, okStart := utils.MinuteOfDay(slot.Start)
			end, okEnd := utils.MinuteOfDay(slot.End)
			if !okStart || !okEnd || start >= end {
				return nil, exceptions.WrapWithoutError(constvars.StatusBadRequest, fmt.Sprintf("slot %s-%s must start before it ends", slot.Start, slot.End), "schedule interval start must precede end")
			}
			slots = append(slots, models.TimeRange{Start: slot.Start, End: slot.End})
		}
		schedule[day] = models.DaySchedule{Active: daySchedule.Active, Slots: slots}
	}

	doctor.Schedule = schedule
	doctor.SlotDuration = request.SlotDuration
	doctor.UpdatedAt = time.Now()

	if err := uc.DoctorRepository.UpdateDoctor(ctx, doctor); err != nil {
		uc.Log.Error("doctorUsecase.UpdateSchedule error updating doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return doctor, nil
}

func (uc *doctorUsecase) UpdateServices(ctx context.Context, session *models.Session, request *requests.UpdateServices) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateServices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.ProfileID),
	)

	doctor, err := uc.ownDoctor(ctx, session)
	if err != nil {
		return nil, err
	}

	services := make([]models.Service, 0, len(request.Services))
	for _, item := range request.Services {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		services = append(services, models.Service{ID: id, Name: item.Name, Price: item.Price})
	}

	doctor.Services = services
	doctor.UpdatedAt = time.Now()
	if err := uc.DoctorRepository.UpdateDoctor(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (uc *doctorUsecase) UpdateCoupons(ctx context.Context, session *models.Session, request *requests.UpdateCoupons) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateCoupons called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.ProfileID),
	)

	doctor, err := uc.ownDoctor(ctx, session)
	if err != nil {
		return nil, err
	}

	coupons := make([]models.Coupon, 0, len(request.Coupons))
	for _, item := range request.Coupons {
		if item.Scope != constvars.CouponScopeGeneral && item.Scope != doctor.ID {
			return nil, exceptions.WrapWithoutError(constvars.StatusBadRequest, fmt.Sprintf("coupon %s scope must be %q or your doctor id", item.Code, constvars.CouponScopeGeneral), "coupon scope outside doctor reach")
		}
		if item.DiscountType == constvars.DiscountTypePercentage && item.Value > 100 {
			return nil, exceptions.WrapWithoutError(constvars.StatusBadRequest, fmt.Sprintf("coupon %s percentage cannot exceed 100", item.Code), "percentage coupon above 100")
		}
		coupons = append(coupons, models.Coupon{
			Code:         item.Code,
			DiscountType: item.DiscountType,
			Value:        item.Value,
			Scope:        item.Scope,
		})
	}

	doctor.Coupons = coupons
	doctor.UpdatedAt = time.Now()
	if err := uc.DoctorRepository.UpdateDoctor(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (uc *doctorUsecase) UpdateBankDetails(ctx context.Context, session *models.Session, request *requests.UpdateBankDetails) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateBankDetails called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.ProfileID),
	)

	doctor, err := uc.ownDoctor(ctx, session)
	if err != nil {
		return nil, err
	}

	bankDetails := make([]models.BankAccount, 0, len(request.BankDetails))
	for _, item := range request.BankDetails {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		bankDetails = append(bankDetails, models.BankAccount{
			ID:            id,
			BankName:      item.BankName,
			AccountNumber: item.AccountNumber,
			HolderName:    item.HolderName,
		})
	}

	doctor.BankDetails = bankDetails
	doctor.UpdatedAt = time.Now()
	if err := uc.DoctorRepository.UpdateDoctor(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (uc *doctorUsecase) MarkBookingsRead(ctx context.Context, session *models.Session) error {
	doctor, err := uc.ownDoctor(ctx, session)
	if err != nil {
		return err
	}
	if !doctor.HasUnreadBookings {
		return nil
	}
	doctor.HasUnreadBookings = false
	doctor.UpdatedAt = time.Now()
	return uc.DoctorRepository.UpdateDoctor(ctx, doctor)
}

func (uc *doctorUsecase) ownDoctor(ctx context.Context, session *models.Session) (*models.Doctor, error) {
	if !session.IsDoctor() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot edit a doctor profile", session.Role))
	}
	doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", session.ProfileID))
	}
	return doctor, nil
}
