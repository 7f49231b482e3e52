package sellers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type commissionUsecase struct {
	SellerRepository        contracts.SellerRepository
	SellerPaymentRepository contracts.SellerPaymentRepository
	DoctorRepository        contracts.DoctorRepository
	SettingsRepository      contracts.SettingsRepository
	MailerQueue             contracts.MailerQueue
	Log                     *zap.Logger
}

var (
	commissionUsecaseInstance contracts.CommissionUsecase
	onceCommissionUsecase     sync.Once
)

func NewCommissionUsecase(
	sellerRepository contracts.SellerRepository,
	sellerPaymentRepository contracts.SellerPaymentRepository,
	doctorRepository contracts.DoctorRepository,
	settingsRepository contracts.SettingsRepository,
	mailerQueue contracts.MailerQueue,
	logger *zap.Logger,
) contracts.CommissionUsecase {
	onceCommissionUsecase.Do(func() {
		commissionUsecaseInstance = &commissionUsecase{
			SellerRepository:        sellerRepository,
			SellerPaymentRepository: sellerPaymentRepository,
			DoctorRepository:        doctorRepository,
			SettingsRepository:      settingsRepository,
			MailerQueue:             mailerQueue,
			Log:                     logger,
		}
	})
	return commissionUsecaseInstance
}

// ComputePending is a point-in-time snapshot, not a ledger: once the current
// period is paid the pending amount is zero and nothing accrues from unpaid
// earlier months.
func (uc *commissionUsecase) ComputePending(ctx context.Context, sellerID string, now time.Time) (float64, []models.CommissionLine, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("commissionUsecase.ComputePending called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSellerIDKey, sellerID),
	)

	seller, err := uc.SellerRepository.FindSellerByID(ctx, sellerID)
	if err != nil {
		return 0, nil, err
	}
	if seller == nil {
		return 0, nil, exceptions.ErrSellerNotFound(fmt.Errorf("seller %s not found", sellerID))
	}

	payments, err := uc.SellerPaymentRepository.FindSellerPaymentsBySeller(ctx, sellerID)
	if err != nil {
		return 0, nil, err
	}
	if PaidForPeriod(payments, CurrentPeriod(now)) {
		return 0, []models.CommissionLine{}, nil
	}

	doctors, err := uc.DoctorRepository.FindDoctorsBySeller(ctx, sellerID)
	if err != nil {
		return 0, nil, err
	}
	settings, err := uc.SettingsRepository.GetSettings(ctx)
	if err != nil {
		return 0, nil, err
	}

	total, lines := ComputeCommissionLines(doctors, settings, seller.CommissionRate)
	return total, lines, nil
}

// RecordPayout freezes the current pending breakdown into an immutable
// SellerPayment document. Admin only.
func (uc *commissionUsecase) RecordPayout(ctx context.Context, session *models.Session, sellerID string, now time.Time) (*models.SellerPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("commissionUsecase.RecordPayout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSellerIDKey, sellerID),
	)

	if !session.IsAdmin() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot record payouts", session.Role))
	}

	total, lines, err := uc.ComputePending(ctx, sellerID, now)
	if err != nil {
		return nil, err
	}
	if total == 0 && len(lines) == 0 {
		return nil, exceptions.WrapWithoutError(constvars.StatusUnprocessable, "nothing pending for this seller in the current period", "payout requested with zero pending commission")
	}

	payment := &models.SellerPayment{
		SellerID:    sellerID,
		Period:      CurrentPeriod(now),
		PaymentDate: now,
		Total:       total,
		Breakdown:   lines,
		Unread:      true,
		TimeModel:   models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	if _, err := uc.SellerPaymentRepository.CreateSellerPayment(ctx, payment); err != nil {
		return nil, err
	}

	seller, err := uc.SellerRepository.FindSellerByID(ctx, sellerID)
	if err == nil && seller != nil {
		if mailErr := uc.MailerQueue.Enqueue(ctx, contracts.MailJob{
			To:      seller.Email,
			Subject: "Comisión pagada",
			Body:    fmt.Sprintf("Se registró tu pago de comisiones del período %s.", payment.Period),
		}); mailErr != nil {
			uc.Log.Warn("commissionUsecase.RecordPayout could not enqueue payout mail",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(mailErr),
			)
		}
	}

	return payment, nil
}
