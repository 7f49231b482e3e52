package finance

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type financeUsecase struct {
	DoctorPaymentRepository contracts.DoctorPaymentRepository
	DoctorRepository        contracts.DoctorRepository
	SettingsRepository      contracts.SettingsRepository
	Storage                 contracts.Storage
	MailerQueue             contracts.MailerQueue
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	financeUsecaseInstance contracts.FinanceUsecase
	onceFinanceUsecase     sync.Once
)

// Accepted proof formats. The proof is stored opaque; only the extension is
// checked.
var allowedProofExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

func NewFinanceUsecase(
	doctorPaymentRepository contracts.DoctorPaymentRepository,
	doctorRepository contracts.DoctorRepository,
	settingsRepository contracts.SettingsRepository,
	storage contracts.Storage,
	mailerQueue contracts.MailerQueue,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.FinanceUsecase {
	onceFinanceUsecase.Do(func() {
		financeUsecaseInstance = &financeUsecase{
			DoctorPaymentRepository: doctorPaymentRepository,
			DoctorRepository:        doctorRepository,
			SettingsRepository:      settingsRepository,
			Storage:                 storage,
			MailerQueue:             mailerQueue,
			InternalConfig:          internalConfig,
			Log:                     logger,
		}
	})
	return financeUsecaseInstance
}

func (uc *financeUsecase) SubmitDoctorPayment(ctx context.Context, session *models.Session, request *requests.SubmitDoctorPayment) (*models.DoctorPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("financeUsecase.SubmitDoctorPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.ProfileID),
	)

	if !session.IsDoctor() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot submit subscription payments", session.Role))
	}
	doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", session.ProfileID))
	}

	settings, err := uc.SettingsRepository.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := settings.FeeForCity(doctor.City); !ok {
		return nil, exceptions.ErrCityFeeNotConfigured(fmt.Errorf("no fee configured for city %q", doctor.City))
	}

	now := time.Now()
	payment := &models.DoctorPayment{
		DoctorID:    doctor.ID,
		Period:      request.Period,
		Amount:      request.Amount,
		ProofURL:    request.ProofURL,
		Status:      constvars.PaymentStatusPending,
		PaymentDate: now,
		Unread:      true,
		TimeModel:   models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	if _, err := uc.DoctorPaymentRepository.CreateDoctorPayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (uc *financeUsecase) UploadPaymentProof(ctx context.Context, session *models.Session, paymentID string, file multipart.File, header *multipart.FileHeader) (*models.DoctorPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("financeUsecase.UploadPaymentProof called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, session.ProfileID),
	)

	if file == nil || header == nil {
		return nil, exceptions.ErrInvalidProofFile(fmt.Errorf("no file in request"))
	}
	maxBytes := uc.InternalConfig.App.PaymentProofMaxUploadSizeInMB * 1024 * 1024
	if header.Size > maxBytes {
		return nil, exceptions.ErrFileTooLarge(fmt.Errorf("file is %d bytes, limit %d", header.Size, maxBytes))
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedProofExtensions[ext] {
		return nil, exceptions.ErrInvalidProofFile(fmt.Errorf("extension %q not accepted", ext))
	}

	payment, err := uc.ownedPayment(ctx, session, paymentID)
	if err != nil {
		return nil, err
	}

	proofURL, err := uc.Storage.UploadFile(ctx, file, header, constvars.MinioPaymentProofPrefix)
	if err != nil {
		return nil, err
	}

	payment.ProofURL = proofURL
	payment.UpdatedAt = time.Now()
	if err := uc.DoctorPaymentRepository.UpdateDoctorPayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ApproveDoctorPayment is one-directional: once Pagado a repeat approval is a
// no-op, never a revert.
func (uc *financeUsecase) ApproveDoctorPayment(ctx context.Context, session *models.Session, paymentID string) (*models.DoctorPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("financeUsecase.ApproveDoctorPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !session.IsAdmin() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot approve payments", session.Role))
	}

	payment, err := uc.DoctorPaymentRepository.FindDoctorPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", paymentID))
	}
	if payment.Status == constvars.PaymentStatusPaid {
		return payment, nil
	}

	now := time.Now()
	payment.Status = constvars.PaymentStatusPaid
	payment.Unread = true
	payment.UpdatedAt = now
	if err := uc.DoctorPaymentRepository.UpdateDoctorPayment(ctx, payment); err != nil {
		return nil, err
	}

	doctor, err := uc.DoctorRepository.FindDoctorByID(ctx, payment.DoctorID)
	if err == nil && doctor != nil {
		next := now.AddDate(0, 1, 0)
		doctor.SubscriptionStatus = constvars.SubscriptionStatusActive
		doctor.LastPaymentDate = &now
		doctor.NextPaymentDate = &next
		if updErr := uc.DoctorRepository.UpdateDoctor(ctx, doctor); updErr != nil {
			return nil, updErr
		}
		if mailErr := uc.MailerQueue.Enqueue(ctx, contracts.MailJob{
			To:      doctor.Email,
			Subject: "Pago de suscripción aprobado",
			Body:    fmt.Sprintf("Tu pago del período %s fue aprobado. Suscripción activa hasta %s.", payment.Period, next.Format(constvars.DateLayout)),
		}); mailErr != nil {
			uc.Log.Warn("financeUsecase.ApproveDoctorPayment could not enqueue mail",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(mailErr),
			)
		}
	}

	return payment, nil
}

func (uc *financeUsecase) ListDoctorPayments(ctx context.Context, session *models.Session, doctorID string) ([]models.DoctorPayment, error) {
	switch {
	case session.IsAdmin():
		// admins may inspect any doctor's payment history
	case session.IsDoctor() && session.ProfileID == doctorID:
	default:
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot list payments for doctor %s", session.Role, doctorID))
	}
	return uc.DoctorPaymentRepository.FindDoctorPaymentsByDoctor(ctx, doctorID)
}

func (uc *financeUsecase) ownedPayment(ctx context.Context, session *models.Session, paymentID string) (*models.DoctorPayment, error) {
	payment, err := uc.DoctorPaymentRepository.FindDoctorPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s not found", paymentID))
	}
	if !session.IsDoctor() || payment.DoctorID != session.ProfileID {
		return nil, exceptions.ErrPaymentNotFound(fmt.Errorf("payment %s does not belong to %s", paymentID, session.ProfileID))
	}
	return payment, nil
}
