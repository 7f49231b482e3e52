package sellers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/dto/responses"
	"suma-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type sellerUsecase struct {
	SellerRepository        contracts.SellerRepository
	SellerPaymentRepository contracts.SellerPaymentRepository
	MarketingRepository     contracts.MarketingRepository
	CommissionUsecase       contracts.CommissionUsecase
	Log                     *zap.Logger
}

var (
	sellerUsecaseInstance contracts.SellerUsecase
	onceSellerUsecase     sync.Once
)

func NewSellerUsecase(
	sellerRepository contracts.SellerRepository,
	sellerPaymentRepository contracts.SellerPaymentRepository,
	marketingRepository contracts.MarketingRepository,
	commissionUsecase contracts.CommissionUsecase,
	logger *zap.Logger,
) contracts.SellerUsecase {
	onceSellerUsecase.Do(func() {
		sellerUsecaseInstance = &sellerUsecase{
			SellerRepository:        sellerRepository,
			SellerPaymentRepository: sellerPaymentRepository,
			MarketingRepository:     marketingRepository,
			CommissionUsecase:       commissionUsecase,
			Log:                     logger,
		}
	})
	return sellerUsecaseInstance
}

func (uc *sellerUsecase) GetCommissionSummary(ctx context.Context, session *models.Session, params *requests.QueryParams, now time.Time) (*responses.CommissionSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("sellerUsecase.GetCommissionSummary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSellerIDKey, session.ProfileID),
	)

	if !session.IsSeller() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s has no commission summary", session.Role))
	}

	seller, err := uc.SellerRepository.FindSellerByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, exceptions.ErrSellerNotFound(fmt.Errorf("seller %s not found", session.ProfileID))
	}

	pending, lines, err := uc.CommissionUsecase.ComputePending(ctx, session.ProfileID, now)
	if err != nil {
		return nil, err
	}

	payments, err := uc.SellerPaymentRepository.FindSellerPaymentsBySeller(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if params != nil && params.Range != "" {
		payments = FilterPaymentsByRange(payments, params.Range, now)
	}

	breakdown := make([]responses.CommissionLine, 0, len(lines))
	for _, line := range lines {
		breakdown = append(breakdown, responses.CommissionLine{
			DoctorID:   line.DoctorID,
			DoctorName: line.DoctorName,
			City:       line.City,
			MonthlyFee: line.Fee,
			Rate:       seller.CommissionRate,
			Amount:     line.Commission,
		})
	}

	history := make([]responses.PaymentRecord, 0, len(payments))
	for _, payment := range payments {
		history = append(history, responses.PaymentRecord{
			ID:     payment.ID,
			Period: payment.Period,
			Amount: payment.Total,
			PaidAt: payment.PaymentDate.Format(time.RFC3339),
		})
	}

	return &responses.CommissionSummary{
		Period:    CurrentPeriod(now),
		Pending:   pending,
		Breakdown: breakdown,
		History:   history,
	}, nil
}

func (uc *sellerUsecase) ListMarketingMaterials(ctx context.Context, session *models.Session) ([]models.MarketingMaterial, error) {
	if !session.IsSeller() && !session.IsAdmin() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot browse marketing materials", session.Role))
	}
	return uc.MarketingRepository.FindAllMaterials(ctx)
}

func (uc *sellerUsecase) MarkPayoutsRead(ctx context.Context, session *models.Session) error {
	if !session.IsSeller() {
		return exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s has no payout inbox", session.Role))
	}
	return uc.SellerPaymentRepository.MarkSellerPaymentsRead(ctx, session.ProfileID)
}
