package contracts

import (
	"context"
	"time"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/dto/responses"
)

type SellerUsecase interface {
	GetCommissionSummary(ctx context.Context, session *models.Session, params *requests.QueryParams, now time.Time) (*responses.CommissionSummary, error)
	ListMarketingMaterials(ctx context.Context, session *models.Session) ([]models.MarketingMaterial, error)
	MarkPayoutsRead(ctx context.Context, session *models.Session) error
}

type CommissionUsecase interface {
	ComputePending(ctx context.Context, sellerID string, now time.Time) (float64, []models.CommissionLine, error)
	RecordPayout(ctx context.Context, session *models.Session, sellerID string, now time.Time) (*models.SellerPayment, error)
}

type SellerRepository interface {
	CreateSeller(ctx context.Context, seller *models.Seller) (string, error)
	FindSellerByID(ctx context.Context, sellerID string) (*models.Seller, error)
	FindSellers(ctx context.Context) ([]models.Seller, error)
}

type SellerPaymentRepository interface {
	CreateSellerPayment(ctx context.Context, payment *models.SellerPayment) (string, error)
	FindSellerPaymentsBySeller(ctx context.Context, sellerID string) ([]models.SellerPayment, error)
	MarkSellerPaymentsRead(ctx context.Context, sellerID string) error
}
