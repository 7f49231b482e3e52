package contracts

import (
	"context"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context, params *requests.QueryParams) ([]models.Doctor, int64, error)
	GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpdateSchedule(ctx context.Context, session *models.Session, request *requests.UpdateSchedule) (*models.Doctor, error)
	UpdateServices(ctx context.Context, session *models.Session, request *requests.UpdateServices) (*models.Doctor, error)
	UpdateCoupons(ctx context.Context, session *models.Session, request *requests.UpdateCoupons) (*models.Doctor, error)
	UpdateBankDetails(ctx context.Context, session *models.Session, request *requests.UpdateBankDetails) (*models.Doctor, error)
	MarkBookingsRead(ctx context.Context, session *models.Session) error
}

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error)
	FindDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindDoctors(ctx context.Context, page, pageSize int) ([]models.Doctor, int64, error)
	FindDoctorsBySeller(ctx context.Context, sellerID string) ([]models.Doctor, error)
	UpdateDoctor(ctx context.Context, doctor *models.Doctor) error
}
