package contracts

import (
	"context"
	"mime/multipart"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
)

type FinanceUsecase interface {
	SubmitDoctorPayment(ctx context.Context, session *models.Session, request *requests.SubmitDoctorPayment) (*models.DoctorPayment, error)
	UploadPaymentProof(ctx context.Context, session *models.Session, paymentID string, file multipart.File, header *multipart.FileHeader) (*models.DoctorPayment, error)
	ApproveDoctorPayment(ctx context.Context, session *models.Session, paymentID string) (*models.DoctorPayment, error)
	ListDoctorPayments(ctx context.Context, session *models.Session, doctorID string) ([]models.DoctorPayment, error)
}

type DoctorPaymentRepository interface {
	CreateDoctorPayment(ctx context.Context, payment *models.DoctorPayment) (string, error)
	FindDoctorPaymentByID(ctx context.Context, paymentID string) (*models.DoctorPayment, error)
	FindDoctorPaymentsByDoctor(ctx context.Context, doctorID string) ([]models.DoctorPayment, error)
	UpdateDoctorPayment(ctx context.Context, payment *models.DoctorPayment) error
}
