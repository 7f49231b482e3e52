package contracts

import (
	"context"
	"mime/multipart"

	"suma-service/internal/app/models"
)

type MarketingUsecase interface {
	UploadMaterial(ctx context.Context, session *models.Session, title string, file multipart.File, header *multipart.FileHeader) (*models.MarketingMaterial, error)
	ListMaterials(ctx context.Context) ([]models.MarketingMaterial, error)
	DeleteMaterial(ctx context.Context, session *models.Session, materialID string) error
}

type MarketingRepository interface {
	CreateMaterial(ctx context.Context, material *models.MarketingMaterial) (string, error)
	FindMaterialByID(ctx context.Context, materialID string) (*models.MarketingMaterial, error)
	FindAllMaterials(ctx context.Context) ([]models.MarketingMaterial, error)
	DeleteMaterial(ctx context.Context, materialID string) error
}
