package marketing

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type marketingUsecase struct {
	MarketingRepository contracts.MarketingRepository
	Storage             contracts.Storage
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

var (
	marketingUsecaseInstance contracts.MarketingUsecase
	onceMarketingUsecase     sync.Once
)

func NewMarketingUsecase(
	marketingRepository contracts.MarketingRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.MarketingUsecase {
	onceMarketingUsecase.Do(func() {
		marketingUsecaseInstance = &marketingUsecase{
			MarketingRepository: marketingRepository,
			Storage:             storage,
			InternalConfig:      internalConfig,
			Log:                 logger,
		}
	})
	return marketingUsecaseInstance
}

func (uc *marketingUsecase) UploadMaterial(ctx context.Context, session *models.Session, title string, file multipart.File, header *multipart.FileHeader) (*models.MarketingMaterial, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("marketingUsecase.UploadMaterial called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !session.IsAdmin() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot upload marketing materials", session.Role))
	}
	if file == nil || header == nil {
		return nil, exceptions.ErrInvalidProofFile(fmt.Errorf("no file in request"))
	}
	if strings.TrimSpace(title) == "" {
		title = header.Filename
	}

	assetURL, err := uc.Storage.UploadFile(ctx, file, header, constvars.MinioMarketingPrefix)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	material := &models.MarketingMaterial{
		Title:      title,
		AssetURL:   assetURL,
		UploadedBy: session.ProfileID,
		TimeModel:  models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	if _, err := uc.MarketingRepository.CreateMaterial(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

func (uc *marketingUsecase) ListMaterials(ctx context.Context) ([]models.MarketingMaterial, error) {
	materials, err := uc.MarketingRepository.FindAllMaterials(ctx)
	if err != nil {
		return nil, err
	}

	// Stored asset references are object names; hand out short-lived links.
	expiry := time.Duration(uc.InternalConfig.App.PresignedUrlExpiryTimeInHours) * time.Hour
	for i := range materials {
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, materials[i].AssetURL, expiry)
		if err != nil {
			uc.Log.Warn("marketingUsecase.ListMaterials could not presign asset",
				zap.String("material_id", materials[i].ID),
				zap.Error(err),
			)
			continue
		}
		materials[i].AssetURL = url
	}
	return materials, nil
}

func (uc *marketingUsecase) DeleteMaterial(ctx context.Context, session *models.Session, materialID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("marketingUsecase.DeleteMaterial called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !session.IsAdmin() {
		return exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot delete marketing materials", session.Role))
	}

	material, err := uc.MarketingRepository.FindMaterialByID(ctx, materialID)
	if err != nil {
		return err
	}
	if material == nil {
		return exceptions.ErrMarketingAssetNotFound(fmt.Errorf("material %s not found", materialID))
	}

	if err := uc.Storage.DeleteObject(ctx, material.AssetURL); err != nil {
		uc.Log.Warn("marketingUsecase.DeleteMaterial could not remove stored object",
			zap.String("material_id", materialID),
			zap.Error(err),
		)
	}
	return uc.MarketingRepository.DeleteMaterial(ctx, materialID)
}
