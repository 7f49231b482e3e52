package contracts

import (
	"context"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
)

type SettingsUsecase interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateCityFees(ctx context.Context, session *models.Session, request *requests.UpdateCityFees) (*models.Settings, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpsertSettings(ctx context.Context, settings *models.Settings) error
}
