package settings

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

	"go.uber.org/zap"
)

type settingsUsecase struct {
	SettingsRepository contracts.SettingsRepository
	Log                *zap.Logger
}

var (
	settingsUsecaseInstance contracts.SettingsUsecase
	onceSettingsUsecase     sync.Once
)

func NewSettingsUsecase(
	settingsRepository contracts.SettingsRepository,
	logger *zap.Logger,
) contracts.SettingsUsecase {
	onceSettingsUsecase.Do(func() {
		settingsUsecaseInstance = &settingsUsecase{
			SettingsRepository: settingsRepository,
			Log:                logger,
		}
	})
	return settingsUsecaseInstance
}

func (uc *settingsUsecase) GetSettings(ctx context.Context) (*models.Settings, error) {
	return uc.SettingsRepository.GetSettings(ctx)
}

func (uc *settingsUsecase) UpdateCityFees(ctx context.Context, session *models.Session, request *requests.UpdateCityFees) (*models.Settings, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("settingsUsecase.UpdateCityFees called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !session.IsAdmin() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot edit city fees", session.Role))
	}

	settings, err := uc.SettingsRepository.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	fees := make([]models.CityFee, 0, len(request.CityFees))
	for _, item := range request.CityFees {
		if seen[item.City] {
			return nil, exceptions.WrapWithoutError(constvars.StatusBadRequest, "duplicate city in fee list", fmt.Sprintf("city %q appears more than once", item.City))
		}
		seen[item.City] = true
		fees = append(fees, models.CityFee{City: item.City, MonthlyFee: item.MonthlyFee})
	}

	settings.CityFees = fees
	settings.UpdatedAt = time.Now()
	if err := uc.SettingsRepository.UpsertSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
