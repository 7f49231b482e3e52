package settings

import (
	"context"
	"errors"
	"testing"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSettingsRepo struct {
	stored *models.Settings
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context) (*models.Settings, error) {
	if f.stored == nil {
		return &models.Settings{ID: settingsDocID, CityFees: []models.CityFee{}}, nil
	}
	return f.stored, nil
}

func (f *fakeSettingsRepo) UpsertSettings(_ context.Context, settings *models.Settings) error {
	f.stored = settings
	return nil
}

func TestUpdateCityFees(t *testing.T) {
	ctx := context.Background()
	adminSession := &models.Session{SessionID: "s-a", Role: constvars.RoleAdmin, ProfileID: "adm-1"}
	sellerSession := &models.Session{SessionID: "s-s", Role: constvars.RoleSeller, ProfileID: "sel-1"}

	t.Run("replaces the whole fee list", func(t *testing.T) {
		repo := &fakeSettingsRepo{stored: &models.Settings{
			ID:       settingsDocID,
			CityFees: []models.CityFee{{City: "Caracas", MonthlyFee: 100}},
		}}
		uc := &settingsUsecase{SettingsRepository: repo, Log: zap.NewNop()}

		out, err := uc.UpdateCityFees(ctx, adminSession, &requests.UpdateCityFees{
			CityFees: []requests.CityFeeItem{
				{City: "Valencia", MonthlyFee: 80},
				{City: "Maracaibo", MonthlyFee: 70},
			},
		})

		assert.NoError(t, err)
		assert.Len(t, out.CityFees, 2)
		assert.Equal(t, "Valencia", repo.stored.CityFees[0].City)

		_, found := out.FeeForCity("Caracas")
		assert.False(t, found)
	})

	t.Run("duplicate city is rejected", func(t *testing.T) {
		repo := &fakeSettingsRepo{}
		uc := &settingsUsecase{SettingsRepository: repo, Log: zap.NewNop()}

		_, err := uc.UpdateCityFees(ctx, adminSession, &requests.UpdateCityFees{
			CityFees: []requests.CityFeeItem{
				{City: "Caracas", MonthlyFee: 100},
				{City: "Caracas", MonthlyFee: 90},
			},
		})

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Nil(t, repo.stored)
	})

	t.Run("only admin can edit", func(t *testing.T) {
		uc := &settingsUsecase{SettingsRepository: &fakeSettingsRepo{}, Log: zap.NewNop()}

		_, err := uc.UpdateCityFees(ctx, sellerSession, &requests.UpdateCityFees{
			CityFees: []requests.CityFeeItem{{City: "Caracas", MonthlyFee: 100}},
		})

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("missing document reads as empty config", func(t *testing.T) {
		uc := &settingsUsecase{SettingsRepository: &fakeSettingsRepo{}, Log: zap.NewNop()}

		out, err := uc.GetSettings(ctx)

		assert.NoError(t, err)
		assert.Empty(t, out.CityFees)

		_, found := out.FeeForCity("Caracas")
		assert.False(t, found)
	})
}
