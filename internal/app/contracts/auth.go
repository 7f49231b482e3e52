package contracts

import (
	"context"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.RegisterAccount, error)
	RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (*responses.RegisterAccount, error)
	RegisterSeller(ctx context.Context, request *requests.RegisterSeller) (*responses.RegisterAccount, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, session *models.Session) error
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) (string, error)
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	FindAccountByID(ctx context.Context, accountID string) (*models.Account, error)
}
