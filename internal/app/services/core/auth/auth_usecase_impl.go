package auth

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
	"suma-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type authUsecase struct {
	AccountRepository contracts.AccountRepository
	PatientRepository contracts.PatientRepository
	DoctorRepository  contracts.DoctorRepository
	SellerRepository  contracts.SellerRepository
	SessionService    contracts.SessionService
	MailerQueue       contracts.MailerQueue
	Log               *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	accountRepository contracts.AccountRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	sellerRepository contracts.SellerRepository,
	sessionService contracts.SessionService,
	mailerQueue contracts.MailerQueue,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			AccountRepository: accountRepository,
			PatientRepository: patientRepository,
			DoctorRepository:  doctorRepository,
			SellerRepository:  sellerRepository,
			SessionService:    sessionService,
			MailerQueue:       mailerQueue,
			Log:               logger,
		}
	})
	return authUsecaseInstance
}

func (uc *authUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.RegisterAccount, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	hash, err := uc.checkCredentials(ctx, request.Email, request.Password, request.RetypePassword)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterPatient credential check failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := time.Now()
	patient := &models.Patient{
		Name:      request.Name,
		Email:     request.Email,
		Phone:     request.Phone,
		City:      request.City,
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	profileID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		return nil, err
	}

	return uc.createAccount(ctx, request.Email, hash, constvars.RolePatient, profileID)
}

func (uc *authUsecase) RegisterDoctor(ctx context.Context, request *requests.RegisterDoctor) (*responses.RegisterAccount, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	hash, err := uc.checkCredentials(ctx, request.Email, request.Password, request.RetypePassword)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterDoctor credential check failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if request.SellerID != "" {
		seller, err := uc.SellerRepository.FindSellerByID(ctx, request.SellerID)
		if err != nil {
			return nil, err
		}
		if seller == nil {
			return nil, exceptions.ErrSellerNotFound(fmt.Errorf("seller %s does not exist", request.SellerID))
		}
	}

	now := time.Now()
	doctor := &models.Doctor{
		Name:               request.Name,
		Email:              request.Email,
		Specialty:          request.Specialty,
		City:               request.City,
		Address:            request.Address,
		Phone:              request.Phone,
		ConsultationFee:    request.ConsultationFee,
		SlotDuration:       request.SlotDuration,
		Schedule:           models.WeekSchedule{},
		Services:           []models.Service{},
		BankDetails:        []models.BankAccount{},
		Coupons:            []models.Coupon{},
		SellerID:           request.SellerID,
		Status:             constvars.SubscriptionStatusActive,
		SubscriptionStatus: constvars.SubscriptionStatusActive,
		TimeModel:          models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	profileID, err := uc.DoctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		return nil, err
	}

	return uc.createAccount(ctx, request.Email, hash, constvars.RoleDoctor, profileID)
}

func (uc *authUsecase) RegisterSeller(ctx context.Context, request *requests.RegisterSeller) (*responses.RegisterAccount, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterSeller called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	hash, err := uc.checkCredentials(ctx, request.Email, request.Password, request.RetypePassword)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterSeller credential check failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := time.Now()
	seller := &models.Seller{
		Name:           request.Name,
		Email:          request.Email,
		CommissionRate: request.CommissionRate,
		TimeModel:      models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	profileID, err := uc.SellerRepository.CreateSeller(ctx, seller)
	if err != nil {
		return nil, err
	}

	return uc.createAccount(ctx, request.Email, hash, constvars.RoleSeller, profileID)
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	account, err := uc.AccountRepository.FindAccountByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if account == nil || !utils.CheckPasswordHash(request.Password, account.Password) {
		uc.Log.Info("authUsecase.Login rejected credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidEmailOrPassword(fmt.Errorf("credentials do not match"))
	}

	token, err := uc.SessionService.CreateSession(ctx, &models.Session{
		AccountID: account.ID,
		ProfileID: account.ProfileID,
		Role:      account.Role,
		Email:     account.Email,
	})
	if err != nil {
		uc.Log.Error("authUsecase.Login error creating session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.Login{
		Token:     token,
		Role:      account.Role,
		ProfileID: account.ProfileID,
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	return uc.SessionService.DestroySession(ctx, session.SessionID)
}

func (uc *authUsecase) checkCredentials(ctx context.Context, email, password, retypePassword string) (string, error) {
	if password != retypePassword {
		return "", exceptions.ErrPasswordsDoNotMatch(fmt.Errorf("retyped password differs"))
	}

	existing, err := uc.AccountRepository.FindAccountByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", email))
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", exceptions.ErrHashPassword(err)
	}
	return hash, nil
}

func (uc *authUsecase) createAccount(ctx context.Context, email, passwordHash, role, profileID string) (*responses.RegisterAccount, error) {
	now := time.Now()
	account := &models.Account{
		Email:     email,
		Password:  passwordHash,
		Role:      role,
		ProfileID: profileID,
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	accountID, err := uc.AccountRepository.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	if err := uc.MailerQueue.Enqueue(ctx, contracts.MailJob{
		To:      email,
		Subject: "Bienvenido a SUMA",
		Body:    "Tu cuenta fue creada correctamente.",
	}); err != nil {
		// Registration already succeeded; a failed welcome mail is not fatal.
		uc.Log.Warn("authUsecase.createAccount could not enqueue welcome mail",
			zap.Error(err),
		)
	}

	return &responses.RegisterAccount{
		AccountID: accountID,
		ProfileID: profileID,
		Role:      role,
	}, nil
}
