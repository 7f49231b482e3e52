package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"
	"suma-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAccountRepo struct {
	accounts map[string]*models.Account // by email
	nextID   int
}

func (f *fakeAccountRepo) CreateAccount(_ context.Context, account *models.Account) (string, error) {
	f.nextID++
	account.ID = fmt.Sprintf("acc-%d", f.nextID)
	f.accounts[account.Email] = account
	return account.ID, nil
}

func (f *fakeAccountRepo) FindAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	return f.accounts[email], nil
}

func (f *fakeAccountRepo) FindAccountByID(_ context.Context, accountID string) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.ID == accountID {
			return a, nil
		}
	}
	return nil, nil
}

type fakePatientRepo struct{ created []*models.Patient }

func (f *fakePatientRepo) CreatePatient(_ context.Context, patient *models.Patient) (string, error) {
	patient.ID = "pat-created"
	f.created = append(f.created, patient)
	return patient.ID, nil
}

func (f *fakePatientRepo) FindPatientByID(_ context.Context, _ string) (*models.Patient, error) {
	return nil, nil
}

type fakeDoctorRepo struct{ created []*models.Doctor }

func (f *fakeDoctorRepo) CreateDoctor(_ context.Context, doctor *models.Doctor) (string, error) {
	doctor.ID = "doc-created"
	f.created = append(f.created, doctor)
	return doctor.ID, nil
}

func (f *fakeDoctorRepo) FindDoctorByID(_ context.Context, _ string) (*models.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) FindDoctors(_ context.Context, _, _ int) ([]models.Doctor, int64, error) {
	return nil, 0, nil
}

func (f *fakeDoctorRepo) FindDoctorsBySeller(_ context.Context, _ string) ([]models.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateDoctor(_ context.Context, _ *models.Doctor) error { return nil }

type fakeSellerRepo struct{ sellers map[string]*models.Seller }

func (f *fakeSellerRepo) CreateSeller(_ context.Context, seller *models.Seller) (string, error) {
	seller.ID = "sel-created"
	f.sellers[seller.ID] = seller
	return seller.ID, nil
}

func (f *fakeSellerRepo) FindSellerByID(_ context.Context, sellerID string) (*models.Seller, error) {
	return f.sellers[sellerID], nil
}

func (f *fakeSellerRepo) FindSellers(_ context.Context) ([]models.Seller, error) { return nil, nil }

type fakeSessionService struct {
	created   []*models.Session
	destroyed []string
}

func (f *fakeSessionService) CreateSession(_ context.Context, session *models.Session) (string, error) {
	session.SessionID = "sess-created"
	f.created = append(f.created, session)
	return "token-for-" + session.Email, nil
}

func (f *fakeSessionService) ResolveSession(_ context.Context, _ string) (*models.Session, error) {
	return nil, nil
}

func (f *fakeSessionService) DestroySession(_ context.Context, sessionID string) error {
	f.destroyed = append(f.destroyed, sessionID)
	return nil
}

type fakeMailerQueue struct{ jobs []contracts.MailJob }

func (f *fakeMailerQueue) Enqueue(_ context.Context, job contracts.MailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func newAuthFixture() (*authUsecase, *fakeAccountRepo, *fakeSellerRepo, *fakeSessionService, *fakeMailerQueue) {
	accountRepo := &fakeAccountRepo{accounts: map[string]*models.Account{}}
	sellerRepo := &fakeSellerRepo{sellers: map[string]*models.Seller{}}
	sessions := &fakeSessionService{}
	mails := &fakeMailerQueue{}
	uc := &authUsecase{
		AccountRepository: accountRepo,
		PatientRepository: &fakePatientRepo{},
		DoctorRepository:  &fakeDoctorRepo{},
		SellerRepository:  sellerRepo,
		SessionService:    sessions,
		MailerQueue:       mails,
		Log:               zap.NewNop(),
	}
	return uc, accountRepo, sellerRepo, sessions, mails
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("patient registration creates profile and account", func(t *testing.T) {
		uc, accountRepo, _, _, mails := newAuthFixture()

		out, err := uc.RegisterPatient(ctx, &requests.RegisterPatient{
			Name: "Ana Pérez", Email: "ana@suma.test",
			Password: "Secreta123", RetypePassword: "Secreta123",
		})

		assert.NoError(t, err)
		assert.Equal(t, constvars.RolePatient, out.Role)
		assert.Equal(t, "pat-created", out.ProfileID)

		account := accountRepo.accounts["ana@suma.test"]
		assert.NotNil(t, account)
		assert.NotEqual(t, "Secreta123", account.Password)
		assert.True(t, utils.CheckPasswordHash("Secreta123", account.Password))
		assert.Len(t, mails.jobs, 1)
	})

	t.Run("mismatched retype is rejected before any write", func(t *testing.T) {
		uc, accountRepo, _, _, _ := newAuthFixture()

		_, err := uc.RegisterPatient(ctx, &requests.RegisterPatient{
			Name: "Ana", Email: "ana@suma.test",
			Password: "Secreta123", RetypePassword: "otra",
		})

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Empty(t, accountRepo.accounts)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		uc, _, _, _, _ := newAuthFixture()

		_, err := uc.RegisterPatient(ctx, &requests.RegisterPatient{
			Name: "Ana", Email: "ana@suma.test",
			Password: "Secreta123", RetypePassword: "Secreta123",
		})
		assert.NoError(t, err)

		_, err = uc.RegisterSeller(ctx, &requests.RegisterSeller{
			Name: "Ana otra vez", Email: "ana@suma.test",
			Password: "Secreta123", RetypePassword: "Secreta123",
		})

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("doctor with unknown referral seller is rejected", func(t *testing.T) {
		uc, _, _, _, _ := newAuthFixture()

		_, err := uc.RegisterDoctor(ctx, &requests.RegisterDoctor{
			Name: "Dr. Luis", Email: "luis@suma.test",
			Password: "Secreta123", RetypePassword: "Secreta123",
			Specialty: "Cardiología", City: "Caracas", SlotDuration: 30,
			SellerID: "sel-missing",
		})

		var customErr *exceptions.CustomError
		assert.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("doctor keeps the referring seller id", func(t *testing.T) {
		uc, _, sellerRepo, _, _ := newAuthFixture()
		sellerRepo.sellers["sel-1"] = &models.Seller{ID: "sel-1", Name: "Carlos"}

		out, err := uc.RegisterDoctor(ctx, &requests.RegisterDoctor{
			Name: "Dr. Luis", Email: "luis@suma.test",
			Password: "Secreta123", RetypePassword: "Secreta123",
			Specialty: "Cardiología", City: "Caracas", SlotDuration: 30,
			SellerID: "sel-1",
		})

		assert.NoError(t, err)
		doctors := uc.DoctorRepository.(*fakeDoctorRepo).created
		assert.Len(t, doctors, 1)
		assert.Equal(t, "sel-1", doctors[0].SellerID)
		assert.Equal(t, constvars.SubscriptionStatusActive, doctors[0].SubscriptionStatus)
		assert.Equal(t, constvars.RoleDoctor, out.Role)
	})
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()

	registerPatient := func(t *testing.T, uc *authUsecase) {
		t.Helper()
		_, err := uc.RegisterPatient(ctx, &requests.RegisterPatient{
			Name: "Ana", Email: "ana@suma.test",
			Password: "Secreta123", RetypePassword: "Secreta123",
		})
		assert.NoError(t, err)
	}

	t.Run("login issues a session token for the stored role", func(t *testing.T) {
		uc, _, _, sessions, _ := newAuthFixture()
		registerPatient(t, uc)

		out, err := uc.Login(ctx, &requests.Login{Email: "ana@suma.test", Password: "Secreta123"})

		assert.NoError(t, err)
		assert.Equal(t, "token-for-ana@suma.test", out.Token)
		assert.Equal(t, constvars.RolePatient, out.Role)
		assert.Equal(t, "pat-created", out.ProfileID)
		assert.Len(t, sessions.created, 1)
	})

	t.Run("wrong password and unknown email fail the same way", func(t *testing.T) {
		uc, _, _, _, _ := newAuthFixture()
		registerPatient(t, uc)

		for _, login := range []*requests.Login{
			{Email: "ana@suma.test", Password: "equivocada"},
			{Email: "nadie@suma.test", Password: "Secreta123"},
		} {
			_, err := uc.Login(ctx, login)
			var customErr *exceptions.CustomError
			assert.True(t, errors.As(err, &customErr))
			assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
		}
	})

	t.Run("logout destroys the caller session", func(t *testing.T) {
		uc, _, _, sessions, _ := newAuthFixture()

		err := uc.Logout(ctx, &models.Session{SessionID: "sess-9"})

		assert.NoError(t, err)
		assert.Equal(t, []string{"sess-9"}, sessions.destroyed)
	})
}
