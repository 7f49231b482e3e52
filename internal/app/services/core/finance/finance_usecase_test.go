package finance

import (
	"context"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"suma-service/internal/app/config"
	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePaymentRepo struct {
	payments map[string]*models.DoctorPayment
}

func (f *fakePaymentRepo) CreateDoctorPayment(_ context.Context, p *models.DoctorPayment) (string, error) {
	p.ID = "dp-created"
	f.payments[p.ID] = p
	return p.ID, nil
}

func (f *fakePaymentRepo) FindDoctorPaymentByID(_ context.Context, id string) (*models.DoctorPayment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) FindDoctorPaymentsByDoctor(_ context.Context, doctorID string) ([]models.DoctorPayment, error) {
	out := []models.DoctorPayment{}
	for _, p := range f.payments {
		if p.DoctorID == doctorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) UpdateDoctorPayment(_ context.Context, p *models.DoctorPayment) error {
	f.payments[p.ID] = p
	return nil
}

type fakeDoctorRepo struct {
	doctors map[string]*models.Doctor
}

func (f *fakeDoctorRepo) CreateDoctor(_ context.Context, d *models.Doctor) (string, error) {
	f.doctors[d.ID] = d
	return d.ID, nil
}

func (f *fakeDoctorRepo) FindDoctorByID(_ context.Context, id string) (*models.Doctor, error) {
	return f.doctors[id], nil
}

func (f *fakeDoctorRepo) FindDoctors(_ context.Context, _, _ int) ([]models.Doctor, int64, error) {
	return nil, 0, nil
}

func (f *fakeDoctorRepo) FindDoctorsBySeller(_ context.Context, _ string) ([]models.Doctor, error) {
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateDoctor(_ context.Context, d *models.Doctor) error {
	f.doctors[d.ID] = d
	return nil
}

type fakeSettingsRepo struct {
	settings *models.Settings
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context) (*models.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) UpsertSettings(_ context.Context, s *models.Settings) error {
	f.settings = s
	return nil
}

type fakeStorage struct {
	uploads int
}

func (f *fakeStorage) UploadFile(_ context.Context, _ io.Reader, header *multipart.FileHeader, prefix string) (string, error) {
	f.uploads++
	return "https://storage.local/" + prefix + "/" + header.Filename, nil
}

func (f *fakeStorage) GetObjectUrlWithExpiryTime(_ context.Context, objectName string, _ time.Duration) (string, error) {
	return "https://storage.local/" + objectName, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, _ string) error { return nil }

type fakeMailer struct {
	jobs []contracts.MailJob
}

func (f *fakeMailer) Enqueue(_ context.Context, job contracts.MailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

type nopFile struct{}

func (nopFile) Read(p []byte) (int, error)                   { return 0, io.EOF }
func (nopFile) ReadAt(p []byte, off int64) (int, error)      { return 0, io.EOF }
func (nopFile) Seek(offset int64, whence int) (int64, error) { return 0, nil }
func (nopFile) Close() error                                 { return nil }

func newFinanceFixture() (*financeUsecase, *fakePaymentRepo, *fakeDoctorRepo, *fakeStorage, *fakeMailer) {
	paymentRepo := &fakePaymentRepo{payments: map[string]*models.DoctorPayment{}}
	doctorRepo := &fakeDoctorRepo{doctors: map[string]*models.Doctor{
		"doc-1": {ID: "doc-1", Name: "Dra. Pérez", Email: "perez@suma.test", City: "Caracas",
			SubscriptionStatus: constvars.SubscriptionStatusInactive},
	}}
	settingsRepo := &fakeSettingsRepo{settings: &models.Settings{CityFees: []models.CityFee{
		{City: "Caracas", MonthlyFee: 100},
	}}}
	storage := &fakeStorage{}
	mailer := &fakeMailer{}
	uc := &financeUsecase{
		DoctorPaymentRepository: paymentRepo,
		DoctorRepository:        doctorRepo,
		SettingsRepository:      settingsRepo,
		Storage:                 storage,
		MailerQueue:             mailer,
		InternalConfig:          &config.InternalConfig{App: config.App{PaymentProofMaxUploadSizeInMB: 5}},
		Log:                     zap.NewNop(),
	}
	return uc, paymentRepo, doctorRepo, storage, mailer
}

var (
	doctorSession = &models.Session{SessionID: "s-d", Role: constvars.RoleDoctor, ProfileID: "doc-1"}
	adminSession  = &models.Session{SessionID: "s-a", Role: constvars.RoleAdmin, ProfileID: "adm-1"}
)

func TestSubmitDoctorPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending payment", func(t *testing.T) {
		uc, _, _, _, _ := newFinanceFixture()

		payment, err := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{
			Period: "August 2026", Amount: 100,
		})

		assert.NoError(t, err)
		assert.Equal(t, constvars.PaymentStatusPending, payment.Status)
		assert.Equal(t, "doc-1", payment.DoctorID)
		assert.True(t, payment.Unread)
	})

	t.Run("rejected when the doctor's city has no fee", func(t *testing.T) {
		uc, _, doctorRepo, _, _ := newFinanceFixture()
		doctorRepo.doctors["doc-1"].City = "Maracaibo"

		_, err := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{
			Period: "August 2026", Amount: 100,
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnprocessable, customErr.StatusCode)
	})

	t.Run("only doctors submit", func(t *testing.T) {
		uc, _, _, _, _ := newFinanceFixture()

		_, err := uc.SubmitDoctorPayment(ctx, adminSession, &requests.SubmitDoctorPayment{
			Period: "August 2026", Amount: 100,
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}

func TestUploadPaymentProof(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the proof and records its url", func(t *testing.T) {
		uc, _, _, storage, _ := newFinanceFixture()
		payment, _ := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})

		updated, err := uc.UploadPaymentProof(ctx, doctorSession, payment.ID, nopFile{}, &multipart.FileHeader{
			Filename: "comprobante.png", Size: 1024,
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, storage.uploads)
		assert.Contains(t, updated.ProofURL, "payment_proof")
	})

	t.Run("oversized file rejected", func(t *testing.T) {
		uc, _, _, storage, _ := newFinanceFixture()
		payment, _ := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})

		_, err := uc.UploadPaymentProof(ctx, doctorSession, payment.ID, nopFile{}, &multipart.FileHeader{
			Filename: "comprobante.png", Size: 6 * 1024 * 1024,
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Zero(t, storage.uploads)
	})

	t.Run("unexpected extension rejected", func(t *testing.T) {
		uc, _, _, _, _ := newFinanceFixture()
		payment, _ := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})

		_, err := uc.UploadPaymentProof(ctx, doctorSession, payment.ID, nopFile{}, &multipart.FileHeader{
			Filename: "comprobante.exe", Size: 1024,
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("another doctor's payment is invisible", func(t *testing.T) {
		uc, _, _, _, _ := newFinanceFixture()
		payment, _ := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})
		other := &models.Session{SessionID: "s-x", Role: constvars.RoleDoctor, ProfileID: "doc-2"}

		_, err := uc.UploadPaymentProof(ctx, other, payment.ID, nopFile{}, &multipart.FileHeader{
			Filename: "comprobante.png", Size: 1024,
		})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestApproveDoctorPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("activates the subscription and mails the doctor", func(t *testing.T) {
		uc, _, doctorRepo, _, mailer := newFinanceFixture()
		payment, _ := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})

		approved, err := uc.ApproveDoctorPayment(ctx, adminSession, payment.ID)

		assert.NoError(t, err)
		assert.Equal(t, constvars.PaymentStatusPaid, approved.Status)
		doctor := doctorRepo.doctors["doc-1"]
		assert.Equal(t, constvars.SubscriptionStatusActive, doctor.SubscriptionStatus)
		assert.NotNil(t, doctor.LastPaymentDate)
		assert.NotNil(t, doctor.NextPaymentDate)
		assert.Len(t, mailer.jobs, 1)
	})

	t.Run("second approval is a no-op", func(t *testing.T) {
		uc, _, _, _, mailer := newFinanceFixture()
		payment, _ := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})

		_, err := uc.ApproveDoctorPayment(ctx, adminSession, payment.ID)
		assert.NoError(t, err)
		again, err := uc.ApproveDoctorPayment(ctx, adminSession, payment.ID)

		assert.NoError(t, err)
		assert.Equal(t, constvars.PaymentStatusPaid, again.Status)
		assert.Len(t, mailer.jobs, 1)
	})

	t.Run("doctors cannot approve their own payment", func(t *testing.T) {
		uc, _, _, _, _ := newFinanceFixture()
		payment, _ := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})

		_, err := uc.ApproveDoctorPayment(ctx, doctorSession, payment.ID)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}

func TestListDoctorPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("doctor lists own, admin lists any, others rejected", func(t *testing.T) {
		uc, _, _, _, _ := newFinanceFixture()
		_, err := uc.SubmitDoctorPayment(ctx, doctorSession, &requests.SubmitDoctorPayment{Period: "August 2026", Amount: 100})
		assert.NoError(t, err)

		own, err := uc.ListDoctorPayments(ctx, doctorSession, "doc-1")
		assert.NoError(t, err)
		assert.Len(t, own, 1)

		any, err := uc.ListDoctorPayments(ctx, adminSession, "doc-1")
		assert.NoError(t, err)
		assert.Len(t, any, 1)

		_, err = uc.ListDoctorPayments(ctx, &models.Session{SessionID: "s-x", Role: constvars.RoleDoctor, ProfileID: "doc-2"}, "doc-1")
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}
