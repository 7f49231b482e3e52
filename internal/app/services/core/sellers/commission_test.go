package sellers

import (
	"context"
	"testing"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSellerRepo struct {
	sellers map[string]*models.Seller
}

func (f *fakeSellerRepo) CreateSeller(_ context.Context, seller *models.Seller) (string, error) {
	f.sellers[seller.ID] = seller
	return seller.ID, nil
}

func (f *fakeSellerRepo) FindSellerByID(_ context.Context, sellerID string) (*models.Seller, error) {
	return f.sellers[sellerID], nil
}

func (f *fakeSellerRepo) FindSellers(_ context.Context) ([]models.Seller, error) {
	out := []models.Seller{}
	for _, s := range f.sellers {
		out = append(out, *s)
	}
	return out, nil
}

type fakeSellerPaymentRepo struct {
	payments []models.SellerPayment
}

func (f *fakeSellerPaymentRepo) CreateSellerPayment(_ context.Context, payment *models.SellerPayment) (string, error) {
	payment.ID = "pay-created"
	f.payments = append(f.payments, *payment)
	return payment.ID, nil
}

func (f *fakeSellerPaymentRepo) FindSellerPaymentsBySeller(_ context.Context, sellerID string) ([]models.SellerPayment, error) {
	out := []models.SellerPayment{}
	for _, p := range f.payments {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSellerPaymentRepo) MarkSellerPaymentsRead(_ context.Context, sellerID string) error {
	for i := range f.payments {
		if f.payments[i].SellerID == sellerID {
			f.payments[i].Unread = false
		}
	}
	return nil
}

type fakeSellerDoctorRepo struct {
	doctors []models.Doctor
}

func (f *fakeSellerDoctorRepo) CreateDoctor(_ context.Context, doctor *models.Doctor) (string, error) {
	f.doctors = append(f.doctors, *doctor)
	return doctor.ID, nil
}

func (f *fakeSellerDoctorRepo) FindDoctorByID(_ context.Context, doctorID string) (*models.Doctor, error) {
	for i := range f.doctors {
		if f.doctors[i].ID == doctorID {
			return &f.doctors[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSellerDoctorRepo) FindDoctors(_ context.Context, _, _ int) ([]models.Doctor, int64, error) {
	return f.doctors, int64(len(f.doctors)), nil
}

func (f *fakeSellerDoctorRepo) FindDoctorsBySeller(_ context.Context, sellerID string) ([]models.Doctor, error) {
	out := []models.Doctor{}
	for _, d := range f.doctors {
		if d.SellerID == sellerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeSellerDoctorRepo) UpdateDoctor(_ context.Context, _ *models.Doctor) error {
	return nil
}

type fakeSettingsRepo struct {
	settings *models.Settings
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context) (*models.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) UpsertSettings(_ context.Context, settings *models.Settings) error {
	f.settings = settings
	return nil
}

type fakePayoutMailer struct {
	jobs []contracts.MailJob
}

func (f *fakePayoutMailer) Enqueue(_ context.Context, job contracts.MailJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func newCommissionFixture() (*commissionUsecase, *fakeSellerRepo, *fakeSellerPaymentRepo, *fakeSellerDoctorRepo, *fakePayoutMailer) {
	sellerRepo := &fakeSellerRepo{sellers: map[string]*models.Seller{
		"seller-1": {ID: "seller-1", Name: "Carlos", Email: "carlos@suma.test", CommissionRate: 0.10},
	}}
	paymentRepo := &fakeSellerPaymentRepo{}
	doctorRepo := &fakeSellerDoctorRepo{doctors: []models.Doctor{
		{ID: "doc-1", Name: "Dra. Pérez", City: "Caracas", SellerID: "seller-1", SubscriptionStatus: constvars.SubscriptionStatusActive},
		{ID: "doc-2", Name: "Dr. Gómez", City: "Valencia", SellerID: "seller-1", SubscriptionStatus: constvars.SubscriptionStatusActive},
		{ID: "doc-3", Name: "Dr. Inactivo", City: "Caracas", SellerID: "seller-1", SubscriptionStatus: constvars.SubscriptionStatusInactive},
		{ID: "doc-4", Name: "Dra. Otra", City: "Caracas", SellerID: "seller-2", SubscriptionStatus: constvars.SubscriptionStatusActive},
	}}
	settingsRepo := &fakeSettingsRepo{settings: &models.Settings{CityFees: []models.CityFee{
		{City: "Caracas", MonthlyFee: 100},
		{City: "Valencia", MonthlyFee: 80},
	}}}
	mailer := &fakePayoutMailer{}
	uc := &commissionUsecase{
		SellerRepository:        sellerRepo,
		SellerPaymentRepository: paymentRepo,
		DoctorRepository:        doctorRepo,
		SettingsRepository:      settingsRepo,
		MailerQueue:             mailer,
		Log:                     zap.NewNop(),
	}
	return uc, sellerRepo, paymentRepo, doctorRepo, mailer
}

func TestComputePending(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	t.Run("sums configured active doctors only", func(t *testing.T) {
		uc, _, _, _, _ := newCommissionFixture()

		total, lines, err := uc.ComputePending(ctx, "seller-1", now)

		assert.NoError(t, err)
		// doc-1: 100*0.10, doc-2: 80*0.10; inactive and other-seller doctors skipped
		assert.InDelta(t, 18.0, total, 0.0001)
		assert.Len(t, lines, 2)
		assert.Equal(t, "doc-1", lines[0].DoctorID)
		assert.InDelta(t, 10.0, lines[0].Commission, 0.0001)
	})

	t.Run("zero once the current period is paid", func(t *testing.T) {
		uc, _, paymentRepo, _, _ := newCommissionFixture()
		paymentRepo.payments = append(paymentRepo.payments, models.SellerPayment{
			SellerID: "seller-1", Period: "August 2026", PaymentDate: now,
		})

		total, lines, err := uc.ComputePending(ctx, "seller-1", now)

		assert.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, lines)
	})

	t.Run("period match is case-insensitive", func(t *testing.T) {
		uc, _, paymentRepo, _, _ := newCommissionFixture()
		paymentRepo.payments = append(paymentRepo.payments, models.SellerPayment{
			SellerID: "seller-1", Period: "AUGUST 2026", PaymentDate: now,
		})

		total, _, err := uc.ComputePending(ctx, "seller-1", now)

		assert.NoError(t, err)
		assert.Zero(t, total, "pending must be exactly zero for a paid period regardless of casing")
	})

	t.Run("payment for another period does not gate", func(t *testing.T) {
		uc, _, paymentRepo, _, _ := newCommissionFixture()
		paymentRepo.payments = append(paymentRepo.payments, models.SellerPayment{
			SellerID: "seller-1", Period: "July 2026", PaymentDate: now.AddDate(0, -1, 0),
		})

		total, _, err := uc.ComputePending(ctx, "seller-1", now)

		assert.NoError(t, err)
		assert.InDelta(t, 18.0, total, 0.0001)
	})

	t.Run("city without a configured fee contributes nothing", func(t *testing.T) {
		uc, _, _, doctorRepo, _ := newCommissionFixture()
		doctorRepo.doctors = append(doctorRepo.doctors, models.Doctor{
			ID: "doc-5", Name: "Dr. Maracaibo", City: "Maracaibo", SellerID: "seller-1",
			SubscriptionStatus: constvars.SubscriptionStatusActive,
		})

		total, lines, err := uc.ComputePending(ctx, "seller-1", now)

		assert.NoError(t, err)
		assert.InDelta(t, 18.0, total, 0.0001)
		assert.Len(t, lines, 2)
	})

	t.Run("unknown seller rejected", func(t *testing.T) {
		uc, _, _, _, _ := newCommissionFixture()

		_, _, err := uc.ComputePending(ctx, "seller-missing", now)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestRecordPayout(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	admin := &models.Session{SessionID: "sess-admin", AccountID: "acc-admin", Role: constvars.RoleAdmin}

	t.Run("freezes breakdown and notifies the seller", func(t *testing.T) {
		uc, _, paymentRepo, _, mailer := newCommissionFixture()

		payment, err := uc.RecordPayout(ctx, admin, "seller-1", now)

		assert.NoError(t, err)
		assert.Equal(t, "August 2026", payment.Period)
		assert.InDelta(t, 18.0, payment.Total, 0.0001)
		assert.Len(t, payment.Breakdown, 2)
		assert.True(t, payment.Unread)
		assert.Len(t, paymentRepo.payments, 1)
		assert.Len(t, mailer.jobs, 1)
		assert.Equal(t, "carlos@suma.test", mailer.jobs[0].To)
	})

	t.Run("second payout in the same period is rejected", func(t *testing.T) {
		uc, _, paymentRepo, _, _ := newCommissionFixture()

		_, err := uc.RecordPayout(ctx, admin, "seller-1", now)
		assert.NoError(t, err)

		_, err = uc.RecordPayout(ctx, admin, "seller-1", now)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnprocessable, customErr.StatusCode)
		assert.Len(t, paymentRepo.payments, 1)
	})

	t.Run("non-admin cannot record payouts", func(t *testing.T) {
		uc, _, _, _, _ := newCommissionFixture()
		seller := &models.Session{SessionID: "sess-s", Role: constvars.RoleSeller, ProfileID: "seller-1"}

		_, err := uc.RecordPayout(ctx, seller, "seller-1", now)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}

func TestFilterPaymentsByRange(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	payments := []models.SellerPayment{
		{ID: "p-today", PaymentDate: time.Date(2026, time.August, 28, 9, 0, 0, 0, time.UTC)},
		{ID: "p-week", PaymentDate: time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)},
		{ID: "p-month", PaymentDate: time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)},
		{ID: "p-year", PaymentDate: time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "p-old", PaymentDate: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)},
	}

	ids := func(filtered []models.SellerPayment) []string {
		out := []string{}
		for _, p := range filtered {
			out = append(out, p.ID)
		}
		return out
	}

	t.Run("today", func(t *testing.T) {
		assert.Equal(t, []string{"p-today"}, ids(FilterPaymentsByRange(payments, "today", now)))
	})

	t.Run("week", func(t *testing.T) {
		assert.Equal(t, []string{"p-today", "p-week"}, ids(FilterPaymentsByRange(payments, "week", now)))
	})

	t.Run("month", func(t *testing.T) {
		assert.Equal(t, []string{"p-today", "p-week", "p-month"}, ids(FilterPaymentsByRange(payments, "month", now)))
	})

	t.Run("year", func(t *testing.T) {
		assert.Equal(t, []string{"p-today", "p-week", "p-month", "p-year"}, ids(FilterPaymentsByRange(payments, "year", now)))
	})

	t.Run("unknown range keeps everything", func(t *testing.T) {
		assert.Len(t, FilterPaymentsByRange(payments, "", now), 5)
		assert.Len(t, FilterPaymentsByRange(payments, "decade", now), 5)
	})
}
