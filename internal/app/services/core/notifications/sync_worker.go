package notifications

import (
	"context"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// SyncWorker periodically refreshes doctor and seller notifications so the
// inbox is populated before the first poll. Patients are synced on demand
// when they list their notifications.
type SyncWorker struct {
	NotificationUsecase contracts.NotificationUsecase
	DoctorRepository    contracts.DoctorRepository
	SellerRepository    contracts.SellerRepository
	Interval            time.Duration
	Log                 *zap.Logger

	cancel context.CancelFunc
}

func NewSyncWorker(
	notificationUsecase contracts.NotificationUsecase,
	doctorRepository contracts.DoctorRepository,
	sellerRepository contracts.SellerRepository,
	interval time.Duration,
	logger *zap.Logger,
) *SyncWorker {
	return &SyncWorker{
		NotificationUsecase: notificationUsecase,
		DoctorRepository:    doctorRepository,
		SellerRepository:    sellerRepository,
		Interval:            interval,
		Log:                 logger,
	}
}

func (w *SyncWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go func() {
		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		w.runOnce(ctx)
		for {
			select {
			case <-ctx.Done():
				w.Log.Info("notification sync worker stopped")
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()
}

func (w *SyncWorker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

func (w *SyncWorker) runOnce(ctx context.Context) {
	doctors, _, err := w.DoctorRepository.FindDoctors(ctx, 1, 0)
	if err != nil {
		w.Log.Error("notification sync worker could not list doctors", zap.Error(err))
	}
	for _, doctor := range doctors {
		if err := w.NotificationUsecase.SyncForUser(ctx, doctor.ID, constvars.RoleDoctor); err != nil {
			w.Log.Error("notification sync failed",
				zap.String(constvars.LoggingDoctorIDKey, doctor.ID),
				zap.Error(err),
			)
		}
	}

	sellers, err := w.SellerRepository.FindSellers(ctx)
	if err != nil {
		w.Log.Error("notification sync worker could not list sellers", zap.Error(err))
	}
	for _, seller := range sellers {
		if err := w.NotificationUsecase.SyncForUser(ctx, seller.ID, constvars.RoleSeller); err != nil {
			w.Log.Error("notification sync failed",
				zap.String(constvars.LoggingSellerIDKey, seller.ID),
				zap.Error(err),
			)
		}
	}
}
