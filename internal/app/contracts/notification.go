package contracts

import (
	"context"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/responses"
)

type NotificationUsecase interface {
	ListForUser(ctx context.Context, session *models.Session) (*responses.NotificationList, error)
	MarkAllRead(ctx context.Context, session *models.Session) error
	SyncForUser(ctx context.Context, userID, role string) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) (string, error)
	FindNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	ExistsNotification(ctx context.Context, userID string, key models.NotificationKey) (bool, error)
	MarkNotificationsRead(ctx context.Context, userID string) error
}
