package contracts

import (
	"context"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/dto/responses"
)

type BookingUsecase interface {
	GetAvailability(ctx context.Context, doctorID, date string) (*responses.Availability, error)
	StartBooking(ctx context.Context, session *models.Session, request *requests.StartBooking) (*responses.BookingDraft, error)
	GetDraft(ctx context.Context, session *models.Session) (*responses.BookingDraft, error)
	SelectDateTime(ctx context.Context, session *models.Session, request *requests.SelectDateTime) (*responses.BookingDraft, error)
	ToggleService(ctx context.Context, session *models.Session, request *requests.ToggleService) (*responses.BookingDraft, error)
	ApplyCoupon(ctx context.Context, session *models.Session, request *requests.ApplyCoupon) (*responses.BookingDraft, error)
	RemoveCoupon(ctx context.Context, session *models.Session) (*responses.BookingDraft, error)
	SelectPayment(ctx context.Context, session *models.Session, request *requests.SelectPayment) (*responses.BookingDraft, error)
	GoBack(ctx context.Context, session *models.Session, request *requests.BookingBack) (*responses.BookingDraft, error)
	Confirm(ctx context.Context, session *models.Session) (*responses.ConfirmBooking, error)
	Abandon(ctx context.Context, session *models.Session) error
}
