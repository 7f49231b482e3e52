package contracts

import (
	"context"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/dto/requests"
)

type SupportUsecase interface {
	CreateTicket(ctx context.Context, session *models.Session, request *requests.CreateTicket) (*models.SupportTicket, error)
	ListTickets(ctx context.Context, session *models.Session) ([]models.SupportTicket, error)
	GetTicket(ctx context.Context, session *models.Session, ticketID string) (*models.SupportTicket, error)
	Reply(ctx context.Context, session *models.Session, ticketID string, request *requests.ReplyTicket) (*models.SupportTicket, error)
	CloseTicket(ctx context.Context, session *models.Session, ticketID string) (*models.SupportTicket, error)
}

type SupportTicketRepository interface {
	CreateTicket(ctx context.Context, ticket *models.SupportTicket) (string, error)
	FindTicketByID(ctx context.Context, ticketID string) (*models.SupportTicket, error)
	FindTicketsByAuthor(ctx context.Context, authorID string) ([]models.SupportTicket, error)
	FindAllTickets(ctx context.Context) ([]models.SupportTicket, error)
	UpdateTicket(ctx context.Context, ticket *models.SupportTicket) error
}
