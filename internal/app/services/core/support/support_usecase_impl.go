package support

import (
	"context"
	"fmt"
	"sync"
	"time"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type supportUsecase struct {
	SupportTicketRepository contracts.SupportTicketRepository
	Log                     *zap.Logger
}

var (
	supportUsecaseInstance contracts.SupportUsecase
	onceSupportUsecase     sync.Once
)

func NewSupportUsecase(
	supportTicketRepository contracts.SupportTicketRepository,
	logger *zap.Logger,
) contracts.SupportUsecase {
	onceSupportUsecase.Do(func() {
		supportUsecaseInstance = &supportUsecase{
			SupportTicketRepository: supportTicketRepository,
			Log:                     logger,
		}
	})
	return supportUsecaseInstance
}

func (uc *supportUsecase) CreateTicket(ctx context.Context, session *models.Session, request *requests.CreateTicket) (*models.SupportTicket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("supportUsecase.CreateTicket called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.ProfileID),
	)

	now := time.Now()
	ticket := &models.SupportTicket{
		AuthorID:   session.ProfileID,
		AuthorRole: session.Role,
		Subject:    request.Subject,
		Status:     constvars.TicketStatusOpen,
		Messages: []models.TicketMessage{{
			ID:     uuid.NewString(),
			Sender: session.Role,
			Text:   request.Text,
			SentAt: now,
		}},
		UnreadByAdmin: true,
		TimeModel:     models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	if _, err := uc.SupportTicketRepository.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (uc *supportUsecase) ListTickets(ctx context.Context, session *models.Session) ([]models.SupportTicket, error) {
	if session.IsAdmin() {
		return uc.SupportTicketRepository.FindAllTickets(ctx)
	}
	return uc.SupportTicketRepository.FindTicketsByAuthor(ctx, session.ProfileID)
}

func (uc *supportUsecase) GetTicket(ctx context.Context, session *models.Session, ticketID string) (*models.SupportTicket, error) {
	ticket, err := uc.loadVisible(ctx, session, ticketID)
	if err != nil {
		return nil, err
	}

	// Opening a ticket counts as reading it for the caller's side.
	changed := false
	if session.IsAdmin() && ticket.UnreadByAdmin {
		ticket.UnreadByAdmin = false
		changed = true
	}
	if !session.IsAdmin() && ticket.UnreadByAuthor {
		ticket.UnreadByAuthor = false
		changed = true
	}
	if changed {
		if err := uc.SupportTicketRepository.UpdateTicket(ctx, ticket); err != nil {
			return nil, err
		}
	}
	return ticket, nil
}

func (uc *supportUsecase) Reply(ctx context.Context, session *models.Session, ticketID string, request *requests.ReplyTicket) (*models.SupportTicket, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("supportUsecase.Reply called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.ProfileID),
	)

	ticket, err := uc.loadVisible(ctx, session, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != constvars.TicketStatusOpen {
		return nil, exceptions.WrapWithoutError(constvars.StatusUnprocessable, "this ticket is closed", fmt.Sprintf("reply to ticket %s in status %s", ticket.ID, ticket.Status))
	}

	now := time.Now()
	ticket.Messages = append(ticket.Messages, models.TicketMessage{
		ID:     uuid.NewString(),
		Sender: session.Role,
		Text:   request.Text,
		SentAt: now,
	})
	if session.IsAdmin() {
		ticket.UnreadByAuthor = true
	} else {
		ticket.UnreadByAdmin = true
	}
	ticket.UpdatedAt = now

	if err := uc.SupportTicketRepository.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (uc *supportUsecase) CloseTicket(ctx context.Context, session *models.Session, ticketID string) (*models.SupportTicket, error) {
	if !session.IsAdmin() {
		return nil, exceptions.ErrRoleNotAllowed(fmt.Errorf("role %s cannot close tickets", session.Role))
	}

	ticket, err := uc.SupportTicketRepository.FindTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, exceptions.ErrTicketNotFound(fmt.Errorf("ticket %s not found", ticketID))
	}
	if ticket.Status == constvars.TicketStatusClosed {
		return ticket, nil
	}

	ticket.Status = constvars.TicketStatusClosed
	ticket.UpdatedAt = time.Now()
	if err := uc.SupportTicketRepository.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (uc *supportUsecase) loadVisible(ctx context.Context, session *models.Session, ticketID string) (*models.SupportTicket, error) {
	ticket, err := uc.SupportTicketRepository.FindTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, exceptions.ErrTicketNotFound(fmt.Errorf("ticket %s not found", ticketID))
	}
	if !session.IsAdmin() && ticket.AuthorID != session.ProfileID {
		return nil, exceptions.ErrTicketNotFound(fmt.Errorf("ticket %s does not belong to %s", ticketID, session.ProfileID))
	}
	return ticket, nil
}
