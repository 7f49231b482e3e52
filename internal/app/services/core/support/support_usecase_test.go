package support

import (
	"context"
	"testing"

	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/dto/requests"
	"suma-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeTicketRepo struct {
	tickets map[string]*models.SupportTicket
	nextID  int
}

func (f *fakeTicketRepo) CreateTicket(_ context.Context, ticket *models.SupportTicket) (string, error) {
	f.nextID++
	ticket.ID = "tk-created"
	f.tickets[ticket.ID] = ticket
	return ticket.ID, nil
}

func (f *fakeTicketRepo) FindTicketByID(_ context.Context, ticketID string) (*models.SupportTicket, error) {
	return f.tickets[ticketID], nil
}

func (f *fakeTicketRepo) FindTicketsByAuthor(_ context.Context, authorID string) ([]models.SupportTicket, error) {
	out := []models.SupportTicket{}
	for _, t := range f.tickets {
		if t.AuthorID == authorID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) FindAllTickets(_ context.Context) ([]models.SupportTicket, error) {
	out := []models.SupportTicket{}
	for _, t := range f.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTicketRepo) UpdateTicket(_ context.Context, ticket *models.SupportTicket) error {
	f.tickets[ticket.ID] = ticket
	return nil
}

func newSupportFixture() (*supportUsecase, *fakeTicketRepo) {
	repo := &fakeTicketRepo{tickets: map[string]*models.SupportTicket{}}
	return &supportUsecase{SupportTicketRepository: repo, Log: zap.NewNop()}, repo
}

var (
	patientSession = &models.Session{SessionID: "s-p", Role: constvars.RolePatient, ProfileID: "pat-1"}
	adminSession   = &models.Session{SessionID: "s-a", Role: constvars.RoleAdmin, ProfileID: "adm-1"}
	otherSession   = &models.Session{SessionID: "s-o", Role: constvars.RolePatient, ProfileID: "pat-2"}
)

func TestSupportTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("create opens with the author's first message", func(t *testing.T) {
		uc, _ := newSupportFixture()

		ticket, err := uc.CreateTicket(ctx, patientSession, &requests.CreateTicket{
			Subject: "No puedo pagar", Text: "El comprobante no sube",
		})

		assert.NoError(t, err)
		assert.Equal(t, constvars.TicketStatusOpen, ticket.Status)
		assert.Equal(t, "pat-1", ticket.AuthorID)
		assert.Len(t, ticket.Messages, 1)
		assert.Equal(t, constvars.RolePatient, ticket.Messages[0].Sender)
		assert.True(t, ticket.UnreadByAdmin)
		assert.False(t, ticket.UnreadByAuthor)
	})

	t.Run("admin reply flags the author, author reply flags the admin", func(t *testing.T) {
		uc, _ := newSupportFixture()
		ticket, _ := uc.CreateTicket(ctx, patientSession, &requests.CreateTicket{Subject: "Ayuda", Text: "Hola"})

		ticket, err := uc.Reply(ctx, adminSession, ticket.ID, &requests.ReplyTicket{Text: "Revisando"})
		assert.NoError(t, err)
		assert.True(t, ticket.UnreadByAuthor)
		assert.Len(t, ticket.Messages, 2)
		assert.Equal(t, constvars.RoleAdmin, ticket.Messages[1].Sender)

		ticket, err = uc.Reply(ctx, patientSession, ticket.ID, &requests.ReplyTicket{Text: "Gracias"})
		assert.NoError(t, err)
		assert.True(t, ticket.UnreadByAdmin)
		assert.Len(t, ticket.Messages, 3)
	})

	t.Run("closed tickets reject replies", func(t *testing.T) {
		uc, _ := newSupportFixture()
		ticket, _ := uc.CreateTicket(ctx, patientSession, &requests.CreateTicket{Subject: "Ayuda", Text: "Hola"})
		_, err := uc.CloseTicket(ctx, adminSession, ticket.ID)
		assert.NoError(t, err)

		_, err = uc.Reply(ctx, patientSession, ticket.ID, &requests.ReplyTicket{Text: "Sigo aquí"})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusUnprocessable, customErr.StatusCode)
	})

	t.Run("only admins close", func(t *testing.T) {
		uc, _ := newSupportFixture()
		ticket, _ := uc.CreateTicket(ctx, patientSession, &requests.CreateTicket{Subject: "Ayuda", Text: "Hola"})

		_, err := uc.CloseTicket(ctx, patientSession, ticket.ID)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("tickets are invisible to other users", func(t *testing.T) {
		uc, _ := newSupportFixture()
		ticket, _ := uc.CreateTicket(ctx, patientSession, &requests.CreateTicket{Subject: "Ayuda", Text: "Hola"})

		_, err := uc.GetTicket(ctx, otherSession, ticket.ID)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("opening a ticket clears the caller's unread side only", func(t *testing.T) {
		uc, repo := newSupportFixture()
		ticket, _ := uc.CreateTicket(ctx, patientSession, &requests.CreateTicket{Subject: "Ayuda", Text: "Hola"})
		_, err := uc.Reply(ctx, adminSession, ticket.ID, &requests.ReplyTicket{Text: "Visto"})
		assert.NoError(t, err)

		got, err := uc.GetTicket(ctx, patientSession, ticket.ID)
		assert.NoError(t, err)
		assert.False(t, got.UnreadByAuthor)
		assert.True(t, repo.tickets[ticket.ID].UnreadByAdmin)

		got, err = uc.GetTicket(ctx, adminSession, ticket.ID)
		assert.NoError(t, err)
		assert.False(t, got.UnreadByAdmin)
	})

	t.Run("listing scopes by role", func(t *testing.T) {
		uc, _ := newSupportFixture()
		_, err := uc.CreateTicket(ctx, patientSession, &requests.CreateTicket{Subject: "Mía", Text: "Hola"})
		assert.NoError(t, err)

		mine, err := uc.ListTickets(ctx, patientSession)
		assert.NoError(t, err)
		assert.Len(t, mine, 1)

		others, err := uc.ListTickets(ctx, otherSession)
		assert.NoError(t, err)
		assert.Empty(t, others)

		all, err := uc.ListTickets(ctx, adminSession)
		assert.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
