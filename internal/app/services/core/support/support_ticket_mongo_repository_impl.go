package support

import (
	"context"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SupportTicketMongoRepository struct {
	Collection *mongo.Collection
}

func NewSupportTicketMongoRepository(db *mongo.Client, dbName string) contracts.SupportTicketRepository {
	return &SupportTicketMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSupportTickets),
	}
}

func (r *SupportTicketMongoRepository) CreateTicket(ctx context.Context, ticket *models.SupportTicket) (string, error) {
	if ticket.ID == "" {
		ticket.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, ticket)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return ticket.ID, nil
}

func (r *SupportTicketMongoRepository) FindTicketByID(ctx context.Context, ticketID string) (*models.SupportTicket, error) {
	if _, err := primitive.ObjectIDFromHex(ticketID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var ticket models.SupportTicket
	err := r.Collection.FindOne(ctx, bson.M{"_id": ticketID}).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &ticket, nil
}

func (r *SupportTicketMongoRepository) FindTicketsByAuthor(ctx context.Context, authorID string) ([]models.SupportTicket, error) {
	return r.findTickets(ctx, bson.M{"authorId": authorID})
}

func (r *SupportTicketMongoRepository) FindAllTickets(ctx context.Context) ([]models.SupportTicket, error) {
	return r.findTickets(ctx, bson.M{})
}

func (r *SupportTicketMongoRepository) findTickets(ctx context.Context, filter bson.M) ([]models.SupportTicket, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	tickets := []models.SupportTicket{}
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return tickets, nil
}

func (r *SupportTicketMongoRepository) UpdateTicket(ctx context.Context, ticket *models.SupportTicket) error {
	if _, err := primitive.ObjectIDFromHex(ticket.ID); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": ticket.ID}, ticket)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
