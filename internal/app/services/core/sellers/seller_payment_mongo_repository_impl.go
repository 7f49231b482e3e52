package sellers

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

type SellerPaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewSellerPaymentMongoRepository(db *mongo.Client, dbName string) contracts.SellerPaymentRepository {
	return &SellerPaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSellerPayments),
	}
}

func (r *SellerPaymentMongoRepository) CreateSellerPayment(ctx context.Context, payment *models.SellerPayment) (string, error) {
	if payment.ID == "" {
		payment.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return payment.ID, nil
}

func (r *SellerPaymentMongoRepository) FindSellerPaymentsBySeller(ctx context.Context, sellerID string) ([]models.SellerPayment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "paymentDate", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"sellerId": sellerID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	payments := []models.SellerPayment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}

// MarkSellerPaymentsRead is the one batched multi-document write in SUMA: a
// page reload right after mark-all-read must not resurface the same payouts.
func (r *SellerPaymentMongoRepository) MarkSellerPaymentsRead(ctx context.Context, sellerID string) error {
	_, err := r.Collection.UpdateMany(ctx,
		bson.M{"sellerId": sellerID, "unread": true},
		bson.M{"$set": bson.M{"unread": false}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
