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
)

type SellerMongoRepository struct {
	Collection *mongo.Collection
}

func NewSellerMongoRepository(db *mongo.Client, dbName string) contracts.SellerRepository {
	return &SellerMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSellers),
	}
}

func (r *SellerMongoRepository) CreateSeller(ctx context.Context, seller *models.Seller) (string, error) {
	if seller.ID == "" {
		seller.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, seller)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return seller.ID, nil
}

func (r *SellerMongoRepository) FindSellerByID(ctx context.Context, sellerID string) (*models.Seller, error) {
	if _, err := primitive.ObjectIDFromHex(sellerID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var seller models.Seller
	err := r.Collection.FindOne(ctx, bson.M{"_id": sellerID}).Decode(&seller)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &seller, nil
}

func (r *SellerMongoRepository) FindSellers(ctx context.Context) ([]models.Seller, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	sellers := []models.Seller{}
	if err := cursor.All(ctx, &sellers); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return sellers, nil
}
