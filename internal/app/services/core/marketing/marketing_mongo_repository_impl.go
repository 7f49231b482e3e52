package marketing

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

type MarketingMongoRepository struct {
	Collection *mongo.Collection
}

func NewMarketingMongoRepository(db *mongo.Client, dbName string) contracts.MarketingRepository {
	return &MarketingMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionMarketingMaterials),
	}
}

func (r *MarketingMongoRepository) CreateMaterial(ctx context.Context, material *models.MarketingMaterial) (string, error) {
	if material.ID == "" {
		material.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, material)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return material.ID, nil
}

func (r *MarketingMongoRepository) FindMaterialByID(ctx context.Context, materialID string) (*models.MarketingMaterial, error) {
	if _, err := primitive.ObjectIDFromHex(materialID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var material models.MarketingMaterial
	err := r.Collection.FindOne(ctx, bson.M{"_id": materialID}).Decode(&material)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &material, nil
}

func (r *MarketingMongoRepository) FindAllMaterials(ctx context.Context) ([]models.MarketingMaterial, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	materials := []models.MarketingMaterial{}
	if err := cursor.All(ctx, &materials); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return materials, nil
}

func (r *MarketingMongoRepository) DeleteMaterial(ctx context.Context, materialID string) error {
	if _, err := primitive.ObjectIDFromHex(materialID); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": materialID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
