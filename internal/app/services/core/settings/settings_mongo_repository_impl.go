package settings

import (
	"context"

	"suma-service/internal/app/contracts"
	"suma-service/internal/app/models"
	"suma-service/internal/pkg/constvars"
	"suma-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The settings collection holds exactly one document under a fixed id.
const settingsDocID = "platform"

type SettingsMongoRepository struct {
	Collection *mongo.Collection
}

func NewSettingsMongoRepository(db *mongo.Client, dbName string) contracts.SettingsRepository {
	return &SettingsMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSettings),
	}
}

func (r *SettingsMongoRepository) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.Collection.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&settings)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.Settings{ID: settingsDocID, CityFees: []models.CityFee{}}, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &settings, nil
}

func (r *SettingsMongoRepository) UpsertSettings(ctx context.Context, settings *models.Settings) error {
	settings.ID = settingsDocID
	opts := options.Replace().SetUpsert(true)
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, settings, opts)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
