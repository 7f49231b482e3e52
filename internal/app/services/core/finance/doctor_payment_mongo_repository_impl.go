package finance

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

type DoctorPaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorPaymentMongoRepository(db *mongo.Client, dbName string) contracts.DoctorPaymentRepository {
	return &DoctorPaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctorPayments),
	}
}

func (r *DoctorPaymentMongoRepository) CreateDoctorPayment(ctx context.Context, payment *models.DoctorPayment) (string, error) {
	if payment.ID == "" {
		payment.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return payment.ID, nil
}

func (r *DoctorPaymentMongoRepository) FindDoctorPaymentByID(ctx context.Context, paymentID string) (*models.DoctorPayment, error) {
	if _, err := primitive.ObjectIDFromHex(paymentID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var payment models.DoctorPayment
	err := r.Collection.FindOne(ctx, bson.M{"_id": paymentID}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *DoctorPaymentMongoRepository) FindDoctorPaymentsByDoctor(ctx context.Context, doctorID string) ([]models.DoctorPayment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "paymentDate", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"doctorId": doctorID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	payments := []models.DoctorPayment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}

func (r *DoctorPaymentMongoRepository) UpdateDoctorPayment(ctx context.Context, payment *models.DoctorPayment) error {
	if _, err := primitive.ObjectIDFromHex(payment.ID); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": payment.ID}, payment)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
