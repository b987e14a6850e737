package repository

import (
	"context"

	"github.com/BerniceZTT/pipeline_end/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoLeadStore 线索存储的MongoDB实现
type mongoLeadStore struct{}

// NewMongoLeadStore 创建线索存储，须在 InitMongoDB 之后调用
func NewMongoLeadStore() LeadStore {
	return &mongoLeadStore{}
}

func (s *mongoLeadStore) Insert(ctx context.Context, lead *models.Lead) error {
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	_, err := Collection(LeadsCollection).InsertOne(ctx, lead)
	return err
}

func (s *mongoLeadStore) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var lead models.Lead
	err = Collection(LeadsCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *mongoLeadStore) FindAll(ctx context.Context, ownerID string) ([]models.Lead, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["ownerid"] = ownerID
	}

	findOptions := options.Find().SetSort(bson.M{"createdat": -1})
	cursor, err := Collection(LeadsCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *mongoLeadStore) Update(ctx context.Context, id string, lead *models.Lead) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":      lead.Name,
		"email":     lead.Email,
		"phone":     lead.Phone,
		"status":    lead.Status,
		"updatedat": lead.UpdatedAt,
	}}

	result, err := Collection(LeadsCollection).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoLeadStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := Collection(LeadsCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
