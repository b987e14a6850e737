package repository

import (
	"context"

	"github.com/BerniceZTT/pipeline_end/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoOpportunityStore 商机存储的MongoDB实现
type mongoOpportunityStore struct{}

// NewMongoOpportunityStore 创建商机存储，须在 InitMongoDB 之后调用
func NewMongoOpportunityStore() OpportunityStore {
	return &mongoOpportunityStore{}
}

func (s *mongoOpportunityStore) Insert(ctx context.Context, opp *models.Opportunity) error {
	if opp.ID.IsZero() {
		opp.ID = primitive.NewObjectID()
	}
	_, err := Collection(OpportunitiesCollection).InsertOne(ctx, opp)
	// leadid 上的部分唯一索引把并发的重复转化变成键冲突
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateLeadRef
	}
	return err
}

func (s *mongoOpportunityStore) FindByID(ctx context.Context, id string) (*models.Opportunity, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var opp models.Opportunity
	err = Collection(OpportunitiesCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&opp)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

func (s *mongoOpportunityStore) FindByLeadID(ctx context.Context, leadID string) (*models.Opportunity, error) {
	var opp models.Opportunity
	err := Collection(OpportunitiesCollection).
		FindOne(ctx, bson.M{"leadid": leadID}).
		Decode(&opp)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

func (s *mongoOpportunityStore) FindAll(ctx context.Context, ownerID string) ([]models.Opportunity, error) {
	filter := bson.M{}
	if ownerID != "" {
		filter["ownerid"] = ownerID
	}

	findOptions := options.Find().SetSort(bson.M{"createdat": -1})
	cursor, err := Collection(OpportunitiesCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var opps []models.Opportunity
	if err := cursor.All(ctx, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

func (s *mongoOpportunityStore) Update(ctx context.Context, id string, opp *models.Opportunity) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":     opp.Title,
		"value":     opp.Value,
		"stage":     opp.Stage,
		"updatedat": opp.UpdatedAt,
	}}

	result, err := Collection(OpportunitiesCollection).UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoOpportunityStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := Collection(OpportunitiesCollection).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
