package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveydash/internal/model"
)

// ResponseRepo handles MongoDB operations for survey responses.
// Answers are embedded in their response document.
type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) error
	GetByID(ctx context.Context, id string) (*model.Response, error)
	// List returns the responses of one survey, or of all surveys when
	// surveyID is empty
	List(ctx context.Context, surveyID string) ([]model.Response, error)
	CountBySurvey(ctx context.Context, surveyID string) (int, error)
	CountsBySurvey(ctx context.Context) (map[string]int, error)
	Delete(ctx context.Context, id string) error
	DeleteBySurvey(ctx context.Context, surveyID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(ctx context.Context, db *mongo.Database) ResponseRepo {
	r := &responseRepo{
		collection: db.Collection("responses"),
	}
	ensureIndexes(ctx, r.collection,
		bson.D{{Key: "surveyId", Value: 1}, {Key: "createdAt", Value: -1}},
		bson.D{{Key: "createdAt", Value: -1}},
	)
	return r
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) error {
	if response.CreatedAt.IsZero() {
		response.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, response)
	return err
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	var response model.Response
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepo) List(ctx context.Context, surveyID string) ([]model.Response, error) {
	filter := bson.M{}
	if surveyID != "" {
		filter["surveyId"] = surveyID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []model.Response{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountBySurvey(ctx context.Context, surveyID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *responseRepo) CountsBySurvey(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$surveyId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		SurveyID string `bson:"_id"`
		Count    int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.SurveyID] = row.Count
	}
	return counts, nil
}

func (r *responseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *responseRepo) DeleteBySurvey(ctx context.Context, surveyID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
