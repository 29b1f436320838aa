package repository

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveydash/internal/model"
)

// SurveyRepo handles MongoDB operations for surveys
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.Survey) error
	GetByID(ctx context.Context, id string) (*model.Survey, error)
	// List returns every survey, most recently updated first
	List(ctx context.Context) ([]model.Survey, error)
	Update(ctx context.Context, survey *model.Survey) error
	Delete(ctx context.Context, id string) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(ctx context.Context, db *mongo.Database) SurveyRepo {
	r := &surveyRepo{
		collection: db.Collection("surveys"),
	}
	ensureIndexes(ctx, r.collection,
		bson.D{{Key: "updatedAt", Value: -1}},
		bson.D{{Key: "createdBy", Value: 1}},
	)
	return r
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) error {
	now := time.Now().UTC()
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = now
	}
	survey.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, survey)
	return err
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	var survey model.Survey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) List(ctx context.Context) ([]model.Survey, error) {
	// search is applied by the caller with Unicode case folding, which a
	// $regex with the i option does not reproduce
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := []model.Survey{}
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	survey.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": survey.ID}, survey)
	return err
}

func (r *surveyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ensureIndexes creates non-unique indexes on coll, logging failures
func ensureIndexes(ctx context.Context, coll *mongo.Collection, keys ...bson.D) {
	for _, k := range keys {
		_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    k,
			Options: options.Index(),
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to create index",
				"collection", coll.Name(), "keys", k, "error", err)
		}
	}
}
