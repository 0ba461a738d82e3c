package reviews

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("review not found")

// Repository defines persistence operations for reviews.
type Repository interface {
	List(ctx context.Context) ([]*Review, error)
	ListByGame(ctx context.Context, gameID string) ([]*Review, error)
	Create(ctx context.Context, rv *Review) (*Review, error)
	Update(ctx context.Context, id string, in *UpdateInput) (*Review, error)
	Delete(ctx context.Context, id string) error
	DeleteByGame(ctx context.Context, gameID string) (int64, error)
}

// MongoRepository implements Repository on a MongoDB collection. An index on
// gameId keeps per-game listing and the cascade purge cheap.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "gameId", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]*Review, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepository) ListByGame(ctx context.Context, gameID string) ([]*Review, error) {
	return r.find(ctx, bson.M{"gameId": gameID})
}

func (r *MongoRepository) find(ctx context.Context, filter bson.M) ([]*Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Review{}
	for cur.Next(ctx) {
		var rv Review
		if err := cur.Decode(&rv); err != nil {
			return nil, err
		}
		out = append(out, &rv)
	}
	return out, cur.Err()
}

func (r *MongoRepository) Create(ctx context.Context, rv *Review) (*Review, error) {
	res, err := r.col.InsertOne(ctx, rv)
	if err != nil {
		return nil, err
	}
	rv.ID = res.InsertedID.(primitive.ObjectID)
	return rv, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, in *UpdateInput) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid review id %q: %w", id, err)
	}
	set := bson.M{}
	if in.GameID != nil {
		set["gameId"] = *in.GameID
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Content != nil {
		set["content"] = *in.Content
	}
	if in.Rating != nil {
		set["rating"] = *in.Rating
	}
	if len(set) == 0 {
		var rv Review
		if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&rv); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &rv, nil
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Review
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid review id %q: %w", id, err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"gameId": gameID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ Repository = (*MongoRepository)(nil)
