package games

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("game not found")

// Repository defines persistence operations for games.
type Repository interface {
	List(ctx context.Context) ([]*Game, error)
	Get(ctx context.Context, id string) (*Game, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Game, error)
	Create(ctx context.Context, g *Game) (*Game, error)
	Update(ctx context.Context, id string, in *UpdateInput) (*Game, error)
	Delete(ctx context.Context, id string) error
}

// MongoRepository implements Repository on a MongoDB collection.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) List(ctx context.Context) ([]*Game, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateAdded", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Game{}
	for cur.Next(ctx) {
		var g Game
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out = append(out, &g)
	}
	return out, cur.Err()
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid game id %q: %w", id, err)
	}
	var g Game
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// GetByIDs fetches several games in one round trip and keys the result by hex
// id. Malformed or unknown ids are simply absent from the map.
func (r *MongoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*Game, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	out := make(map[string]*Game, len(oids))
	if len(oids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var g Game
		if err := cur.Decode(&g); err != nil {
			return nil, err
		}
		out[g.ID.Hex()] = &g
	}
	return out, cur.Err()
}

func (r *MongoRepository) Create(ctx context.Context, g *Game) (*Game, error) {
	res, err := r.col.InsertOne(ctx, g)
	if err != nil {
		return nil, err
	}
	g.ID = res.InsertedID.(primitive.ObjectID)
	return g, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, in *UpdateInput) (*Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid game id %q: %w", id, err)
	}
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Platform != nil {
		set["platform"] = *in.Platform
	}
	if in.Genre != nil {
		set["genre"] = *in.Genre
	}
	if in.Completed != nil {
		set["completed"] = *in.Completed
	}
	if in.Rating != nil {
		set["rating"] = *in.Rating
	}
	if in.HoursPlayed != nil {
		set["hoursPlayed"] = *in.HoursPlayed
	}
	if in.CoverURL != nil {
		set["coverUrl"] = *in.CoverURL
	}
	if len(set) == 0 {
		return r.Get(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Game
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
		return fmt.Errorf("invalid game id %q: %w", id, err)
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

var _ Repository = (*MongoRepository)(nil)
