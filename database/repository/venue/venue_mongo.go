package venueRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"concierge/models"
	"concierge/services/venue"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName     = "venues"
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// MongoVenueRepo implements VenueRepository using MongoDB.
type MongoVenueRepo struct {
	coll *mongo.Collection
}

// NewMongoVenueRepo creates a repository on the "venues" collection of db and ensures its indexes.
func NewMongoVenueRepo(db *mongo.Database) (*MongoVenueRepo, error) {
	repo := &MongoVenueRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoVenueRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "categories", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create venue indexes: %w", err)
	}
	return nil
}

func (r *MongoVenueRepo) GetByID(ctx context.Context, id string) (*models.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v models.Venue
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("venue %q: %w", id, venue.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch venue with id %s: %w", id, err)
	}
	v.Distance = nil
	return &v, nil
}

// Search filters in the database, then fills distances from q.Near.
func (r *MongoVenueRepo) Search(ctx context.Context, q models.VenueQuery) ([]models.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(searchLimit(q.Limit)))

	cursor, err := r.coll.Find(ctx, buildSearchFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	defer cursor.Close(ctx)

	var venues []models.Venue
	for cursor.Next(ctx) {
		var v models.Venue
		if err := cursor.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode venue: %w", err)
		}
		v.Distance = nil
		venues = append(venues, v)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("venue cursor: %w", err)
	}
	return venue.Finalize(venues, q), nil
}

// UpsertMany replaces or inserts venues by id and reports how many were written.
func (r *MongoVenueRepo) UpsertMany(ctx context.Context, venues []models.Venue) (int, error) {
	if len(venues) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(venues))
	for _, v := range venues {
		v.Distance = nil
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"id": v.ID}).
			SetReplacement(v).
			SetUpsert(true))
	}
	res, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert venues: %w", err)
	}
	return int(res.UpsertedCount + res.ModifiedCount), nil
}

func (r *MongoVenueRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return n, nil
}

func searchLimit(n int) int {
	switch {
	case n <= 0:
		return defaultSearchLimit
	case n > maxSearchLimit:
		return maxSearchLimit
	}
	return n
}

// buildSearchFilter mirrors venue.Matches: category and text are case-insensitive substring matches.
func buildSearchFilter(q models.VenueQuery) bson.M {
	filter := bson.M{}
	if c := strings.TrimSpace(q.Category); c != "" {
		filter["categories"] = bson.M{"$regex": regexp.QuoteMeta(c), "$options": "i"}
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"categories": pattern},
		}
	}
	return filter
}
