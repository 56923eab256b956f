package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wetrack/wetrack/internal/core/domain"
)

const locationsCollection = "locations"

type LocationRepository struct {
	coll *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{coll: db.Collection(locationsCollection)}
}

type mongoLocation struct {
	Username  string    `bson:"username"`
	Latitude  float64   `bson:"latitude"`
	Longitude float64   `bson:"longitude"`
	Time      time.Time `bson:"time"`
}

func (d mongoLocation) toDomain() domain.Location {
	return domain.Location{
		Username:  d.Username,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		Time:      domain.NewDateTime(d.Time.UTC()),
	}
}

func (r *LocationRepository) Append(ctx context.Context, username string, locations []domain.Location) error {
	docs := make([]any, 0, len(locations))
	for _, loc := range locations {
		docs = append(docs, mongoLocation{
			Username:  username,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Time:      loc.Time.Time,
		})
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert locations: %w", err)
	}
	return nil
}

func (r *LocationRepository) FindSince(ctx context.Context, username string, since time.Time) ([]domain.Location, error) {
	filter := bson.M{"username": username, "time": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find locations: %w", err)
	}
	defer cursor.Close(ctx)

	locations := make([]domain.Location, 0)
	for cursor.Next(ctx) {
		var doc mongoLocation
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		locations = append(locations, doc.toDomain())
	}
	return locations, cursor.Err()
}

func (r *LocationRepository) FindLatest(ctx context.Context, username string) (*domain.Location, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "time", Value: -1}})

	var doc mongoLocation
	if err := r.coll.FindOne(ctx, bson.M{"username": username}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("find latest location: %w", err)
	}
	loc := doc.toDomain()
	return &loc, nil
}

func (r *LocationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "time", Value: -1}},
	})
	return err
}
