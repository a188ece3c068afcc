package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cba-rental-scraper/models"
)

// ErrNotFound is returned by GetByID when no document matches the id.
var ErrNotFound = errors.New("property not found")

// MongoStore persists listings in the properties collection, keyed by
// zp_id, and serves the read-side queries of the API.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB, pings it, and returns a store
// bound to the given database and collection.
func NewMongoStore(uri, database, collection string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Seen reports whether a listing with the given zp_id already exists.
func (s *MongoStore) Seen(ctx context.Context, zpID string) (bool, error) {
	err := s.collection.FindOne(ctx, bson.M{"zp_id": zpID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo: find zp_id %s: %w", zpID, err)
	}
	return true, nil
}

// upsertFilter matches a listing by its dedup key. With upsert
// enabled, Mongo copies the filter's equality fields into a freshly
// inserted document, so zp_id needs no place in the update itself.
func upsertFilter(zpID string) bson.M {
	return bson.M{"zp_id": zpID}
}

// upsertDocument builds the update applied on every persist: all
// fields replaced except scraped_at, which is only written on first
// insert so the first-seen time survives re-scrapes.
func upsertDocument(l *models.Listing) bson.M {
	return bson.M{
		"$set": bson.M{
			"rental_price_original":         l.RentalPriceOriginal,
			"rental_currency_original":      l.RentalCurrencyOriginal,
			"rental_price_usd_normalized":   l.RentalPriceUSDNormalized,
			"expenses_price_original":       l.ExpensesPriceOriginal,
			"expenses_currency_original":    l.ExpensesCurrencyOriginal,
			"expenses_price_usd_normalized": l.ExpensesPriceUSDNormalized,
			"address":                       l.Address,
			"location":                      l.Location,
			"square_meters_area":            l.SquareMetersArea,
			"rooms":                         l.Rooms,
			"bedrooms":                      l.Bedrooms,
			"bathrooms":                     l.Bathrooms,
			"parking":                       l.Parking,
			"latitude":                      l.Latitude,
			"longitude":                     l.Longitude,
			"usd_buy_price":                 l.USDBuyPrice,
		},
		"$setOnInsert": bson.M{
			"scraped_at": l.ScrapedAt,
		},
	}
}

// Upsert writes the listing keyed on zp_id, replace-or-insert.
func (s *MongoStore) Upsert(ctx context.Context, l *models.Listing) error {
	_, err := s.collection.UpdateOne(ctx, upsertFilter(l.ZPID), upsertDocument(l),
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo: upsert zp_id %s: %w", l.ZPID, err)
	}
	return nil
}

// List returns up to limit stored listings.
func (s *MongoStore) List(ctx context.Context, limit int64) ([]models.StoredListing, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("mongo: list: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.StoredListing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("mongo: decode listings: %w", err)
	}
	return listings, nil
}

// GetByID looks up one listing by its document id. A malformed hex id
// behaves like a missing document.
func (s *MongoStore) GetByID(ctx context.Context, hexID string) (*models.StoredListing, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrNotFound
	}

	var listing models.StoredListing
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get %s: %w", hexID, err)
	}
	return &listing, nil
}

// StatsPerRoom groups listings by room count and returns the average
// normalized rental price and listing count per bucket, ascending by
// room count.
func (s *MongoStore) StatsPerRoom(ctx context.Context) ([]models.RoomStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$rooms"},
			{Key: "avg_rental_price_usd", Value: bson.D{{Key: "$avg", Value: "$rental_price_usd_normalized"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo: aggregate per-room stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []models.RoomStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("mongo: decode per-room stats: %w", err)
	}
	return stats, nil
}
