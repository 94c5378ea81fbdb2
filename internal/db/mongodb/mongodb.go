package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AI2HU/gdc/internal/models"
)

// MongoDB implements the counter store on a MongoDB collection
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	config   *models.Config
}

const collCounters = "view_counters"

type counterDoc struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// New creates a new MongoDB store instance
func New(config *models.Config) (*MongoDB, error) {
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb counter store requires a connection URI")
	}
	return &MongoDB{
		config: config,
	}, nil
}

func (m *MongoDB) Name() string { return "mongodb" }

// Connect establishes connection to MongoDB
func (m *MongoDB) Connect(ctx context.Context) error {
	clientOptions := options.Client().ApplyURI(m.config.URI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := m.config.Database
	if database == "" {
		database = "gdc"
	}

	m.client = client
	m.database = client.Database(database)

	if err := m.createIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// Disconnect closes the MongoDB connection
func (m *MongoDB) Disconnect(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}

// Ping checks the database connection
func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("not connected to database")
	}
	return m.client.Ping(ctx, nil)
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	_, err := m.database.Collection(collCounters).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create counter indexes: %w", err)
	}
	return nil
}

// Get returns the value under key
func (m *MongoDB) Get(ctx context.Context, key string) (string, bool, error) {
	if m.database == nil {
		return "", false, fmt.Errorf("not connected to database")
	}

	var doc counterDoc
	err := m.database.Collection(collCounters).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get counter: %w", err)
	}
	return doc.Value, true, nil
}

// Set overwrites the value under key
func (m *MongoDB) Set(ctx context.Context, key, value string) error {
	if m.database == nil {
		return fmt.Errorf("not connected to database")
	}

	doc := counterDoc{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.database.Collection(collCounters).ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("failed to set counter: %w", err)
	}
	return nil
}

// Keys lists keys starting with prefix
func (m *MongoDB) Keys(ctx context.Context, prefix string) ([]string, error) {
	if m.database == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetProjection(bson.M{"_id": 1})

	cursor, err := m.database.Collection(collCounters).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list counters: %w", err)
	}
	defer cursor.Close(ctx)

	var keys []string
	for cursor.Next(ctx) {
		var doc struct {
			Key string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode counter: %w", err)
		}
		keys = append(keys, doc.Key)
	}
	return keys, cursor.Err()
}
