package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"expenseapi/internal/config"
)

// NewMongo connects to MongoDB and verifies the primary is reachable within the configured timeout.
// The client is safe for concurrent use and should be disconnected on shutdown.
func NewMongo(ctx context.Context, c config.MongoConfig) (*mongo.Client, error) {
	if c.URI == "" {
		return nil, errors.New("invalid mongo config: uri is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

// MongoCollection returns the expenses collection from the configured database.
func MongoCollection(client *mongo.Client, c config.MongoConfig) *mongo.Collection {
	return client.Database(c.Database).Collection(c.Collection)
}
