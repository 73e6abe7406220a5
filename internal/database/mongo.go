package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connect opens a client for uri and verifies it with a ping. The client is
// safe for concurrent use and should be shared by the whole process.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}

// Disconnect closes the client, waiting at most timeout for in-flight
// operations.
func Disconnect(client *mongo.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// ProductIndexes are the indexes backing the newest-first listing and the
// status/date filter.
func ProductIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("createdAt_desc"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("status_date"),
		},
	}
}

// EnsureIndexes creates ProductIndexes on coll. Existing indexes with the
// same definition are left alone.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	names, err := coll.Indexes().CreateMany(ctx, ProductIndexes())
	if err != nil {
		return nil, fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
	}
	return names, nil
}
