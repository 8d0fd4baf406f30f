package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	CollUsers       = "users"
	CollFacilities  = "facilities"
	CollAssignments = "assignments"
)

func New(ctx context.Context, logger *zap.Logger, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(dbName)
	if err = ensureIndexes(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("mongo index setup failed: %w", err)
	}

	logger.Info("mongo connected successfully")

	return client, db, nil
}

// ensureIndexes creates the unique email index uniqueness relies on.
// Concurrent duplicate registrations lose at this index, not in app code.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(CollAssignments).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "date", Value: -1}}},
	})

	return err
}
