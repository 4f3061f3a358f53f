package repository

import (
	"context"

	migrate "github.com/xakep666/mongo-migrate"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const recordKeyIndex = "key_unique"

func recordMigrations(collection string) []migrate.Migration {
	return []migrate.Migration{
		{
			Version:     1,
			Description: "unique index on record key",
			Up: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "key", Value: 1}},
					Options: options.Index().SetUnique(true).SetName(recordKeyIndex),
				})
				return err
			},
			Down: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection(collection).Indexes().DropOne(ctx, recordKeyIndex)
				return err
			},
		},
	}
}

// MigrateMongo applies all pending migrations of the record collection.
func MigrateMongo(ctx context.Context, db *mongo.Database, collection string) error {
	if collection == "" {
		collection = DefaultRecordsCollection
	}
	m := migrate.NewMigrate(db, recordMigrations(collection)...)
	m.SetMigrationsCollection(collection + "_migrations")
	return m.Up(ctx, migrate.AllAvailable)
}
