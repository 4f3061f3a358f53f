package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultRecordsCollection = "store_cache"

type record struct {
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type mongoRecords struct {
	pool       *mongo.Database
	collection string
}

// NewMongoRecords stores one document per record. Run MigrateMongo first so keys are unique.
func NewMongoRecords(pool *mongo.Database, collection string) RecordStore {
	if collection == "" {
		collection = DefaultRecordsCollection
	}
	return &mongoRecords{pool: pool, collection: collection}
}

func (a *mongoRecords) Get(ctx context.Context, key string) ([]byte, error) {
	var doc record
	err := a.pool.Collection(a.collection).FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

func (a *mongoRecords) Set(ctx context.Context, key string, value []byte) error {
	update := bson.M{"$set": record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}}
	res, err := a.pool.Collection(a.collection).UpdateOne(ctx, bson.M{"key": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	log.Debug().Msgf("stored record %s (matched %d, upserted %d)", key, res.MatchedCount, res.UpsertedCount)
	return nil
}

func (a *mongoRecords) Delete(ctx context.Context, key string) error {
	_, err := a.pool.Collection(a.collection).DeleteOne(ctx, bson.M{"key": key})
	return err
}
