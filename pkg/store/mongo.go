package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BoardsCollection is the collection holding board records.
const BoardsCollection = "boards"

// MongoStore keeps each record as one document keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// MongoOptions configures NewMongoStore.
type MongoOptions struct {
	URI      string
	Database string
}

type mongoRecord struct {
	ID      string    `bson:"_id"`
	Data    []byte    `bson:"data"`
	SavedAt time.Time `bson:"saved_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	db := opts.Database
	if db == "" {
		db = "sketchboard"
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(BoardsCollection),
		now:    time.Now,
	}, nil
}

// Get retrieves a record. A missing document is a miss.
func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Data, true, nil
}

// Set upserts the record.
func (s *MongoStore) Set(ctx context.Context, key string, data []byte) error {
	rec := mongoRecord{ID: key, Data: data, SavedAt: s.now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, rec, options.Replace().SetUpsert(true))
	return err
}

// Delete removes the record.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Location describes the key's address.
func (s *MongoStore) Location(key string) string {
	return fmt.Sprintf("mongodb://%s.%s/%s", s.coll.Database().Name(), s.coll.Name(), key)
}

var (
	_ Store   = (*MongoStore)(nil)
	_ Locator = (*MongoStore)(nil)
)
