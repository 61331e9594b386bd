package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoCollection is the collection holding stored objects.
const mongoCollection = "objects"

// MongoStore is a MongoDB-backed store. Objects live in a single
// collection keyed by _id; expiry is enforced by a TTL index on the
// expires_at field plus a client-side check, since the server's TTL
// monitor only runs periodically.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// mongoObject is the document layout for one stored object.
type mongoObject struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoStore connects to MongoDB at uri and prepares the object
// collection in the given database, creating the TTL index if needed.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	col := client.Database(database).Collection(mongoCollection)
	_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{client: client, col: col}, nil
}

// Put upserts a value.
func (s *MongoStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	obj := mongoObject{Key: key, Data: data}
	if ttl > 0 {
		expires := time.Now().Add(ttl)
		obj.ExpiresAt = &expires
	}

	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": key}, obj, options.Replace().SetUpsert(true))
	return err
}

// Get retrieves a value, translating mongo.ErrNoDocuments to ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var obj mongoObject
	err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&obj)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// The TTL monitor may lag behind the expiry time.
	if obj.ExpiresAt != nil && time.Now().After(*obj.ExpiresAt) {
		_, _ = s.col.DeleteOne(ctx, bson.M{"_id": key})
		return nil, ErrNotFound
	}
	return obj.Data, nil
}

// Delete removes a key.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
