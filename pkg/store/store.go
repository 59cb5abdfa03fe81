// Package store persists finished layouts in MongoDB so deployments can keep
// a history of plan runs and serve them over the HTTP API.
//
// The store is deliberately outside the planning core: the pipeline never
// reads from it, it only receives finished layouts.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/layout"
)

const collectionName = "plans"

// Document is one stored plan run. The layout itself is embedded; PlanHash
// links the document to the cache entry produced by the same inputs.
type Document struct {
	ID        string         `bson:"_id" json:"id"`
	PlanHash  string         `bson:"plan_hash" json:"plan_hash"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
	Passed    bool           `bson:"passed" json:"passed"`
	Layout    *layout.Layout `bson:"layout" json:"layout"`
}

// NewDocument wraps a layout for persistence with a fresh random id.
func NewDocument(l *layout.Layout, planHash string) Document {
	return Document{
		ID:        uuid.NewString(),
		PlanHash:  planHash,
		CreatedAt: time.Now().UTC(),
		Passed:    l.Passed(),
		Layout:    l,
	}
}

// Store wraps the MongoDB collection holding plan documents.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "connecting to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "pinging mongodb")
	}
	return &Store{
		client: client,
		col:    client.Database(database).Collection(collectionName),
	}, nil
}

// Save persists a layout and returns the new document id.
func (s *Store) Save(ctx context.Context, l *layout.Layout, planHash string) (string, error) {
	doc := NewDocument(l, planHash)
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "saving plan")
	}
	return doc.ID, nil
}

// Get loads one stored plan by id.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "plan %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "loading plan %s", id)
	}
	return &doc, nil
}

// List returns the most recent plans, newest first.
func (s *Store) List(ctx context.Context, limit int64) ([]Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "listing plans")
	}
	defer cur.Close(ctx)

	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "decoding plans")
	}
	return docs, nil
}

// Delete removes one stored plan.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "deleting plan %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeNotFound, "plan %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
