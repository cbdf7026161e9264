// Package store persists enhanced diagram specs in MongoDB so computed
// layouts can be fetched again by id without recomputation.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
)

// Diagram kinds.
const (
	KindGraph = "concept_map"
	KindTree  = "mind_map"
)

// Document is one persisted diagram. Exactly one of Graph or Tree is
// set, matching Kind.
type Document struct {
	ID        string             `bson:"_id" json:"id"`
	Kind      string             `bson:"kind" json:"kind"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Graph     *graphmap.Enhanced `bson:"graph,omitempty" json:"graph,omitempty"`
	Tree      *mindmap.Enhanced  `bson:"tree,omitempty" json:"tree,omitempty"`
}

// Store wraps a MongoDB collection of diagram documents.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection("diagrams"),
	}, nil
}

// SaveGraph persists a concept-map result and returns its new id.
func (s *Store) SaveGraph(ctx context.Context, enhanced *graphmap.Enhanced) (string, error) {
	doc := Document{
		ID:        uuid.NewString(),
		Kind:      KindGraph,
		CreatedAt: time.Now().UTC(),
		Graph:     enhanced,
	}
	return s.insert(ctx, doc)
}

// SaveTree persists a mind-map result and returns its new id.
func (s *Store) SaveTree(ctx context.Context, enhanced *mindmap.Enhanced) (string, error) {
	doc := Document{
		ID:        uuid.NewString(),
		Kind:      KindTree,
		CreatedAt: time.Now().UTC(),
		Tree:      enhanced,
	}
	return s.insert(ctx, doc)
}

func (s *Store) insert(ctx context.Context, doc Document) (string, error) {
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "insert diagram")
	}
	return doc.ID, nil
}

// Get fetches a diagram by id.
func (s *Store) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "fetch diagram %s", id)
	}
	return &doc, nil
}

// Delete removes a diagram by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete diagram %s", id)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeDiagramNotFound, "diagram %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
