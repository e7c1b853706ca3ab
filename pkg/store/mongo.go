package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tmarsh/gantry/pkg/plan"
)

// MongoStore persists the draft and the version history in MongoDB.
// It implements both DraftStore and VersionStore so the served
// deployment runs off one connection.
type MongoStore struct {
	client   *mongo.Client
	drafts   *mongo.Collection
	versions *mongo.Collection
}

// draftID is the fixed _id of the single working draft.
const draftID = "draft"

// NewMongoStore connects to MongoDB and returns a store over the given
// database. Collections are created lazily on first write.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	db := client.Database(database)
	return &MongoStore{
		client:   client,
		drafts:   db.Collection("drafts"),
		versions: db.Collection("versions"),
	}, nil
}

// draftRecord wraps the draft document with its fixed key.
type draftRecord struct {
	ID       string        `bson:"_id"`
	Document plan.Document `bson:"document"`
}

// Load retrieves the draft document.
func (s *MongoStore) Load(ctx context.Context) (*plan.Document, error) {
	var rec draftRecord
	err := s.drafts.FindOne(ctx, bson.D{{Key: "_id", Value: draftID}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc := rec.Document
	doc.Normalize()
	return &doc, nil
}

// Save overwrites the draft document.
func (s *MongoStore) Save(ctx context.Context, doc *plan.Document) error {
	rec := draftRecord{ID: draftID, Document: *doc}
	_, err := s.drafts.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: draftID}},
		rec,
		options.Replace().SetUpsert(true))
	return err
}

// SaveVersion appends a snapshot under the given label.
func (s *MongoStore) SaveVersion(ctx context.Context, label string, doc *plan.Document) (plan.Version, error) {
	v := plan.Version{
		ID:        plan.NewID("ver"),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		Groups:    doc.Groups,
		Tasks:     doc.Tasks,
	}
	if _, err := s.versions.InsertOne(ctx, v); err != nil {
		return plan.Version{}, err
	}
	return v, nil
}

// List returns all versions, newest first.
func (s *MongoStore) List(ctx context.Context) ([]plan.Version, error) {
	cur, err := s.versions.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []plan.Version
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get retrieves one version by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (plan.Version, error) {
	var v plan.Version
	err := s.versions.FindOne(ctx, bson.D{{Key: "id", Value: id}}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return plan.Version{}, ErrNotFound
	}
	if err != nil {
		return plan.Version{}, err
	}
	return v, nil
}

// Count returns the number of stored versions.
func (s *MongoStore) Count(ctx context.Context) (int, error) {
	n, err := s.versions.CountDocuments(ctx, bson.D{})
	return int(n), err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements both store interfaces.
var (
	_ DraftStore   = (*MongoStore)(nil)
	_ VersionStore = (*MongoStore)(nil)
)
