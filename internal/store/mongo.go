package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jonathan/portfolio/internal/types"
)

const (
	defaultMongoDatabase = "portfolio"
	resumesCollection    = "resumes"
)

// Mongo stores resumes in a MongoDB collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// ConnectMongo connects to MongoDB. The database is taken from the URL path
// and defaults to "portfolio".
func ConnectMongo(ctx context.Context, databaseURL string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	coll := client.Database(databaseName(databaseURL)).Collection(resumesCollection)
	return &Mongo{client: client, coll: coll}, nil
}

// Get loads a resume by id. Ids written by other tools as ObjectIDs are
// matched as well as string ids.
func (m *Mongo) Get(ctx context.Context, id string) (*types.Resume, error) {
	var r types.Resume
	err := m.coll.FindOne(ctx, idFilter(id)).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	r.ID = id
	return &r, nil
}

// Save upserts a resume.
func (m *Mongo) Save(ctx context.Context, r *types.Resume) (string, error) {
	if _, err := encode(r); err != nil {
		return "", err
	}

	doc := *r
	doc.Normalize()
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, &doc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("failed to save resume: %w", err)
	}
	return doc.ID, nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func databaseName(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return defaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultMongoDatabase
}

var _ Store = (*Mongo)(nil)
