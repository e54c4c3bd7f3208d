// Package mongo is a MongoDB settings backend.
// Documents are stored in the guilds collection as {guildId, value}.
package mongo

import (
	"context"

	"emperror.dev/errors"
	"github.com/jamesatjaminit/Jam-Bot/settings"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the collection settings are stored in.
const Collection = "guilds"

var _ settings.Backend = (*Backend)(nil)

// Backend stores settings documents in MongoDB.
type Backend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type guildDocument struct {
	GuildID string `bson:"guildId"`
	Value   bson.M `bson:"value"`
}

// New connects to MongoDB and uses the given database.
func New(ctx context.Context, uri, database string) (*Backend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging mongodb")
	}

	return &Backend{
		client: client,
		coll:   client.Database(database).Collection(Collection),
	}, nil
}

// Close disconnects from MongoDB.
func (b *Backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

// FindOne returns the settings document for a guild, or settings.ErrNotFound.
func (b *Backend) FindOne(ctx context.Context, guildID string) (settings.Document, error) {
	var doc guildDocument
	err := b.coll.FindOne(ctx, bson.M{"guildId": guildID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, settings.ErrNotFound
		}
		return nil, errors.Wrap(err, "finding settings")
	}

	return Normalize(doc.Value), nil
}

// ReplaceOne inserts or replaces the settings document for a guild.
func (b *Backend) ReplaceOne(ctx context.Context, guildID string, doc settings.Document) error {
	_, err := b.coll.ReplaceOne(ctx,
		bson.M{"guildId": guildID},
		guildDocument{GuildID: guildID, Value: bson.M(doc)},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(err, "replacing settings")
	}
	return nil
}

// Normalize converts a decoded BSON document into plain Go maps and slices.
func Normalize(m bson.M) settings.Document {
	out := make(settings.Document, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch v := v.(type) {
	case bson.M:
		return map[string]any(Normalize(v))
	case map[string]any:
		return map[string]any(Normalize(bson.M(v)))
	case bson.D:
		m := make(map[string]any, len(v))
		for _, e := range v {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(v))
		for i := range v {
			out[i] = normalize(v[i])
		}
		return out
	case primitive.DateTime:
		return v.Time().UTC()
	}
	return v
}
