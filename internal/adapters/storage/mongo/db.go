package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	DefaultDatabase   = "mediscreen"
	DefaultCollection = "histories"
)

// Open conecta el cliente y verifica con un ping.
// maxPoolSize <= 0 deja el default del driver.
func Open(ctx context.Context, uri string, maxPoolSize int) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if maxPoolSize > 0 {
		opts.SetMaxPoolSize(uint64(maxPoolSize))
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea el índice secundario sobre notes y uno sobre patId
// (la búsqueda por paciente no debería requerir scan).
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "notes", Value: 1}},
			Options: options.Index().SetName("notes_idx"),
		},
		{
			Keys:    bson.D{{Key: "patId", Value: 1}},
			Options: options.Index().SetName("pat_id_idx"),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes for %s: %w", coll.Name(), err)
	}
	return nil
}
