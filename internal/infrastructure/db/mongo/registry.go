package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cereza/orderdesk/internal/core/domain"
)

type clientLogin struct {
	CreatedAt time.Time `bson:"created_at"`
	Name      string    `bson:"name"`
	Contact   string    `bson:"contact"`
}

// Registry implements ports.ClientRegistry on the clients collection.
type Registry struct {
	col *mongo.Collection
	now func() time.Time
	log zerolog.Logger
}

func (r *Registry) Append(ctx context.Context, name, contact string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(contact) == "" {
		return fmt.Errorf("%w: name and contact are required", domain.ErrValidation)
	}
	entry := domain.NewClientLogEntry(r.now().Truncate(time.Second), name, contact)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := clientLogin{CreatedAt: entry.LoggedAt, Name: entry.Name, Contact: entry.Contact}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert client: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *Registry) ReadAll(ctx context.Context) (domain.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: find clients: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	return clientsFromCursor(ctx, cur, r.log), nil
}

func clientsFromCursor(ctx context.Context, cur *mongo.Cursor, log zerolog.Logger) domain.Dataset {
	ds := domain.EmptyDataset(domain.ClientColumns)

	var logins []clientLogin
	if err := cur.All(ctx, &logins); err != nil {
		log.Warn().Err(err).Str("collection", collectionClients).Msg("unreadable client documents, returning an empty registry")
		return ds
	}
	for _, c := range logins {
		ds.Rows = append(ds.Rows, []string{c.CreatedAt.Local().Format(domain.RowTimeLayout), c.Name, c.Contact})
	}
	return ds
}
