package mongo

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// orderLine is one document per line item, mirroring one ledger row.
type orderLine struct {
	OrderID     string    `bson:"order_id"`
	CreatedAt   time.Time `bson:"created_at"`
	Seq         int       `bson:"seq"`
	Client      string    `bson:"client"`
	Contact     string    `bson:"contact"`
	Product     string    `bson:"product"`
	Quantity    int       `bson:"quantity"`
	Description string    `bson:"description"`
	Link        string    `bson:"link"`
}

func (o orderLine) row() []string {
	return []string{
		o.OrderID,
		o.CreatedAt.Local().Format(domain.RowTimeLayout),
		o.Client,
		o.Contact,
		o.Product,
		strconv.Itoa(o.Quantity),
		o.Description,
		o.Link,
	}
}

// Ledger implements ports.OrderLedger on the orders collection.
type Ledger struct {
	col *mongo.Collection
	now func() time.Time
	log zerolog.Logger
}

func (l *Ledger) Append(ctx context.Context, identity domain.Identity, items []domain.LineItem) (string, error) {
	if err := domain.ValidateItems(items); err != nil {
		return "", err
	}

	now := l.now().Truncate(time.Second)
	orderID := domain.NewOrderID(now)

	docs := make([]any, 0, len(items))
	for i, it := range items {
		docs = append(docs, orderLine{
			OrderID:     orderID,
			CreatedAt:   now,
			Seq:         i,
			Client:      identity.Name,
			Contact:     identity.Contact,
			Product:     strings.TrimSpace(it.Name),
			Quantity:    it.Quantity,
			Description: it.Description,
			Link:        it.Link,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := l.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return "", fmt.Errorf("%w: insert order %s: %v", domain.ErrStorage, orderID, err)
	}
	return orderID, nil
}

func (l *Ledger) ReadAll(ctx context.Context) (domain.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := l.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: find orders: %v", domain.ErrStorage, err)
	}
	defer cur.Close(ctx)

	return ordersFromCursor(ctx, cur, l.log), nil
}

// ordersFromCursor decodes every order line. A document that does not decode
// makes the whole read unusable, so the empty ledger is returned instead.
func ordersFromCursor(ctx context.Context, cur *mongo.Cursor, log zerolog.Logger) domain.Dataset {
	var lines []orderLine
	if err := cur.All(ctx, &lines); err != nil {
		log.Warn().Err(err).Str("collection", collectionOrders).Msg("unreadable order documents, returning an empty ledger")
		return domain.EmptyDataset(domain.OrderColumns)
	}
	return linesToDataset(lines)
}

// Export renders the collection in the same delimited layout as the file ledger.
func (l *Ledger) Export(ctx context.Context, w io.Writer) error {
	ds, err := l.ReadAll(ctx)
	if err != nil {
		return err
	}
	if ds.Len() == 0 {
		return domain.ErrNoData
	}
	return writeDelimited(w, ds)
}

func linesToDataset(lines []orderLine) domain.Dataset {
	ds := domain.EmptyDataset(domain.OrderColumns)
	for _, line := range lines {
		ds.Rows = append(ds.Rows, line.row())
	}
	return ds
}

func writeDelimited(w io.Writer, ds domain.Dataset) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("%w: export: %v", domain.ErrStorage, err)
	}
	if err := cw.WriteAll(ds.Rows); err != nil {
		return fmt.Errorf("%w: export: %v", domain.ErrStorage, err)
	}
	return nil
}
