package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
	"github.com/cereza/orderdesk/internal/infrastructure/db/mongo"
	"github.com/cereza/orderdesk/internal/infrastructure/store/csvfile"
	"github.com/cereza/orderdesk/pkg/logger"
)

// Globals are the flags shared by every command.
type Globals struct {
	DataDir  string `help:"Directory holding the ledger files." default:"data_store" env:"DATA_DIR"`
	Backend  string `help:"Store backend." enum:"csv,mongo" default:"csv" env:"LEDGER_BACKEND"`
	MongoURI string `help:"MongoDB URI for the mongo backend." default:"mongodb://localhost:27017" env:"MONGO_URI"`
	MongoDB  string `help:"MongoDB database for the mongo backend." default:"orderdesk" env:"MONGO_DB"`
	Debug    bool   `help:"Enable debug logging."`

	Out io.Writer `kong:"-"`
}

func (g *Globals) logger() zerolog.Logger {
	level := "warn"
	if g.Debug {
		level = "debug"
	}
	return logger.Init(logger.Options{Level: level, Pretty: true, Output: os.Stderr})
}

func (g *Globals) stdout() io.Writer {
	if g.Out != nil {
		return g.Out
	}
	return os.Stdout
}

// stores opens the ledger and registry for the selected backend. The returned
// func releases any connection.
func (g *Globals) stores(ctx context.Context) (ports.OrderLedger, ports.ClientRegistry, func(), error) {
	log := g.logger()
	if g.Backend == "mongo" {
		store, err := mongo.Open(ctx, mongo.Config{URI: g.MongoURI, Database: g.MongoDB}, log)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.Ledger(), store.Registry(), func() { _ = store.Close(context.Background()) }, nil
	}
	return csvfile.NewLedger(g.DataDir, log), csvfile.NewRegistry(g.DataDir, log), func() {}, nil
}

func printDataset(w io.Writer, ds domain.Dataset) error {
	if ds.Len() == 0 {
		_, err := fmt.Fprintln(w, "(no rows)")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(ds.Columns, "\t"))
	for _, row := range ds.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
