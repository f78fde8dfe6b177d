// Command ledgerctl reads the order ledger and the client registry from the
// shell, without going through the HTTP server.
package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/cereza/orderdesk/cmd/ledgerctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		commands.Globals

		Orders  commands.OrdersCmd  `cmd:"" help:"List ledger rows"`
		Clients commands.ClientsCmd `cmd:"" help:"List client logins"`
		Export  commands.ExportCmd  `cmd:"" help:"Write the ledger as delimited text"`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("ledgerctl"),
		kong.Description("Inspect the Cereza order ledger."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&cli.Globals)
	cmd.FatalIfErrorf(err)
}
