package commands

import (
	"context"
	"fmt"
)

type OrdersCmd struct {
	ID string `help:"Only rows of this order id." default:""`
}

func (o *OrdersCmd) Run(ctx context.Context, globals *Globals) error {
	ledger, _, closeFn, err := globals.stores(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	ds, err := ledger.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	if o.ID != "" {
		rows := ds.Rows[:0:0]
		for _, row := range ds.Rows {
			if len(row) > 0 && row[0] == o.ID {
				rows = append(rows, row)
			}
		}
		ds.Rows = rows
	}
	return printDataset(globals.stdout(), ds)
}
