package commands

import (
	"context"
	"fmt"
)

type ClientsCmd struct{}

func (c *ClientsCmd) Run(ctx context.Context, globals *Globals) error {
	_, registry, closeFn, err := globals.stores(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	ds, err := registry.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}
	return printDataset(globals.stdout(), ds)
}
