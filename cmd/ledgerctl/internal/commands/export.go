package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cereza/orderdesk/internal/core/domain"
)

type ExportCmd struct {
	Output string `help:"Destination file, stdout when empty." short:"o" default:""`
}

func (e *ExportCmd) Run(ctx context.Context, globals *Globals) error {
	ledger, _, closeFn, err := globals.stores(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	w := globals.stdout()
	if e.Output != "" {
		f, err := os.Create(e.Output)
		if err != nil {
			return fmt.Errorf("create %s: %w", e.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := ledger.Export(ctx, w); err != nil {
		if errors.Is(err, domain.ErrNoData) {
			return fmt.Errorf("no orders recorded yet in %s", globals.DataDir)
		}
		return err
	}
	return nil
}
