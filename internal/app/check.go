package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/recoseq/internal/registry"
)

// Check loads and validates the configuration and prints what it defines.
func (a *App) Check(ctx context.Context) error {
	ns, err := a.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Fprintf(a.outW, "configuration OK: %d units, %d esproducers, %d tasks, %d sequences\n",
		len(ns.Names(registry.KindUnit)),
		len(ns.Names(registry.KindESProducer)),
		len(ns.Names(registry.KindTask)),
		len(ns.Names(registry.KindSequence)),
	)
	for _, seq := range ns.Sequences() {
		fmt.Fprintf(a.outW, "  %s\n", seq)
	}
	a.logger.Info("Configuration checked.", "definitions", ns.Len())
	return nil
}
