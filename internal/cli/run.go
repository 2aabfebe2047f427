package cli

import (
	"context"
	"errors"
	"os"

	"github.com/aretw0/sliderepl/internal/config"
)

// Execute handles the root command, dispatching to a single deck or to the chapter menu.
func Execute(opts config.Options) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	app, err := NewApp(opts, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer app.Close()

	if opts.Script != "" {
		err = app.RunDeck(sigCtx, opts.Script)
	} else {
		err = app.Menu(sigCtx)
	}
	if sig := sigCtx.Signal(); sig != nil {
		app.logger.Debug("session ended by signal", "signal", sig)
		printSystemMessage(os.Stdout, "Session ended by %s.", sig)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
