package runner

import (
	"context"

	"github.com/aretw0/sliderepl/pkg/ports"
)

// LineKeyWaiter acknowledges bullets with a line read from the console reader.
// Sharing the reader keeps a single consumer on the terminal input.
type LineKeyWaiter struct {
	Reader ports.LineReader
	Prompt string
}

// WaitKey blocks until the user presses return.
func (k *LineKeyWaiter) WaitKey(ctx context.Context) error {
	_, err := k.Reader.ReadLine(ctx, k.Prompt)
	return err
}
