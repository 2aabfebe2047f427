package ports

import "context"

// LineReader provides one line of user input per call.
// io.EOF signals the end of the session.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// KeyWaiter blocks until the user acknowledges (e.g. between bullets).
type KeyWaiter interface {
	WaitKey(ctx context.Context) error
}

// History receives lines worth recalling from the line editor.
type History interface {
	AddHistory(line string)
}
