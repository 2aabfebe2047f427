package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrInterrupted is returned by readers when the user pressed Ctrl+C at a prompt.
var ErrInterrupted = errors.New("interrupted")

// TextReader implements ports.LineReader over a plain stream, for pipes and dumb terminals.
// A background pump reads lines so that ReadLine can honor context cancellation.
type TextReader struct {
	reader     *bufio.Reader
	writer     io.Writer
	interrupts <-chan struct{}

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextReaderOption defines configuration for TextReader.
type TextReaderOption func(*TextReader)

// WithInterrupts makes ReadLine return ErrInterrupted when ch fires.
func WithInterrupts(ch <-chan struct{}) TextReaderOption {
	return func(h *TextReader) {
		h.interrupts = ch
	}
}

// NewTextReader creates a reader over r writing prompts to w.
func NewTextReader(r io.Reader, w io.Writer, opts ...TextReaderOption) *TextReader {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextReader{
		reader: bufio.NewReader(r),
		writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextReader) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextReader) pump() {
	for {
		text, err := h.reader.ReadString('\n')

		// A final line without newline is still a line
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}

		if err != nil {
			if err == io.EOF {
				close(h.inputChan)
				return
			}
			h.inputChan <- inputResult{err: err}
			// Backoff for persistent failures
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// ReadLine prints prompt and returns the next line without its line terminator.
func (h *TextReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	h.initPump()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		fmt.Fprint(h.writer, prompt)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-h.interrupts:
		fmt.Fprintln(h.writer)
		return "", ErrInterrupted
	case res, ok := <-h.inputChan:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimRight(res.text, "\r\n"), nil
	}
}
