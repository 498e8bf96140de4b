package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ForceExitCode is the status used when a second interrupt arrives before
// the command has wound down.
const ForceExitCode = 130

// InterruptHandler cancels the command context on the first SIGINT or
// SIGTERM and exits the process on the second.
type InterruptHandler struct {
	writer      io.Writer
	signals     chan os.Signal
	exit        func(int)
	notes       []string
	interrupted bool
	mu          sync.Mutex
}

// NewInterruptHandler creates a handler that reports to writer.
func NewInterruptHandler(writer io.Writer) *InterruptHandler {
	if writer == nil {
		writer = os.Stderr
	}
	return &InterruptHandler{
		writer:  writer,
		signals: make(chan os.Signal, 2),
		exit:    os.Exit,
	}
}

// HandleInterrupts returns a context that is canceled by the first signal.
// notes are printed under the interrupt banner. The returned stop function
// releases the signal handler.
func (h *InterruptHandler) HandleInterrupts(ctx context.Context, notes ...string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.notes = notes
	h.mu.Unlock()

	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-h.signals:
				if h.markInterrupted() {
					cancel()
					continue
				}
				fmt.Fprintln(h.writer, FormatError("Forced exit")) //nolint:forbidigo // User-facing output
				h.exit(ForceExitCode)
				return
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(h.signals)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}

// markInterrupted records the first signal and prints the banner. It
// reports false when the process was already interrupted.
func (h *InterruptHandler) markInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.interrupted {
		return false
	}
	h.interrupted = true

	msg := "\n" + FormatWarning("Interrupted! Press Ctrl+C again to force exit.")
	for _, n := range h.notes {
		msg += "\n" + FormatInfo(n)
	}
	_, _ = fmt.Fprintln(h.writer, msg)
	return true
}

// WasInterrupted returns true if the process was interrupted.
func (h *InterruptHandler) WasInterrupted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.interrupted
}
