package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// LineReader reads trimmed lines from a terminal without blocking past
// context cancellation. A single goroutine scans the input so a canceled
// read never loses the line that arrives after it.
type LineReader struct {
	src   io.Reader
	lines chan line
	start sync.Once
}

// NewLineReader creates a reader over src.
func NewLineReader(src io.Reader) *LineReader {
	return &LineReader{src: src, lines: make(chan line)}
}

func (r *LineReader) pump() {
	scanner := bufio.NewScanner(r.src)
	for scanner.Scan() {
		r.lines <- line{text: scanner.Text()}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	for {
		r.lines <- line{err: err}
	}
}

// ReadLine returns the next line with surrounding whitespace removed. A
// final line without a trailing newline is returned without error; after
// it every call returns io.EOF.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l := <-r.lines:
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}
