package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads lines from a stream and can be abandoned through a context.
type LineReader struct {
	lines chan lineResult
}

type lineResult struct {
	err  error
	line string
}

// NewLineReader starts reading r in the background, one line at a time.
func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{lines: make(chan lineResult)}
	go lr.pump(bufio.NewReader(r))
	return lr
}

func (lr *LineReader) pump(r *bufio.Reader) {
	defer close(lr.lines)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lr.lines <- lineResult{line: line}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				lr.lines <- lineResult{err: err}
			}
			return
		}
	}
}

// ReadLine returns the next line without its trailing whitespace. It returns
// io.EOF once the input is exhausted and ErrInputCancelled if ctx ends first.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res, ok := <-lr.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}
