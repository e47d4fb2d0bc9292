// Package sse reads Server-Sent Events streams returned by LLM vendors.
package sse

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
)

// MaxEventSize bounds a single event line.
const MaxEventSize = 1024 * 1024

// Done is the data payload OpenAI-style streams send as the last event.
var Done = []byte("[DONE]")

// Reader parses events from a text/event-stream body.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxEventSize)
	return &Reader{scanner: scanner}
}

// Next returns the data of the next event. Multi-line data fields are
// joined with "\n". It returns io.EOF once the stream is exhausted.
func (r *Reader) Next() ([]byte, error) {
	var data [][]byte

	for r.scanner.Scan() {
		line := bytes.TrimRight(r.scanner.Bytes(), "\r")

		if len(line) == 0 {
			if len(data) > 0 {
				return bytes.Join(data, []byte("\n")), nil
			}
			continue
		}

		if bytes.HasPrefix(line, []byte("data:")) {
			field := bytes.TrimPrefix(line[5:], []byte(" "))
			data = append(data, append([]byte(nil), field...))
		}
		// event:, id:, retry: and ":" comments carry nothing we use.
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		return bytes.Join(data, []byte("\n")), nil
	}
	return nil, io.EOF
}

// HandlerFunc handles one event payload. Returning done=true ends the stream.
type HandlerFunc func(data []byte) (done bool, err error)

// Each reads events from body until the handler reports completion, the
// stream ends, or ctx is cancelled. ctx is checked between events.
func Each(ctx context.Context, body io.Reader, handle HandlerFunc) error {
	reader := NewReader(body)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}

		if bytes.Equal(bytes.TrimSpace(data), Done) {
			return nil
		}

		done, err := handle(data)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
