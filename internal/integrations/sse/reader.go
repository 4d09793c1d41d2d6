// Package sse reads the data lines of a server-sent event stream, the framing
// both chat providers use for incremental token delivery.
package sse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const maxLineSize = 1 << 20

// ErrStop may be returned by a handler to end reading without error.
var ErrStop = errors.New("sse: stop")

// ReadData calls fn with the payload of every "data:" line in r, in order.
// Comments, event names and blank separators are skipped. Multi-line data
// fields are not joined; both providers send one JSON document per line.
func ReadData(r io.Reader, fn func(data []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		data := bytes.TrimSpace(line[len("data:"):])
		if len(data) == 0 {
			continue
		}
		if err := fn(data); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("sse: read stream: %w", err)
	}
	return nil
}
