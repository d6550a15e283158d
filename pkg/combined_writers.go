package pkg

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
)

// CombinedWriter fans log lines out to STDOUT and the rotated log file.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer{}, writers...),
	}
}

// Write returns the bytes written by the writers that succeeded. A failing
// writer does not stop the others.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for i, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, fmt.Errorf("log writer %d: %w", i, werr))
			continue
		}
		n += written
	}
	return n, err
}

// Close closes the writers owning a resource, like the rotated log file.
// STDOUT and STDERR stay open.
func (cw *CombinedWriter) Close() error {
	var err error
	for _, w := range cw.Writers {
		if w == io.Writer(os.Stdout) || w == io.Writer(os.Stderr) {
			continue
		}
		if c, ok := w.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
