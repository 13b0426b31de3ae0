package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// LogWriter copies log output to several destinations. A failing destination
// does not stop the others from receiving the line.
type LogWriter struct {
	writers []io.Writer
}

func NewLogWriter(writers ...io.Writer) *LogWriter {
	return &LogWriter{
		writers: writers,
	}
}

func (lw *LogWriter) Write(p []byte) (int, error) {
	var err error
	for _, w := range lw.writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
		}
	}
	if err != nil && len(multierr.Errors(err)) == len(lw.writers) {
		return 0, err
	}
	return len(p), err
}
