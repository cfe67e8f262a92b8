package trace

import (
	"bufio"
	"io"
)

// FileSink writes records as tab-separated lines. Write errors are sticky:
// the first one is kept, later writes are dropped, and Close returns it.
type FileSink struct {
	w      *bufio.Writer
	closer io.Closer
	err    error
}

// NewFileSink wraps w. If w is also an io.Closer it is closed by Close.
func NewFileSink(w io.Writer) *FileSink {
	s := &FileSink{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Write appends one line for the record.
func (s *FileSink) Write(record Record) {
	if s.err != nil {
		return
	}
	if _, err := s.w.WriteString(record.Line() + "\n"); err != nil {
		s.err = err
	}
}

// Flush pushes buffered lines to the underlying writer.
func (s *FileSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	s.err = s.w.Flush()
	return s.err
}

// Err returns the first write error, if any.
func (s *FileSink) Err() error {
	return s.err
}

// Close flushes and closes the underlying writer when it is closable.
func (s *FileSink) Close() error {
	err := s.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
		s.closer = nil
	}
	return err
}
