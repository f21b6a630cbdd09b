package report

import "io"

// Writer renders a report to a configured destination. Implementations exist
// for JSON, markdown, and styled terminal text; MultiWriter fans one report
// out to several destinations at once.
type Writer interface {
	// Write renders the report and returns the number of bytes written.
	Write(r *Report) (int, error)
}

// MultiWriter writes a report to every wrapped Writer, stopping at the first
// error. It is a report-level analogue of io.MultiWriter.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report to all configured writers and returns the total
// bytes written.
func (m *MultiWriter) Write(r *Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter carries the shared output destination.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
