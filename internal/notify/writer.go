package notify

import (
	"fmt"
	"io"
)

// Writer prints notifications to an io.Writer instead of delivering
// them. Used by --dry-run flows and tests.
type Writer struct {
	Out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{Out: out}
}

func (w *Writer) Notify(id int, title, body string) error {
	_, err := fmt.Fprintf(w.Out, "[%d] %s | %s\n", id, title, body)
	return err
}
