package output

import (
	"fmt"
	"io"
)

// DefaultEmptyMessage is written by a TextHandler when there are no results.
const DefaultEmptyMessage = "No items found"

var _ Handler[any] = (*TextHandler[any])(nil)

// TextHandler renders human-readable output using a Printer.
type TextHandler[T any] struct {
	out          io.Writer
	printer      Printer[T]
	emptyMessage string
	emptyHeader  bool
}

// NewTextHandler creates a TextHandler which writes to w using p.
func NewTextHandler[T any](w io.Writer, p Printer[T]) *TextHandler[T] {
	return &TextHandler[T]{
		out:          w,
		printer:      p,
		emptyMessage: DefaultEmptyMessage,
	}
}

// WithEmptyMessage configures the message written when HandleResults receives no items.
func (h *TextHandler[T]) WithEmptyMessage(msg string) *TextHandler[T] {
	h.emptyMessage = msg
	return h
}

// WithEmptyHeader configures HandleResults to print the printer's header before the empty message.
func (h *TextHandler[T]) WithEmptyHeader() *TextHandler[T] {
	h.emptyHeader = true
	return h
}

// Writer returns the underlying io.Writer where text will be written.
func (h *TextHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResult prints a single item, surrounded by the printer's header and footer.
func (h *TextHandler[T]) HandleResult(item T) error {
	h.printer.Header(h.out, 1)

	if err := h.printer.Item(h.out, item); err != nil {
		return err
	}

	h.printer.Footer(h.out, 1)

	return nil
}

// HandleResults prints each item, surrounded by the printer's header and footer.
func (h *TextHandler[T]) HandleResults(items ...T) error {
	if len(items) == 0 {
		if h.emptyHeader {
			h.printer.Header(h.out, 0)
		}
		_, _ = fmt.Fprintln(h.out, h.emptyMessage)
		return nil
	}

	h.printer.Header(h.out, len(items))

	for _, it := range items {
		if err := h.printer.Item(h.out, it); err != nil {
			return err
		}
	}

	h.printer.Footer(h.out, len(items))

	return nil
}

// HandleError returns the error unchanged so the caller can surface it.
func (h *TextHandler[T]) HandleError(err error) error {
	return err
}
