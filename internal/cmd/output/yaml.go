package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

var _ Handler[any] = (*YAMLHandler[any])(nil)

// YAMLHandler renders catalog results with --format yaml, using the yaml struct tags of T.
type YAMLHandler[T any] struct {
	out    io.Writer
	indent int
}

// NewYAMLHandler creates a YAMLHandler which indents nested nodes by indentSpaces.
func NewYAMLHandler[T any](w io.Writer, indentSpaces int) *YAMLHandler[T] {
	return &YAMLHandler[T]{
		out:    w,
		indent: indentSpaces,
	}
}

func (h *YAMLHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResult writes item as a 'result' document.
func (h *YAMLHandler[T]) HandleResult(item T) error {
	return h.encode(ResultPayload[T]{Result: item})
}

// HandleResults writes items as a 'results' sequence, an empty listing is written as [].
func (h *YAMLHandler[T]) HandleResults(items ...T) error {
	if items == nil {
		items = []T{}
	}
	return h.encode(ResultsPayload[T]{Results: items})
}

// HandleError writes the message of err as an 'error' document.
func (h *YAMLHandler[T]) HandleError(err error) error {
	return h.encode(ErrorPayload{Error: err.Error()})
}

func (h *YAMLHandler[T]) encode(v any) error {
	enc := yaml.NewEncoder(h.out)
	enc.SetIndent(h.indent)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	// Close flushes the buffered document.
	return enc.Close()
}
