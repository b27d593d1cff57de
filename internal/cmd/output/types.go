package output

import "io"

// Handler renders the result of a catalog command (servers, categories or an exported
// configuration) in one of the formats selected with --format.
type Handler[T any] interface {
	// Writer is where the rendered output goes, normally the command's stdout.
	Writer() io.Writer

	// HandleResult renders one value, such as the server shown by 'info'.
	HandleResult(item T) error

	// HandleResults renders a listing, such as the servers matched by 'search' or 'browse'.
	// An empty listing is still rendered.
	HandleResults(items ...T) error

	// HandleError renders a command failure in the same format as its results.
	HandleError(err error) error
}

// WriteFunc writes the header or footer around a text listing.
// count is the number of items in the listing.
type WriteFunc[T any] func(w io.Writer, count int)

// Printer renders catalog entries as terminal text for a TextHandler.
type Printer[T any] interface {
	// Header is written once, before the first Item.
	Header(w io.Writer, count int)

	// SetHeader replaces the header, e.g. with a search title.
	SetHeader(fn WriteFunc[T])

	// Item writes a single entry.
	Item(w io.Writer, elem T) error

	// Footer is written once, after the last Item.
	Footer(w io.Writer, count int)

	// SetFooter replaces the footer, e.g. with usage hints.
	SetFooter(fn WriteFunc[T])
}

// ResultsPayload is the document written for a listing: {"results": [...]}.
type ResultsPayload[T any] struct {
	Results []T `json:"results" yaml:"results"`
}

// ResultPayload is the document written for a single value: {"result": ...}.
type ResultPayload[T any] struct {
	Result T `json:"result" yaml:"result"`
}

// ErrorPayload is the document written when a command fails: {"error": "..."}.
type ErrorPayload struct {
	Error string `json:"error" yaml:"error"`
}
