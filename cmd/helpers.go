package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	"github.com/mozilla-ai/mcpmarket/internal/cmd/output"
)

// formatFlagUsage is the usage text for the --format flag of commands which render results.
func formatFlagUsage() string {
	allowed := cmd.AllowedOutputFormats()
	return fmt.Sprintf("Specify the output format (one of: %s)", allowed.String())
}

// handleResults renders items in the given format.
// Text output prints the printer's header before emptyMessage when there are no items.
func handleResults[T any](w io.Writer, format cmd.OutputFormat, p output.Printer[T], emptyMessage string, items ...T) error {
	handler, err := cmd.FormatHandler(w, format, p)
	if err != nil {
		return err
	}

	if th, ok := handler.(*output.TextHandler[T]); ok {
		th.WithEmptyHeader().WithEmptyMessage(emptyMessage)
	}

	return handler.HandleResults(items...)
}

// parseKeyValues parses 'key=value' pairs, as supplied by repeatable flags.
// Later pairs override earlier ones with the same key.
func parseKeyValues(flagName string, pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --%s '%s', expected key=value", flagName, pair)
		}
		values[k] = v
	}
	return values, nil
}
