package printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AppName is the command users type, used in hints.
const AppName = "mcpmarket"

// MaxListTags is the number of tags shown for each server in list output.
const MaxListTags = 5

// FormatNumber abbreviates large counts, e.g. 1234 becomes "1.2K" and 3456789 becomes "3.5M".
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatCount renders n with thousands separators, e.g. "152,340".
func FormatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatRating renders a rating without trailing zeros, e.g. "4.5" or "4".
func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

// Stars renders a rating as a row of stars, rounded to the nearest whole star.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	if n <= 0 {
		return ""
	}
	return strings.Repeat("⭐", n)
}

// FirstTags returns at most MaxListTags tags joined by commas.
func FirstTags(tags []string) string {
	if len(tags) > MaxListTags {
		tags = tags[:MaxListTags]
	}
	return strings.Join(tags, ", ")
}
