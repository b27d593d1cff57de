package filter

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Predicate defines a function that returns true if the given item matches a condition.
type Predicate[T any] func(item T, filterValue string) bool

// Options holds configuration for filtering behavior.
type Options[T any] struct {
	matchers map[string]Predicate[T]
}

// Option configures filter Options.
type Option[T any] func(*Options[T]) error

// defaultOptions returns the default filter Options.
func defaultOptions[T any]() Options[T] {
	return Options[T]{
		matchers: make(map[string]Predicate[T]),
	}
}

// NormalizeString can be used to normalize a string value for filtering/comparison.
// The value is made lowercase and has any leading and/or trailing whitespace removed.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Fold returns the case folded form of s, suitable for case-insensitive comparison.
// Unlike NormalizeString, whitespace is preserved.
func Fold(s string) string {
	// A Caser is stateful, so one is created per call rather than shared between goroutines.
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s string, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// NewOptions creates filter Options with defaults and applies given options.
func NewOptions[T any](opt ...Option[T]) (Options[T], error) {
	opts := defaultOptions[T]()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Options[T]{}, err
		}
	}
	return opts, nil
}

// Provider is a generic function type that encapsulates the logic for extracting
// a value of type V from an item of type T.
type Provider[T any, V any] func(T) V

// BoolValueProvider extracts a single boolean value from an item of type T.
type BoolValueProvider[T any] Provider[T, bool]

// StringValueProvider extracts a single string value from an item of type T.
type StringValueProvider[T any] Provider[T, string]

// StringValuesProvider extracts a slice of string values from an item of type T.
type StringValuesProvider[T any] Provider[T, []string]

// Equals returns a Predicate that checks if the value extracted by the provider
// exactly matches the filter value (case-insensitive, normalized).
func Equals[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return NormalizeString(provider(item)) == NormalizeString(val)
	}
}

// EqualsBool returns a Predicate that checks if the value extracted by the provider
// matches the parsed boolean representation of the filter value.
// Values that cannot be parsed as a boolean never match.
func EqualsBool[T any](provider BoolValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		parsedVal, err := strconv.ParseBool(NormalizeString(val))
		if err != nil {
			return false
		}
		return provider(item) == parsedVal
	}
}

// PartialAny returns a Predicate that checks if the filter value is a case-insensitive substring
// of *ANY* value returned by the supplied providers.
//
// Example:
//
// predicate := PartialAny(nameProvider, descriptionProvider),
// result := predicate(srv, "git") // true if the name or description contains "git"
func PartialAny[T any](providers ...StringValuesProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		q := Fold(val)
		for _, p := range providers {
			for _, actual := range p(item) {
				if strings.Contains(Fold(actual), q) {
					return true
				}
			}
		}
		return false
	}
}

// Single adapts a StringValueProvider into a StringValuesProvider.
func Single[T any](provider StringValueProvider[T]) StringValuesProvider[T] {
	return func(item T) []string {
		return []string{provider(item)}
	}
}

// WithMatchers adds or overrides matchers.
func WithMatchers[T any](m map[string]Predicate[T]) Option[T] {
	return func(o *Options[T]) error {
		for k, v := range m {
			o.matchers[NormalizeString(k)] = v
		}
		return nil
	}
}

// WithMatcher adds or overrides a matcher.
func WithMatcher[T any](key string, value Predicate[T]) Option[T] {
	return func(o *Options[T]) error {
		o.matchers[NormalizeString(key)] = value
		return nil
	}
}

// Match applies the provided filters to an item of type T using any configured Option matchers.
// It returns false if any matcher fails to validate the corresponding field.
// Keys without a matcher are ignored.
func Match[T any](item T, filters map[string]string, opts ...Option[T]) (bool, error) {
	if filters == nil {
		return true, nil
	}

	filterOpts, err := NewOptions(opts...)
	if err != nil {
		return false, err
	}

	for key, val := range filters {
		k := NormalizeString(key)
		if k == "" {
			continue
		}

		matcher, ok := filterOpts.matchers[k]
		if !ok {
			continue
		}
		if !matcher(item, val) {
			return false, nil
		}
	}
	return true, nil
}
