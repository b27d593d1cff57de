package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

func TestBrowseCmd_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name: "all",
			args: []string{},
			expected: []string{
				"filesystem", "github", "brave-search", "postgres", "sqlite", "memory", "puppeteer",
				"slack", "google-maps", "fetch", "time", "weather", "remote-events", "remote-http",
			},
		},
		{
			name:     "category",
			args:     []string{"--category", "database"},
			expected: []string{"postgres", "sqlite"},
		},
		{
			name:     "unknown category",
			args:     []string{"-c", "nope"},
			expected: []string{},
		},
		{
			name:     "popular with limit",
			args:     []string{"--popular", "--limit", "3"},
			expected: []string{"filesystem", "github", "fetch"},
		},
		{
			name:     "top rated keeps catalog order for ties",
			args:     []string{"--top-rated", "--limit", "4"},
			expected: []string{"filesystem", "github", "memory", "fetch"},
		},
		{
			name:     "popular takes precedence",
			args:     []string{"--top-rated", "--popular", "--verified", "--category", "database", "--limit", "1"},
			expected: []string{"filesystem"},
		},
		{
			name:     "verified takes precedence over category",
			args:     []string{"--verified", "--category", "database"},
			expected: []string{"filesystem", "github", "brave-search", "postgres", "sqlite", "memory", "puppeteer", "slack", "fetch", "time"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cobraCmd, err := NewBrowseCmd(testBaseCmd(), embeddedRegistry())
			require.NoError(t, err)

			stdout, _, err := execute(t, cobraCmd, append(tc.args, "--format", "json")...)
			require.NoError(t, err)

			results := decodeResults[packages.Server](t, stdout)
			require.Equal(t, tc.expected, packages.Servers(results).IDs())
		})
	}
}

func TestBrowseCmd_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name: "marketplace is grouped and lists categories",
			args: []string{},
			contains: []string{
				"MCP Marketplace",
				"Development",
				"Communication",
				"info <id>",
				"install <id>",
				"Categories:",
				"💻 development",
			},
		},
		{
			name:        "category uses its label and omits the index",
			args:        []string{"--category", "database"},
			contains:    []string{"Database Servers", "postgres", "sqlite", "install <id>"},
			notContains: []string{"Categories:", "github"},
		},
		{
			name:     "unknown category uses the default icon",
			args:     []string{"--category", "nope"},
			contains: []string{"📦 nope Servers", "No servers found matching your criteria."},
		},
		{
			name:     "popular",
			args:     []string{"--popular"},
			contains: []string{"Popular MCP Servers", "downloads", "Categories:"},
		},
		{
			name:     "top rated",
			args:     []string{"--top-rated"},
			contains: []string{"Top Rated MCP Servers"},
		},
		{
			name:        "verified",
			args:        []string{"--verified"},
			contains:    []string{"Verified MCP Servers", "github"},
			notContains: []string{"google-maps", "weather"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cobraCmd, err := NewBrowseCmd(testBaseCmd(), embeddedRegistry())
			require.NoError(t, err)

			stdout, _, err := execute(t, cobraCmd, tc.args...)
			require.NoError(t, err)

			for _, s := range tc.contains {
				require.Contains(t, stdout, s)
			}
			for _, s := range tc.notContains {
				require.NotContains(t, stdout, s)
			}
		})
	}
}

func TestBrowseCmd_EmptyPrintsNoHints(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewBrowseCmd(testBaseCmd(), embeddedRegistry())
	require.NoError(t, err)

	stdout, _, err := execute(t, cobraCmd, "--category", "nope")
	require.NoError(t, err)
	require.NotContains(t, stdout, "install <id>")
	require.NotContains(t, stdout, "Categories:")
}

func TestBrowseCmd_InvalidLimit(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"--popular", "--top-rated"} {
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			cobraCmd, err := NewBrowseCmd(testBaseCmd(), embeddedRegistry())
			require.NoError(t, err)

			_, _, err = execute(t, cobraCmd, flag, "--limit", "0")
			require.EqualError(t, err, "limit must be greater than zero")
		})
	}
}

func TestBrowseCmd_RegistryError(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewBrowseCmd(testBaseCmd(), failingRegistry(errors.New("boom")))
	require.NoError(t, err)

	_, _, err = execute(t, cobraCmd)
	require.EqualError(t, err, "boom")
}

func TestBrowseCmd_InvalidFormat(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewBrowseCmd(testBaseCmd(), embeddedRegistry())
	require.NoError(t, err)

	_, _, err = execute(t, cobraCmd, "--format", "invalid")
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid argument "invalid"`)
}

func TestBrowseCmd_YAML(t *testing.T) {
	t.Parallel()

	cobraCmd, err := NewBrowseCmd(testBaseCmd(), embeddedRegistry())
	require.NoError(t, err)

	stdout, _, err := execute(t, cobraCmd, "--category", "database", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, stdout, "results:")
	require.Contains(t, stdout, "id: postgres")
}

func TestCategoryTitle(t *testing.T) {
	t.Parallel()

	categories := packages.Categories{{ID: "database", Name: "Database", Icon: "🗄️"}, {ID: "bare"}}

	require.Equal(t, "🗄️ Database Servers", categoryTitle(categories, "database"))
	require.Equal(t, "📦 bare Servers", categoryTitle(categories, "bare"))
	require.Equal(t, "📦 missing Servers", categoryTitle(categories, "missing"))
}
