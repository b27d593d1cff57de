package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpmarket/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpmarket/internal/cmd/options"
	"github.com/mozilla-ai/mcpmarket/internal/cmd/output"
	"github.com/mozilla-ai/mcpmarket/internal/prompt"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
	"github.com/mozilla-ai/mcpmarket/internal/registry/options"
)

// embeddedRegistry builds the registry bundled with the binary, ignoring any configured registry file.
func embeddedRegistry() cmdopts.CmdOption {
	return cmdopts.WithRegistryBuilder(registry.BuilderFunc(func(opt ...options.BuildOption) (*registry.Registry, error) {
		return registry.Load(hclog.NewNullLogger())
	}))
}

func failingRegistry(err error) cmdopts.CmdOption {
	return cmdopts.WithRegistryBuilder(registry.BuilderFunc(func(opt ...options.BuildOption) (*registry.Registry, error) {
		return nil, err
	}))
}

func testBaseCmd() *cmd.BaseCmd {
	base := &cmd.BaseCmd{}
	base.SetLogger(hclog.NewNullLogger())
	return base
}

// execute runs the command with args, returning what it wrote to stdout and stderr.
func execute(t *testing.T, cobraCmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cobraCmd.SetOut(&stdout)
	cobraCmd.SetErr(&stderr)
	cobraCmd.SetArgs(args)

	err := cobraCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// executeContext runs the command with ctx, using the args already set on it.
func executeContext(t *testing.T, ctx context.Context, cobraCmd *cobra.Command) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cobraCmd.SetOut(&stdout)
	cobraCmd.SetErr(&stderr)

	err := cobraCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func decodeResults[T any](t *testing.T, data string) []T {
	t.Helper()

	var payload output.ResultsPayload[T]
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	return payload.Results
}

// fakePrompter answers prompts from fixed values, keyed by the name in the prompt message.
type fakePrompter struct {
	values  map[string]string
	confirm bool
	asked   []string
	err     error
}

var _ prompt.Prompter = (*fakePrompter)(nil)

func (f *fakePrompter) Text(_ context.Context, message string, _ prompt.ValidateFunc) (string, error) {
	return f.answer(message)
}

func (f *fakePrompter) Password(_ context.Context, message string, _ prompt.ValidateFunc) (string, error) {
	return f.answer(message)
}

func (f *fakePrompter) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	f.asked = append(f.asked, message)
	if f.err != nil {
		return false, f.err
	}
	return f.confirm, nil
}

func (f *fakePrompter) answer(message string) (string, error) {
	f.asked = append(f.asked, message)
	if f.err != nil {
		return "", f.err
	}
	for name, v := range f.values {
		if strings.Contains(message, name) {
			return v, nil
		}
	}
	return "", errors.New("unexpected prompt: " + message)
}
