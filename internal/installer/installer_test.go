package installer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/perms"
	"github.com/mozilla-ai/mcpmarket/internal/prompt"
	"github.com/mozilla-ai/mcpmarket/internal/registry"
	"github.com/mozilla-ai/mcpmarket/internal/settings"
)

// fakePrompter answers prompts from queues, returning prompt.ErrCancelled once a queue is exhausted.
type fakePrompter struct {
	texts     []string
	passwords []string
	confirms  []bool
	err       error

	asked []string
}

func (f *fakePrompter) Text(_ context.Context, message string, _ prompt.ValidateFunc) (string, error) {
	f.asked = append(f.asked, message)
	if f.err != nil {
		return "", f.err
	}
	if len(f.texts) == 0 {
		return "", prompt.ErrCancelled
	}
	v := f.texts[0]
	f.texts = f.texts[1:]
	return v, nil
}

func (f *fakePrompter) Password(_ context.Context, message string, _ prompt.ValidateFunc) (string, error) {
	f.asked = append(f.asked, message)
	if f.err != nil {
		return "", f.err
	}
	if len(f.passwords) == 0 {
		return "", prompt.ErrCancelled
	}
	v := f.passwords[0]
	f.passwords = f.passwords[1:]
	return v, nil
}

func (f *fakePrompter) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	f.asked = append(f.asked, message)
	if f.err != nil {
		return false, f.err
	}
	if len(f.confirms) == 0 {
		return false, prompt.ErrCancelled
	}
	v := f.confirms[0]
	f.confirms = f.confirms[1:]
	return v, nil
}

type testEnv struct {
	home    string
	root    string
	out     *bytes.Buffer
	loader  *settings.DefaultLoader
	reg     *registry.Registry
	environ map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	reg, err := registry.Load(hclog.NewNullLogger())
	require.NoError(t, err)

	home := t.TempDir()
	return &testEnv{
		home:    home,
		root:    t.TempDir(),
		out:     &bytes.Buffer{},
		loader:  &settings.DefaultLoader{HomeDir: home},
		reg:     reg,
		environ: map[string]string{},
	}
}

func (e *testEnv) userPath() string {
	return filepath.Join(e.home, ".mcpmarket", "settings.json")
}

func (e *testEnv) workspacePath() string {
	return filepath.Join(e.root, ".mcpmarket", "settings.json")
}

func (e *testEnv) installer(t *testing.T, p prompt.Prompter) *Installer {
	t.Helper()

	i, err := NewInstaller(
		hclog.NewNullLogger(),
		e.reg,
		e.loader,
		p,
		WithOutput(e.out),
		WithWorkDir(e.root),
		WithEnvLookup(lookupFrom(e.environ)),
	)
	require.NoError(t, err)
	return i
}

func writeSettings(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), perms.RegularDir))
	require.NoError(t, os.WriteFile(path, []byte(content), perms.SecureFile))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewInstaller_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := NewInstaller(nil, nil, env.loader, &fakePrompter{})
	require.EqualError(t, err, "server resolver cannot be nil")

	_, err = NewInstaller(nil, env.reg, nil, &fakePrompter{})
	require.EqualError(t, err, "settings loader cannot be nil")

	_, err = NewInstaller(nil, env.reg, env.loader, nil)
	require.EqualError(t, err, "prompter cannot be nil")

	_, err = NewInstaller(nil, env.reg, env.loader, &fakePrompter{}, WithWorkDir(" "))
	require.EqualError(t, err, "work dir cannot be empty")

	i, err := NewInstaller(nil, env.reg, env.loader, &fakePrompter{})
	require.NoError(t, err)
	require.NotNil(t, i)
}

func TestParseScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected settings.Scope
		wantErr  bool
	}{
		{input: "", expected: settings.ScopeWorkspace},
		{input: "project", expected: settings.ScopeWorkspace},
		{input: "user", expected: settings.ScopeUser},
		{input: " USER ", expected: settings.ScopeUser},
		{input: "workspace", wantErr: true},
		{input: "system", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseScope(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidScope)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestInstall_WeatherUserScope(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	p := &fakePrompter{texts: []string{"secret"}, confirms: []bool{true}}

	res, err := env.installer(t, p).Install(context.Background(), Request{ServerID: "weather", Scope: "user"})
	require.NoError(t, err)
	require.Equal(t, StateDone, res.State)
	require.Equal(t, settings.ScopeUser, res.Scope)
	require.Equal(t, env.userPath(), res.SettingsPath)
	require.Len(t, p.asked, 2, "one argument prompt and one confirmation")

	require.JSONEq(t, `{
		"mcpServers": {
			"weather": {
				"command": "npx",
				"args": ["-y", "mcp-weather-server", "--api-key", "secret"]
			}
		}
	}`, readFile(t, env.userPath()))
	require.NoFileExists(t, env.workspacePath())

	out := env.out.String()
	require.Contains(t, out, "Installing: Weather")
	require.Contains(t, out, "Configuration Summary:")
	require.Contains(t, out, "npx -y mcp-weather-server --api-key secret")
	require.Contains(t, out, "Successfully installed Weather!")
}

func TestInstall_TOMLSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		timeout     int
		contains    []string
		notContains []string
	}{
		{
			name:        "zero timeout is not written",
			contains:    []string{"[mcpServers.weather]", `command = "npx"`},
			notContains: []string{"timeout"},
		},
		{
			name:     "positive timeout is written",
			timeout:  5000,
			contains: []string{"[mcpServers.weather]", "timeout = 5000"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			env.loader = &settings.DefaultLoader{HomeDir: env.home, FileName: "settings.toml"}

			res, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{
				ServerID: "weather",
				Scope:    "user",
				Yes:      true,
				Timeout:  tc.timeout,
				Args:     map[string]string{"apiKey": "secret"},
			})
			require.NoError(t, err)
			require.Equal(t, StateDone, res.State)

			path := filepath.Join(env.home, ".mcpmarket", "settings.toml")
			require.Equal(t, path, res.SettingsPath)

			data := readFile(t, path)
			for _, want := range tc.contains {
				require.Contains(t, data, want)
			}
			for _, unwanted := range tc.notContains {
				require.NotContains(t, data, unwanted)
			}

			reloaded, err := env.loader.Load(env.root)
			require.NoError(t, err)
			servers, ok := reloaded.ForScope(settings.ScopeUser).Settings[SettingsKey].(map[string]any)
			require.True(t, ok)
			require.Contains(t, servers, "weather")
		})
	}
}

func TestInstall_DefaultsToProjectScope(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	p := &fakePrompter{confirms: []bool{true}}

	res, err := env.installer(t, p).Install(context.Background(), Request{ServerID: "memory"})
	require.NoError(t, err)
	require.Equal(t, settings.ScopeWorkspace, res.Scope)
	require.Equal(t, env.workspacePath(), res.SettingsPath)
	require.FileExists(t, env.workspacePath())
	require.NoFileExists(t, env.userPath())
	require.Contains(t, env.out.String(), "project")
}

func TestInstall_PreservesExistingSettings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	writeSettings(t, env.userPath(), `{
		"theme": "dark",
		"mcpServers": {
			"other": {"command": "other"},
			"memory": {"command": "stale"}
		}
	}`)

	res, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{
		ServerID: "memory",
		Scope:    "user",
		Yes:      true,
		Trust:    boolPtr(true),
		Timeout:  5000,
	})
	require.NoError(t, err)
	require.Equal(t, StateDone, res.State)

	require.JSONEq(t, `{
		"theme": "dark",
		"mcpServers": {
			"other": {"command": "other"},
			"memory": {
				"command": "npx",
				"args": ["-y", "@modelcontextprotocol/server-memory"],
				"timeout": 5000,
				"trust": true
			}
		}
	}`, readFile(t, env.userPath()))
}

func TestInstall_EnvVars(t *testing.T) {
	t.Parallel()

	t.Run("prompted with password", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		p := &fakePrompter{passwords: []string{"ghp_token"}, confirms: []bool{true}}

		res, err := env.installer(t, p).Install(context.Background(), Request{ServerID: "github", Scope: "user"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_token"}, res.Config.Env)
	})

	t.Run("found in environment", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.environ["GITHUB_PERSONAL_ACCESS_TOKEN"] = "from-env"
		p := &fakePrompter{confirms: []bool{true}}

		res, err := env.installer(t, p).Install(context.Background(), Request{ServerID: "github", Scope: "user"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"GITHUB_PERSONAL_ACCESS_TOKEN": "from-env"}, res.Config.Env)
		require.Contains(t, env.out.String(), "found in environment")
		require.Equal(t, []string{"Proceed with installation?"}, p.asked)
	})

	t.Run("pre-supplied is not prompted", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		env.environ["GITHUB_PERSONAL_ACCESS_TOKEN"] = "from-env"
		p := &fakePrompter{confirms: []bool{true}}

		res, err := env.installer(t, p).Install(context.Background(), Request{
			ServerID: "github",
			Scope:    "user",
			EnvVars:  map[string]string{"GITHUB_PERSONAL_ACCESS_TOKEN": "from-file"},
		})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"GITHUB_PERSONAL_ACCESS_TOKEN": "from-file"}, res.Config.Env)
		require.Equal(t, []string{"Proceed with installation?"}, p.asked)
	})
}

func TestInstall_PreSuppliedArgsNotPrompted(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	p := &fakePrompter{confirms: []bool{true}}

	res, err := env.installer(t, p).Install(context.Background(), Request{
		ServerID: "weather",
		Scope:    "user",
		Args:     map[string]string{"apiKey": "supplied"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"-y", "mcp-weather-server", "--api-key", "supplied"}, res.Config.Args)
	require.Equal(t, []string{"Proceed with installation?"}, p.asked)
}

func TestInstall_RemoteTransport(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	p := &fakePrompter{texts: []string{"https://events.example.com/sse"}, confirms: []bool{true}}

	res, err := env.installer(t, p).Install(context.Background(), Request{ServerID: "remote-events", Scope: "user"})
	require.NoError(t, err)
	require.Equal(t, RuntimeConfig{URL: "https://events.example.com/sse"}, res.Config)
	require.NotContains(t, env.out.String(), "Command:")
}

func TestInstall_Cancelled(t *testing.T) {
	t.Parallel()

	const existing = `{"mcpServers": {"other": {"command": "other"}}}`

	tests := []struct {
		name     string
		serverID string
		prompter *fakePrompter
	}{
		{
			name:     "declined confirmation",
			serverID: "weather",
			prompter: &fakePrompter{texts: []string{"secret"}, confirms: []bool{false}},
		},
		{
			name:     "abandoned confirmation",
			serverID: "weather",
			prompter: &fakePrompter{texts: []string{"secret"}},
		},
		{
			name:     "abandoned argument",
			serverID: "weather",
			prompter: &fakePrompter{},
		},
		{
			name:     "empty argument",
			serverID: "weather",
			prompter: &fakePrompter{texts: []string{""}},
		},
		{
			name:     "abandoned env var",
			serverID: "github",
			prompter: &fakePrompter{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			writeSettings(t, env.userPath(), existing)

			res, err := env.installer(t, tc.prompter).Install(context.Background(), Request{
				ServerID: tc.serverID,
				Scope:    "user",
			})
			require.ErrorIs(t, err, errs.ErrUserCancelled)
			require.Equal(t, StateCancelled, res.State)
			require.Equal(t, existing, readFile(t, env.userPath()), "settings are unchanged")
			require.Contains(t, env.out.String(), "Installation cancelled.")
		})
	}
}

func TestInstall_PromptFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	boom := errors.New("boom")

	res, err := env.installer(t, &fakePrompter{err: boom}).Install(context.Background(), Request{
		ServerID: "weather",
		Scope:    "user",
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, StateFailed, res.State)
	require.NoFileExists(t, env.userPath())
}

func TestInstall_ScopeConflict(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.root = env.home
	writeSettings(t, env.userPath(), `{"theme": "dark"}`)

	res, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{
		ServerID: "memory",
		Scope:    "project",
		Yes:      true,
	})
	require.ErrorIs(t, err, errs.ErrScopeConflict)
	require.Equal(t, StateFailed, res.State)
	require.Equal(t, `{"theme": "dark"}`, readFile(t, env.userPath()))
}

func TestInstall_UserScopeFromHome(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.root = env.home

	_, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{
		ServerID: "memory",
		Scope:    "user",
		Yes:      true,
	})
	require.NoError(t, err)
	require.FileExists(t, env.userPath())
}

func TestInstall_YesWithMissingInput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	p := &fakePrompter{}

	res, err := env.installer(t, p).Install(context.Background(), Request{
		ServerID: "slack",
		Scope:    "user",
		Yes:      true,
		EnvVars:  map[string]string{"SLACK_TEAM_ID": "T123"},
	})
	require.ErrorIs(t, err, errs.ErrMissingRequiredInput)
	require.Equal(t, StateFailed, res.State)

	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{"SLACK_BOT_TOKEN"}, missing.Missing)

	require.Empty(t, p.asked, "nothing is prompted with --yes")
	require.NoFileExists(t, env.userPath())
	require.Contains(t, env.out.String(), "Missing required configuration:")
}

func TestInstall_YesWithAmbientEnv(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.environ["BRAVE_API_KEY"] = "ambient"

	res, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{
		ServerID: "brave-search",
		Scope:    "user",
		Yes:      true,
	})
	require.NoError(t, err)
	require.Equal(t, StateDone, res.State)
	require.Equal(t, map[string]string{}, res.Config.Env, "ambient values are left to the host's environment")
}

func TestInstall_NotFound(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	res, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{ServerID: "nope"})
	require.ErrorIs(t, err, errs.ErrServerNotFound)
	require.Equal(t, StateFailed, res.State)
	require.Empty(t, env.out.String())
}

func TestInstall_InvalidScope(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{ServerID: "memory", Scope: "global"})
	require.ErrorIs(t, err, errs.ErrInvalidScope)
	require.Empty(t, env.out.String())
}

func TestInstall_MalformedServersEntry(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	writeSettings(t, env.userPath(), `{"mcpServers": ["not", "a", "map"]}`)

	_, err := env.installer(t, &fakePrompter{}).Install(context.Background(), Request{
		ServerID: "memory",
		Scope:    "user",
		Yes:      true,
	})
	require.ErrorContains(t, err, "is not a mapping")
}
