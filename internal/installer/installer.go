// Package installer turns a catalog entry and user supplied values into a runtime configuration,
// and persists it to the host's settings.
package installer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	errs "github.com/mozilla-ai/mcpmarket/internal/errors"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
	"github.com/mozilla-ai/mcpmarket/internal/printer"
	"github.com/mozilla-ai/mcpmarket/internal/prompt"
	"github.com/mozilla-ai/mcpmarket/internal/settings"
)

// SettingsKey is the settings key which maps server IDs to their runtime configuration.
const SettingsKey = "mcpServers"

const (
	// ScopeNameUser is the install scope which writes to the user's settings.
	ScopeNameUser = "user"

	// ScopeNameProject is the install scope which writes to the workspace settings.
	ScopeNameProject = "project"
)

// ServerResolver finds catalog entries by ID.
type ServerResolver interface {
	Resolve(id string) (packages.Server, error)
}

// Request describes a single installation.
type Request struct {
	ServerID string

	// Scope is 'user' or 'project', empty means 'project'.
	Scope string

	// Trust is written to the runtime configuration when set.
	Trust *bool

	// Timeout in milliseconds, zero or less is not written.
	Timeout int

	// Yes skips collection and confirmation, pre-supplied and ambient values must satisfy the server.
	Yes bool

	// Args and EnvVars are pre-supplied values, which are never prompted for.
	Args    map[string]string
	EnvVars map[string]string
}

// Result describes the outcome of an installation.
type Result struct {
	Server       packages.Server
	Scope        settings.Scope
	SettingsPath string
	Config       RuntimeConfig
	State        State
}

// MissingInputError is returned when required arguments or environment variables have no value.
type MissingInputError struct {
	Missing []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("%s: %s", errs.ErrMissingRequiredInput, strings.Join(e.Missing, ", "))
}

func (e *MissingInputError) Unwrap() error {
	return errs.ErrMissingRequiredInput
}

// Installer runs installations.
type Installer struct {
	logger     hclog.Logger
	fsmHandler slog.Handler
	servers    ServerResolver
	loader     settings.Loader
	prompter   prompt.Prompter
	opts       Options
}

// install is the state for a single run of Installer.Install.
type install struct {
	req       Request
	state     State
	scope     settings.Scope
	scopeName string
	server    packages.Server
	inputs    Inputs
	config    RuntimeConfig
	settings  *settings.Settings
}

// NewInstaller creates an Installer.
// The prompter is only used for installs which are not run with Request.Yes.
func NewInstaller(
	logger hclog.Logger,
	servers ServerResolver,
	loader settings.Loader,
	prompter prompt.Prompter,
	opt ...Option,
) (*Installer, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if servers == nil {
		return nil, fmt.Errorf("server resolver cannot be nil")
	}
	if loader == nil {
		return nil, fmt.Errorf("settings loader cannot be nil")
	}
	if prompter == nil {
		return nil, fmt.Errorf("prompter cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	logger = logger.Named("installer")
	fsmHandler := slog.NewTextHandler(
		logger.StandardWriter(&hclog.StandardLoggerOptions{ForceLevel: hclog.Warn}),
		&slog.HandlerOptions{Level: slog.LevelWarn},
	)

	return &Installer{
		logger:     logger,
		fsmHandler: fsmHandler,
		servers:    servers,
		loader:     loader,
		prompter:   prompter,
		opts:       opts,
	}, nil
}

// ParseScope converts an install scope name into the settings scope it writes to.
func ParseScope(name string) (settings.Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScopeNameProject:
		return settings.ScopeWorkspace, nil
	case ScopeNameUser:
		return settings.ScopeUser, nil
	default:
		return "", fmt.Errorf("%w: '%s' (must be '%s' or '%s')", errs.ErrInvalidScope, name, ScopeNameUser, ScopeNameProject)
	}
}

// Install runs the installation described by req.
// errors.ErrUserCancelled is returned when the user declines to continue, in which case nothing is written.
func (i *Installer) Install(ctx context.Context, req Request) (Result, error) {
	scope, err := ParseScope(req.Scope)
	if err != nil {
		return Result{State: StateFailed}, err
	}

	scopeName := ScopeNameProject
	if scope == settings.ScopeUser {
		scopeName = ScopeNameUser
	}

	run := &install{
		req:       req,
		state:     StateSelectServer,
		scope:     scope,
		scopeName: scopeName,
		inputs: Inputs{
			Args:    maps.Clone(req.Args),
			EnvVars: maps.Clone(req.EnvVars),
		},
	}
	if run.inputs.Args == nil {
		run.inputs.Args = map[string]string{}
	}
	if run.inputs.EnvVars == nil {
		run.inputs.EnvVars = map[string]string{}
	}

	machine, err := newMachine(i.fsmHandler)
	if err != nil {
		return run.result(StateFailed), err
	}

	var stepErr error
	for !run.state.Terminal() {
		var next State
		next, stepErr = i.step(ctx, run)

		if err := machine.Transition(string(next)); err != nil {
			return run.result(StateFailed), fmt.Errorf("invalid installation state transition from '%s' to '%s': %w", run.state, next, err)
		}

		i.logger.Debug("Installation state changed", "server", req.ServerID, "from", run.state, "to", next)
		run.state = State(machine.GetState())
	}

	switch run.state {
	case StateCancelled:
		printer.Cancelled(i.opts.Output)
		return run.result(StateCancelled), errs.ErrUserCancelled
	case StateFailed:
		return run.result(StateFailed), stepErr
	default:
		return run.result(run.state), nil
	}
}

func (i *Installer) step(ctx context.Context, run *install) (State, error) {
	switch run.state {
	case StateSelectServer:
		return i.selectServer(run)
	case StateCollectArgs:
		return i.collectArgs(ctx, run)
	case StateCollectEnvVars:
		return i.collectEnvVars(ctx, run)
	case StateValidate:
		return i.validate(run)
	case StateConfirm:
		return i.confirm(ctx, run)
	case StateResolveScope:
		return i.resolveScope(run)
	case StatePersist:
		return i.persist(run)
	default:
		return StateFailed, fmt.Errorf("no step for installation state '%s'", run.state)
	}
}

func (i *Installer) selectServer(run *install) (State, error) {
	srv, err := i.servers.Resolve(run.req.ServerID)
	if err != nil {
		return StateFailed, err
	}

	run.server = srv
	printer.InstallHeader(i.opts.Output, srv)

	return StateCollectArgs, nil
}

func (i *Installer) collectArgs(ctx context.Context, run *install) (State, error) {
	required := run.server.Installation.RequiredArgs
	if run.req.Yes || len(required) == 0 {
		return StateCollectEnvVars, nil
	}

	out := i.opts.Output
	printer.SectionHeading(out, "Required Configuration:")

	for _, arg := range required {
		if run.inputs.Args[arg] != "" {
			printer.FoundValue(out, arg, "provided")
			continue
		}

		value, err := i.prompter.Text(ctx, inputMessage(arg), prompt.RequiredValue(arg))
		if err != nil || value == "" {
			return declined(err)
		}
		run.inputs.Args[arg] = value
	}
	_, _ = fmt.Fprintln(out)

	return StateCollectEnvVars, nil
}

func (i *Installer) collectEnvVars(ctx context.Context, run *install) (State, error) {
	declared := run.server.Installation.EnvVars
	if run.req.Yes || len(declared) == 0 {
		return StateValidate, nil
	}

	out := i.opts.Output
	printer.SectionHeading(out, "Environment Variables:")

	for _, name := range declared {
		if run.inputs.EnvVars[name] != "" {
			printer.FoundValue(out, name, "provided")
			continue
		}

		if v, ok := i.opts.EnvLookup(name); ok && v != "" {
			printer.FoundValue(out, name, "found in environment")
			run.inputs.EnvVars[name] = v
			continue
		}

		value, err := i.prompter.Password(ctx, inputMessage(name), prompt.RequiredValue(name))
		if err != nil || value == "" {
			return declined(err)
		}
		run.inputs.EnvVars[name] = value
	}
	_, _ = fmt.Fprintln(out)

	return StateValidate, nil
}

func (i *Installer) validate(run *install) (State, error) {
	v := Validate(run.server, run.inputs, i.opts.EnvLookup)
	if !v.Valid {
		printer.MissingConfiguration(i.opts.Output, v.Missing)
		return StateFailed, &MissingInputError{Missing: v.Missing}
	}

	run.config = Synthesize(run.server, run.inputs, Extras{
		Timeout: run.req.Timeout,
		Trust:   run.req.Trust,
	})

	return StateConfirm, nil
}

func (i *Installer) confirm(ctx context.Context, run *install) (State, error) {
	if run.req.Yes {
		return StateResolveScope, nil
	}

	printer.PrintSummary(i.opts.Output, printer.Summary{
		ServerName: run.server.Name,
		Scope:      run.scopeName,
		Command:    run.config.Command,
		Args:       run.config.Args,
		Trust:      run.config.Trust != nil && *run.config.Trust,
	})

	ok, err := i.prompter.Confirm(ctx, "Proceed with installation?", true)
	if err != nil || !ok {
		return declined(err)
	}

	return StateResolveScope, nil
}

func (i *Installer) resolveScope(run *install) (State, error) {
	workDir := i.opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return StateFailed, fmt.Errorf("could not determine working directory: %w", err)
		}
		workDir = wd
	}

	s, err := i.loader.Load(workDir)
	if err != nil {
		return StateFailed, err
	}

	if run.scope == settings.ScopeWorkspace && s.Workspace().Path == s.User().Path {
		return StateFailed, fmt.Errorf("%w: use --scope %s to edit settings in the home directory", errs.ErrScopeConflict, ScopeNameUser)
	}

	run.settings = s

	return StatePersist, nil
}

func (i *Installer) persist(run *install) (State, error) {
	f := run.settings.ForScope(run.scope)

	var servers map[string]any
	switch existing := f.Settings[SettingsKey].(type) {
	case nil:
		servers = map[string]any{}
	case map[string]any:
		servers = maps.Clone(existing)
	default:
		return StateFailed, fmt.Errorf("settings key '%s' in '%s' is not a mapping", SettingsKey, f.Path)
	}

	if _, ok := servers[run.server.ID]; ok {
		i.logger.Info("Replacing existing server configuration", "server", run.server.ID, "path", f.Path)
	}
	servers[run.server.ID] = run.config

	if err := run.settings.SetValue(run.scope, SettingsKey, servers); err != nil {
		return StateFailed, err
	}

	i.logger.Info("Installed server", "server", run.server.ID, "scope", run.scope, "path", f.Path)
	printer.Installed(i.opts.Output, run.server, f.Path)

	return StateDone, nil
}

func (run *install) result(state State) Result {
	r := Result{
		Server: run.server,
		Scope:  run.scope,
		Config: run.config,
		State:  state,
	}
	if run.settings != nil {
		r.SettingsPath = run.settings.ForScope(run.scope).Path
	}
	return r
}

func inputMessage(name string) string {
	return fmt.Sprintf("Enter value for %s:", printer.Command(name))
}

// declined returns the state a prompt which produced no value ends the installation in.
// Abandoned prompts cancel the installation, anything else is a failure.
func declined(err error) (State, error) {
	if err == nil || errors.Is(err, prompt.ErrCancelled) {
		return StateCancelled, nil
	}
	return StateFailed, err
}
