package cmd

import (
	"fmt"
	"maps"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/mozilla-ai/mcpmarket/internal/installer"
	"github.com/mozilla-ai/mcpmarket/internal/packages"
)

const (
	flagArg     = "arg"
	flagEnv     = "env"
	flagEnvFile = "env-file"
)

// inputFlags are the pre-supplied install values shared by commands which build runtime configuration.
type inputFlags struct {
	Args    []string
	EnvVars []string
	EnvFile string
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVar(
		&f.Args,
		flagArg,
		nil,
		"Value for a required argument in the format key=value (can be repeated)",
	)
	fs.StringArrayVar(
		&f.EnvVars,
		flagEnv,
		nil,
		"Value for an environment variable in the format KEY=value (can be repeated)",
	)
	fs.StringVar(
		&f.EnvFile,
		flagEnvFile,
		"",
		"Path to a dotenv file to read environment variable values from",
	)
}

// inputs parses the flags into installer inputs for srv.
// Values read from the env file are limited to the variables srv declares,
// and are overridden by values supplied with --env.
func (f *inputFlags) inputs(srv packages.Server) (installer.Inputs, error) {
	args, err := parseKeyValues(flagArg, f.Args)
	if err != nil {
		return installer.Inputs{}, err
	}

	env, err := parseKeyValues(flagEnv, f.EnvVars)
	if err != nil {
		return installer.Inputs{}, err
	}

	if path := strings.TrimSpace(f.EnvFile); path != "" {
		fromFile, err := godotenv.Read(path)
		if err != nil {
			return installer.Inputs{}, fmt.Errorf("failed to read env file '%s': %w", path, err)
		}

		declared := map[string]string{}
		for _, name := range srv.Installation.EnvVars {
			if v, ok := fromFile[name]; ok {
				declared[name] = v
			}
		}
		maps.Copy(declared, env)
		env = declared
	}

	return installer.Inputs{Args: args, EnvVars: env}, nil
}
