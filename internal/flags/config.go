package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarLogPath      = "MCPMARKET_LOG_PATH"
	EnvVarLogLevel     = "MCPMARKET_LOG_LEVEL"
	EnvVarRegistryFile = "MCPMARKET_REGISTRY_FILE"
	EnvVarSettingsDir  = "MCPMARKET_SETTINGS_DIR"
	EnvVarSettingsFile = "MCPMARKET_SETTINGS_FILE"

	// Defaults
	DefaultLogPath      = ""
	DefaultLogLevel     = "info"
	DefaultRegistryFile = ""
	DefaultSettingsDir  = ".mcpmarket"
	DefaultSettingsFile = "settings.json"

	// Flag names
	FlagNameLogPath      = "log-path"
	FlagNameLogLevel     = "log-level"
	FlagNameRegistryFile = "registry-file"
	FlagNameSettingsDir  = "settings-dir"
	FlagNameSettingsFile = "settings-file"
)

var (
	LogPath      string
	LogLevel     string
	RegistryFile string
	SettingsDir  string
	SettingsFile string
)

// InitFlags registers the global flags on fs.
// Each flag falls back to its environment variable, then its default.
func InitFlags(fs *pflag.FlagSet) {
	initLogger(fs)
	initRegistryFile(fs)
	initSettings(fs)
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		LogPath = fromEnv(EnvVarLogPath, DefaultLogPath)
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		LogLevel = strings.ToLower(fromEnv(EnvVarLogLevel, DefaultLogLevel))
	}
	fs.StringVar(
		&LogLevel,
		FlagNameLogLevel,
		LogLevel,
		"log level for mcpmarket logs (one of: trace, debug, info, warn, error, off)",
	)
}

func initRegistryFile(fs *pflag.FlagSet) {
	if RegistryFile == "" {
		RegistryFile = fromEnv(EnvVarRegistryFile, DefaultRegistryFile)
	}
	fs.StringVar(
		&RegistryFile,
		FlagNameRegistryFile,
		RegistryFile,
		"path to a local registry document to use instead of the bundled catalog",
	)
}

func initSettings(fs *pflag.FlagSet) {
	if SettingsDir == "" {
		SettingsDir = fromEnv(EnvVarSettingsDir, DefaultSettingsDir)
	}
	fs.StringVar(
		&SettingsDir,
		FlagNameSettingsDir,
		SettingsDir,
		"name of the settings directory inside the home directory and workspace",
	)

	if SettingsFile == "" {
		SettingsFile = fromEnv(EnvVarSettingsFile, DefaultSettingsFile)
	}
	fs.StringVar(
		&SettingsFile,
		FlagNameSettingsFile,
		SettingsFile,
		"name of the settings file, the extension selects the format (.json, .toml, .yaml)",
	)
}

func fromEnv(name string, fallback string) string {
	if env := strings.TrimSpace(os.Getenv(name)); env != "" {
		return env
	}
	return fallback
}
