package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestConfig_InitLogger_EnvVars(t *testing.T) {
	tests := []struct {
		name          string
		logPathValue  string
		logLevelValue string
		expectedPath  string
		expectedLevel string
	}{
		{
			name:          "both env vars set with extra whitespace",
			logPathValue:  "  /var/log/mcpmarket.log  ",
			logLevelValue: "  DEBUG  ",
			expectedPath:  "/var/log/mcpmarket.log",
			expectedLevel: "debug",
		},
		{
			name:          "env vars set to only whitespace",
			logPathValue:  "   ",
			logLevelValue: "   ",
			expectedPath:  DefaultLogPath,
			expectedLevel: DefaultLogLevel,
		},
		{
			name:          "no env vars set",
			logPathValue:  "", // Implementation uses os.Getenv which returns an empty string when missing.
			logLevelValue: "",
			expectedPath:  DefaultLogPath,
			expectedLevel: DefaultLogLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvVarLogPath, tc.logPathValue)
			t.Setenv(EnvVarLogLevel, tc.logLevelValue)
			t.Cleanup(func() {
				LogPath = ""
				LogLevel = ""
			})

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			initLogger(fs)

			require.Equal(t, tc.expectedPath, LogPath)
			require.Equal(t, tc.expectedLevel, LogLevel)

			pathFlag := fs.Lookup(FlagNameLogPath)
			require.NotNil(t, pathFlag)
			require.Equal(t, tc.expectedPath, pathFlag.Value.String())

			levelFlag := fs.Lookup(FlagNameLogLevel)
			require.NotNil(t, levelFlag)
			require.Equal(t, tc.expectedLevel, levelFlag.Value.String())
		})
	}
}

func TestConfig_Settings_EnvVars(t *testing.T) {
	tests := []struct {
		name         string
		dirValue     string
		fileValue    string
		expectedDir  string
		expectedFile string
	}{
		{
			name:         "env vars with white space",
			dirValue:     "  .host  ",
			fileValue:    " settings.toml ",
			expectedDir:  ".host",
			expectedFile: "settings.toml",
		},
		{
			name:         "defaults",
			expectedDir:  DefaultSettingsDir,
			expectedFile: DefaultSettingsFile,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(EnvVarSettingsDir, tc.dirValue)
			t.Setenv(EnvVarSettingsFile, tc.fileValue)
			t.Cleanup(func() {
				SettingsDir = ""
				SettingsFile = ""
			})

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			initSettings(fs)

			require.Equal(t, tc.expectedDir, SettingsDir)
			require.Equal(t, tc.expectedFile, SettingsFile)
			require.Equal(t, tc.expectedDir, fs.Lookup(FlagNameSettingsDir).Value.String())
			require.Equal(t, tc.expectedFile, fs.Lookup(FlagNameSettingsFile).Value.String())
		})
	}
}

func TestConfig_RegistryFile_Precedence(t *testing.T) {
	tests := []struct {
		name        string
		envValue    string
		cmdLineArgs []string
		expected    string
	}{
		{
			name:        "flag takes precedence over everything",
			envValue:    "/env/registry.json",
			cmdLineArgs: []string{"--" + FlagNameRegistryFile, "/flag/registry.json"},
			expected:    "/flag/registry.json",
		},
		{
			name:     "env var takes precedence over default value",
			envValue: "/env/registry.json",
			expected: "/env/registry.json",
		},
		{
			name:     "default used when no flag and no env var set",
			expected: DefaultRegistryFile,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(func() {
				RegistryFile = ""
			})

			t.Setenv(EnvVarRegistryFile, tc.envValue)

			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			initRegistryFile(fs)
			require.NoError(t, fs.Parse(tc.cmdLineArgs))

			require.Equal(t, tc.expected, RegistryFile)
		})
	}
}

func TestInitFlags_RegistersAll(t *testing.T) {
	t.Cleanup(func() {
		LogPath, LogLevel, RegistryFile, SettingsDir, SettingsFile = "", "", "", "", ""
	})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	InitFlags(fs)

	for _, name := range []string{
		FlagNameLogPath,
		FlagNameLogLevel,
		FlagNameRegistryFile,
		FlagNameSettingsDir,
		FlagNameSettingsFile,
	} {
		require.NotNil(t, fs.Lookup(name), name)
	}
}
