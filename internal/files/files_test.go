package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/mcpmarket/internal/perms"
)

func TestAppDirName(t *testing.T) {
	t.Parallel()

	require.Equal(t, ".mcpmarket", AppDirName())
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr string
	}{
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "c")
			},
		},
		{
			name: "existing directory is accepted",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "file in place of directory",
			setup: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(p, []byte("x"), perms.RegularFile))
				return p
			},
			wantErr: "could not ensure directory exists",
		},
		{
			name: "empty path",
			setup: func(t *testing.T) string {
				return "  "
			},
			wantErr: "directory path cannot be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := tc.setup(t)
			err := EnsureDir(path)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.DirExists(t, path)
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, "settings.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), perms.SecureFile))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), perms.SecureFile))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, perms.SecureFile, info.Mode().Perm())

	// No temporary files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileAtomic_TargetIsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, perms.RegularDir))

	err := WriteFileAtomic(target, []byte("x"), perms.SecureFile)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file should be removed on failure")
}
