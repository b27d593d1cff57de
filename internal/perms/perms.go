// Package perms provides centralized file and directory permission constants
// used when mcpmarket writes to disk.
package perms

import "os"

// File permission constants for different security contexts.
const (
	// RegularFile permissions for standard files (logs).
	// Mode 0644: owner read/write, group read, others read.
	RegularFile os.FileMode = 0o644

	// SecureFile permissions for sensitive files (settings, which may hold API keys supplied at install).
	// Mode 0600: owner read/write only, no group or other access.
	SecureFile os.FileMode = 0o600
)

// Directory permission constants.
const (
	// RegularDir permissions for standard directories (settings directories).
	// Mode 0755: owner read/write/execute, group read/execute, others read/execute.
	RegularDir os.FileMode = 0o755
)
