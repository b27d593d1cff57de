package cmd

// AppName is the name of the binary, used in usage text and as the root logger name.
const AppName = "mcpmarket"

var version = "dev" // Set at build time using -ldflags

// Version returns the version of the binary.
func Version() string {
	return version
}
