//go:build validate_registry
// +build validate_registry

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/mcpmarket/internal/registry"
)

// main validates a registry document against the bundled registry schema,
// then loads it to catch problems the schema cannot express, such as duplicate server IDs.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run -tags=validate_registry ./tools/validate/registry.go <registry.json>\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading registry file: %v\n", err)
		os.Exit(1)
	}

	if err := registry.Validate(data); err != nil {
		fmt.Println("❌ Validation failed:")
		for _, problem := range strings.Split(err.Error(), "; ") {
			fmt.Printf("  - %s\n", problem)
		}
		os.Exit(1)
	}

	reg, err := registry.New(hclog.NewNullLogger(), data)
	if err != nil {
		fmt.Printf("❌ Validation failed:\n  - %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Registry validation succeeded (version %s, %d servers, %d categories)\n",
		reg.Version(), len(reg.ListAll()), len(reg.ListCategories()))
}
