//go:build integration

package client

import "os"

func init() {
	// Ryuk is not available under Podman
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")
}
