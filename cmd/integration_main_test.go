//go:build integration

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/kazuma-desu/showmore/pkg/config"
)

func init() {
	// Ryuk is not available under Podman; containers are terminated in t.Cleanup
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")
}

func setupEtcdContainerForCmd(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "quay.io/coreos/etcd:v3.5.9",
			ExposedPorts: []string{"2379/tcp"},
			Env: map[string]string{
				"ETCD_NAME":                        "cmd-etcd",
				"ETCD_ADVERTISE_CLIENT_URLS":       "http://0.0.0.0:2379",
				"ETCD_LISTEN_CLIENT_URLS":          "http://0.0.0.0:2379",
				"ETCD_INITIAL_ADVERTISE_PEER_URLS": "http://0.0.0.0:2380",
				"ETCD_LISTEN_PEER_URLS":            "http://0.0.0.0:2380",
				"ETCD_INITIAL_CLUSTER":             "cmd-etcd=http://0.0.0.0:2380",
			},
			WaitingFor: wait.ForLog("ready to serve client requests").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start etcd container")

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err, "failed to get container endpoint")

	return "http://" + endpoint
}

// setupTestContext writes a config whose current context points at endpoint.
func setupTestContext(t *testing.T, endpoint string) {
	t.Helper()

	setupTestConfig(t)
	require.NoError(t, config.SaveConfig(&config.Config{
		CurrentContext: "test",
		Contexts: map[string]*config.ContextConfig{
			"test": {Endpoints: []string{endpoint}},
		},
	}))
}

// seedEtcd writes kv directly since showmore only reads.
func seedEtcd(t *testing.T, endpoint string, kv map[string]string) {
	t.Helper()

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   []string{endpoint},
		DialTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	defer cli.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for k, v := range kv {
		_, err := cli.Put(ctx, k, v)
		require.NoError(t, err, "failed to put %s", k)
	}
}

func configPath(t *testing.T) string {
	t.Helper()
	path := os.Getenv(config.EnvConfigPath)
	require.NotEmpty(t, path)
	return filepath.Clean(path)
}
