package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClusterFile(t *testing.T, body string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadCluster_OrdersReplicasByFileOrder(t *testing.T) {
	path := writeClusterFile(t, `
[CLUSTER]
node1 = http://replica-1.example:8080
node2 = http://replica-2.example:8080
node3 = http://replica-3.example:8080
`)

	endpoints, err := LoadCluster(path)

	require.NoError(t, err)
	require.Len(t, endpoints, 3)
	assert.Equal(t, "node1", endpoints[0].Name)
	assert.Equal(t, "http://replica-1.example:8080", endpoints[0].BaseURL)
	assert.Equal(t, "node2", endpoints[1].Name)
	assert.Equal(t, "node3", endpoints[2].Name)
}

func TestLoadCluster_AcceptsAnyCardinality(t *testing.T) {
	path := writeClusterFile(t, "[CLUSTER]\nsolo = http://replica-1.example:8080\n")

	endpoints, err := LoadCluster(path)

	require.NoError(t, err)
	assert.Len(t, endpoints, 1)
}

func TestLoadCluster_MissingSectionFails(t *testing.T) {
	path := writeClusterFile(t, "[OTHER]\nkey = value\n")

	_, err := LoadCluster(path)

	assert.Error(t, err)
}

func TestLoadCluster_EmptySectionFails(t *testing.T) {
	path := writeClusterFile(t, "[CLUSTER]\n")

	_, err := LoadCluster(path)

	assert.Error(t, err)
}

func TestLoadCluster_MissingFileFails(t *testing.T) {
	_, err := LoadCluster("/nonexistent/cluster.ini")
	assert.Error(t, err)
}
