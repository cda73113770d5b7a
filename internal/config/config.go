// Package config loads the static cluster definition from the
// INI-formatted cluster file (spec.md §6), the Go analogue of the
// configparser-based get_hosts_from_cluster this system was distilled
// from.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// ReplicaEndpoint is one [CLUSTER] entry: its config key and base URL.
type ReplicaEndpoint struct {
	Name    string
	BaseURL string
}

// LoadCluster reads every key under [CLUSTER] from path and returns the
// replica endpoints in file order — insertion order determines the
// positional index used throughout the coordination core.
func LoadCluster(path string) ([]ReplicaEndpoint, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load cluster config %s: %w", path, err)
	}

	section, err := file.GetSection("CLUSTER")
	if err != nil {
		return nil, fmt.Errorf("cluster config %s: %w", path, err)
	}

	keys := section.Keys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("cluster config %s: [CLUSTER] has no entries", path)
	}

	endpoints := make([]ReplicaEndpoint, 0, len(keys))
	for _, key := range keys {
		endpoints = append(endpoints, ReplicaEndpoint{
			Name:    key.Name(),
			BaseURL: key.String(),
		})
	}
	return endpoints, nil
}
