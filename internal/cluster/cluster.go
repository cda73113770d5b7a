// Package cluster holds the static, fixed-cardinality set of replicas the
// coordinator addresses on every transaction. Unlike a consistent-hash
// ring with dynamic membership, this cluster never routes a request to a
// subset of replicas — every transaction fans out to all of it.
package cluster

import "groupdtc/internal/replica"

// Replica is one addressable cluster member: a name from the config file
// and the client used to reach it. Replicas are indexed positionally so
// outcome vectors can be zipped back to the replica that produced them.
type Replica struct {
	Name   string
	Client replica.Client
}

// Cluster is the fixed set of replicas loaded once at coordinator
// construction. It has cardinality N ≥ 1; nothing in the core assumes
// N == 3.
type Cluster struct {
	Replicas []Replica
}

// New builds a Cluster from an ordered replica list. The order given here
// is the positional index used throughout the core.
func New(replicas []Replica) *Cluster {
	return &Cluster{Replicas: replicas}
}

// Size returns N, the cluster's cardinality.
func (c *Cluster) Size() int {
	return len(c.Replicas)
}

// Clients returns the replica clients in positional order.
func (c *Cluster) Clients() []replica.Client {
	out := make([]replica.Client, len(c.Replicas))
	for i, r := range c.Replicas {
		out[i] = r.Client
	}
	return out
}
