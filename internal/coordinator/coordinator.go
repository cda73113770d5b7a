// Package coordinator implements the public coordination surface (C5):
// Create, Delete, and the dispatching Coordinate, each wrapped by the
// bounded outer retry described in spec.md §4.5.
package coordinator

import (
	"context"
	"fmt"

	"groupdtc/internal/classify"
	"groupdtc/internal/cluster"
	"groupdtc/internal/compensate"
	"groupdtc/internal/fanout"
	"groupdtc/internal/replica"
)

// State is the terminal value returned to the caller (spec.md §3).
type State int

const (
	Succeeded State = iota
	RolledBack
	ToBeRetried
	Failed
)

func (s State) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case RolledBack:
		return "rolled_back"
	case ToBeRetried:
		return "to_be_retried"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// OuterRetryAttempts bounds Coordinate's outer retry loop (spec.md §4.5):
// up to 3 total attempts, re-entering the forward fan-out whenever the
// result is ToBeRetried or Failed. Including Failed is the reference
// behavior from spec.md §9 — a compensation failure may succeed on a
// later attempt if the replicas recover, at the cost of re-issuing
// create against replicas that already succeeded once.
const OuterRetryAttempts = 3

// Coordinator is the public entry point. It holds no per-transaction
// state: a transaction is created on method entry and discarded on
// return.
type Coordinator struct {
	cluster *cluster.Cluster
	policy  compensate.Policy
	sink    compensate.Sink
}

// New builds a Coordinator over a fixed cluster. sink may be nil, in
// which case a compensation-exhausted transaction is simply not reported
// anywhere beyond the returned Failed state.
func New(c *cluster.Cluster, policy compensate.Policy, sink compensate.Sink) *Coordinator {
	return &Coordinator{cluster: c, policy: policy, sink: sink}
}

// ErrInvalidAction is returned by Coordinate for any action other than
// "create"/"delete" — the only error that propagates synchronously to
// the caller (spec.md §7).
var ErrInvalidAction = fmt.Errorf("invalid action: must be %q or %q", "create", "delete")

// Create atomically creates groupID across every replica, wrapped by the
// outer bounded retry.
func (co *Coordinator) Create(ctx context.Context, groupID string) State {
	return co.retry(ctx, groupID, replica.OpCreate)
}

// Delete atomically deletes groupID across every replica, wrapped by the
// outer bounded retry.
func (co *Coordinator) Delete(ctx context.Context, groupID string) State {
	return co.retry(ctx, groupID, replica.OpDelete)
}

// Coordinate dispatches to Create or Delete by action name. Any other
// action returns ErrInvalidAction without touching a single replica.
func (co *Coordinator) Coordinate(ctx context.Context, groupID, action string) (State, error) {
	switch action {
	case "create":
		return co.Create(ctx, groupID), nil
	case "delete":
		return co.Delete(ctx, groupID), nil
	default:
		return Failed, ErrInvalidAction
	}
}

// ClusterStatus fans Get out to every replica and returns the raw
// per-replica outcomes — a diagnostic, never on the transaction path
// (spec.md §4.1), useful for an operator confirming that a terminal
// Succeeded/RolledBack state actually left the cluster consistent.
func (co *Coordinator) ClusterStatus(ctx context.Context, groupID string) []replica.Outcome {
	return fanout.Execute(ctx, co.cluster.Clients(), groupID, fanout.Get)
}

// retry re-enters one() up to OuterRetryAttempts times while the result
// is ToBeRetried or Failed (spec.md §4.5).
func (co *Coordinator) retry(ctx context.Context, groupID string, op replica.Op) State {
	var state State
	for attempt := 1; attempt <= OuterRetryAttempts; attempt++ {
		state = co.one(ctx, groupID, op)
		if state != ToBeRetried && state != Failed {
			return state
		}
	}
	return state
}

// one performs exactly one forward fan-out, classifies it, and
// compensates if needed (spec.md §2's request flow).
func (co *Coordinator) one(ctx context.Context, groupID string, op replica.Op) State {
	clients := co.cluster.Clients()

	call := fanout.Post
	if op == replica.OpDelete {
		call = fanout.Delete
	}
	outcomes := fanout.Execute(ctx, clients, groupID, call)

	switch classify.Classify(outcomes, op) {
	case classify.Succeeded:
		return Succeeded
	case classify.ToBeRetried:
		return ToBeRetried
	case classify.NeedsCompensation:
		switch compensate.Compensate(ctx, clients, outcomes, op, groupID, co.policy, co.sink) {
		case compensate.RolledBack:
			return RolledBack
		default:
			return Failed
		}
	default:
		return Failed
	}
}
