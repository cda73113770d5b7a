// Package compensate implements the compensator (C4): given a forward
// outcome vector that needs compensation, it issues the inverse operation
// to exactly the replicas that succeeded, with bounded exponential-backoff
// retry, and reduces to a terminal ROLLED_BACK or FAILED. Grounded on the
// teacher's sendReplicateRequest backoff loop in
// internal/cluster/replicator.go, generalized from its 100ms..800ms range
// to the spec's 1s..60s range and from "retry this one peer" to "retry
// the whole compensation fan-out".
package compensate

import (
	"context"
	"time"

	"groupdtc/internal/classify"
	"groupdtc/internal/fanout"
	"groupdtc/internal/replica"
)

// Result is the terminal outcome of a compensation attempt.
type Result int

const (
	RolledBack Result = iota
	Failed
)

func (r Result) String() string {
	if r == RolledBack {
		return "rolled_back"
	}
	return "failed"
}

// Policy configures the compensator's bounded retry loop.
type Policy struct {
	MaxAttempts int
	MinBackoff  time.Duration
	MaxBackoff  time.Duration
}

// DefaultPolicy is spec.md §4.4's reference policy: up to 3 attempts,
// exponential backoff from 1s to 60s.
var DefaultPolicy = Policy{
	MaxAttempts: 3,
	MinBackoff:  1 * time.Second,
	MaxBackoff:  60 * time.Second,
}

// backoff returns the sleep duration before attempt N (1-indexed: attempt
// 1 never sleeps, attempt 2 sleeps MinBackoff). Doubles each attempt,
// capped at MaxBackoff.
func (p Policy) backoff(attempt int) time.Duration {
	d := p.MinBackoff
	for i := 2; i < attempt; i++ {
		d *= 2
		if d > p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	return d
}

// Report is what the compensator hands to the reporting sink when
// compensation is exhausted (spec.md §4.4 step 5, §6).
type Report struct {
	GroupID             string
	IntendedOperation   replica.Op
	SuccessSet          []int
	LastCompensationOut []replica.Outcome
}

// Sink receives a Report when compensation fails. It must not panic back
// into the core — fire-and-forget per spec.md §6.
type Sink interface {
	Report(r Report)
}

// Compensate undoes forwardOutcomes' committed replicas. clients and
// forwardOutcomes must be positionally aligned and the same length.
// forwardOp is the operation that was attempted (Create/Delete); the
// compensator issues its Inverse() against exactly the replicas whose
// forward outcome was Success.
func Compensate(
	ctx context.Context,
	clients []replica.Client,
	forwardOutcomes []replica.Outcome,
	forwardOp replica.Op,
	groupID string,
	policy Policy,
	sink Sink,
) Result {
	successSet := classify.SuccessSet(forwardOutcomes)
	targets := make([]replica.Client, len(successSet))
	for i, idx := range successSet {
		targets[i] = clients[idx]
	}

	inverseOp := forwardOp.Inverse()
	call := fanout.Post
	if inverseOp == replica.OpDelete {
		call = fanout.Delete
	}

	var lastOutcomes []replica.Outcome
attempts:
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(policy.backoff(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				break attempts
			case <-timer.C:
			}
		}

		lastOutcomes = fanout.Execute(ctx, targets, groupID, call)
		if compensated(lastOutcomes) {
			return RolledBack
		}
	}

	if sink != nil {
		sink.Report(Report{
			GroupID:             groupID,
			IntendedOperation:   forwardOp,
			SuccessSet:          successSet,
			LastCompensationOut: lastOutcomes,
		})
	}
	return Failed
}

// compensated is true when every targeted replica is observably back in
// its pre-forward state: the inverse call returned Success or
// AlreadyInDesiredState for every target.
func compensated(outcomes []replica.Outcome) bool {
	if len(outcomes) == 0 {
		return true
	}
	for _, o := range outcomes {
		if o.Kind != replica.Success && o.Kind != replica.AlreadyInDesiredState {
			return false
		}
	}
	return true
}
