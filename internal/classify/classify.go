// Package classify implements the outcome classifier (C3): a pure
// function from an outcome vector to a coordination Result, per the
// decision table in spec.md §4.3. It has no I/O and no state — every
// conclusion is derived solely from the vector it is given.
package classify

import "groupdtc/internal/replica"

// Result is what the classifier concludes about one outcome vector.
type Result int

const (
	// Succeeded means every replica is in the desired post-state,
	// including no-op cases. No compensation needed.
	Succeeded Result = iota
	// NeedsCompensation means at least one replica committed the forward
	// change and at least one other did not; the compensator must run.
	NeedsCompensation
	// ToBeRetried means no replica changed state and none was already in
	// the desired state; the outer layer should retry the whole
	// transaction.
	ToBeRetried
)

func (r Result) String() string {
	switch r {
	case Succeeded:
		return "succeeded"
	case NeedsCompensation:
		return "needs_compensation"
	case ToBeRetried:
		return "to_be_retried"
	default:
		return "unknown"
	}
}

// Classify maps an outcome vector to a Result. op is unused by the table
// itself (the table is symmetric between create and delete) but is kept
// in the signature so call sites read naturally and future asymmetric
// rules have a place to live.
func Classify(outcomes []replica.Outcome, _ replica.Op) Result {
	var successes, noops, errs int
	for _, o := range outcomes {
		switch o.Kind {
		case replica.Success:
			successes++
		case replica.AlreadyInDesiredState:
			noops++
		default: // ClientError, ServerError, TransportError
			errs++
		}
	}

	switch {
	case noops == len(outcomes):
		// All AlreadyInDesiredState: no-op case, already converged.
		return Succeeded
	case successes == len(outcomes):
		// All Success.
		return Succeeded
	case errs == len(outcomes):
		// All errors, none already in desired state, none committed:
		// nothing changed anywhere, safe to retry the whole transaction.
		return ToBeRetried
	case successes > 0 && errs > 0:
		// At least one commit and at least one failure: the cluster is
		// split, compensation must undo the committed replicas.
		return NeedsCompensation
	default:
		// Remaining mixed case: some Success, some AlreadyInDesiredState,
		// no errors at all — the cluster is already in the desired
		// post-state everywhere.
		return Succeeded
	}
}

// SuccessSet returns the indices of outcomes whose Kind is Success —
// exactly the replicas the compensator must address. AlreadyInDesiredState
// never appears here: it was not a forward change.
func SuccessSet(outcomes []replica.Outcome) []int {
	var idx []int
	for i, o := range outcomes {
		if o.Kind == replica.Success {
			idx = append(idx, i)
		}
	}
	return idx
}
