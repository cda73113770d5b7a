// Package replicatest provides a scripted replica.Client double used by
// the coordination core's tests.
package replicatest

import (
	"context"

	"groupdtc/internal/replica"
)

// Fake is a scripted Client. PostOutcomes/DeleteOutcomes/GetOutcomes are
// consumed one at a time per call, in order; the last entry repeats once
// exhausted, so a test can script "fails twice then succeeds" without
// padding the slice to the retry count. Calls are counted for assertions.
type Fake struct {
	PostOutcomes   []replica.Outcome
	DeleteOutcomes []replica.Outcome
	GetOutcomes    []replica.Outcome

	postCalls, deleteCalls, getCalls int
}

func (f *Fake) Get(_ context.Context, _ string) replica.Outcome {
	o := pop(f.GetOutcomes, f.getCalls)
	f.getCalls++
	return o
}

func (f *Fake) Post(_ context.Context, _ string) replica.Outcome {
	o := pop(f.PostOutcomes, f.postCalls)
	f.postCalls++
	return o
}

func (f *Fake) Delete(_ context.Context, _ string) replica.Outcome {
	o := pop(f.DeleteOutcomes, f.deleteCalls)
	f.deleteCalls++
	return o
}

// PostCalls returns how many times Post was invoked.
func (f *Fake) PostCalls() int { return f.postCalls }

// DeleteCalls returns how many times Delete was invoked.
func (f *Fake) DeleteCalls() int { return f.deleteCalls }

func pop(outcomes []replica.Outcome, call int) replica.Outcome {
	if len(outcomes) == 0 {
		return replica.Outcome{Kind: replica.TransportError}
	}
	if call < len(outcomes) {
		return outcomes[call]
	}
	return outcomes[len(outcomes)-1]
}
