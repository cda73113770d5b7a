// Package fanout implements the concurrent join-all-outcomes executor
// (C2): issue one operation to every replica in parallel and collect every
// outcome without short-circuiting on the first failure. Grounded on the
// teacher's replicator and quorum executors, but each goroutine writes its
// outcome straight into its own slot of a pre-sized slice under a
// sync.WaitGroup (no collector channel), and the executor waits for every
// reply instead of stopping once a quorum is reached.
package fanout

import (
	"context"
	"sync"

	"groupdtc/internal/replica"
)

// Call is one replica operation: Post, Delete or Get on a Client.
type Call func(ctx context.Context, c replica.Client, groupID string) replica.Outcome

// Post invokes Client.Post.
func Post(ctx context.Context, c replica.Client, groupID string) replica.Outcome {
	return c.Post(ctx, groupID)
}

// Delete invokes Client.Delete.
func Delete(ctx context.Context, c replica.Client, groupID string) replica.Outcome {
	return c.Delete(ctx, groupID)
}

// Get invokes Client.Get.
func Get(ctx context.Context, c replica.Client, groupID string) replica.Outcome {
	return c.Get(ctx, groupID)
}

// Execute fans call out to every client concurrently and returns the
// outcome vector aligned positionally with clients: outcome[i]
// corresponds to clients[i]. No call cancels another — every call runs
// to natural completion (success, HTTP error, or transport error). ctx
// bounds the whole fan-out; per-call deadlines are the caller's
// responsibility (wrap call with context.WithTimeout per invocation).
func Execute(ctx context.Context, clients []replica.Client, groupID string, call Call) []replica.Outcome {
	outcomes := make([]replica.Outcome, len(clients))

	var wg sync.WaitGroup
	for i, c := range clients {
		wg.Add(1)
		go func(i int, c replica.Client) {
			defer wg.Done()
			outcomes[i] = call(ctx, c, groupID)
		}(i, c)
	}
	wg.Wait()

	return outcomes
}
