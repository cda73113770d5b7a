// Package reportsink implements the operator-visible reporting sink
// (spec.md §6, §4.4 step 5): a pluggable, fire-and-forget destination for
// the compensate.Report emitted whenever a transaction terminates FAILED.
// None of these sinks may panic back into the core.
package reportsink

import (
	"log"

	"groupdtc/internal/compensate"
)

// LogSink writes the report through the standard logger. It is the
// default sink; cmd/server always puts it first in its MultiSink, ahead of
// any Kafka or Postgres sink.
type LogSink struct{}

// Report implements compensate.Sink.
func (LogSink) Report(r compensate.Report) {
	log.Printf("compensation exhausted: group=%s op=%s success_set=%v last_outcomes=%v",
		r.GroupID, r.IntendedOperation, r.SuccessSet, r.LastCompensationOut)
}

// MultiSink fans one report out to every configured sink. A panicking
// sink is recovered so it can never take down the core or starve its
// siblings.
type MultiSink struct {
	Sinks []compensate.Sink
}

// Report implements compensate.Sink.
func (m MultiSink) Report(r compensate.Report) {
	for _, s := range m.Sinks {
		reportSafely(s, r)
	}
}

func reportSafely(s compensate.Sink, r compensate.Report) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("reportsink: sink panicked, recovered: %v", rec)
		}
	}()
	s.Report(r)
}
