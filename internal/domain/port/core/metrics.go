package core

import "time"

// Operation outcomes reported to MetricsRecorder
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// MetricsRecorder collects operational measurements from the domain
type MetricsRecorder interface {
	// ObserveOperation records a lifecycle operation (initiate, confirm, cancel, ...) and its outcome
	ObserveOperation(operation string, outcome string, duration time.Duration)
	// IncConflictRetry counts an optimistic transaction that was aborted and retried
	IncConflictRetry(operation string)
	// IncCompensation counts a best-effort compensation (a notification after a failed gateway confirm)
	IncCompensation(reason string)
}
