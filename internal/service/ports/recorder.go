package ports

import "time"

type OutcomeRecorder interface {
	ObserveOperation(operation, outcome string, took time.Duration)
	ObserveDrift(eventID string, delta int)
}
