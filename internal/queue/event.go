// Package queue defines message payloads exchanged over the message broker.
package queue

// SubmissionModeratedEvent is published when an admin approves or denies an
// event submission. It carries enough for downstream consumers to build an
// audit trail or notify the submitter without querying the primary database.
type SubmissionModeratedEvent struct {
	SubmissionID uint64 `json:"submission_id"`
	EventID      uint64 `json:"event_id,omitempty"` // set on approval only
	SubmitterID  uint64 `json:"submitter_id"`
	EventName    string `json:"event_name"`
	Status       string `json:"status"` // approved | denied
	ModeratedAt  string `json:"moderated_at"`
}
