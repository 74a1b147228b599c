package domain

import "time"

// AuditEntry records one accepted status transition. Exactly one entry
// is written per transition, in the same transaction as the status
// update, and entries are never mutated afterwards.
type AuditEntry struct {
	ID         string     `json:"id"`
	PassID     string     `json:"pass_id"`
	FromStatus PassStatus `json:"from_status"`
	ToStatus   PassStatus `json:"to_status"`
	ActorID    string     `json:"actor_id"`
	ActorRole  ActorRole  `json:"actor_role"`
	Comment    string     `json:"comment,omitempty"`
	RecordedOn time.Time  `json:"recorded_on"`
}
