package domain

import "time"

type MovementAction string

const (
	MovementExit  MovementAction = "EXIT"
	MovementEntry MovementAction = "ENTRY"
)

// MovementEvent is one physical gate scan tied to a pass. Events are
// append-only; they are never updated or deleted.
type MovementEvent struct {
	ID           string         `json:"id"`
	PassID       string         `json:"pass_id"`
	Action       MovementAction `json:"action"`
	GatekeeperID string         `json:"gatekeeper_id"`
	Comment      string         `json:"comment,omitempty"`
	RecordedOn   time.Time      `json:"recorded_on"`
}
