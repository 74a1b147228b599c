package domain

import "time"

type PassType string

const (
	PassTypeRegular   PassType = "REGULAR"
	PassTypeEmergency PassType = "EMERGENCY"
	PassTypeMedical   PassType = "MEDICAL"
	PassTypeOnDuty    PassType = "ON_DUTY"
	PassTypeLeave     PassType = "LEAVE"
)

// EmergencyLike reports whether the pass type uses the shortened
// override chain instead of the full staff/hod/warden chain.
func (t PassType) EmergencyLike() bool {
	return t == PassTypeEmergency || t == PassTypeMedical
}

func ValidPassType(t PassType) bool {
	switch t {
	case PassTypeRegular, PassTypeEmergency, PassTypeMedical, PassTypeOnDuty, PassTypeLeave:
		return true
	}
	return false
}

type PassStatus string

const (
	PassStatusPending        PassStatus = "PENDING"
	PassStatusApprovedStaff  PassStatus = "APPROVED_STAFF"
	PassStatusApprovedHOD    PassStatus = "APPROVED_HOD"
	PassStatusApprovedWarden PassStatus = "APPROVED_WARDEN"
	PassStatusRejected       PassStatus = "REJECTED"
	PassStatusCompleted      PassStatus = "COMPLETED"
)

// Terminal statuses never transition again.
func (s PassStatus) Terminal() bool {
	return s == PassStatusRejected || s == PassStatusCompleted
}

type ActorRole string

const (
	RoleStudent    ActorRole = "STUDENT"
	RoleStaff      ActorRole = "STAFF"
	RoleHOD        ActorRole = "HOD"
	RoleWarden     ActorRole = "WARDEN"
	RoleGatekeeper ActorRole = "GATEKEEPER"
)

// GatePass is one exit/entry authorization cycle for a student.
type GatePass struct {
	ID            string     `json:"id"`
	StudentID     string     `json:"student_id"`
	Type          PassType   `json:"type"`
	Reason        string     `json:"reason"`
	DepartureDate time.Time  `json:"departure_date"`
	// ReturnDate is nil for exit-only passes (day scholars with no
	// return leg). A pass without a return date can never be overdue.
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     PassStatus `json:"status"`
	CreatedOn  time.Time  `json:"created_on"`
	UpdatedOn  time.Time  `json:"updated_on"`
}

// RequiresReturnLeg reports whether an entry scan is expected after
// the exit scan. Exit-only passes complete immediately on exit.
func (p *GatePass) RequiresReturnLeg() bool {
	return p.ReturnDate != nil
}
