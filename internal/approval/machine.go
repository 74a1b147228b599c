// Package approval holds the gate pass approval state machine: the
// chain table keyed by pass type, and the pure decision logic that
// validates a requested transition against the chain and the actor's
// role. The package performs no I/O; persistence and notification are
// the caller's concern.
package approval

import (
	"fmt"

	"campuspass-backend/internal/domain"
)

type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

type ErrorCode string

const (
	CodeAlreadyTerminal   ErrorCode = "ALREADY_TERMINAL"
	CodeRoleNotAuthorized ErrorCode = "ROLE_NOT_AUTHORIZED"
	CodeInvalidTarget     ErrorCode = "INVALID_TARGET_STATUS"
)

// TransitionError carries enough detail for the caller to explain the
// rejection: which precondition failed, the status the pass was in,
// and what the actor asked for.
type TransitionError struct {
	Code    ErrorCode
	Current domain.PassStatus
	Role    domain.ActorRole
	Target  domain.PassStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition rejected (%s): status=%s role=%s target=%s",
		e.Code, e.Current, e.Role, e.Target)
}

// Config selects the emergency/medical override chain. Whether an
// emergency pass skips to HOD or straight to the warden differs per
// institution, so it is configured rather than hardcoded.
type Config struct {
	// EmergencyOverride is APPROVED_HOD or APPROVED_WARDEN.
	EmergencyOverride domain.PassStatus
}

type Machine struct {
	override domain.PassStatus
}

func New(cfg Config) *Machine {
	override := cfg.EmergencyOverride
	if override != domain.PassStatusApprovedHOD && override != domain.PassStatusApprovedWarden {
		override = domain.PassStatusApprovedWarden
	}
	return &Machine{override: override}
}

// Chain returns the ordered approval statuses a pass must walk
// through, starting after PENDING. Day scholars never require the
// warden step regardless of pass type.
func (m *Machine) Chain(t domain.PassType, dayScholar bool) []domain.PassStatus {
	if t.EmergencyLike() {
		if dayScholar {
			return []domain.PassStatus{domain.PassStatusApprovedHOD}
		}
		return []domain.PassStatus{m.override}
	}
	if dayScholar {
		return []domain.PassStatus{domain.PassStatusApprovedStaff, domain.PassStatusApprovedHOD}
	}
	return []domain.PassStatus{
		domain.PassStatusApprovedStaff,
		domain.PassStatusApprovedHOD,
		domain.PassStatusApprovedWarden,
	}
}

// FinalStatus is the last approval step of the chain: the status a
// pass must hold before the gate accepts an exit scan.
func (m *Machine) FinalStatus(t domain.PassType, dayScholar bool) domain.PassStatus {
	chain := m.Chain(t, dayScholar)
	return chain[len(chain)-1]
}

// Next returns the immediate next approval status after current, or
// false when the chain is exhausted.
func (m *Machine) Next(current domain.PassStatus, t domain.PassType, dayScholar bool) (domain.PassStatus, bool) {
	chain := m.Chain(t, dayScholar)
	if current == domain.PassStatusPending {
		return chain[0], true
	}
	for i, s := range chain {
		if s == current && i+1 < len(chain) {
			return chain[i+1], true
		}
	}
	return "", false
}

// approverFor maps an approval status to the role that grants it.
func approverFor(s domain.PassStatus) domain.ActorRole {
	switch s {
	case domain.PassStatusApprovedStaff:
		return domain.RoleStaff
	case domain.PassStatusApprovedHOD:
		return domain.RoleHOD
	case domain.PassStatusApprovedWarden:
		return domain.RoleWarden
	}
	return ""
}

func roleRank(r domain.ActorRole) int {
	switch r {
	case domain.RoleStaff:
		return 1
	case domain.RoleHOD:
		return 2
	case domain.RoleWarden:
		return 3
	}
	return 0
}

// currentStepRole is the role that owns the pass at its current
// position in the chain: the approver of the pending next step, or the
// last approver once the chain is exhausted.
func (m *Machine) currentStepRole(pass *domain.GatePass, dayScholar bool) domain.ActorRole {
	if next, ok := m.Next(pass.Status, pass.Type, dayScholar); ok {
		return approverFor(next)
	}
	return approverFor(pass.Status)
}

// Decide validates the requested action and returns the status the
// pass should move to. target is optional: callers normally say only
// approve or reject and the chain supplies the step. When target is
// set it must match the chain's answer exactly; skipping steps is
// rejected, not reinterpreted.
func (m *Machine) Decide(pass *domain.GatePass, dayScholar bool, role domain.ActorRole, action Action, target domain.PassStatus) (domain.PassStatus, error) {
	if pass.Status.Terminal() {
		return "", &TransitionError{Code: CodeAlreadyTerminal, Current: pass.Status, Role: role, Target: target}
	}

	switch action {
	case ActionReject:
		required := m.currentStepRole(pass, dayScholar)
		if roleRank(role) < roleRank(required) {
			return "", &TransitionError{Code: CodeRoleNotAuthorized, Current: pass.Status, Role: role, Target: domain.PassStatusRejected}
		}
		return domain.PassStatusRejected, nil

	case ActionApprove:
		next, ok := m.Next(pass.Status, pass.Type, dayScholar)
		if !ok {
			// Fully approved already; only the gate log completes it.
			return "", &TransitionError{Code: CodeInvalidTarget, Current: pass.Status, Role: role, Target: target}
		}
		if target != "" && target != next {
			return "", &TransitionError{Code: CodeInvalidTarget, Current: pass.Status, Role: role, Target: target}
		}
		if role != approverFor(next) {
			return "", &TransitionError{Code: CodeRoleNotAuthorized, Current: pass.Status, Role: role, Target: next}
		}
		return next, nil
	}

	return "", &TransitionError{Code: CodeInvalidTarget, Current: pass.Status, Role: role, Target: target}
}
