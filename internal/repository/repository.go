package repository

import (
	"context"
	"time"

	"campuspass-backend/internal/domain"
)

// GatePassRepository owns the pass + audit lifecycle. UpdateStatus is
// the only write path for status changes: it performs a compare-and-set
// against the expected current status and appends the audit entry in
// the same transaction, so two concurrent approvals of the same pass
// cannot both succeed.
type GatePassRepository interface {
	Create(ctx context.Context, pass *domain.GatePass) error
	GetByID(ctx context.Context, id string) (*domain.GatePass, error)
	// UpdateStatus returns domain.ErrStatusConflict when the pass no
	// longer holds entry.FromStatus, and domain.ErrPassNotFound when
	// the id is unknown.
	UpdateStatus(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, filter PassFilter) ([]domain.GatePass, int32, error)
	// ListActive returns every pass in one of the given statuses,
	// unpaginated; the live monitor feeds these to the classifier.
	ListActive(ctx context.Context, statuses []domain.PassStatus) ([]domain.GatePass, error)
	ListAudit(ctx context.Context, passID string) ([]domain.AuditEntry, error)
	// ExpireStalePending rejects pending passes whose departure date
	// passed before the cutoff; used by the nightly sweep.
	ExpireStalePending(ctx context.Context, cutoff time.Time, entryTemplate domain.AuditEntry) (int64, error)
}

// PassFilter scopes a queue listing. StudentIDs, when non-nil,
// restricts results to the caller's mentees/department/hostel as
// resolved from the directory.
type PassFilter struct {
	Statuses   []domain.PassStatus
	StudentIDs []string
	Page       int32
	PageSize   int32
}

// MovementRepository owns the append-only gate event ledger and
// enforces the out/in invariant inside the store: both log methods run
// a single transaction that locks the pass row, checks the invariant,
// appends the event, and applies the completion status when the scan
// closes the pass.
type MovementRepository interface {
	// LogExit fails with domain.ErrNotAuthorizedForExit unless the
	// pass currently holds requiredStatus, and domain.ErrAlreadyOut if
	// an unmatched exit exists. completeOnExit marks the pass
	// COMPLETED in the same transaction (exit-only passes).
	LogExit(ctx context.Context, ev *domain.MovementEvent, requiredStatus domain.PassStatus, completeOnExit bool) error
	// LogEntry fails with domain.ErrNoActiveExit when there is no
	// unmatched exit. completeOnEntry marks the pass COMPLETED in the
	// same transaction (passes with a return leg).
	LogEntry(ctx context.Context, ev *domain.MovementEvent, completeOnEntry bool) error
	ListByPass(ctx context.Context, passID string) ([]domain.MovementEvent, error)
	// OpenExits returns the unmatched exit event per pass id.
	OpenExits(ctx context.Context) (map[string]domain.MovementEvent, error)
	ListRange(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.MovementEvent, int32, error)
}

// DirectoryRepository is the read-only view over campus directory data
// (students, approvers, org structure). The engine never writes it.
type DirectoryRepository interface {
	GetStudent(ctx context.Context, id string) (*domain.Student, error)
	GetStudents(ctx context.Context, ids []string) (map[string]domain.Student, error)
	GetApprover(ctx context.Context, id string) (*domain.Approver, error)
	// ListScopedStudentIDs resolves the students an approver is
	// responsible for: mentees for staff, a department for an HOD, a
	// hostel for a warden.
	ListScopedStudentIDs(ctx context.Context, approverID string, role domain.ActorRole) ([]string, error)
	ListWardens(ctx context.Context) ([]domain.Approver, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int64, userID string) error
}
