package service

import (
	"context"
	"fmt"
	"time"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/monitor"
)

// ValidationError rejects a request before any write. The field name
// lets the UI point at the offending input.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

type GatePassService interface {
	CreatePass(ctx context.Context, studentID string, passType domain.PassType, reason string, departure time.Time, returnDate *time.Time) (*domain.GatePass, error)
	// Approve moves the pass one step along its chain. target is
	// optional; when set it must equal the chain's next step.
	Approve(ctx context.Context, actorID string, role domain.ActorRole, passID string, target domain.PassStatus, comment string) (*domain.GatePass, error)
	Reject(ctx context.Context, actorID string, role domain.ActorRole, passID, comment string) (*domain.GatePass, error)
	GetPass(ctx context.Context, passID string) (*domain.GatePass, []domain.AuditEntry, error)
	// ListQueue is role-scoped: students see their own passes,
	// approvers their mentees/department/hostel, gatekeepers
	// everything. studentID optionally narrows within that scope.
	ListQueue(ctx context.Context, actorID string, role domain.ActorRole, statuses []domain.PassStatus, studentID string, page, pageSize int32) ([]domain.GatePass, int32, error)
}

// BulkResult is the per-pass outcome of a bulk gate action. Bulk calls
// never fail as a unit; each id succeeds or fails independently.
type BulkResult struct {
	Event *domain.MovementEvent `json:"event,omitempty"`
	Error string                `json:"error,omitempty"`
}

type GateService interface {
	LogAction(ctx context.Context, passID, gatekeeperID string, action domain.MovementAction, comment string) (*domain.MovementEvent, error)
	LogBulk(ctx context.Context, passIDs []string, gatekeeperID string, action domain.MovementAction, comment string) map[string]BulkResult
	LiveView(ctx context.Context, asOf time.Time) (*monitor.LiveView, error)
	History(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.MovementEvent, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) error
}

type EmailService interface {
	SendPassStatusNotification(ctx context.Context, email, name string, pass *domain.GatePass, comment string) error
	SendApprovalRequestNotification(ctx context.Context, email, approverName, studentName string, pass *domain.GatePass) error
	SendOverdueReminder(ctx context.Context, email, wardenName string, overdue []monitor.LiveEntry) error
}
