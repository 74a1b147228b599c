package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/monitor"
	"campuspass-backend/internal/repository"
)

// MockGatePassRepo
type MockGatePassRepo struct {
	mock.Mock
}

func (m *MockGatePassRepo) Create(ctx context.Context, pass *domain.GatePass) error {
	args := m.Called(ctx, pass)
	return args.Error(0)
}
func (m *MockGatePassRepo) GetByID(ctx context.Context, id string) (*domain.GatePass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatePass), args.Error(1)
}
func (m *MockGatePassRepo) UpdateStatus(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockGatePassRepo) List(ctx context.Context, filter repository.PassFilter) ([]domain.GatePass, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.GatePass), int32(args.Int(1)), args.Error(2)
}
func (m *MockGatePassRepo) ListActive(ctx context.Context, statuses []domain.PassStatus) ([]domain.GatePass, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GatePass), args.Error(1)
}
func (m *MockGatePassRepo) ListAudit(ctx context.Context, passID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, passID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}
func (m *MockGatePassRepo) ExpireStalePending(ctx context.Context, cutoff time.Time, entryTemplate domain.AuditEntry) (int64, error) {
	args := m.Called(ctx, cutoff, entryTemplate)
	return args.Get(0).(int64), args.Error(1)
}

// MockMovementRepo
type MockMovementRepo struct {
	mock.Mock
}

func (m *MockMovementRepo) LogExit(ctx context.Context, ev *domain.MovementEvent, requiredStatus domain.PassStatus, completeOnExit bool) error {
	args := m.Called(ctx, ev, requiredStatus, completeOnExit)
	return args.Error(0)
}
func (m *MockMovementRepo) LogEntry(ctx context.Context, ev *domain.MovementEvent, completeOnEntry bool) error {
	args := m.Called(ctx, ev, completeOnEntry)
	return args.Error(0)
}
func (m *MockMovementRepo) ListByPass(ctx context.Context, passID string) ([]domain.MovementEvent, error) {
	args := m.Called(ctx, passID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementEvent), args.Error(1)
}
func (m *MockMovementRepo) OpenExits(ctx context.Context) (map[string]domain.MovementEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.MovementEvent), args.Error(1)
}
func (m *MockMovementRepo) ListRange(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.MovementEvent, int32, error) {
	args := m.Called(ctx, from, to, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.MovementEvent), int32(args.Int(1)), args.Error(2)
}

// MockDirectoryRepo
type MockDirectoryRepo struct {
	mock.Mock
}

func (m *MockDirectoryRepo) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}
func (m *MockDirectoryRepo) GetStudents(ctx context.Context, ids []string) (map[string]domain.Student, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Student), args.Error(1)
}
func (m *MockDirectoryRepo) GetApprover(ctx context.Context, id string) (*domain.Approver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approver), args.Error(1)
}
func (m *MockDirectoryRepo) ListScopedStudentIDs(ctx context.Context, approverID string, role domain.ActorRole) ([]string, error) {
	args := m.Called(ctx, approverID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockDirectoryRepo) ListWardens(ctx context.Context) ([]domain.Approver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approver), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), int32(args.Int(1)), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int64, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPassStatusNotification(ctx context.Context, email, name string, pass *domain.GatePass, comment string) error {
	args := m.Called(ctx, email, name, pass, comment)
	return args.Error(0)
}
func (m *MockEmailService) SendApprovalRequestNotification(ctx context.Context, email, approverName, studentName string, pass *domain.GatePass) error {
	args := m.Called(ctx, email, approverName, studentName, pass)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, email, wardenName string, overdue []monitor.LiveEntry) error {
	args := m.Called(ctx, email, wardenName, overdue)
	return args.Error(0)
}
