package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/monitor"
	"campuspass-backend/internal/service"
)

// MockGatePassService
type MockGatePassService struct {
	mock.Mock
}

func (m *MockGatePassService) CreatePass(ctx context.Context, studentID string, passType domain.PassType, reason string, departure time.Time, returnDate *time.Time) (*domain.GatePass, error) {
	args := m.Called(ctx, studentID, passType, reason, departure, returnDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatePass), args.Error(1)
}
func (m *MockGatePassService) Approve(ctx context.Context, actorID string, role domain.ActorRole, passID string, target domain.PassStatus, comment string) (*domain.GatePass, error) {
	args := m.Called(ctx, actorID, role, passID, target, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatePass), args.Error(1)
}
func (m *MockGatePassService) Reject(ctx context.Context, actorID string, role domain.ActorRole, passID, comment string) (*domain.GatePass, error) {
	args := m.Called(ctx, actorID, role, passID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GatePass), args.Error(1)
}
func (m *MockGatePassService) GetPass(ctx context.Context, passID string) (*domain.GatePass, []domain.AuditEntry, error) {
	args := m.Called(ctx, passID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.GatePass), args.Get(1).([]domain.AuditEntry), args.Error(2)
}
func (m *MockGatePassService) ListQueue(ctx context.Context, actorID string, role domain.ActorRole, statuses []domain.PassStatus, studentID string, page, pageSize int32) ([]domain.GatePass, int32, error) {
	args := m.Called(ctx, actorID, role, statuses, studentID, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.GatePass), int32(args.Int(1)), args.Error(2)
}

// MockGateService
type MockGateService struct {
	mock.Mock
}

func (m *MockGateService) LogAction(ctx context.Context, passID, gatekeeperID string, action domain.MovementAction, comment string) (*domain.MovementEvent, error) {
	args := m.Called(ctx, passID, gatekeeperID, action, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementEvent), args.Error(1)
}
func (m *MockGateService) LogBulk(ctx context.Context, passIDs []string, gatekeeperID string, action domain.MovementAction, comment string) map[string]service.BulkResult {
	args := m.Called(ctx, passIDs, gatekeeperID, action, comment)
	return args.Get(0).(map[string]service.BulkResult)
}
func (m *MockGateService) LiveView(ctx context.Context, asOf time.Time) (*monitor.LiveView, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*monitor.LiveView), args.Error(1)
}
func (m *MockGateService) History(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.MovementEvent, int32, error) {
	args := m.Called(ctx, from, to, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.MovementEvent), int32(args.Int(1)), args.Error(2)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), int32(args.Int(1)), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}
