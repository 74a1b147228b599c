package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campuspass-backend/internal/approval"
	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/logger"
	"campuspass-backend/internal/repository"
)

type gatePassService struct {
	passRepo repository.GatePassRepository
	dirRepo  repository.DirectoryRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	machine  *approval.Machine
}

func NewGatePassService(
	passRepo repository.GatePassRepository,
	dirRepo repository.DirectoryRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	machine *approval.Machine,
) GatePassService {
	return &gatePassService{
		passRepo: passRepo,
		dirRepo:  dirRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		machine:  machine,
	}
}

func (s *gatePassService) CreatePass(ctx context.Context, studentID string, passType domain.PassType, reason string, departure time.Time, returnDate *time.Time) (*domain.GatePass, error) {
	if !domain.ValidPassType(passType) {
		return nil, &ValidationError{Field: "type", Msg: "unknown pass type"}
	}
	if reason == "" {
		return nil, &ValidationError{Field: "reason", Msg: "reason is required"}
	}
	if departure.IsZero() {
		return nil, &ValidationError{Field: "departure_date", Msg: "departure date is required"}
	}
	if returnDate != nil && returnDate.Before(departure) {
		return nil, &ValidationError{Field: "return_date", Msg: "return date must not precede departure date"}
	}

	student, err := s.dirRepo.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	// Hostellers always have a return leg; only day scholars may hold
	// an exit-only pass.
	if returnDate == nil && !student.DayScholar() {
		return nil, &ValidationError{Field: "return_date", Msg: "return date is required for hostellers"}
	}

	pass := &domain.GatePass{
		ID:            uuid.NewString(),
		StudentID:     studentID,
		Type:          passType,
		Reason:        reason,
		DepartureDate: departure,
		ReturnDate:    returnDate,
		Status:        domain.PassStatusPending,
	}
	if err := s.passRepo.Create(ctx, pass); err != nil {
		return nil, err
	}

	s.notifyFirstApprover(ctx, pass, student)
	return pass, nil
}

func (s *gatePassService) Approve(ctx context.Context, actorID string, role domain.ActorRole, passID string, target domain.PassStatus, comment string) (*domain.GatePass, error) {
	return s.transition(ctx, actorID, role, passID, approval.ActionApprove, target, comment)
}

func (s *gatePassService) Reject(ctx context.Context, actorID string, role domain.ActorRole, passID, comment string) (*domain.GatePass, error) {
	return s.transition(ctx, actorID, role, passID, approval.ActionReject, "", comment)
}

// transition is the single write path for approvals and rejections:
// read, decide via the state machine, compare-and-set with the audit
// entry, then emit notifications. The CAS means a concurrent loser
// gets domain.ErrStatusConflict instead of overwriting the winner.
func (s *gatePassService) transition(ctx context.Context, actorID string, role domain.ActorRole, passID string, action approval.Action, target domain.PassStatus, comment string) (*domain.GatePass, error) {
	pass, err := s.passRepo.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}
	student, err := s.dirRepo.GetStudent(ctx, pass.StudentID)
	if err != nil {
		return nil, err
	}

	next, err := s.machine.Decide(pass, student.DayScholar(), role, action, target)
	if err != nil {
		return nil, err
	}

	entry := &domain.AuditEntry{
		PassID:     passID,
		FromStatus: pass.Status,
		ToStatus:   next,
		ActorID:    actorID,
		ActorRole:  role,
		Comment:    comment,
	}
	if err := s.passRepo.UpdateStatus(ctx, entry); err != nil {
		return nil, err
	}
	pass.Status = next
	pass.UpdatedOn = entry.RecordedOn

	s.notifyTransition(ctx, pass, student, role, comment)
	return pass, nil
}

func (s *gatePassService) GetPass(ctx context.Context, passID string) (*domain.GatePass, []domain.AuditEntry, error) {
	pass, err := s.passRepo.GetByID(ctx, passID)
	if err != nil {
		return nil, nil, err
	}
	audit, err := s.passRepo.ListAudit(ctx, passID)
	if err != nil {
		return nil, nil, err
	}
	return pass, audit, nil
}

func (s *gatePassService) ListQueue(ctx context.Context, actorID string, role domain.ActorRole, statuses []domain.PassStatus, studentID string, page, pageSize int32) ([]domain.GatePass, int32, error) {
	filter := repository.PassFilter{
		Statuses: statuses,
		Page:     page,
		PageSize: pageSize,
	}
	if len(filter.Statuses) == 0 {
		filter.Statuses = []domain.PassStatus{
			domain.PassStatusPending,
			domain.PassStatusApprovedStaff,
			domain.PassStatusApprovedHOD,
			domain.PassStatusApprovedWarden,
		}
	}

	switch role {
	case domain.RoleStudent:
		filter.StudentIDs = []string{actorID}
	case domain.RoleGatekeeper:
		// Gatekeepers see the full gate-eligible queue, unscoped.
	default:
		ids, err := s.dirRepo.ListScopedStudentIDs(ctx, actorID, role)
		if err != nil {
			return nil, 0, err
		}
		if ids == nil {
			ids = []string{}
		}
		filter.StudentIDs = ids
	}

	// Narrow to one student, but never widen past the role's scope.
	if studentID != "" && role != domain.RoleStudent {
		if filter.StudentIDs == nil {
			filter.StudentIDs = []string{studentID}
		} else if containsString(filter.StudentIDs, studentID) {
			filter.StudentIDs = []string{studentID}
		} else {
			filter.StudentIDs = []string{}
		}
	}

	return s.passRepo.List(ctx, filter)
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// notifyFirstApprover tells the student's mentor a new request is
// waiting. Failures are logged and swallowed: notification delivery
// never fails a write that already happened.
func (s *gatePassService) notifyFirstApprover(ctx context.Context, pass *domain.GatePass, student *domain.Student) {
	mentor, err := s.dirRepo.GetApprover(ctx, student.MentorID)
	if err != nil {
		logger.Warn("Could not resolve mentor for new pass", "pass_id", pass.ID, "student_id", student.ID, "error", err)
		return
	}
	note := &domain.Notification{
		UserID:  mentor.ID,
		Title:   "New gate pass request",
		Message: fmt.Sprintf("%s requested a %s pass", student.Name, pass.Type),
		Attributes: map[string]string{
			"type":    "PASS_REQUESTED",
			"pass_id": pass.ID,
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create notification", "pass_id", pass.ID, "error", err)
	}
	if err := s.emailSvc.SendApprovalRequestNotification(ctx, mentor.Email, mentor.Name, student.Name, pass); err != nil {
		logger.Warn("Failed to send approval request email", "pass_id", pass.ID, "error", err)
	}
}

func (s *gatePassService) notifyTransition(ctx context.Context, pass *domain.GatePass, student *domain.Student, actorRole domain.ActorRole, comment string) {
	note := &domain.Notification{
		UserID:  student.ID,
		Title:   "Gate pass update",
		Message: fmt.Sprintf("Your %s pass is now %s", pass.Type, pass.Status),
		Attributes: map[string]string{
			"type":       "PASS_STATUS_CHANGED",
			"pass_id":    pass.ID,
			"status":     string(pass.Status),
			"actor_role": string(actorRole),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create notification", "pass_id", pass.ID, "error", err)
	}
	if err := s.emailSvc.SendPassStatusNotification(ctx, student.Email, student.Name, pass, comment); err != nil {
		logger.Warn("Failed to send status email", "pass_id", pass.ID, "error", err)
	}
}
