package service

import (
	"context"
	"fmt"
	"time"

	"campuspass-backend/internal/approval"
	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/logger"
	"campuspass-backend/internal/monitor"
	"campuspass-backend/internal/repository"
)

type gateService struct {
	passRepo     repository.GatePassRepository
	movementRepo repository.MovementRepository
	dirRepo      repository.DirectoryRepository
	noteRepo     repository.NotificationRepository
	machine      *approval.Machine
}

func NewGateService(
	passRepo repository.GatePassRepository,
	movementRepo repository.MovementRepository,
	dirRepo repository.DirectoryRepository,
	noteRepo repository.NotificationRepository,
	machine *approval.Machine,
) GateService {
	return &gateService{
		passRepo:     passRepo,
		movementRepo: movementRepo,
		dirRepo:      dirRepo,
		noteRepo:     noteRepo,
		machine:      machine,
	}
}

func (s *gateService) LogAction(ctx context.Context, passID, gatekeeperID string, action domain.MovementAction, comment string) (*domain.MovementEvent, error) {
	if action != domain.MovementExit && action != domain.MovementEntry {
		return nil, &ValidationError{Field: "action", Msg: "must be EXIT or ENTRY"}
	}

	pass, err := s.passRepo.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}
	student, err := s.dirRepo.GetStudent(ctx, pass.StudentID)
	if err != nil {
		return nil, err
	}

	ev := &domain.MovementEvent{
		PassID:       passID,
		Action:       action,
		GatekeeperID: gatekeeperID,
		Comment:      comment,
	}

	switch action {
	case domain.MovementExit:
		required := s.machine.FinalStatus(pass.Type, student.DayScholar())
		// Exit-only passes close the moment the student walks out;
		// there is no return leg to wait for.
		err = s.movementRepo.LogExit(ctx, ev, required, !pass.RequiresReturnLeg())
	case domain.MovementEntry:
		err = s.movementRepo.LogEntry(ctx, ev, pass.RequiresReturnLeg())
	}
	if err != nil {
		return nil, err
	}

	s.notifyScan(ctx, pass, student, ev)
	return ev, nil
}

// LogBulk applies one action to each pass independently. One student's
// failure never rolls back another's success; the caller gets a
// per-pass outcome map and the call itself never fails as a unit.
func (s *gateService) LogBulk(ctx context.Context, passIDs []string, gatekeeperID string, action domain.MovementAction, comment string) map[string]BulkResult {
	results := make(map[string]BulkResult, len(passIDs))
	for _, id := range passIDs {
		ev, err := s.LogAction(ctx, id, gatekeeperID, action, comment)
		if err != nil {
			results[id] = BulkResult{Error: err.Error()}
			continue
		}
		results[id] = BulkResult{Event: ev}
	}
	return results
}

// LiveView recomputes the three-bucket projection from scratch on
// every call. A pass is eligible once it holds its chain's final
// approval status; everything else, including completed passes, is
// excluded before classification.
func (s *gateService) LiveView(ctx context.Context, asOf time.Time) (*monitor.LiveView, error) {
	passes, err := s.passRepo.ListActive(ctx, []domain.PassStatus{
		domain.PassStatusApprovedStaff,
		domain.PassStatusApprovedHOD,
		domain.PassStatusApprovedWarden,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(passes))
	for _, p := range passes {
		ids = append(ids, p.StudentID)
	}
	students, err := s.dirRepo.GetStudents(ctx, ids)
	if err != nil {
		return nil, err
	}

	eligible := passes[:0]
	for _, p := range passes {
		student, ok := students[p.StudentID]
		if !ok {
			logger.Warn("Pass references unknown student, skipping", "pass_id", p.ID, "student_id", p.StudentID)
			continue
		}
		if p.Status == s.machine.FinalStatus(p.Type, student.DayScholar()) {
			eligible = append(eligible, p)
		}
	}

	openExits, err := s.movementRepo.OpenExits(ctx)
	if err != nil {
		return nil, err
	}

	return monitor.Compute(eligible, openExits, asOf), nil
}

func (s *gateService) History(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.MovementEvent, int32, error) {
	return s.movementRepo.ListRange(ctx, from, to, page, pageSize)
}

func (s *gateService) notifyScan(ctx context.Context, pass *domain.GatePass, student *domain.Student, ev *domain.MovementEvent) {
	verb := "left campus"
	if ev.Action == domain.MovementEntry {
		verb = "returned to campus"
	}
	note := &domain.Notification{
		UserID:  student.MentorID,
		Title:   "Gate scan recorded",
		Message: fmt.Sprintf("%s %s", student.Name, verb),
		Attributes: map[string]string{
			"type":    "GATE_SCAN",
			"pass_id": pass.ID,
			"action":  string(ev.Action),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create gate scan notification", "pass_id", pass.ID, "error", err)
	}
}
