package jobs

import (
	"context"
	"time"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/logger"
)

// SendOverdueReminders mails every warden the current overdue list.
// The live view itself stays pull-based; this job only nudges the
// people who need to chase students.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		view, err := jr.services.Gate.LiveView(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to compute live view for reminders", "error", err)
			return
		}
		if len(view.Overdue) == 0 {
			logger.Info("No overdue passes, skipping reminders")
			return
		}

		wardens, err := jr.store.ListWardens(ctx)
		if err != nil {
			logger.Error("Failed to list wardens", "error", err)
			return
		}

		sent := 0
		for _, warden := range wardens {
			if err := jr.services.Email.SendOverdueReminder(ctx, warden.Email, warden.Name, view.Overdue); err != nil {
				logger.Error("Failed to send overdue reminder", "warden_id", warden.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent overdue reminders", "overdue_count", len(view.Overdue), "wardens_notified", sent)
	})
}

// ExpireStalePending rejects pending passes whose departure date has
// already passed; nobody can approve a trip that never happened.
func (jr *JobRunner) ExpireStalePending() {
	jr.runWithRecovery("ExpireStalePending", func() {
		ctx := context.Background()

		expired, err := jr.store.ExpireStalePending(ctx, time.Now().UTC(), domain.AuditEntry{
			ActorID:   "system",
			ActorRole: domain.RoleWarden,
			Comment:   "expired: departure date passed while pending",
		})
		if err != nil {
			logger.Error("Failed to expire stale pending passes", "error", err)
			return
		}
		logger.Info("Expired stale pending passes", "count", expired)
	})
}
