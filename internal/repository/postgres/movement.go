package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/repository"
)

type movementRepository struct {
	db *sql.DB
}

func NewMovementRepository(db *sql.DB) repository.MovementRepository {
	return &movementRepository{db: db}
}

const eventColumns = `id, pass_id, action, gatekeeper_id, comment, recorded_on`

// openExitCount counts unmatched exits for a pass. Run inside a
// transaction that holds the pass row lock, so two concurrent scans on
// the same pass serialize instead of both passing the check.
func openExitCount(ctx context.Context, tx *sql.Tx, passID string) (int, error) {
	var open int
	err := tx.QueryRowContext(ctx,
		`SELECT count(*) FILTER (WHERE action = $2) - count(*) FILTER (WHERE action = $3)
		 FROM movement_events WHERE pass_id = $1`,
		passID, domain.MovementExit, domain.MovementEntry).Scan(&open)
	return open, err
}

func lockPass(ctx context.Context, tx *sql.Tx, passID string) (domain.PassStatus, error) {
	var status domain.PassStatus
	err := tx.QueryRowContext(ctx,
		`SELECT status FROM gate_passes WHERE id = $1 FOR UPDATE`, passID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrPassNotFound
	}
	return status, err
}

func appendEvent(ctx context.Context, tx *sql.Tx, ev *domain.MovementEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.RecordedOn.IsZero() {
		ev.RecordedOn = time.Now().UTC()
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO movement_events (id, pass_id, action, gatekeeper_id, comment, recorded_on)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.PassID, ev.Action, ev.GatekeeperID, ev.Comment, ev.RecordedOn)
	return err
}

func completePass(ctx context.Context, tx *sql.Tx, passID string, from domain.PassStatus, gatekeeperID, comment string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE gate_passes SET status = $1, updated_on = $2 WHERE id = $3`,
		domain.PassStatusCompleted, time.Now().UTC(), passID)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO pass_audit (id, pass_id, from_status, to_status, actor_id, actor_role, comment, recorded_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), passID, from, domain.PassStatusCompleted,
		gatekeeperID, domain.RoleGatekeeper, comment, time.Now().UTC())
	return err
}

func (r *movementRepository) LogExit(ctx context.Context, ev *domain.MovementEvent, requiredStatus domain.PassStatus, completeOnExit bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	status, err := lockPass(ctx, tx, ev.PassID)
	if err != nil {
		return err
	}
	if status != requiredStatus {
		return domain.ErrNotAuthorizedForExit
	}
	open, err := openExitCount(ctx, tx, ev.PassID)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrAlreadyOut
	}

	ev.Action = domain.MovementExit
	if err := appendEvent(ctx, tx, ev); err != nil {
		return err
	}
	if completeOnExit {
		if err := completePass(ctx, tx, ev.PassID, status, ev.GatekeeperID, "exit-only pass closed at gate"); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *movementRepository) LogEntry(ctx context.Context, ev *domain.MovementEvent, completeOnEntry bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	status, err := lockPass(ctx, tx, ev.PassID)
	if err != nil {
		return err
	}
	open, err := openExitCount(ctx, tx, ev.PassID)
	if err != nil {
		return err
	}
	if open == 0 {
		return domain.ErrNoActiveExit
	}

	ev.Action = domain.MovementEntry
	if err := appendEvent(ctx, tx, ev); err != nil {
		return err
	}
	if completeOnEntry && status != domain.PassStatusCompleted {
		if err := completePass(ctx, tx, ev.PassID, status, ev.GatekeeperID, "return leg closed at gate"); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *movementRepository) ListByPass(ctx context.Context, passID string) ([]domain.MovementEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM movement_events WHERE pass_id = $1 ORDER BY recorded_on, id`
	rows, err := r.db.QueryContext(ctx, query, passID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// OpenExits returns the unmatched exit event for every pass that is
// currently out.
func (r *movementRepository) OpenExits(ctx context.Context) (map[string]domain.MovementEvent, error) {
	query := `SELECT DISTINCT ON (pass_id) ` + eventColumns + `
	          FROM movement_events
	          WHERE action = $1 AND pass_id IN (
	              SELECT pass_id FROM movement_events
	              GROUP BY pass_id
	              HAVING count(*) FILTER (WHERE action = $1) > count(*) FILTER (WHERE action = $2))
	          ORDER BY pass_id, recorded_on DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.MovementExit, domain.MovementEntry)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	open := make(map[string]domain.MovementEvent, len(events))
	for _, ev := range events {
		open[ev.PassID] = ev
	}
	return open, nil
}

func (r *movementRepository) ListRange(ctx context.Context, from, to time.Time, page, pageSize int32) ([]domain.MovementEvent, int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM movement_events WHERE recorded_on >= $1 AND recorded_on < $2`,
		from, to).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	query := `SELECT ` + eventColumns + ` FROM movement_events
	          WHERE recorded_on >= $1 AND recorded_on < $2
	          ORDER BY recorded_on DESC, id LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, from, to, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, count, nil
}

func scanEvents(rows *sql.Rows) ([]domain.MovementEvent, error) {
	var events []domain.MovementEvent
	for rows.Next() {
		var ev domain.MovementEvent
		if err := rows.Scan(&ev.ID, &ev.PassID, &ev.Action, &ev.GatekeeperID, &ev.Comment, &ev.RecordedOn); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
