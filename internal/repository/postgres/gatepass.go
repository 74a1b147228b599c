package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/repository"
)

type gatePassRepository struct {
	db *sql.DB
}

func NewGatePassRepository(db *sql.DB) repository.GatePassRepository {
	return &gatePassRepository{db: db}
}

const passColumns = `id, student_id, type, reason, departure_date, return_date, status, created_on, updated_on`

func (r *gatePassRepository) Create(ctx context.Context, p *domain.GatePass) error {
	now := time.Now().UTC()
	p.CreatedOn = now
	p.UpdatedOn = now
	query := `INSERT INTO gate_passes (id, student_id, type, reason, departure_date, return_date, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.StudentID, p.Type, p.Reason, p.DepartureDate, p.ReturnDate, p.Status, p.CreatedOn, p.UpdatedOn)
	return err
}

func (r *gatePassRepository) GetByID(ctx context.Context, id string) (*domain.GatePass, error) {
	p := &domain.GatePass{}
	query := `SELECT ` + passColumns + ` FROM gate_passes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.StudentID, &p.Type, &p.Reason, &p.DepartureDate, &p.ReturnDate, &p.Status, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPassNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateStatus performs the compare-and-set status write and the audit
// append in one transaction. The WHERE status guard is what makes two
// concurrent approvals of the same pass mutually exclusive: the loser
// matches zero rows and gets ErrStatusConflict.
func (r *gatePassRepository) UpdateStatus(ctx context.Context, entry *domain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE gate_passes SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
		entry.ToStatus, time.Now().UTC(), entry.PassID, entry.FromStatus)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM gate_passes WHERE id = $1)`, entry.PassID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrPassNotFound
		}
		return domain.ErrStatusConflict
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.RecordedOn.IsZero() {
		entry.RecordedOn = time.Now().UTC()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO pass_audit (id, pass_id, from_status, to_status, actor_id, actor_role, comment, recorded_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.PassID, entry.FromStatus, entry.ToStatus, entry.ActorID, entry.ActorRole, entry.Comment, entry.RecordedOn)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *gatePassRepository) List(ctx context.Context, filter repository.PassFilter) ([]domain.GatePass, int32, error) {
	where := "1=1"
	args := []interface{}{}
	argIdx := 1

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where += fmt.Sprintf(" AND status = ANY($%d)", argIdx)
		args = append(args, pq.Array(statuses))
		argIdx++
	}
	if filter.StudentIDs != nil {
		where += fmt.Sprintf(" AND student_id = ANY($%d)", argIdx)
		args = append(args, pq.Array(filter.StudentIDs))
		argIdx++
	}

	var count int32
	countQuery := `SELECT count(*) FROM gate_passes WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	query := `SELECT ` + passColumns + ` FROM gate_passes WHERE ` + where +
		fmt.Sprintf(" ORDER BY created_on DESC, id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var passes []domain.GatePass
	for rows.Next() {
		var p domain.GatePass
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Type, &p.Reason, &p.DepartureDate, &p.ReturnDate, &p.Status, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		passes = append(passes, p)
	}
	return passes, count, rows.Err()
}

func (r *gatePassRepository) ListActive(ctx context.Context, statuses []domain.PassStatus) ([]domain.GatePass, error) {
	strs := make([]string, len(statuses))
	for i, s := range statuses {
		strs[i] = string(s)
	}
	query := `SELECT ` + passColumns + ` FROM gate_passes WHERE status = ANY($1) ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(strs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var passes []domain.GatePass
	for rows.Next() {
		var p domain.GatePass
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Type, &p.Reason, &p.DepartureDate, &p.ReturnDate, &p.Status, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}
	return passes, rows.Err()
}

func (r *gatePassRepository) ListAudit(ctx context.Context, passID string) ([]domain.AuditEntry, error) {
	query := `SELECT id, pass_id, from_status, to_status, actor_id, actor_role, comment, recorded_on
	          FROM pass_audit WHERE pass_id = $1 ORDER BY recorded_on, id`
	rows, err := r.db.QueryContext(ctx, query, passID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.PassID, &e.FromStatus, &e.ToStatus, &e.ActorID, &e.ActorRole, &e.Comment, &e.RecordedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExpireStalePending rejects pending passes whose departure date is
// older than the cutoff, writing one audit row per expired pass.
func (r *gatePassRepository) ExpireStalePending(ctx context.Context, cutoff time.Time, entryTemplate domain.AuditEntry) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`UPDATE gate_passes SET status = $1, updated_on = $2
		 WHERE status = $3 AND departure_date < $4
		 RETURNING id`,
		domain.PassStatusRejected, time.Now().UTC(), domain.PassStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, id := range ids {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pass_audit (id, pass_id, from_status, to_status, actor_id, actor_role, comment, recorded_on)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), id, domain.PassStatusPending, domain.PassStatusRejected,
			entryTemplate.ActorID, entryTemplate.ActorRole, entryTemplate.Comment, time.Now().UTC())
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}
