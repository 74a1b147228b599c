package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/repository"
)

// directoryRepository reads the campus directory tables maintained by
// the admin system. Read-only: this engine never writes them.
type directoryRepository struct {
	db *sql.DB
}

func NewDirectoryRepository(db *sql.DB) repository.DirectoryRepository {
	return &directoryRepository{db: db}
}

const studentColumns = `id, name, email, department_id, hostel_id, room_number, mentor_id, residence`

func scanStudent(row interface{ Scan(...interface{}) error }, s *domain.Student) error {
	var hostelID, roomNumber sql.NullString
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.DepartmentID, &hostelID, &roomNumber, &s.MentorID, &s.Residence)
	if err != nil {
		return err
	}
	s.HostelID = hostelID.String
	s.RoomNumber = roomNumber.String
	return nil
}

func (r *directoryRepository) GetStudent(ctx context.Context, id string) (*domain.Student, error) {
	s := &domain.Student{}
	err := scanStudent(r.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id), s)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *directoryRepository) GetStudents(ctx context.Context, ids []string) (map[string]domain.Student, error) {
	if len(ids) == 0 {
		return map[string]domain.Student{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make(map[string]domain.Student, len(ids))
	for rows.Next() {
		var s domain.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, err
		}
		students[s.ID] = s
	}
	return students, rows.Err()
}

func (r *directoryRepository) GetApprover(ctx context.Context, id string) (*domain.Approver, error) {
	a := &domain.Approver{}
	var departmentID, hostelID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, role, department_id, hostel_id FROM approvers WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Email, &a.Role, &departmentID, &hostelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, err
	}
	a.DepartmentID = departmentID.String
	a.HostelID = hostelID.String
	return a, nil
}

// ListScopedStudentIDs resolves which students an approver's queue
// covers. Staff see their mentees, HODs their department, wardens
// their hostel. Gatekeepers and unknown roles get no scope.
func (r *directoryRepository) ListScopedStudentIDs(ctx context.Context, approverID string, role domain.ActorRole) ([]string, error) {
	var query string
	switch role {
	case domain.RoleStaff:
		query = `SELECT id FROM students WHERE mentor_id = $1`
	case domain.RoleHOD:
		query = `SELECT s.id FROM students s
		         JOIN approvers a ON a.department_id = s.department_id
		         WHERE a.id = $1 AND a.role = 'HOD'`
	case domain.RoleWarden:
		query = `SELECT s.id FROM students s
		         JOIN approvers a ON a.hostel_id = s.hostel_id
		         WHERE a.id = $1 AND a.role = 'WARDEN'`
	default:
		return []string{}, nil
	}

	rows, err := r.db.QueryContext(ctx, query, approverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *directoryRepository) ListWardens(ctx context.Context) ([]domain.Approver, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, role, department_id, hostel_id FROM approvers WHERE role = $1`,
		domain.RoleWarden)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wardens []domain.Approver
	for rows.Next() {
		var a domain.Approver
		var departmentID, hostelID sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &departmentID, &hostelID); err != nil {
			return nil, err
		}
		a.DepartmentID = departmentID.String
		a.HostelID = hostelID.String
		wardens = append(wardens, a)
	}
	return wardens, rows.Err()
}
