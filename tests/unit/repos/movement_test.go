package repos

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"campuspass-backend/internal/domain"
	"campuspass-backend/internal/repository/postgres"
)

func exitEvent() *domain.MovementEvent {
	return &domain.MovementEvent{
		PassID:       "pass-1",
		GatekeeperID: "gate-1",
	}
}

func TestMovementRepository_LogExit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMovementRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM gate_passes").
			WithArgs("pass-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED_WARDEN"))
		mock.ExpectQuery("FROM movement_events WHERE pass_id").
			WithArgs("pass-1", domain.MovementExit, domain.MovementEntry).
			WillReturnRows(sqlmock.NewRows([]string{"open"}).AddRow(0))
		mock.ExpectExec("INSERT INTO movement_events").
			WithArgs(sqlmock.AnyArg(), "pass-1", domain.MovementExit, "gate-1", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		ev := exitEvent()
		err := repo.LogExit(ctx, ev, domain.PassStatusApprovedWarden, false)
		assert.NoError(t, err)
		assert.Equal(t, domain.MovementExit, ev.Action)
		assert.NotEmpty(t, ev.ID)
	})

	t.Run("WrongStatus", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM gate_passes").
			WithArgs("pass-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED_HOD"))
		mock.ExpectRollback()

		err := repo.LogExit(ctx, exitEvent(), domain.PassStatusApprovedWarden, false)
		assert.ErrorIs(t, err, domain.ErrNotAuthorizedForExit)
	})

	t.Run("AlreadyOut", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM gate_passes").
			WithArgs("pass-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED_WARDEN"))
		mock.ExpectQuery("FROM movement_events WHERE pass_id").
			WithArgs("pass-1", domain.MovementExit, domain.MovementEntry).
			WillReturnRows(sqlmock.NewRows([]string{"open"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.LogExit(ctx, exitEvent(), domain.PassStatusApprovedWarden, false)
		assert.ErrorIs(t, err, domain.ErrAlreadyOut)
	})

	t.Run("UnknownPass", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM gate_passes").
			WithArgs("pass-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}))
		mock.ExpectRollback()

		err := repo.LogExit(ctx, exitEvent(), domain.PassStatusApprovedWarden, false)
		assert.ErrorIs(t, err, domain.ErrPassNotFound)
	})

	t.Run("ExitOnlyCompletesPass", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM gate_passes").
			WithArgs("pass-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED_HOD"))
		mock.ExpectQuery("FROM movement_events WHERE pass_id").
			WithArgs("pass-1", domain.MovementExit, domain.MovementEntry).
			WillReturnRows(sqlmock.NewRows([]string{"open"}).AddRow(0))
		mock.ExpectExec("INSERT INTO movement_events").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE gate_passes SET status").
			WithArgs(domain.PassStatusCompleted, sqlmock.AnyArg(), "pass-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO pass_audit").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.LogExit(ctx, exitEvent(), domain.PassStatusApprovedHOD, true)
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_LogEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMovementRepository(db)
	ctx := context.Background()

	t.Run("CompletesReturnLeg", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM gate_passes").
			WithArgs("pass-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED_WARDEN"))
		mock.ExpectQuery("FROM movement_events WHERE pass_id").
			WithArgs("pass-1", domain.MovementExit, domain.MovementEntry).
			WillReturnRows(sqlmock.NewRows([]string{"open"}).AddRow(1))
		mock.ExpectExec("INSERT INTO movement_events").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE gate_passes SET status").
			WithArgs(domain.PassStatusCompleted, sqlmock.AnyArg(), "pass-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO pass_audit").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		ev := exitEvent()
		err := repo.LogEntry(ctx, ev, true)
		assert.NoError(t, err)
		assert.Equal(t, domain.MovementEntry, ev.Action)
	})

	t.Run("NoActiveExit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM gate_passes").
			WithArgs("pass-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("APPROVED_WARDEN"))
		mock.ExpectQuery("FROM movement_events WHERE pass_id").
			WithArgs("pass-1", domain.MovementExit, domain.MovementEntry).
			WillReturnRows(sqlmock.NewRows([]string{"open"}).AddRow(0))
		mock.ExpectRollback()

		err := repo.LogEntry(ctx, exitEvent(), true)
		assert.ErrorIs(t, err, domain.ErrNoActiveExit)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_OpenExits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMovementRepository(db)
	ctx := context.Background()

	recorded := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "pass_id", "action", "gatekeeper_id", "comment", "recorded_on"}).
		AddRow("mv-1", "pass-1", "EXIT", "gate-1", "", recorded)
	mock.ExpectQuery("SELECT DISTINCT ON").
		WithArgs(domain.MovementExit, domain.MovementEntry).
		WillReturnRows(rows)

	open, err := repo.OpenExits(ctx)
	assert.NoError(t, err)
	assert.Len(t, open, 1)
	assert.Equal(t, "mv-1", open["pass-1"].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovementRepository_ListRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewMovementRepository(db)
	ctx := context.Background()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery("SELECT count").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM movement_events").
		WithArgs(from, to, int32(50), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "pass_id", "action", "gatekeeper_id", "comment", "recorded_on"}).
			AddRow("mv-1", "pass-1", "EXIT", "gate-1", "", from.Add(time.Hour)))

	events, total, err := repo.ListRange(ctx, from, to, 1, 50)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
