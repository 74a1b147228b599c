package postgres

import (
	"database/sql"

	"campuspass-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.GatePassRepository
	repository.MovementRepository
	repository.DirectoryRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		GatePassRepository:     NewGatePassRepository(db),
		MovementRepository:     NewMovementRepository(db),
		DirectoryRepository:    NewDirectoryRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
