package store

import "github.com/MKhiriev/go-ledger/internal/logger"

// Storages groups every repository backed by the same database.
type Storages struct {
	UserRepository   UserRepository
	LedgerRepository LedgerRepository
}

// NewStorages builds all repositories on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		LedgerRepository: NewLedgerRepository(db, log),
	}
}
