package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-ledger/internal/logger"
	"github.com/MKhiriev/go-ledger/internal/store"
	"github.com/MKhiriev/go-ledger/internal/validators"
	"github.com/MKhiriev/go-ledger/models"
)

// ledgerService implements LedgerService on top of a LedgerRepository.
//
// Reads by id go through load, which distinguishes a missing record
// (store.ErrRecordNotFound) from one owned by somebody else
// (ErrPermissionDenied). Writes are additionally scoped by owner in SQL.
type ledgerService struct {
	ledgerRepository store.LedgerRepository
	validator        validators.Validator

	logger *logger.Logger
}

func NewLedgerService(ledgerRepository store.LedgerRepository, validator validators.Validator, logger *logger.Logger) LedgerService {
	return &ledgerService{
		ledgerRepository: ledgerRepository,
		validator:        validator,
		logger:           logger,
	}
}

func (l *ledgerService) Create(ctx context.Context, ownerID int64, record models.LedgerRecord) (models.LedgerRecord, error) {
	log := logger.FromContext(ctx)

	record.ID = 0
	record.OwnerID = ownerID
	if err := l.validate(ctx, record); err != nil {
		log.Debug().Err(err).Int64("owner_id", ownerID).Msg("invalid record")
		return models.LedgerRecord{}, err
	}

	created, err := l.ledgerRepository.CreateRecord(ctx, record)
	if err != nil {
		log.Err(err).Int64("owner_id", ownerID).Str("kind", string(record.Kind)).Msg("error creating record")
		return models.LedgerRecord{}, fmt.Errorf("error creating record: %w", err)
	}
	return created, nil
}

func (l *ledgerService) List(ctx context.Context, ownerID int64, kind models.RecordKind) ([]models.LedgerRecord, error) {
	records, err := l.ledgerRepository.ListRecords(ctx, ownerID, kind)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("owner_id", ownerID).Str("kind", string(kind)).Msg("error listing records")
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	return records, nil
}

func (l *ledgerService) Get(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) (models.LedgerRecord, error) {
	return l.load(ctx, ownerID, kind, id)
}

func (l *ledgerService) Update(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, record models.LedgerRecord) (models.LedgerRecord, error) {
	if _, err := l.load(ctx, ownerID, kind, id); err != nil {
		return models.LedgerRecord{}, err
	}

	record.ID = id
	record.OwnerID = ownerID
	record.Kind = kind
	return l.save(ctx, record)
}

func (l *ledgerService) Patch(ctx context.Context, ownerID int64, kind models.RecordKind, id int64, patch models.RecordPatch) (models.LedgerRecord, error) {
	current, err := l.load(ctx, ownerID, kind, id)
	if err != nil {
		return models.LedgerRecord{}, err
	}

	if err = l.validate(ctx, patch); err != nil {
		return models.LedgerRecord{}, err
	}

	return l.save(ctx, patch.Apply(current))
}

func (l *ledgerService) Delete(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) error {
	if _, err := l.load(ctx, ownerID, kind, id); err != nil {
		return err
	}

	if err := l.ledgerRepository.DeleteRecord(ctx, ownerID, kind, id); err != nil {
		logger.FromContext(ctx).Err(err).Int64("owner_id", ownerID).Int64("id", id).Msg("error deleting record")
		return fmt.Errorf("error deleting record: %w", err)
	}
	return nil
}

func (l *ledgerService) load(ctx context.Context, ownerID int64, kind models.RecordKind, id int64) (models.LedgerRecord, error) {
	record, err := l.ledgerRepository.GetRecord(ctx, kind, id)
	if err != nil {
		return models.LedgerRecord{}, fmt.Errorf("error loading %s %d: %w", kind, id, err)
	}

	if record.OwnerID != ownerID {
		logger.FromContext(ctx).Warn().
			Int64("user_id", ownerID).
			Stringer("record", record).
			Msg("access to foreign record")
		return models.LedgerRecord{}, ErrPermissionDenied
	}
	return record, nil
}

func (l *ledgerService) save(ctx context.Context, record models.LedgerRecord) (models.LedgerRecord, error) {
	if err := l.validate(ctx, record); err != nil {
		return models.LedgerRecord{}, err
	}

	updated, err := l.ledgerRepository.UpdateRecord(ctx, record)
	if err != nil {
		logger.FromContext(ctx).Err(err).Stringer("record", record).Msg("error updating record")
		return models.LedgerRecord{}, fmt.Errorf("error updating record: %w", err)
	}
	return updated, nil
}

func (l *ledgerService) validate(ctx context.Context, data any) error {
	if err := l.validator.Validate(ctx, data); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
