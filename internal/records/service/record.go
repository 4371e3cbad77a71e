package service

import (
	"context"
	"errors"

	recorderrors "travelog/internal/records/errors"
	"travelog/internal/records/repository"
	"travelog/internal/records/validator"
	"travelog/pkg/config"
	apperrors "travelog/pkg/errors"
	"travelog/pkg/events"
	"travelog/pkg/model"
)

type RecordService interface {
	List(ctx context.Context, query model.ListQuery) ([]model.Record, error)
	GetByID(ctx context.Context, id string) ([]model.Record, int64, error)
	Create(ctx context.Context, record model.Record) (model.Record, error)
	Replace(ctx context.Context, id string, record model.Record) (model.Record, bool, error)
	Patch(ctx context.Context, id string, fields model.Record) (model.Record, error)
	Delete(ctx context.Context, id string) error
}

type recordService struct {
	repo      repository.RecordRepository
	validator *validator.RecordValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewRecordService(
	repo repository.RecordRepository,
	validator *validator.RecordValidator,
	publisher events.Publisher,
	cfg *config.Config,
) RecordService {
	return &recordService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *recordService) List(ctx context.Context, query model.ListQuery) ([]model.Record, error) {
	records, err := s.repo.Find(ctx, query)
	if err != nil {
		s.cfg.Log.Error("Failed to list records", "error", err)
		return nil, apperrors.Internal("Failed to list records", err)
	}
	return records, nil
}

func (s *recordService) GetByID(ctx context.Context, id string) ([]model.Record, int64, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, 0, err
	}

	count, err := s.repo.CountByID(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to count records", "id", id, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve record", err)
	}
	if count == 0 {
		return nil, 0, apperrors.NotFoundWithID("Record", id)
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recorderrors.ErrNotFound) {
			return nil, 0, apperrors.NotFoundWithID("Record", id)
		}
		s.cfg.Log.Error("Failed to find record", "id", id, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve record", err)
	}

	return []model.Record{record}, count, nil
}

func (s *recordService) Create(ctx context.Context, record model.Record) (model.Record, error) {
	if err := s.validator.ValidateCreate(record); err != nil {
		return nil, err
	}

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		s.cfg.Log.Error("Failed to create record", "error", err)
		return nil, apperrors.Internal("Failed to create record", err)
	}

	created := record.WithoutID()
	created[model.FieldID] = id

	s.publish(ctx, events.New(events.RecordCreated, id, created))

	s.cfg.Log.Info("Record created",
		"id", id,
		"name", created.StringField(model.FieldName),
	)
	return created, nil
}

// Replace swaps the full document at id, or inserts the body as a brand-new
// document with a store-assigned id when nothing matches. The second return
// value reports whether a new document was created.
func (s *recordService) Replace(ctx context.Context, id string, record model.Record) (model.Record, bool, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, false, err
	}

	matched, err := s.repo.Replace(ctx, id, record)
	if err != nil {
		s.cfg.Log.Error("Failed to replace record", "id", id, "error", err)
		return nil, false, apperrors.Internal("Failed to replace record", err)
	}

	if !matched {
		newID, err := s.repo.Insert(ctx, record)
		if err != nil {
			s.cfg.Log.Error("Failed to insert record on upsert", "error", err)
			return nil, false, apperrors.Internal("Failed to replace record", err)
		}

		created := record.WithoutID()
		created[model.FieldID] = newID

		s.publish(ctx, events.New(events.RecordCreated, newID, created))

		s.cfg.Log.Info("Record upserted as new document", "requested_id", id, "id", newID)
		return created, true, nil
	}

	replaced := record.WithoutID()
	replaced[model.FieldID] = id

	s.publish(ctx, events.New(events.RecordReplaced, id, replaced))

	s.cfg.Log.Info("Record replaced", "id", id)
	return replaced, false, nil
}

func (s *recordService) Patch(ctx context.Context, id string, fields model.Record) (model.Record, error) {
	matched, err := s.repo.SetFields(ctx, id, fields)
	if err != nil {
		// A malformed id cannot match any document.
		if errors.Is(err, recorderrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Record", id)
		}
		s.cfg.Log.Error("Failed to update record", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update record", err)
	}
	if !matched {
		return nil, apperrors.NotFoundWithID("Record", id)
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, recorderrors.ErrNotFound) {
			// Deleted between the update and the re-fetch.
			return nil, apperrors.NotFoundWithID("Record", id)
		}
		s.cfg.Log.Error("Failed to re-fetch record after update", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update record", err)
	}

	s.publish(ctx, events.New(events.RecordUpdated, id, record))

	s.cfg.Log.Info("Record updated", "id", id)
	return record, nil
}

func (s *recordService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, recorderrors.ErrNotFound) || errors.Is(err, recorderrors.ErrInvalidID) {
			return apperrors.NotFoundWithID("Record", id)
		}
		s.cfg.Log.Error("Failed to delete record", "id", id, "error", err)
		return apperrors.Internal("Failed to delete record", err)
	}

	s.publish(ctx, events.New(events.RecordDeleted, id, nil))

	s.cfg.Log.Info("Record deleted", "id", id)
	return nil
}

// publish emits a change event; delivery failures are logged, never surfaced
// to the caller.
func (s *recordService) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.cfg.Log.Warn("Failed to publish record event",
			"event_type", ev.Type,
			"record_id", ev.RecordID,
			"error", err,
		)
	}
}
