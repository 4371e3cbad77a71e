package events

import (
	"time"

	"github.com/google/uuid"

	"travelog/pkg/model"
)

type Type string

const (
	RecordCreated  Type = "record.created"
	RecordReplaced Type = "record.replaced"
	RecordUpdated  Type = "record.updated"
	RecordDeleted  Type = "record.deleted"
)

// Header keys shared with downstream consumers.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Event describes one change to the record collection. Document is omitted
// for deletions.
type Event struct {
	ID         string       `json:"id"`
	Type       Type         `json:"type"`
	RecordID   string       `json:"record_id"`
	Document   model.Record `json:"document,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func New(eventType Type, recordID string, doc model.Record) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		RecordID:   recordID,
		Document:   doc,
		OccurredAt: time.Now().UTC(),
	}
}
