package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is a schemaless travel record document. Only name, from and to are
// required on creation; every other field is stored and returned as-is.
type Record map[string]any

const (
	FieldID   = "_id"
	FieldName = "name"
	FieldFrom = "from"
	FieldTo   = "to"
)

// ID returns the hex form of the record's identifier, or "" when unset.
func (r Record) ID() string {
	switch v := r[FieldID].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}

// StringField returns the named field when present and a string.
func (r Record) StringField(name string) string {
	if v, ok := r[name].(string); ok {
		return v
	}
	return ""
}

// WithoutID returns a shallow copy with the identifier removed. Used when
// replacing a document so the store-assigned _id is never overwritten.
func (r Record) WithoutID() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if k == FieldID {
			continue
		}
		out[k] = v
	}
	return out
}
