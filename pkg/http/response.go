package http

import (
	"encoding/json"
	"net/http"

	apperrors "travelog/pkg/errors"
)

// Envelope is the common response shape: a meta block describing the result,
// the payload itself, and optional HATEOAS links.
type Envelope struct {
	Meta  any    `json:"meta"`
	Data  any    `json:"data"`
	Links *Links `json:"links,omitempty"`
}

type Links struct {
	Self string `json:"self"`
}

// ListMeta echoes the query options applied to a list request. Total is the
// number of documents in this page, not the full match count.
type ListMeta struct {
	Skip   int64             `json:"skip"`
	Limit  int               `json:"limit"`
	Sort   map[string]int    `json:"sort"`
	Filter map[string]string `json:"filter"`
	Page   int               `json:"page"`
	Total  int               `json:"total"`
}

type DocumentMeta struct {
	ID string `json:"_id"`
}

type CountMeta struct {
	Total int64 `json:"total"`
}

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

type ValidationErrorsResponse struct {
	Errors any `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

// WriteValidationErrors responds 400 with the structured field-error list.
func WriteValidationErrors(w http.ResponseWriter, errs any) error {
	return WriteJSON(w, http.StatusBadRequest, ValidationErrorsResponse{Errors: errs})
}

func WriteSuccess(w http.ResponseWriter, meta any, data any) error {
	return WriteJSON(w, http.StatusOK, Envelope{Meta: meta, Data: data})
}

func WriteList(w http.ResponseWriter, meta ListMeta, data any, self string) error {
	return WriteJSON(w, http.StatusOK, Envelope{
		Meta:  meta,
		Data:  data,
		Links: &Links{Self: self},
	})
}

// WriteCreated responds 201 with a Location header pointing at the new resource.
func WriteCreated(w http.ResponseWriter, location string, meta any, data any) error {
	w.Header().Set("Location", location)
	return WriteJSON(w, http.StatusCreated, Envelope{Meta: meta, Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
