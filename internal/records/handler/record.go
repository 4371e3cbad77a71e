package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"travelog/internal/records/service"
	"travelog/internal/records/validator"
	httputil "travelog/pkg/http"
	"travelog/pkg/logger"
	"travelog/pkg/model"
)

const recordsPath = "/api/records"

// Gate wraps a route with an authorization check.
type Gate func(httprouter.Handle) httprouter.Handle

// PassThrough is the no-op gate used when auth is disabled.
func PassThrough(next httprouter.Handle) httprouter.Handle { return next }

type RecordHandler struct {
	service      service.RecordService
	pageSize     int
	requireAuth  Gate
	requireAdmin Gate
	log          *logger.Logger
}

func NewRecordHandler(service service.RecordService, pageSize int, requireAuth, requireAdmin Gate, log *logger.Logger) *RecordHandler {
	return &RecordHandler{
		service:      service,
		pageSize:     pageSize,
		requireAuth:  requireAuth,
		requireAdmin: requireAdmin,
		log:          log,
	}
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query, err := parseListQuery(r, h.pageSize)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	records, err := h.service.List(r.Context(), query)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	meta := httputil.ListMeta{
		Skip:   query.Skip(),
		Limit:  query.Limit,
		Sort:   query.Sort,
		Filter: query.Filter,
		Page:   query.Page,
		Total:  len(records),
	}

	if err := httputil.WriteList(w, meta, records, r.URL.RequestURI()); err != nil {
		h.log.Error("failed to write list response", "handler", "List", "error", err)
	}
}

func (h *RecordHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	records, total, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.CountMeta{Total: total}, records); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	record, ok := h.decodeBody(w, r, "Create")
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), record)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	id := created.ID()
	location := recordsPath + "/" + id
	if err := httputil.WriteCreated(w, location, httputil.DocumentMeta{ID: id}, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *RecordHandler) Replace(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	record, ok := h.decodeBody(w, r, "Replace")
	if !ok {
		return
	}

	replaced, created, err := h.service.Replace(r.Context(), id, record)
	if err != nil {
		h.writeError(w, "Replace", err)
		return
	}

	meta := httputil.DocumentMeta{ID: replaced.ID()}
	if created {
		location := recordsPath + "/" + replaced.ID()
		if err := httputil.WriteCreated(w, location, meta, replaced); err != nil {
			h.log.Error("failed to write created response", "handler", "Replace", "error", err)
		}
		return
	}

	if err := httputil.WriteSuccess(w, meta, replaced); err != nil {
		h.log.Error("failed to write success response", "handler", "Replace", "error", err)
	}
}

func (h *RecordHandler) Patch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	fields, ok := h.decodeBody(w, r, "Patch")
	if !ok {
		return
	}

	updated, err := h.service.Patch(r.Context(), id, fields)
	if err != nil {
		h.writeError(w, "Patch", err)
		return
	}

	if err := httputil.WriteSuccess(w, httputil.DocumentMeta{ID: updated.ID()}, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Patch", "error", err)
	}
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RecordHandler) RegisterRoutes(router *httprouter.Router) {
	read := h.requireAuth
	write := func(next httprouter.Handle) httprouter.Handle {
		return h.requireAuth(h.requireAdmin(next))
	}

	router.GET(recordsPath, read(h.List))
	router.GET(recordsPath+"/:id", read(h.GetByID))
	router.POST(recordsPath, write(h.Create))
	router.PUT(recordsPath+"/:id", write(h.Replace))
	router.PATCH(recordsPath+"/:id", write(h.Patch))
	router.DELETE(recordsPath+"/:id", write(h.Delete))
}

func (h *RecordHandler) decodeBody(w http.ResponseWriter, r *http.Request, op string) (model.Record, bool) {
	var record model.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", op, "error", writeErr)
		}
		return nil, false
	}
	return record, true
}

func (h *RecordHandler) writeError(w http.ResponseWriter, op string, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		if writeErr := httputil.WriteValidationErrors(w, verrs); writeErr != nil {
			h.log.Error("failed to write validation response", "handler", op, "error", writeErr)
		}
		return
	}

	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}
