package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"travelog/internal/records/validator"
	apperrors "travelog/pkg/errors"
	"travelog/pkg/logger"
	"travelog/pkg/model"
)

const validID = "507f1f77bcf86cd799439011"

type mockRecordService struct {
	listFunc    func(ctx context.Context, query model.ListQuery) ([]model.Record, error)
	getByIDFunc func(ctx context.Context, id string) ([]model.Record, int64, error)
	createFunc  func(ctx context.Context, record model.Record) (model.Record, error)
	replaceFunc func(ctx context.Context, id string, record model.Record) (model.Record, bool, error)
	patchFunc   func(ctx context.Context, id string, fields model.Record) (model.Record, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockRecordService) List(ctx context.Context, query model.ListQuery) ([]model.Record, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, query)
	}
	return []model.Record{}, nil
}

func (m *mockRecordService) GetByID(ctx context.Context, id string) ([]model.Record, int64, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, 0, apperrors.NotFoundWithID("Record", id)
}

func (m *mockRecordService) Create(ctx context.Context, record model.Record) (model.Record, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	return record, nil
}

func (m *mockRecordService) Replace(ctx context.Context, id string, record model.Record) (model.Record, bool, error) {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, id, record)
	}
	return record, false, nil
}

func (m *mockRecordService) Patch(ctx context.Context, id string, fields model.Record) (model.Record, error) {
	if m.patchFunc != nil {
		return m.patchFunc(ctx, id, fields)
	}
	return nil, apperrors.NotFoundWithID("Record", id)
}

func (m *mockRecordService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestHandler(svc *mockRecordService) *RecordHandler {
	log := logger.New(logger.Config{Level: "error", Format: logger.FormatJSON, Service: "test"})
	return NewRecordHandler(svc, 10, PassThrough, PassThrough, log)
}

func newTestRouter(svc *mockRecordService) *httprouter.Router {
	router := httprouter.New()
	newTestHandler(svc).RegisterRoutes(router)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestList_MetaEchoesQueryOptions(t *testing.T) {
	var gotQuery model.ListQuery
	svc := &mockRecordService{
		listFunc: func(ctx context.Context, query model.ListQuery) ([]model.Record, error) {
			gotQuery = query
			return []model.Record{
				{"_id": "a", "name": "one"},
				{"_id": "b", "name": "two"},
			}, nil
		},
	}

	uri := "/api/records?filter[from]=TLV&sort[name]=-1&page=3"
	req := httptest.NewRequest(http.MethodGet, uri, nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotQuery.Page != 3 || gotQuery.Limit != 10 {
		t.Errorf("expected page=3 limit=10, got %+v", gotQuery)
	}
	if gotQuery.Filter["from"] != "TLV" {
		t.Errorf("expected filter from=TLV, got %v", gotQuery.Filter)
	}
	if gotQuery.Sort["name"] != -1 {
		t.Errorf("expected sort name=-1, got %v", gotQuery.Sort)
	}

	body := decodeBody(t, w)
	meta, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected meta object, got %v", body["meta"])
	}
	if meta["total"] != float64(2) {
		t.Errorf("expected total to be the page size 2, got %v", meta["total"])
	}
	if meta["skip"] != float64(20) {
		t.Errorf("expected skip 20, got %v", meta["skip"])
	}
	if meta["page"] != float64(3) {
		t.Errorf("expected page 3, got %v", meta["page"])
	}

	links, ok := body["links"].(map[string]any)
	if !ok || links["self"] != uri {
		t.Errorf("expected links.self %q, got %v", uri, body["links"])
	}
}

func TestList_InvalidQueryParameters(t *testing.T) {
	svc := &mockRecordService{
		listFunc: func(ctx context.Context, query model.ListQuery) ([]model.Record, error) {
			t.Fatal("service must not be called for an invalid query")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	tests := []struct {
		name string
		uri  string
	}{
		{name: "non-numeric page", uri: "/api/records?page=abc"},
		{name: "zero page", uri: "/api/records?page=0"},
		{name: "negative page", uri: "/api/records?page=-2"},
		{name: "non-numeric sort direction", uri: "/api/records?sort[name]=up"},
		{name: "out-of-range sort direction", uri: "/api/records?sort[name]=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.uri, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestGetByID_ReturnsArrayWithTotal(t *testing.T) {
	svc := &mockRecordService{
		getByIDFunc: func(ctx context.Context, id string) ([]model.Record, int64, error) {
			return []model.Record{{"_id": id, "name": "Trip"}}, 1, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/records/"+validID, nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	meta := body["meta"].(map[string]any)
	if meta["total"] != float64(1) {
		t.Errorf("expected meta.total 1, got %v", meta["total"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Errorf("expected data array with one record, got %v", body["data"])
	}
}

func TestGetByID_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/records/"+validID, nil)
	w := httptest.NewRecorder()
	newTestRouter(&mockRecordService{}).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Error("expected a JSON error body")
	}
}

func TestCreate_SetsLocationHeader(t *testing.T) {
	svc := &mockRecordService{
		createFunc: func(ctx context.Context, record model.Record) (model.Record, error) {
			created := record.WithoutID()
			created["_id"] = validID
			return created, nil
		},
	}

	payload := `{"name":"Trip","from":"TLV","to":"NYC","seat":"12A"}`
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(payload))
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/api/records/"+validID {
		t.Errorf("expected Location /api/records/%s, got %q", validID, got)
	}

	body := decodeBody(t, w)
	meta := body["meta"].(map[string]any)
	if meta["_id"] != validID {
		t.Errorf("expected meta._id %q, got %v", validID, meta["_id"])
	}
	data := body["data"].(map[string]any)
	if data["seat"] != "12A" {
		t.Errorf("expected passthrough field seat=12A, got %v", data["seat"])
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := &mockRecordService{
		createFunc: func(ctx context.Context, record model.Record) (model.Record, error) {
			return nil, validator.ValidationErrors{
				{Field: "from", Message: "from is required and must be a non-empty string"},
			}
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(`{"name":"Trip"}`))
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) < 1 {
		t.Fatalf("expected errors array with at least one entry, got %v", body)
	}
	first := errs[0].(map[string]any)
	if first["field"] != "from" || first["message"] == "" {
		t.Errorf("expected {field, message} entries, got %v", first)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(`{not json`))
	w := httptest.NewRecorder()
	newTestRouter(&mockRecordService{}).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReplace_CreatedReturns201(t *testing.T) {
	const newID = "64f000000000000000000001"
	svc := &mockRecordService{
		replaceFunc: func(ctx context.Context, id string, record model.Record) (model.Record, bool, error) {
			created := record.WithoutID()
			created["_id"] = newID
			return created, true, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/records/"+validID, strings.NewReader(`{"name":"Trip"}`))
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	body := decodeBody(t, w)
	meta := body["meta"].(map[string]any)
	if meta["_id"] != newID {
		t.Errorf("expected newly assigned id %q, got %v", newID, meta["_id"])
	}
}

func TestReplace_ExistingReturns200(t *testing.T) {
	svc := &mockRecordService{
		replaceFunc: func(ctx context.Context, id string, record model.Record) (model.Record, bool, error) {
			replaced := record.WithoutID()
			replaced["_id"] = id
			return replaced, false, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/records/"+validID, strings.NewReader(`{"name":"Trip"}`))
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPatch_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodPatch, "/api/records/"+validID, strings.NewReader(`{"to":"Z"}`))
	w := httptest.NewRecorder()
	newTestRouter(&mockRecordService{}).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDelete_NoContent(t *testing.T) {
	svc := &mockRecordService{
		deleteFunc: func(ctx context.Context, id string) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/records/"+validID, nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestDelete_AlreadyDeleted(t *testing.T) {
	svc := &mockRecordService{
		deleteFunc: func(ctx context.Context, id string) error {
			return apperrors.NotFoundWithID("Record", id)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/records/"+validID, nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
