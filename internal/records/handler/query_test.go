package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantErr    bool
		wantPage   int
		wantSkip   int64
		wantFilter map[string]string
		wantSort   map[string]int
	}{
		{
			name:     "defaults",
			uri:      "/api/records",
			wantPage: 1,
			wantSkip: 0,
		},
		{
			name:     "second page skips one page of documents",
			uri:      "/api/records?page=2",
			wantPage: 2,
			wantSkip: 10,
		},
		{
			name:       "filter and sort brackets",
			uri:        "/api/records?filter[from]=TLV&filter[to]=NYC&sort[name]=1&sort[from]=-1",
			wantPage:   1,
			wantFilter: map[string]string{"from": "TLV", "to": "NYC"},
			wantSort:   map[string]int{"name": 1, "from": -1},
		},
		{
			name:    "invalid page",
			uri:     "/api/records?page=first",
			wantErr: true,
		},
		{
			name:    "sort direction zero",
			uri:     "/api/records?sort[name]=0",
			wantErr: true,
		},
		{
			name:     "unknown parameters ignored",
			uri:      "/api/records?limit=500&foo=bar",
			wantPage: 1,
		},
		{
			name:     "empty bracket key ignored",
			uri:      "/api/records?filter[]=x",
			wantPage: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.uri, nil)
			got, err := parseListQuery(req, 10)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Page != tt.wantPage {
				t.Errorf("expected page %d, got %d", tt.wantPage, got.Page)
			}
			if got.Limit != 10 {
				t.Errorf("expected fixed limit 10, got %d", got.Limit)
			}
			if got.Skip() != tt.wantSkip {
				t.Errorf("expected skip %d, got %d", tt.wantSkip, got.Skip())
			}

			for field, want := range tt.wantFilter {
				if got.Filter[field] != want {
					t.Errorf("expected filter %s=%s, got %v", field, want, got.Filter)
				}
			}
			for field, want := range tt.wantSort {
				if got.Sort[field] != want {
					t.Errorf("expected sort %s=%d, got %v", field, want, got.Sort)
				}
			}
		})
	}
}
