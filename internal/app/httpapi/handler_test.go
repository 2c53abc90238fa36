package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/appydave/appydaveapp/internal/app/services/catalog"
	"github.com/appydave/appydaveapp/internal/app/storage/memory"
)

const wantGreeting = "Hello, AppyDaveApp! Visit our YouTube channel for more updates: https://www.youtube.com/@AppyDave/videos"

func newTestHandler(t *testing.T) (http.Handler, *catalog.Service) {
	t.Helper()
	cat := catalog.New(memory.New(), nil)
	return NewHandler(cat, nil, nil), cat
}

func TestHelloReturnsFixedGreeting(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/hello", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["message"] != wantGreeting {
		t.Fatalf("unexpected greeting: %q", body["message"])
	}
}

func TestListServicesEmptyStore(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listed []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if listed == nil || len(listed) != 0 {
		t.Fatalf("expected empty array, got %v", listed)
	}
}

func TestCreateThenList(t *testing.T) {
	handler, _ := newTestHandler(t)

	seeds := []map[string]string{
		{"name": "API Service", "description": "Provides API functionality"},
		{"name": "Billing Service", "description": "Handles billing"},
	}
	for _, seed := range seeds {
		body, _ := json.Marshal(seed)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/services", bytes.NewReader(body)))
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
		}
		var created map[string]any
		if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
			t.Fatalf("unmarshal created: %v", err)
		}
		if created["id"] == nil || created["id"].(float64) == 0 {
			t.Fatalf("expected assigned id, got %v", created)
		}
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var listed []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 records, got %d", len(listed))
	}
	if listed[0].Name != "API Service" || listed[0].Description != "Provides API functionality" {
		t.Fatalf("unexpected first record: %+v", listed[0])
	}
	if listed[1].Name != "Billing Service" || listed[1].Description != "Handles billing" {
		t.Fatalf("unexpected second record: %+v", listed[1])
	}
	if listed[0].ID == listed[1].ID || listed[0].ID == 0 || listed[1].ID == 0 {
		t.Fatalf("expected distinct non-zero ids: %d, %d", listed[0].ID, listed[1].ID)
	}
}

func TestListIsIdempotent(t *testing.T) {
	handler, cat := newTestHandler(t)
	if err := cat.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	read := func() []byte {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
		return resp.Body.Bytes()
	}

	first := read()
	second := read()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("list not idempotent:\n%s\n%s", first, second)
	}
}

func TestCreateValidationFailures(t *testing.T) {
	handler, cat := newTestHandler(t)

	for _, payload := range []map[string]string{
		{"name": "", "description": "x"},
		{"name": "x", "description": ""},
	} {
		body, _ := json.Marshal(payload)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/services", bytes.NewReader(body)))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %v, got %d", payload, resp.Code)
		}
		var errBody map[string]string
		if err := json.Unmarshal(resp.Body.Bytes(), &errBody); err != nil {
			t.Fatalf("unmarshal error body: %v", err)
		}
		if errBody["error"] == "" {
			t.Fatal("expected error message in body")
		}
	}

	listed, err := cat.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("failed creates must not persist, got %d records", len(listed))
	}
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/services", bytes.NewReader([]byte("{not json"))))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetService(t *testing.T) {
	handler, cat := newTestHandler(t)
	created, err := cat.Create(context.Background(), "API Service", "Provides API functionality")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/services/1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if int64(got["id"].(float64)) != created.ID {
		t.Fatalf("unexpected id: %v", got)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/services/999", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing record, got %d", resp.Code)
	}
}

func TestUnknownRoutesReturn404(t *testing.T) {
	handler, _ := newTestHandler(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/nope"},
		{http.MethodGet, "/"},
		{http.MethodDelete, "/api/v1/services"},
		{http.MethodPost, "/api/v1/hello"},
		{http.MethodPut, "/api/v1/services/1"},
	}
	for _, tc := range cases {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, httptest.NewRequest(tc.method, tc.path, nil))
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestHealthz(t *testing.T) {
	cat := catalog.New(memory.New(), nil)

	handler := NewHandler(cat, nil, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	failing := NewHandler(cat, func(context.Context) error { return errors.New("store down") }, nil)
	resp = httptest.NewRecorder()
	failing.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", resp.Code)
	}
	if resp.Body.Len() == 0 {
		t.Fatal("expected metrics output to be non-empty")
	}
}
