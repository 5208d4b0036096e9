package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshaling body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestHandleStartRender_ReturnsJobID(t *testing.T) {
	s := NewServer(0)
	body, _ := json.Marshal(RenderRequest{Scene: "spheres", Width: 16, Height: 16, MaxPasses: 1, MaxSamples: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, http.StatusAccepted, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling response: %v", err)
	}
	if resp["id"] == "" {
		t.Error("expected a non-empty job id")
	}
}

func TestHandleStartRender_RejectsUnknownScene(t *testing.T) {
	s := NewServer(0)
	body, _ := json.Marshal(RenderRequest{Scene: "does-not-exist"})
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleStartRender_RejectsMalformedBody(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleRenderEvents_UnknownJobReturns404(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/render/00000000-0000-0000-0000-000000000000/events", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleRenderEvents_InvalidIDReturns400(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/render/not-a-uuid/events", nil)
	w := httptest.NewRecorder()

	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleStartRender_ThenStreamEvents(t *testing.T) {
	s := NewServer(0)
	body, _ := json.Marshal(RenderRequest{Scene: "spheres", Width: 8, Height: 8, MaxPasses: 1, MaxSamples: 1})
	startReq := httptest.NewRequest(http.MethodPost, "/api/render", bytes.NewReader(body))
	startW := httptest.NewRecorder()
	s.Router().ServeHTTP(startW, startReq)

	var resp map[string]string
	if err := json.Unmarshal(startW.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshaling start response: %v", err)
	}

	eventsReq := httptest.NewRequest(http.MethodGet, "/api/render/"+resp["id"]+"/events", nil)
	eventsW := httptest.NewRecorder()
	s.Router().ServeHTTP(eventsW, eventsReq)

	if eventsW.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body=%s", eventsW.Code, http.StatusOK, eventsW.Body.String())
	}
	if eventsW.Body.Len() == 0 {
		t.Error("expected at least one SSE event to have been written")
	}
}
