// Package server implements the HTTP/SSE preview server for sdfmarch,
// letting a browser start a progressive render and watch it refine pass by
// pass without the CLI's write-a-PNG-and-exit flow.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Server handles web requests for sdfmarch's preview renderer.
type Server struct {
	port     int
	registry *registry
}

// NewServer creates a new web server listening on port.
func NewServer(port int) *Server {
	return &Server{port: port, registry: newRegistry()}
}

// Router builds the gorilla/mux router exposing this server's API.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/render", s.handleStartRender).Methods(http.MethodPost)
	r.HandleFunc("/api/render/{id}/events", s.handleRenderEvents).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("static/")))
	return r
}

// Start starts the web server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting sdfmarch preview server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Router())
}

// handleHealth is a liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStartRender validates a RenderRequest, registers a job, launches
// the render in the background, and immediately returns the job's id —
// the caller watches progress via handleRenderEvents.
func (s *Server) handleStartRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if _, err := resolveScene(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	j := newJob()
	s.registry.add(j)
	s.startRender(context.Background(), j, &req)

	writeJSON(w, http.StatusAccepted, map[string]string{"id": j.id.String()})
}

// handleRenderEvents streams a job's progress as Server-Sent Events. Only
// one subscriber is supported per job, matching its single-viewer preview
// use case.
func (s *Server) handleRenderEvents(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid job id"})
		return
	}

	j, ok := s.registry.get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown job id"})
		return
	}
	defer s.registry.remove(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming not supported"})
		return
	}

	ctx := r.Context()
	for {
		select {
		case evt, open := <-j.events:
			if !open {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, evt.Data)
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
