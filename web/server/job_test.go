package server

import (
	"testing"
)

func TestJob_SendAndClose(t *testing.T) {
	j := newJob()

	j.send(sseEvent{Type: "progress", Data: "1"})
	j.close()

	evt, ok := <-j.events
	if !ok {
		t.Fatal("expected a buffered event before the channel closes")
	}
	if evt.Data != "1" {
		t.Errorf("Data = %q, want %q", evt.Data, "1")
	}

	if _, ok := <-j.events; ok {
		t.Error("expected events channel to be closed after draining")
	}
}

func TestJob_CloseIsIdempotent(t *testing.T) {
	j := newJob()
	j.close()
	j.close() // must not panic on double-close
}

func TestRegistry_AddGetRemove(t *testing.T) {
	r := newRegistry()
	j := newJob()
	r.add(j)

	got, ok := r.get(j.id)
	if !ok || got != j {
		t.Fatalf("get(%v) = %v, %v; want %v, true", j.id, got, ok, j)
	}

	r.remove(j.id)
	if _, ok := r.get(j.id); ok {
		t.Error("expected job to be gone after remove")
	}
}

func TestRegistry_GetUnknownID(t *testing.T) {
	r := newRegistry()
	j := newJob()
	if _, ok := r.get(j.id); ok {
		t.Error("expected ok=false for an id never added")
	}
}
