package server

import (
	"sync"

	"github.com/google/uuid"
)

// sseEvent is one line of an SSE response: event: Type, data: Data.
type sseEvent struct {
	Type string
	Data string
}

// job is one in-flight or finished render, identified by a uuid.UUID. Events
// are produced by a single background goroutine (started by startRender) and
// consumed by a single SSE handler, matching the short, single-viewer
// lifetime of a preview render — no fan-out to multiple subscribers.
type job struct {
	id     uuid.UUID
	events chan sseEvent

	mu   sync.Mutex
	done bool
}

func newJob() *job {
	return &job{
		id:     uuid.New(),
		events: make(chan sseEvent, 64),
	}
}

func (j *job) send(evt sseEvent) {
	select {
	case j.events <- evt:
	default:
		// Subscriber isn't draining fast enough; drop rather than block
		// the render goroutine.
	}
}

func (j *job) close() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.done {
		return
	}
	j.done = true
	close(j.events)
}

// registry is a mutex-guarded map of in-flight/finished jobs. Job lifetime
// is short (one render, one viewer) so a plain map with a lock is enough;
// the teacher's own job bookkeeping has no counterpart, and the
// register/unregister channel pair from the wider pack's Hub is overkill
// for this single-writer, single-reader lifecycle.
type registry struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*job
}

func newRegistry() *registry {
	return &registry{jobs: make(map[uuid.UUID]*job)}
}

func (r *registry) add(j *job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.id] = j
}

func (r *registry) get(id uuid.UUID) (*job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	return j, ok
}

func (r *registry) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}
