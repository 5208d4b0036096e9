package server

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/K2017/sdfmarch/pkg/core"
)

// ConsoleMessage is one timestamped line sent to a render's SSE "console"
// stream, mirroring the progress lines a CLI run prints to stdout.
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger implements core.Logger by forwarding each Printf call to a
// job's SSE event stream as a "console" event, so a browser watching a
// render sees the same progress lines the CLI prints to stdout.
type WebLogger struct {
	renderID string
	job      *job
}

// NewWebLogger creates a logger that streams to j's SSE events. j may be
// nil, in which case Printf only writes to the process log.
func NewWebLogger(renderID string, j *job) core.Logger {
	return &WebLogger{renderID: renderID, job: j}
}

// Printf implements core.Logger.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Print(message)

	if wl.job == nil {
		return
	}

	data, err := json.Marshal(ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	})
	if err != nil {
		return
	}
	wl.job.send(sseEvent{Type: "console", Data: string(data)})
}
