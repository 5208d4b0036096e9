package server

import (
	"encoding/json"
	"testing"
	"time"
)

func drainConsole(t *testing.T, j *job) ConsoleMessage {
	t.Helper()
	select {
	case evt := <-j.events:
		if evt.Type != "console" {
			t.Fatalf("event type = %q, want %q", evt.Type, "console")
		}
		var msg ConsoleMessage
		if err := json.Unmarshal([]byte(evt.Data), &msg); err != nil {
			t.Fatalf("unmarshaling console event: %v", err)
		}
		return msg
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for console event")
		return ConsoleMessage{}
	}
}

func TestWebLogger_BasicLogging(t *testing.T) {
	j := newJob()
	logger := NewWebLogger("test-render-123", j)

	logger.Printf("Test log message\n")

	msg := drainConsole(t, j)
	if msg.Message != "Test log message\n" {
		t.Errorf("Message = %q, want %q", msg.Message, "Test log message\n")
	}
	if msg.Level != "info" {
		t.Errorf("Level = %q, want %q", msg.Level, "info")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	j := newJob()
	logger := NewWebLogger("test-render-456", j)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, m := range messages {
		logger.Printf("%s\n", m)
	}

	for _, expected := range messages {
		msg := drainConsole(t, j)
		if msg.Message != expected+"\n" {
			t.Errorf("Message = %q, want %q", msg.Message, expected+"\n")
		}
	}
}

func TestWebLogger_NilJob(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil)

	// Must not panic when no job is attached.
	logger.Printf("Test message with nil job\n")
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	j := newJob()
	logger := NewWebLogger("test-render-format", j)

	logger.Printf("Loading %s with %d triangles...\n", "dragon.ply", 12345)

	msg := drainConsole(t, j)
	expected := "Loading dragon.ply with 12345 triangles...\n"
	if msg.Message != expected {
		t.Errorf("Message = %q, want %q", msg.Message, expected)
	}
}

func TestConsoleMessage_JSONSerialization(t *testing.T) {
	msg := ConsoleMessage{
		Message:   "Test message",
		Timestamp: time.Now(),
		Level:     "info",
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded ConsoleMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if decoded.Message != msg.Message || decoded.Level != msg.Level {
		t.Errorf("decoded = %+v, want %+v", decoded, msg)
	}
}
