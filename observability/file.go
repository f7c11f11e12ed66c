package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// FileObserver appends every event as one JSON line to a file. Useful for
// capturing a run's full event stream for later inspection without touching
// the console transcript.
type FileObserver struct {
	mu sync.Mutex
	f  *os.File
}

type fileRecord struct {
	Time   time.Time      `json:"time"`
	Type   EventType      `json:"type"`
	Level  string         `json:"level"`
	Source string         `json:"source"`
	Data   map[string]any `json:"data,omitempty"`
}

// NewFileObserver opens (or creates) path for appending and returns a
// FileObserver writing to it.
func NewFileObserver(path string) (*FileObserver, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return &FileObserver{f: f}, nil
}

func (o *FileObserver) OnEvent(ctx context.Context, event Event) {
	line, err := json.Marshal(fileRecord{
		Time:   event.Timestamp,
		Type:   event.Type,
		Level:  event.Level.String(),
		Source: event.Source,
		Data:   event.Data,
	})
	if err != nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.f.Write(append(line, '\n'))
}

// Close flushes and closes the underlying file.
func (o *FileObserver) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.f.Close()
}
