package obs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// LogEmitter implements Emitter by writing structured log output to a
// writer.
//
// Supports two output modes:
//   - Text (default): human-readable "[msg] graphID=... nodeID=..." lines.
//   - JSON: one JSON object per line (JSONL), suitable for log pipelines.
type LogEmitter struct {
	writer   io.Writer
	jsonMode bool
}

// NewLogEmitter creates a LogEmitter writing to writer (os.Stdout if nil).
// jsonMode selects JSONL output over the human-readable default.
func NewLogEmitter(writer io.Writer, jsonMode bool) *LogEmitter {
	if writer == nil {
		writer = os.Stdout
	}
	return &LogEmitter{writer: writer, jsonMode: jsonMode}
}

// Emit writes a single event in the configured format.
func (l *LogEmitter) Emit(event Event) {
	if l.jsonMode {
		l.emitJSON(event)
		return
	}
	l.emitText(event)
}

func (l *LogEmitter) emitJSON(event Event) {
	data, err := json.Marshal(struct {
		GraphID string                 `json:"graphID"`
		NodeID  string                 `json:"nodeID"`
		Msg     string                 `json:"msg"`
		Meta    map[string]interface{} `json:"meta,omitempty"`
	}{event.GraphID, event.NodeID, event.Msg, event.Meta})
	if err != nil {
		_, _ = fmt.Fprintf(l.writer, "{\"error\":\"failed to marshal event: %v\"}\n", err)
		return
	}
	_, _ = fmt.Fprintf(l.writer, "%s\n", data)
}

func (l *LogEmitter) emitText(event Event) {
	_, _ = fmt.Fprintf(l.writer, "[%s] graphID=%s nodeID=%s", event.Msg, event.GraphID, event.NodeID)
	if len(event.Meta) > 0 {
		if metaJSON, err := json.Marshal(event.Meta); err == nil {
			_, _ = fmt.Fprintf(l.writer, " meta=%s", metaJSON)
		} else {
			_, _ = fmt.Fprintf(l.writer, " meta=%v", event.Meta)
		}
	}
	_, _ = fmt.Fprint(l.writer, "\n")
}

// EmitBatch writes each event in order by calling Emit for it.
func (l *LogEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, event := range events {
		l.Emit(event)
	}
	return nil
}

// Flush is a no-op: LogEmitter never buffers beyond the underlying writer.
func (l *LogEmitter) Flush(_ context.Context) error { return nil }
