package obs

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNullEmitterDiscardsEverything(t *testing.T) {
	n := NewNullEmitter()
	n.Emit(Event{Msg: "x"})
	if err := n.EmitBatch(context.Background(), []Event{{Msg: "x"}, {Msg: "y"}}); err != nil {
		t.Fatalf("EmitBatch: %v", err)
	}
	if err := n.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestBufferedEmitterKeepsHistoryPerGraph(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{GraphID: "g1", NodeID: "A", Msg: "node_evaluated"})
	b.Emit(Event{GraphID: "g1", NodeID: "B", Msg: "node_evaluated"})
	b.Emit(Event{GraphID: "g2", NodeID: "C", Msg: "node_evaluated"})

	h1 := b.History("g1")
	if len(h1) != 2 {
		t.Fatalf("History(g1) has %d events, want 2", len(h1))
	}
	if h1[0].NodeID != "A" || h1[1].NodeID != "B" {
		t.Fatalf("History(g1) order = %+v, want [A, B]", h1)
	}

	h2 := b.History("g2")
	if len(h2) != 1 || h2[0].NodeID != "C" {
		t.Fatalf("History(g2) = %+v, want one event from C", h2)
	}

	// The returned slice is a copy: mutating it must not affect the
	// emitter's internal history.
	h1[0].NodeID = "mutated"
	if b.History("g1")[0].NodeID != "A" {
		t.Fatalf("History leaked internal state to the caller")
	}
}

func TestBufferedEmitterClear(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{GraphID: "g1", Msg: "m"})
	b.Emit(Event{GraphID: "g2", Msg: "m"})

	b.Clear("g1")
	if len(b.History("g1")) != 0 {
		t.Fatalf("Clear(g1) left history behind")
	}
	if len(b.History("g2")) != 1 {
		t.Fatalf("Clear(g1) should not affect g2's history")
	}

	b.Clear("")
	if len(b.History("g2")) != 0 {
		t.Fatalf("Clear(\"\") should clear every graph's history")
	}
}

func TestBufferedEmitterEmitBatch(t *testing.T) {
	b := NewBufferedEmitter()
	events := []Event{
		{GraphID: "g1", NodeID: "A", Msg: "node_evaluated"},
		{GraphID: "g1", NodeID: "B", Msg: "node_evaluated"},
	}
	if err := b.EmitBatch(context.Background(), events); err != nil {
		t.Fatalf("EmitBatch: %v", err)
	}
	if len(b.History("g1")) != 2 {
		t.Fatalf("EmitBatch should append both events")
	}
}

func TestLogEmitterTextMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogEmitter(&buf, false)
	l.Emit(Event{GraphID: "g1", NodeID: "A", Msg: "node_evaluated", Meta: map[string]interface{}{"duration_ms": 5.0}})

	out := buf.String()
	if !strings.Contains(out, "[node_evaluated]") || !strings.Contains(out, "graphID=g1") || !strings.Contains(out, "nodeID=A") {
		t.Fatalf("text output missing expected fields: %q", out)
	}
	if !strings.Contains(out, "meta=") {
		t.Fatalf("text output should include meta when present: %q", out)
	}
}

func TestLogEmitterJSONMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogEmitter(&buf, true)
	l.Emit(Event{GraphID: "g1", NodeID: "A", Msg: "node_evaluated"})

	var decoded map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("JSON output did not parse: %v\nraw: %q", err, line)
	}
	if decoded["graphID"] != "g1" || decoded["nodeID"] != "A" || decoded["msg"] != "node_evaluated" {
		t.Fatalf("decoded event = %+v, missing expected fields", decoded)
	}
}

func TestLogEmitterDefaultsToStdoutWhenWriterNil(t *testing.T) {
	l := NewLogEmitter(nil, false)
	if l.writer == nil {
		t.Fatalf("NewLogEmitter(nil, ...) should default to os.Stdout, not leave writer nil")
	}
}

func TestLogEmitterEmitBatchWritesEachEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogEmitter(&buf, true)
	events := []Event{{Msg: "a"}, {Msg: "b"}, {Msg: "c"}}
	if err := l.EmitBatch(context.Background(), events); err != nil {
		t.Fatalf("EmitBatch: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("EmitBatch wrote %d lines, want 3", len(lines))
	}
}
