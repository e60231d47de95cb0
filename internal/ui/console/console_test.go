package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterRoutesLevels(t *testing.T) {
	var out, errBuf bytes.Buffer
	w := New(&out, &errBuf)

	w.Info("listing %d agents", 2)
	w.Success("created")
	w.Warn("slow response")
	w.Error("rejected")

	if !strings.Contains(out.String(), "listing 2 agents") || !strings.Contains(out.String(), "created") {
		t.Fatalf("stdout: %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "slow response") || !strings.Contains(errBuf.String(), "rejected") {
		t.Fatalf("stderr: %q", errBuf.String())
	}
	// Buffers are not TTYs, so no escape codes.
	if strings.Contains(out.String(), "\033[") {
		t.Fatalf("unexpected colour codes: %q", out.String())
	}
}

func TestTableAlignment(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, nil)

	w.Table([]string{"ID", "STATUS"}, [][]string{
		{"agent-1", "active"},
		{"a", "draft"},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if !strings.HasPrefix(lines[1], "agent-1  ") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "a        ") {
		t.Fatalf("rows must be padded to the widest cell: %q", lines[2])
	}
}

func TestKVAlignment(t *testing.T) {
	var out bytes.Buffer
	w := New(&out, nil)

	w.KV([][2]string{{"id", "call-1"}, {"status", "completed"}})

	text := out.String()
	if !strings.Contains(text, "id    ") || !strings.Contains(text, "call-1") {
		t.Fatalf("unexpected output: %q", text)
	}
}
