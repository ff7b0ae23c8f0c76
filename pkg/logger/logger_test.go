
package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")
	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestWithAddsField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "bogus").With("request_id", "abc")
	l.Infof("hello")
	out := buf.String()
	if !strings.Contains(out, "request_id=abc") || !strings.Contains(out, "hello") {
		t.Fatalf("unexpected output: %q", out)
	}
}
