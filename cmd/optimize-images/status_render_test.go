package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestStatusWriterTalliesKinds(t *testing.T) {
	var buf bytes.Buffer
	w := newStatusWriter(&buf)
	w.section("Checks")
	w.line(statusOK, "Source directory", "readable")
	w.line(statusWarn, "Public base URL", "not configured")
	w.line(statusFail, "Output directory", "permission denied")
	w.line(statusFail, "State directory", "")

	if w.count(statusFail) != 2 || w.count(statusWarn) != 1 || w.count(statusOK) != 1 {
		t.Fatalf("unexpected tally %v", w.tally)
	}
	out := buf.String()
	for _, want := range []string{
		"Checks\n======\n",
		"  Source directory:    [OK] readable\n",
		"  Public base URL:     [WARN] not configured\n",
		"  State directory:     [FAIL]\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for a buffer:\n%q", out)
	}
}

func TestStatusWriterColorsByKind(t *testing.T) {
	var buf bytes.Buffer
	w := newStatusWriter(&buf)
	w.color = true
	w.line(statusWarn, "Public base URL", "not configured")
	if got := buf.String(); !strings.HasPrefix(got, "\x1b[33m") || !strings.HasSuffix(got, ansiReset+"\n") {
		t.Fatalf("expected yellow warn line, got %q", got)
	}
}

func TestStatusWriterSeparatesSections(t *testing.T) {
	var buf bytes.Buffer
	w := newStatusWriter(&buf)
	w.section("Configuration")
	w.section("Checks")
	if !strings.Contains(buf.String(), "=============\n\nChecks\n") {
		t.Fatalf("expected a blank line between sections:\n%s", buf.String())
	}
}
