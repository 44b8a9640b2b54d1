package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusFail
)

const ansiReset = "\x1b[0m"

var statusStyles = map[statusKind]struct {
	tag   string
	color string
}{
	statusInfo: {"INFO", "\x1b[34m"},
	statusOK:   {"OK", "\x1b[32m"},
	statusWarn: {"WARN", "\x1b[33m"},
	statusFail: {"FAIL", "\x1b[31m"},
}

const statusLabelWidth = 20

// statusWriter prints aligned "label: [TAG] message" lines and tallies them
// by kind so a command can decide its exit status afterwards.
type statusWriter struct {
	out          io.Writer
	color        bool
	tally        map[statusKind]int
	wroteSection bool
}

func newStatusWriter(out io.Writer) *statusWriter {
	return &statusWriter{out: out, color: shouldColorize(out), tally: make(map[statusKind]int)}
}

func (w *statusWriter) section(title string) {
	if w.wroteSection {
		fmt.Fprintln(w.out)
	}
	w.wroteSection = true
	title = strings.TrimSpace(title)
	fmt.Fprintln(w.out, w.paint(statusInfo, title))
	fmt.Fprintln(w.out, w.paint(statusInfo, strings.Repeat("=", len(title))))
}

func (w *statusWriter) line(kind statusKind, label, message string) {
	w.tally[kind]++
	fmt.Fprintln(w.out, w.paint(kind, formatStatus(kind, label, message)))
}

func (w *statusWriter) count(kind statusKind) int {
	return w.tally[kind]
}

func (w *statusWriter) paint(kind statusKind, text string) string {
	if !w.color {
		return text
	}
	return statusStyles[kind].color + text + ansiReset
}

func formatStatus(kind statusKind, label, message string) string {
	text := fmt.Sprintf("  %-*s [%s]", statusLabelWidth, label+":", statusStyles[kind].tag)
	if message != "" {
		text += " " + message
	}
	return text
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
