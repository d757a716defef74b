// Package console abstracts operator-facing output and prompts so the
// pipeline can run against a real terminal or a recording test double.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Sink receives operator-facing messages and prompts. A single Sink is
// injected into the stage executor and orchestrator; no package-level
// singleton exists.
type Sink interface {
	// Logf writes a status line to the operator.
	Logf(format string, args ...any)
	// Errorf writes an error line to the operator.
	Errorf(format string, args ...any)
	// Status displays a transient indicator while a captured external
	// process runs. The returned stop function clears it.
	Status(msg string) (stop func())
	// Confirm presents label to the operator and reports whether they
	// answered affirmatively. Empty input counts as yes.
	Confirm(label string) (bool, error)
}

// Terminal is the interactive Sink backed by a writer and a reader.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
}

// NewTerminal constructs a Terminal writing to out and prompting from in.
func NewTerminal(out io.Writer, in io.Reader) *Terminal {
	return &Terminal{out: out, in: bufio.NewReader(in)}
}

func (t *Terminal) Logf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) Errorf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "ERROR: "+format+"\n", args...)
}

func (t *Terminal) Status(msg string) func() {
	t.mu.Lock()
	fmt.Fprintf(t.out, "%s ... ", msg)
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		fmt.Fprintln(t.out, "done")
	}
}

func (t *Terminal) Confirm(label string) (bool, error) {
	t.mu.Lock()
	fmt.Fprintf(t.out, "Do you want to run %s? [y]/n ", label)
	t.mu.Unlock()
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || answer == "y" || answer == "yes", nil
}

// Recorder is a Sink test double capturing everything it receives.
type Recorder struct {
	mu       sync.Mutex
	Lines    []string
	Errors   []string
	Statuses []string
	// ConfirmAnswer is returned by every Confirm call.
	ConfirmAnswer bool
	Confirmed     []string
}

// NewRecorder returns a Recorder that answers prompts affirmatively.
func NewRecorder() *Recorder {
	return &Recorder{ConfirmAnswer: true}
}

func (r *Recorder) Logf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

func (r *Recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Recorder) Status(msg string) func() {
	r.mu.Lock()
	r.Statuses = append(r.Statuses, msg)
	r.mu.Unlock()
	return func() {}
}

func (r *Recorder) Confirm(label string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Confirmed = append(r.Confirmed, label)
	return r.ConfirmAnswer, nil
}
