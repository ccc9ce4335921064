package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgressModelUpdate(t *testing.T) {
	cancelled := false
	m := newProgressModel(func() { cancelled = true })

	model, _ := m.Update(statusMsg("[1/3] scanning alice/a"))
	m = model.(progressModel)
	if m.status != "[1/3] scanning alice/a" {
		t.Errorf("status = %q, want the latest status line", m.status)
	}
	if !strings.Contains(m.View(), "scanning alice/a") {
		t.Errorf("View() = %q, want the status", m.View())
	}

	if _, cmd := m.Update(warnMsg("skipping repository")); cmd == nil {
		t.Error("warnMsg produced no print command")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = model.(progressModel)
	if !cancelled {
		t.Error("ctrl+c did not cancel the fetch")
	}
	if m.status != "Cancelling..." {
		t.Errorf("status = %q after ctrl+c", m.status)
	}

	model, cmd := m.Update(doneMsg{})
	m = model.(progressModel)
	if !m.done || m.View() != "" {
		t.Errorf("done = %v, View() = %q after doneMsg", m.done, m.View())
	}
	if cmd == nil {
		t.Fatal("doneMsg returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("doneMsg did not quit the program")
	}
}

func TestProgressHandler(t *testing.T) {
	var got []tea.Msg
	handler := &progressHandler{send: func(msg tea.Msg) { got = append(got, msg) }, level: slog.LevelInfo}
	logger := NewLogger(LoggerConfig{Component: "githeat", Handler: handler})

	logger.Debug("hidden")
	logger.Step(context.Background(), "found user id %d", 7)
	logger.WithComponent("repo-scan").Warn("skipping repository", "repo", "alice/a", "reason", "timed out")

	want := []tea.Msg{
		statusMsg("found user id 7"),
		warnMsg("skipping repository repo=alice/a reason=timed out"),
	}
	if len(got) != len(want) {
		t.Fatalf("handler sent %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestRunWithProgressDisabled(t *testing.T) {
	logger := DiscardLogger()
	sentinel := errors.New("boom")

	var used *Logger
	err := runWithProgress(context.Background(), false, slog.LevelInfo, logger, func(_ context.Context, l *Logger) error {
		used = l
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("runWithProgress() error = %v, want %v", err, sentinel)
	}
	if used != logger {
		t.Error("runWithProgress() replaced the logger while disabled")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerComponent(t *testing.T) {
	var b strings.Builder
	logger := NewLogger(LoggerConfig{Level: slog.LevelInfo, Component: "githeat", Output: &b})

	logger.WithComponent("repo-scan").Info("scanning")

	line := b.String()
	if strings.Count(line, "component=") != 1 || !strings.Contains(line, "component=repo-scan") {
		t.Errorf("log line = %q, want a single repo-scan component", line)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"deadline", context.DeadlineExceeded, ErrTransient},
		{"cancelled", context.Canceled, ErrTransient},
		{"other", errors.New("decode failed"), nil},
	}

	for _, tt := range tests {
		err := classifyError("/users/alice", tt.err)

		if !errors.Is(err, tt.err) {
			t.Errorf("%s: classifyError() lost the cause", tt.name)
		}
		for _, kind := range []error{ErrTransient, ErrNotFound, ErrAuthentication} {
			if errors.Is(err, kind) != (kind == tt.kind) {
				t.Errorf("%s: errors.Is(err, %v) = %v", tt.name, kind, !(kind == tt.kind))
			}
		}
	}

	if classifyError("/x", nil) != nil {
		t.Error("classifyError(nil) != nil")
	}
}

func TestRenderFatal(t *testing.T) {
	out := renderFatal(ErrBadCredential)

	if !strings.Contains(out, "bad credential") {
		t.Errorf("renderFatal() = %q, want the error text", out)
	}
	for i := range remediationTips {
		if !strings.Contains(out, remediationTips[i]) {
			t.Errorf("renderFatal() missing tip %d", i+1)
		}
	}
}
