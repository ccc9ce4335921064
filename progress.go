package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages sent to the progress program.
type statusMsg string
type warnMsg string
type doneMsg struct{}

// progressModel shows a spinner with the latest status line while data is
// fetched. Warnings are printed above it and stay in the scrollback.
type progressModel struct {
	spinner spinner.Model
	status  string
	done    bool
	cancel  context.CancelFunc
}

func newProgressModel(cancel context.CancelFunc) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	return progressModel{
		spinner: s,
		status:  "Starting...",
		cancel:  cancel,
	}
}

// Init starts the spinner.
func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.cancel != nil {
				m.cancel()
			}
			m.status = "Cancelling..."
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case warnMsg:
		return m, tea.Println(warnStyle.Render("! ") + string(msg))

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line; nothing once done.
func (m progressModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.status)
}

// progressHandler is a slog.Handler that turns log records into progress
// messages: warnings and errors become warnMsg, anything else statusMsg.
type progressHandler struct {
	send  func(tea.Msg)
	level slog.Leveler
	attrs []slog.Attr
}

func (h *progressHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *progressHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)

	writeAttr := func(a slog.Attr) bool {
		if a.Key == "component" {
			return true
		}
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)

	if r.Level >= slog.LevelWarn {
		h.send(warnMsg(b.String()))
	} else {
		h.send(statusMsg(b.String()))
	}
	return nil
}

func (h *progressHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &progressHandler{send: h.send, level: h.level, attrs: merged}
}

func (h *progressHandler) WithGroup(string) slog.Handler {
	return h
}

// runWithProgress runs fn. When enabled, fn's log output drives a spinner
// on stderr and ctrl+c cancels fn's context. Otherwise fn logs through
// logger directly.
func runWithProgress(ctx context.Context, enabled bool, level slog.Level, logger *Logger, fn func(context.Context, *Logger) error) error {
	if !enabled {
		return fn(ctx, logger)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newProgressModel(cancel), tea.WithOutput(os.Stderr))
	progressLogger := NewLogger(LoggerConfig{
		Component: logger.Component(),
		Handler:   &progressHandler{send: program.Send, level: level},
	})

	result := make(chan error, 1)
	go func() {
		result <- fn(ctx, progressLogger)
		program.Send(doneMsg{})
	}()

	if _, err := program.Run(); err != nil {
		logger.Debug("progress display stopped", "error", err)
	}

	return <-result
}
