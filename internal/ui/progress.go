package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressTracker reports cascade/adopt/tidy progress as they step through
// a sequence of branches.
type ProgressTracker interface {
	Increment(message string)
	SetTotal(total int)
	Complete()
	Fail(err error)
}

// ---------------------------------------------------------------------
// Bubbletea-backed tracker, used on an interactive TTY.
// ---------------------------------------------------------------------

type progressModel struct {
	current, total int
	label, message string
	done, failed   bool
	err            error
	width          int
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case progressIncrementMsg:
		m.current++
		m.message = msg.message
	case progressSetTotalMsg:
		m.total = msg.total
	case progressCompleteMsg:
		m.done = true
		return m, tea.Quit
	case progressFailMsg:
		m.failed = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return styleSuccess.Render(fmt.Sprintf("✓ %s (%d/%d)", m.label, m.current, m.total))
	}
	if m.failed {
		return styleErr.Render(fmt.Sprintf("✗ %s (failed: %v)", m.label, m.err))
	}

	barWidth := 40
	if m.width < 80 {
		barWidth = 20
	}
	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	filled := int(percent * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	status := fmt.Sprintf("[%s] %d/%d", bar, m.current, m.total)
	if m.message != "" {
		status += " - " + m.message
	}
	return styleTitle.Render(m.label) + "\n" + status
}

type progressIncrementMsg struct{ message string }
type progressSetTotalMsg struct{ total int }
type progressCompleteMsg struct{}
type progressFailMsg struct{ err error }

// BubbleteaProgressTracker drives the cascade progress bar via bubbletea.
type BubbleteaProgressTracker struct {
	program *tea.Program
}

// NewBubbleteaProgressTracker starts a bubbletea program rendering a
// progress bar for total steps of label.
func NewBubbleteaProgressTracker(total int, label string) *BubbleteaProgressTracker {
	m := progressModel{total: total, label: label, width: 80}
	p := tea.NewProgram(m)
	go func() { _, _ = p.Run() }()
	return &BubbleteaProgressTracker{program: p}
}

func (t *BubbleteaProgressTracker) Increment(message string) { t.program.Send(progressIncrementMsg{message}) }
func (t *BubbleteaProgressTracker) SetTotal(total int)        { t.program.Send(progressSetTotalMsg{total}) }
func (t *BubbleteaProgressTracker) Complete() {
	t.program.Send(progressCompleteMsg{})
	time.Sleep(100 * time.Millisecond)
}
func (t *BubbleteaProgressTracker) Fail(err error) {
	t.program.Send(progressFailMsg{err})
	time.Sleep(100 * time.Millisecond)
}

// ---------------------------------------------------------------------
// Plain-text tracker, used on a non-TTY stdout.
// ---------------------------------------------------------------------

// TextProgressTracker prints one line per step, no cursor control.
type TextProgressTracker struct {
	current, total int
	label          string
}

// NewTextProgressTracker starts a plain-text progress report.
func NewTextProgressTracker(total int, label string) *TextProgressTracker {
	fmt.Printf("Starting: %s (0/%d)\n", label, total)
	return &TextProgressTracker{total: total, label: label}
}

func (t *TextProgressTracker) Increment(message string) {
	t.current++
	line := fmt.Sprintf("  [%d/%d]", t.current, t.total)
	if message != "" {
		line += " " + message
	}
	fmt.Println(line)
}
func (t *TextProgressTracker) SetTotal(total int) { t.total = total }
func (t *TextProgressTracker) Complete() {
	fmt.Printf("✓ %s: completed (%d/%d)\n", t.label, t.current, t.total)
}
func (t *TextProgressTracker) Fail(err error) {
	fmt.Printf("✗ %s: failed - %v\n", t.label, err)
}

// ---------------------------------------------------------------------
// No-op tracker, used in quiet/JSON mode.
// ---------------------------------------------------------------------

// NoOpProgressTracker discards all progress events.
type NoOpProgressTracker struct{}

func (NoOpProgressTracker) Increment(string)    {}
func (NoOpProgressTracker) SetTotal(int)        {}
func (NoOpProgressTracker) Complete()           {}
func (NoOpProgressTracker) Fail(error)          {}
