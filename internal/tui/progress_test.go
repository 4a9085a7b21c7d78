package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func installModel() ProgressModel {
	m := NewProgressModel("install nim 2.0.0", []Column{
		{Header: "STAGE", Width: 10},
		{Header: "STATUS", Width: 12},
		{Header: "DETAIL", Width: 30},
	})
	m.AddRow("resolve", []string{"resolve", "pending", ""})
	m.AddRow("download", []string{"download", "pending", ""})
	m.AddRow("extract", []string{"extract", "pending", ""})
	return m
}

func TestRowUpdateMsg(t *testing.T) {
	m := installModel()

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "resolve",
		Fields: map[string]string{"STATUS": "resolved", "DETAIL": "official prebuilt binary"},
	})
	m = updated.(ProgressModel)

	if m.rows[0].Fields[1] != "resolved" {
		t.Errorf("expected STATUS=resolved, got %q", m.rows[0].Fields[1])
	}
	if m.rows[0].Fields[2] != "official prebuilt binary" {
		t.Errorf("expected DETAIL updated, got %q", m.rows[0].Fields[2])
	}
	// Other rows unchanged.
	if m.rows[1].Fields[1] != "pending" {
		t.Errorf("expected download row STATUS=pending, got %q", m.rows[1].Fields[1])
	}
}

func TestRowUpdateMsg_UnknownKey(t *testing.T) {
	m := installModel()

	updated, _ := m.Update(RowUpdateMsg{
		Key:    "publish",
		Fields: map[string]string{"STATUS": "done"},
	})
	m = updated.(ProgressModel)

	for i, row := range m.rows {
		if row.Fields[1] != "pending" {
			t.Errorf("expected row %d unchanged, got %q", i, row.Fields[1])
		}
	}
}

func TestWorkDoneMsg(t *testing.T) {
	m := installModel()

	updated, cmd := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after WorkDoneMsg")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestErrorMsg(t *testing.T) {
	m := installModel()

	updated, cmd := m.Update(ErrorMsg{Err: tea.ErrProgramKilled})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ErrorMsg")
	}
	if m.Err() == nil {
		t.Error("expected Err() to be non-nil")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestView(t *testing.T) {
	m := installModel()
	updated, _ := m.Update(RowUpdateMsg{
		Key:    "download",
		Fields: map[string]string{"STATUS": "downloading"},
	})
	m = updated.(ProgressModel)

	view := m.View()

	for _, want := range []string{"STAGE", "STATUS", "DETAIL", "resolve", "extract", "downloading", "pending"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestStageCounts(t *testing.T) {
	m := installModel()
	updated, _ := m.Update(RowUpdateMsg{
		Key:    "resolve",
		Fields: map[string]string{"STATUS": "resolved"},
	})
	m = updated.(ProgressModel)
	updated, _ = m.Update(RowUpdateMsg{
		Key:    "download",
		Fields: map[string]string{"STATUS": "downloading"},
	})
	m = updated.(ProgressModel)

	completed, total := m.stageCounts()
	if total != 3 {
		t.Errorf("expected total=3, got %d", total)
	}
	// Only terminal statuses count; downloading is still in flight.
	if completed != 1 {
		t.Errorf("expected completed=1, got %d", completed)
	}
}

func TestViewShowsFooterWhenNotDone(t *testing.T) {
	m := installModel()

	view := m.View()
	if !strings.Contains(view, "stages") {
		t.Error("expected view to contain stage counter footer when not done")
	}
	if !strings.Contains(view, "install nim 2.0.0") {
		t.Error("expected view to contain title when not done")
	}
}

func TestViewHidesFooterWhenDone(t *testing.T) {
	m := installModel()
	updated, _ := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	view := m.View()
	if strings.Contains(view, "stages") {
		t.Error("expected view to NOT contain footer when done")
	}
}

func TestNonEmptyOrDash(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "-"},
		{"  ", "-"},
		{"2.0.0", "2.0.0"},
		{" 2.0.0 ", "2.0.0"},
	}
	for _, tt := range tests {
		got := NonEmptyOrDash(tt.input)
		if got != tt.want {
			t.Errorf("NonEmptyOrDash(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"a longer string here", 10, "a longe..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		got := TruncateWithEllipsis(tt.input, tt.max)
		if got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}

func TestMarqueeText(t *testing.T) {
	tests := []struct {
		text    string
		width   int
		tick    int
		want    string
		wantLen int
	}{
		// Text fits: returned as-is (no marquee)
		{"short", 10, 0, "short", 5},
		// Text exceeds: marquee sliding window, always width chars
		{"https://nim-lang.org", 5, 0, "https", 5},
		{"https://nim-lang.org", 5, 1, "ttps:", 5},
		// Wraps around with gap
		{"abcdef", 4, 0, "abcd", 4},
		{"abcdef", 4, 6, "   a", 4},
	}
	for _, tt := range tests {
		got := marqueeText(tt.text, tt.width, tt.tick)
		if len(got) != tt.wantLen {
			t.Errorf("marqueeText(%q, %d, %d) length = %d, want %d", tt.text, tt.width, tt.tick, len(got), tt.wantLen)
		}
		if got != tt.want {
			t.Errorf("marqueeText(%q, %d, %d) = %q, want %q", tt.text, tt.width, tt.tick, got, tt.want)
		}
	}
}

func TestTickMsg(t *testing.T) {
	m := installModel()

	updated, cmd := m.Update(tickMsg{})
	m = updated.(ProgressModel)

	if m.tick != 1 {
		t.Errorf("expected tick=1 after tickMsg, got %d", m.tick)
	}
	if cmd == nil {
		t.Error("expected next tick command")
	}
}

func TestTickStopsAfterDone(t *testing.T) {
	m := installModel()
	// Mark done first
	updated, _ := m.Update(WorkDoneMsg{})
	m = updated.(ProgressModel)

	// Tick after done should not schedule another
	updated, cmd := m.Update(tickMsg{})
	m = updated.(ProgressModel)

	if cmd != nil {
		t.Error("expected no tick command after done")
	}
}

func TestCtrlC(t *testing.T) {
	m := installModel()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(ProgressModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ctrl+c")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}
