package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/slidecast/slidecast/pkg/export"
)

const progressBarWidth = 30

// progressMsg carries an export progress update into the TUI.
type progressMsg export.Progress

// exportDoneMsg signals that the export finished.
type exportDoneMsg struct {
	err error
}

// ExportModel is the bubbletea model showing export progress as a bar.
type ExportModel struct {
	msgs      <-chan tea.Msg
	cancel    func()
	current   export.Progress
	done      bool
	err       error
	cancelled bool
}

// NewExportModel creates a model that renders progress messages received on
// msgs. cancel is invoked when the user aborts with ctrl+c or q.
func NewExportModel(msgs <-chan tea.Msg, cancel func()) ExportModel {
	return ExportModel{msgs: msgs, cancel: cancel}
}

func (m ExportModel) listen() tea.Cmd {
	return func() tea.Msg { return <-m.msgs }
}

func (m ExportModel) Init() tea.Cmd {
	return m.listen()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.current = export.Progress(msg)
		return m, m.listen()
	case exportDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancelled = true
			m.cancel()
			return m, nil
		}
	}
	return m, nil
}

func (m ExportModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Exporting deck"))
	b.WriteString("\n\n")

	filled := 0
	if m.current.Total > 0 {
		filled = m.current.Current * progressBarWidth / m.current.Total
	}
	bar := StyleHighlight.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", progressBarWidth-filled))

	b.WriteString(fmt.Sprintf("  %s %s\n", bar,
		StyleValue.Render(fmt.Sprintf("%d/%d", m.current.Current, m.current.Total))))
	if m.current.Status != "" {
		b.WriteString("  " + StyleDim.Render(m.current.Status) + "\n")
	}
	b.WriteString("\n")
	if m.cancelled {
		b.WriteString(StyleWarning.Render("  Cancelling..."))
	} else {
		b.WriteString(StyleDim.Render("  q to cancel"))
	}
	b.WriteString("\n")

	return b.String()
}
