package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/candipilot/candipilot-api/internal/core/domain"
	"github.com/candipilot/candipilot-api/internal/kanban"
)

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(24)

	focusedColumnStyle = columnStyle.
				BorderForeground(lipgloss.Color("62"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	grabbedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

type model struct {
	board *kanban.Board

	columns [][]cardView
	col     int
	row     int

	// grabbed is the id of the card being moved, empty when browsing.
	grabbed string

	status string
	errMsg string
}

type cardView struct {
	id      string
	company string
	role    string
}

type movedMsg struct{ err error }

type reloadedMsg struct{ err error }

func newModel(board *kanban.Board) *model {
	m := &model{board: board, status: "arrows: navigate · space: grab/drop · r: reload · q: quit"}
	m.refresh()
	return m
}

func (m *model) refresh() {
	m.columns = make([][]cardView, len(domain.KanbanColumns))
	for i, status := range domain.KanbanColumns {
		for _, app := range m.board.Column(status) {
			m.columns[i] = append(m.columns[i], cardView{id: app.ID, company: app.Company, role: app.Role})
		}
	}
	m.clamp()
}

func (m *model) clamp() {
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	if m.row >= len(m.columns[m.col]) {
		m.row = len(m.columns[m.col]) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case movedMsg:
		if msg.err != nil {
			m.errMsg = "move failed, board reverted: " + msg.err.Error()
		} else {
			m.errMsg = ""
		}
		m.refresh()
		return m, nil

	case reloadedMsg:
		if msg.err != nil {
			m.errMsg = "reload failed: " + msg.err.Error()
		} else {
			m.errMsg = ""
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "left", "h":
		m.col--
		m.clamp()

	case "right", "l":
		m.col++
		m.clamp()

	case "up", "k":
		m.row--
		m.clamp()

	case "down", "j":
		m.row++
		m.clamp()

	case "r":
		return m, m.reloadCmd()

	case " ", "enter":
		if m.grabbed == "" {
			if card := m.selected(); card != nil {
				m.grabbed = card.id
			}
			return m, nil
		}
		// Drop onto the focused column.
		id := m.grabbed
		target := string(domain.KanbanColumns[m.col])
		m.grabbed = ""
		return m, m.dropCmd(id, target)

	case "esc":
		// Same as the pointer leaving the board with no destination.
		m.grabbed = ""
	}
	return m, nil
}

func (m *model) selected() *cardView {
	cards := m.columns[m.col]
	if len(cards) == 0 {
		return nil
	}
	return &cards[m.row]
}

func (m *model) dropCmd(id, target string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return movedMsg{err: m.board.DragEnd(ctx, id, target)}
	}
}

func (m *model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return reloadedMsg{err: m.board.Reload(ctx)}
	}
}

func (m *model) View() string {
	rendered := make([]string, 0, len(m.columns))
	for i, status := range domain.KanbanColumns {
		rendered = append(rendered, m.renderColumn(i, status))
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	footer := statusBarStyle.Render(m.status)
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg)
	}
	return boardView + "\n" + footer + "\n"
}

func (m *model) renderColumn(i int, status domain.ApplicationStatus) string {
	style := columnStyle
	if i == m.col {
		style = focusedColumnStyle
	}

	lines := []string{titleStyle.Render(status.Label())}
	for j, card := range m.columns[i] {
		line := card.company
		if card.role != "" {
			line += " · " + card.role
		}
		switch {
		case card.id == m.grabbed:
			line = grabbedCardStyle.Render("⇅ " + line)
		case i == m.col && j == m.row:
			line = selectedCardStyle.Render(line)
		default:
			line = cardStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(m.columns[i]) == 0 {
		lines = append(lines, cardStyle.Render("—"))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
