package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/patchworklabs/patchwork/pkg/store"
)

// List styles
var (
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// QuiltListModel - Interactive quilt selection
// =============================================================================

// QuiltListModel is the bubbletea model for browsing stored quilts.
type QuiltListModel struct {
	Quilts   []*store.Quilt
	Cursor   int
	Selected *store.Quilt
	Height   int
	Offset   int
}

// NewQuiltListModel creates a new quilt list model.
func NewQuiltListModel(quilts []*store.Quilt) QuiltListModel {
	return QuiltListModel{
		Quilts: quilts,
		Height: 15,
	}
}

func (m QuiltListModel) Init() tea.Cmd {
	return nil
}

func (m QuiltListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Quilts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Quilts[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m QuiltListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Stored Quilts"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Quilts) {
		end = len(m.Quilts)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		q := m.Quilts[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		stable := iconSuccess
		if !q.Correction.Stable {
			stable = iconWarning
		}

		rows = append(rows, []string{
			cursor,
			shortID(q.ID),
			q.Name,
			fmt.Sprintf("%d", len(q.Graph.Vertices)),
			fmt.Sprintf("%d", len(q.Graph.Faces)),
			stable,
			formatRelativeTime(q.CreatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Vertices", "Faces", "Stable", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Quilts))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// shortID truncates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
