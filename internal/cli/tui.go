package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/slidelint/pkg/pipeline"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// SlidePickerModel - Interactive slide selection
// =============================================================================

// SlidePickerModel is the bubbletea model behind `check -i`. It lists the
// analyzed slides with their counts; enter selects one.
type SlidePickerModel struct {
	Slides   []pipeline.SlideResult
	Cursor   int
	Selected *pipeline.SlideResult
	Height   int
	Offset   int
}

// NewSlidePickerModel creates a picker over slides.
func NewSlidePickerModel(slides []pipeline.SlideResult) SlidePickerModel {
	return SlidePickerModel{Slides: slides, Height: 15}
}

func (m SlidePickerModel) Init() tea.Cmd {
	return nil
}

func (m SlidePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Slides)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Slides) == 0 {
				return m, tea.Quit
			}
			s := m.Slides[m.Cursor]
			m.Selected = &s
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m SlidePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Slide"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Slides))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Slides[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("Slide %d", s.Number),
			fmt.Sprint(len(s.Report.Overlaps)),
			fmt.Sprint(s.Report.Severe()),
			fmt.Sprint(len(s.Report.Containments)),
			fmt.Sprint(len(s.Violations)),
		})
	}

	t := newTable("", "Slide", "Overlaps", "Severe", "Contained", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Slides) {
				return lipgloss.NewStyle()
			}
			s := m.Slides[idx]
			base := lipgloss.NewStyle()
			switch {
			case s.Report.Severe() > 0:
				base = base.Foreground(colorRed)
			case len(s.Report.Overlaps) > 0 || len(s.Violations) > 0:
				base = base.Foreground(colorYellow)
			default:
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Slides) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Slides))))
	}
	return b.String()
}
