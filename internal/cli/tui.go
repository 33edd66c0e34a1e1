package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flowband/flowband/pkg/dataset"
	"github.com/flowband/flowband/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// noWeightOption is the list entry for skipping the weight column.
const noWeightOption = "(none, count rows)"

// pickStage identifies which column is currently being chosen.
type pickStage int

const (
	stageLeft pickStage = iota
	stageRight
	stageWeight
)

// ColumnSelection holds the result of the interactive column picker.
type ColumnSelection struct {
	Left   string
	Right  string
	Weight string
}

// ColumnPickerModel is the bubbletea model for interactive CSV column
// selection. The user picks the left, right, and optional weight
// columns in three passes over the header.
type ColumnPickerModel struct {
	Columns  []string
	Stage    pickStage
	Cursor   int
	Selected *ColumnSelection
	Aborted  bool

	picked ColumnSelection
}

// NewColumnPickerModel creates a picker over the given CSV header.
func NewColumnPickerModel(columns []string) ColumnPickerModel {
	return ColumnPickerModel{Columns: columns}
}

func (m ColumnPickerModel) Init() tea.Cmd {
	return nil
}

// choices returns the selectable entries for the current stage.
// The weight stage gets an extra "(none)" entry at the top.
func (m ColumnPickerModel) choices() []string {
	if m.Stage == stageWeight {
		return append([]string{noWeightOption}, m.Columns...)
	}
	return m.Columns
}

func (m ColumnPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.choices())-1 {
				m.Cursor++
			}
		case "enter":
			choice := m.choices()[m.Cursor]
			switch m.Stage {
			case stageLeft:
				m.picked.Left = choice
				m.Stage = stageRight
				m.Cursor = 0
			case stageRight:
				m.picked.Right = choice
				m.Stage = stageWeight
				m.Cursor = 0
			case stageWeight:
				if choice != noWeightOption {
					m.picked.Weight = choice
				}
				sel := m.picked
				m.Selected = &sel
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m ColumnPickerModel) View() string {
	var b strings.Builder

	titles := map[pickStage]string{
		stageLeft:   "Select left column",
		stageRight:  "Select right column",
		stageWeight: "Select weight column",
	}
	b.WriteString(StyleTitle.Render(titles[m.Stage]))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, choice := range m.choices() {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor + style.Render(choice) + "\n")
	}

	if m.picked.Left != "" {
		b.WriteString("\n" + listDimStyle.Render("left: "+m.picked.Left))
	}
	if m.picked.Right != "" {
		b.WriteString(listDimStyle.Render("  right: " + m.picked.Right))
	}
	return b.String()
}

// pickColumnsInteractive runs the column picker over a local CSV header
// and writes the selection into the pipeline options.
func pickColumnsInteractive(input string, p *pipeline.Options) error {
	if strings.ToLower(filepath.Ext(input)) != ".csv" || p.IsRemote() {
		return fmt.Errorf("interactive column selection requires a local CSV file")
	}

	header, err := dataset.Header(input)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(NewColumnPickerModel(header)).Run()
	if err != nil {
		return fmt.Errorf("column picker: %w", err)
	}

	m, ok := final.(ColumnPickerModel)
	if !ok || m.Selected == nil {
		return fmt.Errorf("column selection aborted")
	}

	p.LeftColumn = m.Selected.Left
	p.RightColumn = m.Selected.Right
	p.WeightColumn = m.Selected.Weight
	return nil
}
