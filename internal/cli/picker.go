package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/entitree/pkg/ecs"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// RootItem is one row of the root picker.
type RootItem struct {
	ID   string // entity id as accepted by --root; empty for "all roots"
	Name string
	Size int
}

// rootItems lists an "all roots" row followed by every root of w.
func rootItems(w *ecs.World, roots []ecs.Entity) ([]RootItem, error) {
	total := 0
	items := make([]RootItem, 0, len(roots)+1)
	for _, root := range roots {
		size, err := subtreeSize(w, root)
		if err != nil {
			return nil, err
		}
		name, _ := w.Label(root)
		items = append(items, RootItem{ID: root.String(), Name: name, Size: size})
		total += size
	}
	all := RootItem{Name: "All roots", Size: total}
	return append([]RootItem{all}, items...), nil
}

// RootSelection holds the result of the root selection.
type RootSelection struct {
	Root string // empty selects every root
}

// RootListModel is the bubbletea model for interactive root selection.
type RootListModel struct {
	Items    []RootItem
	Cursor   int
	Selected *RootSelection
	Height   int
	Offset   int
}

// NewRootListModel creates a new root list model.
func NewRootListModel(items []RootItem) RootListModel {
	return RootListModel{Items: items, Height: 15}
}

func (m RootListModel) Init() tea.Cmd {
	return nil
}

func (m RootListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, tea.Quit
			}
			m.Selected = &RootSelection{Root: m.Items[m.Cursor].ID}
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

func (m RootListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		id := it.ID
		if id == "" {
			id = "*"
		}
		name := it.Name
		if name == "" {
			name = "—"
		}
		rows = append(rows, []string{cursor, id, name, countNoun(it.Size, "entity", "entities")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Entity", "Name", "Subtree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				if col == 3 {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// pickRoot runs the root picker. ok is false when the user quit without
// choosing.
func pickRoot(w *ecs.World, roots []ecs.Entity) (root string, ok bool, err error) {
	items, err := rootItems(w, roots)
	if err != nil {
		return "", false, err
	}
	p := tea.NewProgram(NewRootListModel(items), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}
	fm, ok := finalModel.(RootListModel)
	if !ok || fm.Selected == nil {
		return "", false, nil
	}
	return fm.Selected.Root, true, nil
}
