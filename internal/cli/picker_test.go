package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/entitree/pkg/ecs"
)

func pickerWorld() (*ecs.World, []ecs.Entity) {
	w := ecs.NewWorld()
	root := w.Spawn(ecs.Name("root"))
	w.SpawnChild(root, ecs.Name("child"))
	camera := w.Spawn(ecs.Name("camera"))
	return w, []ecs.Entity{root, camera}
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestRootItems(t *testing.T) {
	w, roots := pickerWorld()
	items, err := rootItems(w, roots)
	require.NoError(t, err)

	assert.Equal(t, []RootItem{
		{ID: "", Name: "All roots", Size: 3},
		{ID: "0v0", Name: "root", Size: 2},
		{ID: "2v0", Name: "camera", Size: 1},
	}, items)
}

func TestRootListModelSelect(t *testing.T) {
	w, roots := pickerWorld()
	items, err := rootItems(w, roots)
	require.NoError(t, err)

	m := press(NewRootListModel(items), keyDown, keyDown, keyDown, keyUp).(RootListModel)
	assert.Equal(t, 1, m.Cursor)

	next, cmd := m.Update(keyEnter)
	m = next.(RootListModel)
	require.NotNil(t, m.Selected)
	assert.Equal(t, "0v0", m.Selected.Root)
	assert.NotNil(t, cmd)
}

func TestRootListModelAllRoots(t *testing.T) {
	w, roots := pickerWorld()
	items, err := rootItems(w, roots)
	require.NoError(t, err)

	m := press(NewRootListModel(items), keyUp, keyEnter).(RootListModel)
	require.NotNil(t, m.Selected)
	assert.Empty(t, m.Selected.Root)
}

func TestRootListModelQuit(t *testing.T) {
	w, roots := pickerWorld()
	items, err := rootItems(w, roots)
	require.NoError(t, err)

	next, cmd := NewRootListModel(items).Update(keyQuit)
	assert.Nil(t, next.(RootListModel).Selected)
	assert.NotNil(t, cmd)
}

func TestRootListModelScrolls(t *testing.T) {
	items := make([]RootItem, 20)
	for i := range items {
		items[i] = RootItem{ID: ecs.Entity{Index: uint32(i)}.String(), Size: 1}
	}

	next, _ := NewRootListModel(items).Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	m := next.(RootListModel)
	assert.Equal(t, 5, m.Height, "height is clamped")

	for range 7 {
		m = press(m, keyDown).(RootListModel)
	}
	assert.Equal(t, 7, m.Cursor)
	assert.Equal(t, 3, m.Offset)

	view := m.View()
	assert.Contains(t, view, "Select Root")
	assert.Contains(t, view, "[8/20]")
	assert.Contains(t, view, "7v0")
	assert.NotContains(t, view, "2v0")
}

func TestRootListModelView(t *testing.T) {
	w, roots := pickerWorld()
	items, err := rootItems(w, roots)
	require.NoError(t, err)

	view := NewRootListModel(items).View()
	assert.Contains(t, view, "All roots")
	assert.Contains(t, view, "camera")
	assert.Contains(t, view, "2 entities")
	assert.Contains(t, view, "[1/3]")
}
