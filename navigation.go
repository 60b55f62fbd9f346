package main

// handleNavigation pans the view with the keyboard, one cell per step.
func (m *model) handleNavigation(key string, speed int) {
	dx := float64(speed) * cellWidth
	dy := float64(speed) * cellHeight
	switch key {
	case "h", "left", "H", "shift+left":
		m.editor.PanBy(dx, 0)
	case "l", "right", "L", "shift+right":
		m.editor.PanBy(-dx, 0)
	case "k", "up", "K", "shift+up":
		m.editor.PanBy(0, dy)
	case "j", "down", "J", "shift+down":
		m.editor.PanBy(0, -dy)
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

// handleSelection walks the parent/child hierarchy from the selected block.
func (m *model) handleSelection(key string) {
	store := m.editor.Store()
	if _, ok := store.Block(m.selected); !ok {
		if roots := store.Roots(); len(roots) > 0 {
			m.selected = roots[0]
		}
		return
	}
	switch key {
	case "tab":
		m.selected = store.nextSibling(m.selected)
	case "enter":
		if children := store.Children(m.selected); len(children) > 0 {
			m.selected = children[0]
		}
	case "u":
		if parent := store.Parent(m.selected); parent != noParent {
			m.selected = parent
		}
	}
}
