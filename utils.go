package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

func (m *model) copySelected() {
	b, ok := m.editor.Store().Block(m.selected)
	if !ok {
		m.errorMessage = "no block selected"
		return
	}
	label := ResolveAppearance(b.Type).Label
	if err := clipboard.WriteAll(label); err != nil {
		m.log.Warn("clipboard write failed", "err", err)
		m.errorMessage = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.successMessage = "copied " + label
}

// pasteBlock adds a block whose type is named by the clipboard text.
func (m *model) pasteBlock() {
	text, err := clipboard.ReadAll()
	if err != nil {
		m.log.Warn("clipboard read failed", "err", err)
		m.errorMessage = fmt.Sprintf("clipboard: %v", err)
		return
	}
	t, ok := ParseBlockType(firstLine(text))
	if !ok {
		m.errorMessage = fmt.Sprintf("clipboard does not name a block type: %q", firstLine(text))
		return
	}
	m.addBlock(t)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
