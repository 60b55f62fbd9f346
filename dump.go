package main

import (
	"fmt"
	"io"
)

// WriteDump writes a stable, line-oriented description of the view and the
// scene: blocks in render order, then lines sorted by key.
func WriteDump(w io.Writer, snap Snapshot, view Transform) error {
	if _, err := fmt.Fprintf(w, "view pan=(%.2f,%.2f) scale=%.2f\n", view.PanX, view.PanY, view.Scale); err != nil {
		return err
	}
	for _, b := range snap.Blocks {
		parent := ""
		if b.HasParent() {
			parent = fmt.Sprintf(" parent=%d", b.ParentID)
		}
		if _, err := fmt.Fprintf(w, "block %d %s (%.2f,%.2f)%s\n", b.ID, b.Type, b.X, b.Y, parent); err != nil {
			return err
		}
	}
	for _, key := range sortedLineKeys(snap.Lines) {
		l := snap.Lines[key]
		if _, err := fmt.Fprintf(w, "line %s (%.2f,%.2f) -> (%.2f,%.2f)\n", key, l.Start.X, l.Start.Y, l.End.X, l.End.Y); err != nil {
			return err
		}
	}
	return nil
}
