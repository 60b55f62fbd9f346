package main

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Canvas draws a scene snapshot into terminal cells. Screen pixels map to
// cells at cellWidth x cellHeight.
type Canvas struct {
	width  int
	height int
	cells  [][]rune
	colors [][]lipgloss.Color
	dark   bool
}

type cellPoint struct {
	X, Y int
}

func NewCanvas(width, height int, dark bool) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{width: width, height: height, dark: dark}
	c.cells = make([][]rune, height)
	c.colors = make([][]lipgloss.Color, height)
	for i := range c.cells {
		c.cells[i] = make([]rune, width)
		c.colors[i] = make([]lipgloss.Color, width)
		for j := range c.cells[i] {
			c.cells[i][j] = ' '
		}
	}
	return c
}

func toCell(px, py float64) cellPoint {
	return cellPoint{X: int(math.Floor(px / cellWidth)), Y: int(math.Floor(py / cellHeight))}
}

func (c *Canvas) isValidPos(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

func (c *Canvas) set(x, y int, r rune, color lipgloss.Color) {
	if c.isValidPos(x, y) {
		c.cells[y][x] = r
		c.colors[y][x] = color
	}
}

func (c *Canvas) lineColor() lipgloss.Color {
	if c.dark {
		return lipgloss.Color("#9AA4B8")
	}
	return lipgloss.Color("#4A5468")
}

// Render draws lines first so boxes cover them, then the preview line on top.
func (c *Canvas) Render(snap Snapshot, view Transform, layout Layout, preview *Line, selected int) []string {
	keys := sortedLineKeys(snap.Lines)
	for _, key := range keys {
		c.drawLine(snap.Lines[key], view, layout, c.lineColor())
	}
	for _, b := range snap.Blocks {
		c.drawBlock(b, view, layout, b.ID == selected)
	}
	if preview != nil {
		c.drawLine(*preview, view, layout, lipgloss.Color("#FFC500"))
	}
	return c.lines()
}

func (c *Canvas) drawLine(l Line, view Transform, layout Layout, color lipgloss.Color) {
	fx, fy := layout.OutputPort(l.Start)
	tx, ty := l.End.X, l.End.Y
	if l.End.ID != 0 {
		tx, ty = layout.InputPort(l.End)
	}
	from := toCell(view.SceneToScreen(fx, fy))
	to := toCell(view.SceneToScreen(tx, ty))

	if max(abs(to.X-from.X), abs(to.Y-from.Y)) > 64*(c.width+c.height) {
		return
	}

	glyph := lineGlyph(to.X-from.X, to.Y-from.Y)
	points := bresenham(from, to)
	for i, p := range points {
		r := glyph
		if i == len(points)-1 {
			if l.End.ID != 0 {
				r = '▼'
			} else {
				r = '●'
			}
		}
		c.set(p.X, p.Y, r, color)
	}
}

func lineGlyph(dx, dy int) rune {
	switch {
	case abs(dx) > 2*abs(dy):
		return '─'
	case abs(dy) > 2*abs(dx):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func bresenham(from, to cellPoint) []cellPoint {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy
	x, y := from.X, from.Y
	points := make([]cellPoint, 0, dx-dy+1)
	for {
		points = append(points, cellPoint{x, y})
		if x == to.X && y == to.Y {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (c *Canvas) drawBlock(b Block, view Transform, layout Layout, selected bool) {
	appearance := ResolveAppearance(b.Type)
	color := lipgloss.Color(hexColor(appearance.Color))

	topLeft := toCell(view.SceneToScreen(b.X, b.Y))
	bottomRight := toCell(view.SceneToScreen(b.X+layout.BlockWidth, b.Y+layout.BlockHeight))
	x0, y0 := topLeft.X, topLeft.Y
	x1, y1 := max(bottomRight.X-1, x0+1), max(bottomRight.Y-1, y0+1)

	var corner, horizontal, vertical rune
	if selected {
		corner, horizontal, vertical = '#', '#', '#'
	} else {
		corner, horizontal, vertical = '+', '-', '|'
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				c.set(x, y, corner, color)
			case y == y0 || y == y1:
				c.set(x, y, horizontal, color)
			case x == x0 || x == x1:
				c.set(x, y, vertical, color)
			default:
				c.set(x, y, ' ', "")
			}
		}
	}

	// Output handle marker on the bottom border.
	mid := (x0 + x1) / 2
	if x1-x0 >= 4 {
		c.set(mid, y1, 'o', color)
	}

	inner := x1 - x0 - 1
	text := []string{appearance.Label, "[" + appearance.Icon + "]"}
	for i, line := range text {
		row := y0 + 1 + i
		if row >= y1 || inner <= 0 {
			break
		}
		runes := []rune(line)
		if len(runes) > inner {
			runes = runes[:inner]
		}
		for j, r := range runes {
			c.set(x0+1+j, row, r, color)
		}
	}
}

func (c *Canvas) lines() []string {
	result := make([]string, c.height)
	for i, row := range c.cells {
		var b strings.Builder
		var run []rune
		current := lipgloss.Color("")
		flush := func() {
			if len(run) == 0 {
				return
			}
			if current == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(current).Render(string(run)))
			}
			run = run[:0]
		}
		for j, r := range row {
			if color := c.colors[i][j]; color != current {
				flush()
				current = color
			}
			run = append(run, r)
		}
		flush()
		result[i] = b.String()
	}
	return result
}

func sortedLineKeys(lines map[LineKey]Line) []LineKey {
	keys := make([]LineKey, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].From != keys[j].From {
			return keys[i].From < keys[j].From
		}
		return keys[i].To < keys[j].To
	})
	return keys
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
