package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const exportPadding = 40.0

// ExportPNG renders the snapshot in scene units (one pixel per unit) and
// writes it to filename.
func ExportPNG(filename string, snap Snapshot, layout Layout, dark bool) error {
	dc, err := renderPNG(snap, layout, dark)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save png %s: %w", filename, err)
	}
	return nil
}

func sceneBounds(snap Snapshot, layout Layout) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, b := range snap.Blocks {
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.X+layout.BlockWidth)
		maxY = math.Max(maxY, b.Y+layout.BlockHeight)
	}
	return minX - exportPadding, minY - exportPadding, maxX + exportPadding, maxY + exportPadding
}

func renderPNG(snap Snapshot, layout Layout, dark bool) (*gg.Context, error) {
	if len(snap.Blocks) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}

	minX, minY, maxX, maxY := sceneBounds(snap, layout)
	dc := gg.NewContext(int(math.Ceil(maxX-minX)), int(math.Ceil(maxY-minY)))

	background, foreground := color.Color(color.White), color.Color(color.Black)
	if dark {
		background, foreground = color.RGBA{R: 0x1E, G: 0x22, B: 0x2A, A: 0xFF}, color.RGBA{R: 0xE6, G: 0xE9, B: 0xEF, A: 0xFF}
	}
	dc.SetColor(background)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, key := range sortedLineKeys(snap.Lines) {
		drawLinePNG(dc, snap.Lines[key], layout, minX, minY, foreground)
	}
	for _, b := range snap.Blocks {
		drawBlockPNG(dc, b, layout, minX, minY, foreground)
	}
	return dc, nil
}

func drawLinePNG(dc *gg.Context, l Line, layout Layout, minX, minY float64, stroke color.Color) {
	fx, fy := layout.OutputPort(l.Start)
	tx, ty := layout.InputPort(l.End)
	fx, fy, tx, ty = fx-minX, fy-minY, tx-minX, ty-minY

	dc.SetLineWidth(1.5)
	dc.SetColor(stroke)
	dc.DrawLine(fx, fy, tx, ty)
	dc.Stroke()
	drawArrowPNG(dc, fx, fy, tx, ty)
}

func drawArrowPNG(dc *gg.Context, fx, fy, tx, ty float64) {
	dx := tx - fx
	dy := ty - fy
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	arrowSize := 8.0
	arrowAngle := 0.5

	dc.MoveTo(tx, ty)
	dc.LineTo(tx-arrowSize*dx+arrowSize*dy*arrowAngle, ty-arrowSize*dy-arrowSize*dx*arrowAngle)
	dc.LineTo(tx-arrowSize*dx-arrowSize*dy*arrowAngle, ty-arrowSize*dy+arrowSize*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

func drawBlockPNG(dc *gg.Context, b Block, layout Layout, minX, minY float64, text color.Color) {
	appearance := ResolveAppearance(b.Type)
	x := b.X - minX
	y := b.Y - minY

	dc.SetHexColor(hexColor(appearance.Color))
	dc.DrawRoundedRectangle(x, y, layout.BlockWidth, layout.BlockHeight, 8)
	dc.Fill()

	dc.SetColor(text)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, layout.BlockWidth, layout.BlockHeight, 8)
	dc.Stroke()

	cx := x + layout.BlockWidth/2
	dc.DrawStringAnchored(appearance.Label, cx, y+layout.BlockHeight/2-8, 0.5, 0.5)
	dc.DrawStringAnchored("["+appearance.Icon+"]", cx, y+layout.BlockHeight/2+8, 0.5, 0.5)

	ox, oy := layout.OutputPort(anchorOf(b))
	dc.DrawCircle(ox-minX, oy-minY, 4)
	dc.Fill()
}
