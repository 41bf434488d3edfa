package bopdrop

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bopdrop/internal/core"
	bopcore "github.com/vovakirdan/bopdrop/internal/games/bopdrop/core"
)

// Rendering characters.
const (
	PieceRim    = '●'
	PieceFill   = '•'
	LoseLineCh  = '╌'
	AimGuideCh  = '┊'
	hudRows     = 1
	cellAspect  = 2.0 // A terminal cell is about twice as tall as wide
	bannerTitle = "★ BOP! ★"
)

// layout maps world units onto terminal cells.
type layout struct {
	field       core.Rect // Inner cells of the pit, the border sits around it
	unitsPerCol float64
	unitsPerRow float64
}

func newLayout(worldW, worldH float64, screenW, screenH int) layout {
	availW := screenW - 2
	availH := screenH - hudRows - 2
	if availW < 1 || availH < 1 || worldW <= 0 || worldH <= 0 {
		return layout{}
	}

	upc := math.Max(worldW/float64(availW), worldH/(cellAspect*float64(availH)))
	cols := core.Clamp(int(worldW/upc+1e-9), 1, availW)
	rows := core.Clamp(int(worldH/(cellAspect*upc)+1e-9), 1, availH)

	x0 := 1 + (availW-cols)/2
	return layout{
		field:       core.NewRect(x0, hudRows+1, cols, rows),
		unitsPerCol: worldW / float64(cols),
		unitsPerRow: worldH / float64(rows),
	}
}

func (l layout) empty() bool {
	return l.field.W == 0
}

// colToX converts a screen column to a world x at the column's center.
func (l layout) colToX(col int) (float64, bool) {
	if l.empty() {
		return 0, false
	}
	return (float64(col-l.field.X) + 0.5) * l.unitsPerCol, true
}

func (l layout) col(x float64) int {
	return l.field.X + int(math.Floor(x/l.unitsPerCol))
}

func (l layout) row(y float64) int {
	return l.field.Y + int(math.Floor(y/l.unitsPerRow))
}

// cellCenter returns the world position at the center of a screen cell.
func (l layout) cellCenter(col, row int) core.Vec {
	return core.V(
		(float64(col-l.field.X)+0.5)*l.unitsPerCol,
		(float64(row-l.field.Y)+0.5)*l.unitsPerRow,
	)
}

// Render draws the game to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall || g.machine == nil || g.layout.empty() {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorGray)
		return
	}

	g.renderHUD(dst)
	g.renderField(dst)
	g.renderPieces(dst)
	g.renderOverlay(dst)
}

// renderHUD draws score, the on-deck piece and the bop count.
func (g *Game) renderHUD(dst *core.Screen) {
	m := g.machine
	cat := m.Catalog()

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", m.Score()))

	if m.Phase().Playing() {
		next, _ := cat.Rank(m.Next())
		label := "Next: "
		x := (dst.Width() - len(label) - 1) / 2
		dst.DrawText(x, 0, label)
		dst.SetCell(x+len(label), 0, next.Glyph, next.Color)
	}

	bops := fmt.Sprintf("Bops: %d", m.Bops())
	dst.DrawTextColor(dst.Width()-len(bops)-1, 0, bops, core.ColorGold)
}

// renderField draws the pit border, the lose line and the aim guide.
func (g *Game) renderField(dst *core.Screen) {
	l := g.layout
	f := l.field
	dst.DrawBox(core.NewRect(f.X-1, f.Y-1, f.W+2, f.H+2), core.ColorGray)

	settings := g.machine.Settings()
	dst.DrawHLine(f.X, l.row(settings.LoseLine), f.W, LoseLineCh, core.ColorRed)

	if g.machine.Phase() == bopcore.PhaseReady {
		col := l.col(g.machine.Pointer())
		top := l.row(settings.DropHeight) + 1
		for y := top; y < f.Bottom(); y++ {
			if dst.Get(col, y) == ' ' {
				dst.SetCell(col, y, AimGuideCh, core.ColorGray)
			}
		}
	}
}

// renderPieces draws every piece as a filled disc with its rank glyph at
// the center. Celebrating pieces are drawn at their grown scale.
func (g *Game) renderPieces(dst *core.Screen) {
	l := g.layout
	f := l.field
	cat := g.machine.Catalog()

	for _, p := range g.machine.Pieces() {
		r, ok := cat.Rank(p.Rank)
		if !ok {
			continue
		}
		radius := p.Radius * p.Scale
		rim := math.Max(l.unitsPerCol, l.unitsPerRow/cellAspect)

		x0 := max(f.X, l.col(p.Pos.X-radius))
		x1 := min(f.Right()-1, l.col(p.Pos.X+radius))
		y0 := max(f.Y, l.row(p.Pos.Y-radius))
		y1 := min(f.Bottom()-1, l.row(p.Pos.Y+radius))

		drawn := false
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				d := l.cellCenter(x, y).Sub(p.Pos).Len()
				switch {
				case d > radius:
					continue
				case d > radius-rim:
					dst.SetCell(x, y, PieceRim, r.Color)
				default:
					dst.SetCell(x, y, PieceFill, r.Color)
				}
				drawn = true
			}
		}

		cx, cy := l.col(p.Pos.X), l.row(p.Pos.Y)
		if drawn || f.Contains(cx, cy) {
			dst.SetCell(cx, cy, r.Glyph, r.Color)
		}
	}
}

// renderOverlay draws the banner, flash messages and phase boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	m := g.machine
	f := g.layout.field

	if m.Celebrating() {
		dst.DrawTextCentered(f.Y+f.H/3, bannerTitle, core.ColorGold)
	}
	if g.flash != "" {
		dst.DrawTextCentered(f.Bottom(), " "+g.flash+" ", core.ColorBrightYellow)
	}

	switch {
	case m.Phase() == bopcore.PhaseMenu:
		g.drawCenteredBox(dst, "BOP DROP", "ENTER or SPACE to start")
	case m.Phase() == bopcore.PhaseGameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R to restart", m.Score()))
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextColor(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
