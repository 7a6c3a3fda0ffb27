package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"simon-says/internal/score"
	"simon-says/internal/simon"
)

// hudRows is the height reserved at the bottom of the screen for the HUD.
const hudRows = 5

// Renderer draws the game onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// BoardView is everything the board screen shows. The driver builds it from
// the machine and the score keeper.
type BoardView struct {
	Difficulty simon.Difficulty
	Round      int
	Score      int
	Step       int // steps already reproduced this round
	Steps      int // steps in the sequence
	Lit        simon.ColorSet
	Pressed    simon.ColorSet // pads already pressed in a two-pad step
	Status     string
	Best       score.Bests
	Messages   []string
}

// Rect is a screen rectangle.
type Rect struct{ X, Y, W, H int }

// PadRect returns where pad c is drawn on a w×h screen.
func PadRect(c simon.Color, w, h int) Rect {
	boardH := h - hudRows
	pw := (w - 3) / 2
	ph := (boardH - 3) / 2
	for row := range boardLayout {
		for col, pc := range boardLayout[row] {
			if pc == c {
				return Rect{X: 1 + col*(pw+1), Y: 1 + row*(ph+1), W: pw, H: ph}
			}
		}
	}
	return Rect{}
}

// DrawBoard renders the four pads and the HUD, then shows the frame.
func (r *Renderer) DrawBoard(v BoardView) {
	r.screen.Clear()
	w, h := r.screen.Size()
	for _, c := range simon.AllColors {
		r.drawPad(c, PadRect(c, w, h), v.Lit.Has(c), v.Pressed.Has(c))
	}
	r.drawHUD(v)
	r.screen.Show()
}

func (r *Renderer) drawPad(c simon.Color, rect Rect, lit, pressed bool) {
	theme := PadThemes[c]
	bg := theme.Dim
	fg := tcell.ColorGray
	if lit {
		bg = theme.Lit
		fg = tcell.ColorBlack
	}
	style := tcell.StyleDefault.Background(bg).Foreground(fg)
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if rect.H <= 0 {
		return
	}

	label := fmt.Sprintf("%s %s [%c]", theme.Glyph, c, theme.Key)
	if pressed {
		label += " ✓"
	}
	lx := rect.X + (rect.W-runewidth.StringWidth(label))/2
	ly := rect.Y + rect.H/2
	r.putString(lx, ly, label, style.Bold(lit))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y)
// and returns the number of columns it used.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) int {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return 0
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	width := runewidth.StringWidth(glyph)
	if width == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
	if width < 1 {
		width = 1
	}
	return width
}

// putString writes s starting at (x, y) one grapheme cluster at a time, so an
// emoji with a variation selector or joiner stays in one cell.
func (r *Renderer) putString(x, y int, s string, style tcell.Style) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		x += r.putGlyph(x, y, g.Str(), style)
	}
}
