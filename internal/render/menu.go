package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"simon-says/internal/score"
	"simon-says/internal/simon"
)

// MenuView is the difficulty selection screen.
type MenuView struct {
	Selected simon.Difficulty
	Best     [3]score.Bests // indexed by difficulty
	Sound    bool
	Player   string // shown when the game is served over SSH
}

var difficultyBlurbs = [3]string{
	simon.Easy:   "Three pads. Yellow stays dark.",
	simon.Medium: "All four pads, one at a time.",
	simon.Hard:   "Sometimes two pads light together. Press both.",
}

// DrawMenu renders the title and difficulty list.
func (r *Renderer) DrawMenu(v MenuView) {
	r.screen.Clear()

	titleStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(180, 100, 255)).Bold(true)
	normalStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	highlightStyle := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.NewRGBColor(180, 100, 255))
	statStyle := tcell.StyleDefault.Foreground(tcell.NewRGBColor(150, 220, 255))

	title := PadThemes[simon.Green].Glyph + PadThemes[simon.Red].Glyph + " SIMON SAYS " +
		PadThemes[simon.Yellow].Glyph + PadThemes[simon.Blue].Glyph
	r.centerText(1, title, titleStyle)
	if v.Player != "" {
		r.centerText(2, "Welcome, "+v.Player, dimStyle)
	} else {
		r.centerText(2, "Watch. Remember. Repeat.", dimStyle)
	}

	// Each difficulty occupies 3 lines + 1 blank. Start at row 4.
	startY := 4
	for i, d := range simon.Difficulties {
		y := startY + i*4
		prefix := "  "
		lineStyle := normalStyle
		if d == v.Selected {
			prefix = "► "
			lineStyle = highlightStyle
		}
		r.drawText(2, y, fmt.Sprintf("%s[%d] %s", prefix, i+1, d), lineStyle)
		r.drawText(2, y+1, "      "+difficultyBlurbs[d], dimStyle)
		b := v.Best[d]
		r.drawText(2, y+2, fmt.Sprintf("      Best today:%-3d week:%-3d all-time:%-3d games:%d",
			b.Today, b.Week, b.AllTime, b.Recorded), statStyle)
	}

	sound := "off"
	if v.Sound {
		sound = "on"
	}
	hintsY := startY + len(simon.Difficulties)*4 + 1
	r.centerText(hintsY, fmt.Sprintf("[j/k or ↑/↓] Navigate   [1-3] Quick-select   [Enter] Play   [s] Sound: %s   [q] Quit", sound), dimStyle)

	r.screen.Show()
}

// GameOverView summarises a finished game.
type GameOverView struct {
	Difficulty simon.Difficulty
	Score      int
	Round      int
	Expected   simon.ColorSet
	Best       score.Bests
}

// DrawGameOver renders the end-of-game summary.
func (r *Renderer) DrawGameOver(v GameOverView) {
	r.screen.Clear()
	sw, _ := r.screen.Size()

	white := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gold := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim := tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	green := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	label := func(y int, l, val string) {
		r.drawText(2, y, l, dim)
		r.drawText(22, y, val, white)
	}

	y := 1
	r.drawHLine(y, tcell.ColorGray)
	y += 2

	r.drawText(2, y, "GAME OVER", gold)
	badge := "[NEW BEST]"
	if v.Score > 0 && v.Score >= v.Best.AllTime {
		r.drawText(sw-len(badge)-1, y, badge, green)
	}
	y += 2

	label(y, "Difficulty:", v.Difficulty.String())
	y++
	label(y, "Score:", fmt.Sprintf("%d", v.Score))
	y++
	label(y, "Reached Round:", fmt.Sprintf("%d", v.Round))
	y++
	if v.Expected != 0 {
		glyphs := ""
		for _, c := range v.Expected.Colors() {
			glyphs += PadThemes[c].Glyph + " " + c.String() + "  "
		}
		r.drawText(2, y, "Expected:", dim)
		r.putString(22, y, glyphs, white)
	}
	y += 2

	label(y, "Best Today:", fmt.Sprintf("%d", v.Best.Today))
	y++
	label(y, "Best This Week:", fmt.Sprintf("%d", v.Best.Week))
	y++
	label(y, "Best All Time:", fmt.Sprintf("%d", v.Best.AllTime))
	y += 2

	r.drawHLine(y, tcell.ColorGray)
	y += 2

	r.drawText(2, y, "[R] Try Again", green)
	r.drawText(18, y, "[M] Menu", white)
	r.drawText(30, y, "[Q] Quit", red)

	r.screen.Show()
}

// centerText draws text horizontally centred on row y.
func (r *Renderer) centerText(y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	r.putString(x, y, text, style)
}
