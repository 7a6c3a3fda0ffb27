package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// drawHUD renders the status bar and message log at the bottom of the screen.
func (r *Renderer) drawHUD(v BoardView) {
	_, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	x := r.drawText(0, hudY+1, fmt.Sprintf("[%s]", v.Difficulty),
		tcell.StyleDefault.Foreground(DifficultyColors[v.Difficulty]).Bold(true))
	status := fmt.Sprintf("  Round %d  Score %d  Step %d/%d  %s", v.Round, v.Score, v.Step, v.Steps, v.Status)
	r.drawText(x, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	best := fmt.Sprintf("Best  today %d  week %d  all-time %d", v.Best.Today, v.Best.Week, v.Best.AllTime)
	r.drawText(0, hudY+2, best, tcell.StyleDefault.Foreground(tcell.ColorAqua))

	// Message log (last 2 messages).
	start := len(v.Messages) - 2
	if start < 0 {
		start = 0
	}
	for i, msg := range v.Messages[start:] {
		r.drawText(0, hudY+3+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text one rune per column, clipped at the right edge, and
// returns the column after the last rune.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	sw, _ := r.screen.Size()
	col := x
	for _, ch := range text {
		if col >= sw {
			break
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col++
	}
	return col
}
