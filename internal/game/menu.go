package game

import (
	"github.com/gdamore/tcell/v2"

	"simon-says/internal/render"
	"simon-says/internal/score"
	"simon-says/internal/simon"
)

// menuResult is what a key does on the difficulty menu.
type menuResult uint8

const (
	menuNone menuResult = iota
	menuPlay
	menuToggleSound
	menuQuit
)

// menuAction applies one key to the menu and returns the new selection.
func menuAction(ev *tcell.EventKey, selected simon.Difficulty) (simon.Difficulty, menuResult) {
	n := simon.Difficulty(len(simon.Difficulties))
	switch ev.Key() {
	case tcell.KeyUp:
		return (selected + n - 1) % n, menuNone
	case tcell.KeyDown:
		return (selected + 1) % n, menuNone
	case tcell.KeyEnter:
		return selected, menuPlay
	case tcell.KeyEscape:
		return selected, menuQuit
	}
	switch ev.Rune() {
	case 'k', 'K':
		return (selected + n - 1) % n, menuNone
	case 'j', 'J':
		return (selected + 1) % n, menuNone
	case 's', 'S':
		return selected, menuToggleSound
	case 'q', 'Q':
		return selected, menuQuit
	case '1', '2', '3':
		return simon.Difficulty(ev.Rune() - '1'), menuPlay
	}
	return selected, menuNone
}

// runMenu shows the difficulty menu and blocks until the player starts a
// game. Returns false if the player quits or the screen closes.
func (g *Game) runMenu() bool {
	for {
		g.drawMenu()
		ev, ok := <-g.events
		if !ok {
			return false
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			d, res := menuAction(ev, g.difficulty)
			changed := d != g.difficulty
			g.difficulty = d
			switch res {
			case menuPlay:
				g.savePrefs()
				return true
			case menuToggleSound:
				g.soundOn = !g.soundOn
				changed = true
			case menuQuit:
				return false
			}
			if changed {
				g.savePrefs()
			}
		}
	}
}

func (g *Game) drawMenu() {
	var best [3]score.Bests
	for _, d := range simon.Difficulties {
		best[d] = g.scores.Best(d)
	}
	g.renderer.DrawMenu(render.MenuView{
		Selected: g.difficulty,
		Best:     best,
		Sound:    g.soundOn,
		Player:   g.player,
	})
}

// endChoice is the player's pick on the game-over screen.
type endChoice uint8

const (
	endNone endChoice = iota
	endRetry
	endMenu
	endQuit
)

func gameOverAction(ev *tcell.EventKey) endChoice {
	switch ev.Key() {
	case tcell.KeyEnter:
		return endRetry
	case tcell.KeyEscape:
		return endQuit
	}
	switch ev.Rune() {
	case 'r', 'R':
		return endRetry
	case 'm', 'M':
		return endMenu
	case 'q', 'Q':
		return endQuit
	}
	return endNone
}

// runGameOver renders the summary and waits for the player's choice.
func (g *Game) runGameOver() endChoice {
	for {
		g.renderer.DrawGameOver(render.GameOverView{
			Difficulty: g.difficulty,
			Score:      g.machine.Score(),
			Round:      g.machine.Round(),
			Expected:   g.expected,
			Best:       g.scores.Best(g.difficulty),
		})
		ev, ok := <-g.events
		if !ok {
			return endQuit
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			if choice := gameOverAction(ev); choice != endNone {
				return choice
			}
		}
	}
}
