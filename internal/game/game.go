// Package game drives a Simon Says session on a tcell screen: it shows the
// menu, plays each sequence back with the configured timing, forwards pad
// presses to the rules engine and shows the result.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"simon-says/internal/config"
	"simon-says/internal/prefs"
	"simon-says/internal/render"
	"simon-says/internal/score"
	"simon-says/internal/simon"
	"simon-says/internal/sound"
)

// Scores records finished games and answers best-score queries.
// *score.Keeper satisfies it.
type Scores interface {
	simon.Recorder
	Best(d simon.Difficulty) score.Bests
}

// Options configure a Game. Zero values fall back to sensible defaults.
type Options struct {
	Timing     config.Timing
	Scores     Scores
	Sound      sound.Player
	Logger     *slog.Logger
	Rand       simon.Rand
	Difficulty simon.Difficulty
	SoundOn    bool
	// Player is the display name used when serving over SSH.
	Player string
	// OnPrefs is called whenever the player changes difficulty or sound.
	OnPrefs func(prefs.Prefs)
	// RunLogPath receives one JSON line per finished game. Empty disables it.
	RunLogPath string
}

// Game is the top-level orchestrator for one screen.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	timing   config.Timing
	scores   Scores
	sound    sound.Player
	logger   *slog.Logger
	rng      simon.Rand
	player   string
	onPrefs  func(prefs.Prefs)

	runLogPath string

	difficulty simon.Difficulty
	soundOn    bool
	machine    *simon.Machine
	events     <-chan tcell.Event

	lit        simon.ColorSet
	flashUntil time.Time // when a press-lit pad goes dark
	status     string
	expected   simon.ColorSet // the step the player got wrong
	messages   []string
}

// New creates a Game drawing on screen. The screen must already be
// initialised; Run finalises it.
func New(screen tcell.Screen, opts Options) *Game {
	g := &Game{
		screen:     screen,
		renderer:   render.NewRenderer(screen),
		timing:     opts.Timing,
		scores:     opts.Scores,
		sound:      opts.Sound,
		logger:     opts.Logger,
		rng:        opts.Rand,
		player:     opts.Player,
		onPrefs:    opts.OnPrefs,
		runLogPath: opts.RunLogPath,
		difficulty: opts.Difficulty,
		soundOn:    opts.SoundOn,
	}
	if g.scores == nil {
		g.scores = score.NewKeeper(memoryStore{}, score.SystemClock, opts.Logger)
	}
	if g.sound == nil {
		g.sound = sound.Nop{}
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Run is the main loop: menu, games, and the end screen, until the player
// quits or the screen closes.
func (g *Game) Run() {
	defer g.screen.Fini()
	g.events = pollEvents(g.screen)

	for {
		if !g.runMenu() {
			return
		}
		g.logger.Info("game started", "player", g.player, "difficulty", g.difficulty.Key())
		g.machine = simon.NewMachine(g.difficulty, g.rng, g.scores)
		g.messages = nil
		g.machine.StartNewGame()

		again := true
		for again {
			started := time.Now()
			if !g.play() {
				return
			}
			g.recordRun(started)
			g.logger.Info("game over", "player", g.player,
				"difficulty", g.difficulty.Key(), "score", g.machine.Score())

			switch g.runGameOver() {
			case endRetry:
				g.messages = nil
				g.machine.RestartGame()
			case endMenu:
				again = false
			case endQuit:
				return
			}
		}
	}
}

// pollEvents reads screen events on a goroutine. The channel closes when the
// screen is finalised.
func pollEvents(screen tcell.Screen) <-chan tcell.Event {
	ch := make(chan tcell.Event, 32)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return ch
}

// play runs the current game until it is over. It returns false if the
// player quit.
func (g *Game) play() bool {
	for {
		switch g.machine.State() {
		case simon.StateShowingSequence:
			if !g.settleFlash() {
				return false
			}
			g.status = "Watch..."
			g.draw()
			if !g.pause(g.timing.RoundDelay) {
				return false
			}
			if !g.showSequence() {
				return false
			}
			g.machine.SequenceShown()
			g.status = "Your turn"
			g.draw()

		case simon.StateWaitingForInput:
			if !g.awaitInput() {
				return false
			}

		case simon.StateGameOver:
			g.status = "Game over"
			g.lit = g.expected
			g.draw()
			if !g.pause(g.timing.GameOverDelay) {
				return false
			}
			g.lit = 0
			return true

		default:
			return true
		}
	}
}

// showSequence lights every step in order, both pads of a double step at
// once.
func (g *Game) showSequence() bool {
	seq := g.machine.Sequence()
	for i, step := range seq {
		g.lit = step
		g.status = fmt.Sprintf("Watch... %d/%d", i+1, len(seq))
		for _, c := range step.Colors() {
			g.tone(c)
		}
		g.draw()
		if !g.pause(g.timing.StepOn) {
			return false
		}
		g.lit = 0
		g.draw()
		if !g.pause(g.timing.StepGap) {
			return false
		}
	}
	return true
}

// awaitInput handles one event, or turns off a press flash when it expires.
// The flash ends at flashUntil however many other keys arrive meanwhile.
func (g *Game) awaitInput() bool {
	var flash <-chan time.Time
	if g.lit != 0 {
		left := time.Until(g.flashUntil)
		if left <= 0 {
			g.lit = 0
			g.draw()
			return true
		}
		t := time.NewTimer(left)
		defer t.Stop()
		flash = t.C
	}
	select {
	case <-flash:
		g.lit = 0
		g.draw()
		return true
	case ev, ok := <-g.events:
		if !ok {
			return false
		}
		return g.handleEvent(ev)
	}
}

// settleFlash lets the last pressed pad finish its flash before playback.
func (g *Game) settleFlash() bool {
	if g.lit == 0 {
		return true
	}
	g.draw()
	ok := g.pause(max(time.Until(g.flashUntil), 0))
	g.lit = 0
	return ok
}

// pause waits d while still answering input. It returns false if the player
// quit or the screen closed.
func (g *Game) pause(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			return true
		case ev, ok := <-g.events:
			if !ok {
				return false
			}
			if !g.handleEvent(ev) {
				return false
			}
		}
	}
}

// handleEvent applies one screen event during play and reports whether the
// game should continue.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.draw()
	case *tcell.EventKey:
		action := keyToAction(ev)
		if action == ActionQuit {
			return false
		}
		if c, ok := actionToColor(action); ok {
			g.press(c)
		}
	}
	return true
}

// press forwards a pad press to the machine and reacts to the outcome.
// Presses outside the input phase are dropped by the machine itself.
func (g *Game) press(c simon.Color) {
	var step simon.ColorSet
	if g.machine.State() == simon.StateWaitingForInput {
		step = g.machine.Sequence()[g.machine.PlayerStep()]
	}
	round := g.machine.Round()

	switch g.machine.Press(c) {
	case simon.PressIgnored:
		return
	case simon.PressPartial:
		g.tone(c)
		g.lit = g.lit.With(c)
		g.addMessage("One more...")
	case simon.PressStepComplete:
		g.tone(c)
		g.lit = simon.SetOf(c)
	case simon.PressRoundComplete:
		g.tone(c)
		g.lit = simon.SetOf(c)
		g.addMessage(fmt.Sprintf("Round %d complete!", round))
	case simon.PressWrong:
		if g.soundOn {
			g.sound.Buzz()
		}
		g.expected = step
		g.lit = 0
		g.addMessage(fmt.Sprintf("%s was wrong. Expected %s.", c, step))
	}
	if g.lit != 0 {
		g.flashUntil = time.Now().Add(g.timing.PressFlash)
	}
	g.draw()
}

func (g *Game) tone(c simon.Color) {
	if g.soundOn {
		g.sound.Play(c)
	}
}

// draw renders the board from the current machine state.
func (g *Game) draw() {
	v := render.BoardView{
		Difficulty: g.difficulty,
		Lit:        g.lit,
		Status:     g.status,
		Best:       g.scores.Best(g.difficulty),
		Messages:   g.messages,
	}
	if g.machine != nil {
		v.Round = g.machine.Round()
		v.Score = g.machine.Score()
		v.Step = g.machine.PlayerStep()
		v.Steps = len(g.machine.Sequence())
		v.Pressed = g.machine.Pressed()
	}
	g.renderer.DrawBoard(v)
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}

func (g *Game) savePrefs() {
	if g.onPrefs != nil {
		g.onPrefs(prefs.Prefs{Difficulty: g.difficulty, Sound: g.soundOn})
	}
}

// memoryStore keeps nothing; it backs the default in-memory keeper.
type memoryStore struct{}

func (memoryStore) Load() (*score.HighScores, error) { return score.NewHighScores(), nil }
func (memoryStore) Save(*score.HighScores) error     { return nil }
