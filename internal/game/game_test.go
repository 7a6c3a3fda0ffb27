package game

import (
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"simon-says/internal/config"
	"simon-says/internal/prefs"
	"simon-says/internal/score"
	"simon-says/internal/simon"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

type fakeSound struct {
	played []simon.Color
	buzzes int
}

func (f *fakeSound) Play(c simon.Color) { f.played = append(f.played, c) }
func (f *fakeSound) Buzz()              { f.buzzes++ }
func (f *fakeSound) Close() error       { return nil }

// firstRand always draws index 0 and never asks for a double step, so every
// Medium step is Blue.
type firstRand struct{}

func (firstRand) Intn(int) int     { return 0 }
func (firstRand) Float64() float64 { return 0.99 }

// doubleRand makes every Hard step {Blue, Red}.
type doubleRand struct{ n int }

func (r *doubleRand) Intn(int) int {
	r.n++
	if r.n%2 == 1 {
		return int(simon.Blue)
	}
	return int(simon.Red)
}
func (r *doubleRand) Float64() float64 { return 0.1 }

var testDay = time.Date(2026, time.October, 21, 12, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T, d simon.Difficulty, rng simon.Rand) (*Game, *fakeSound, *score.Keeper) {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(80, 24)

	keeper := score.NewKeeper(memoryStore{}, score.ClockFunc(func() time.Time { return testDay }), slog.Default())
	snd := &fakeSound{}
	g := New(ss, Options{
		Timing:     config.Timing{},
		Scores:     keeper,
		Sound:      snd,
		Rand:       rng,
		Difficulty: d,
		SoundOn:    true,
	})
	g.machine = simon.NewMachine(d, rng, keeper)
	return g, snd, keeper
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

// ─── key mapping ──────────────────────────────────────────────────────────────

func TestKeyToAction(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"b", key('b'), ActionBlue},
		{"G", key('G'), ActionGreen},
		{"y", key('y'), ActionYellow},
		{"r", key('r'), ActionRed},
		{"numpad 7", key('7'), ActionGreen},
		{"numpad 3", key('3'), ActionBlue},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionGreen},
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionYellow},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"q", key('q'), ActionQuit},
		{"unmapped", key('x'), ActionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyToAction(tc.ev); got != tc.want {
				t.Errorf("keyToAction = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestActionToColor(t *testing.T) {
	for a, want := range map[Action]simon.Color{
		ActionBlue: simon.Blue, ActionGreen: simon.Green, ActionYellow: simon.Yellow, ActionRed: simon.Red,
	} {
		got, ok := actionToColor(a)
		if !ok || got != want {
			t.Errorf("actionToColor(%d) = %s, %v", a, got, ok)
		}
	}
	if _, ok := actionToColor(ActionQuit); ok {
		t.Error("ActionQuit should not map to a color")
	}
}

func TestMenuAction(t *testing.T) {
	cases := []struct {
		name     string
		ev       *tcell.EventKey
		selected simon.Difficulty
		want     simon.Difficulty
		res      menuResult
	}{
		{"down wraps", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), simon.Hard, simon.Easy, menuNone},
		{"up wraps", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), simon.Easy, simon.Hard, menuNone},
		{"j moves down", key('j'), simon.Easy, simon.Medium, menuNone},
		{"enter plays", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), simon.Medium, simon.Medium, menuPlay},
		{"quick select", key('3'), simon.Easy, simon.Hard, menuPlay},
		{"sound toggle", key('s'), simon.Easy, simon.Easy, menuToggleSound},
		{"quit", key('q'), simon.Medium, simon.Medium, menuQuit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, res := menuAction(tc.ev, tc.selected)
			if got != tc.want || res != tc.res {
				t.Errorf("menuAction = (%s, %d), want (%s, %d)", got, res, tc.want, tc.res)
			}
		})
	}
}

func TestGameOverAction(t *testing.T) {
	cases := map[rune]endChoice{'r': endRetry, 'M': endMenu, 'q': endQuit, 'z': endNone}
	for r, want := range cases {
		if got := gameOverAction(key(r)); got != want {
			t.Errorf("gameOverAction(%q) = %d, want %d", r, got, want)
		}
	}
}

// ─── driver ───────────────────────────────────────────────────────────────────

func TestShowSequencePlaysEveryStep(t *testing.T) {
	g, snd, _ := newTestGame(t, simon.Hard, &doubleRand{})
	g.machine.StartNewGame()

	if !g.showSequence() {
		t.Fatal("showSequence returned false with no input")
	}
	if len(snd.played) != 2 || snd.played[0] != simon.Blue || snd.played[1] != simon.Red {
		t.Errorf("played = %v, want both pads of the double step", snd.played)
	}
	if g.lit != 0 {
		t.Errorf("pads still lit after playback: %s", g.lit)
	}
	if g.machine.State() != simon.StateShowingSequence {
		t.Error("showSequence must leave the state transition to the caller")
	}
}

func TestHandleEventCorrectPress(t *testing.T) {
	g, snd, _ := newTestGame(t, simon.Medium, firstRand{})
	g.machine.StartNewGame()
	g.machine.SequenceShown()

	if !g.handleEvent(key('b')) {
		t.Fatal("pad press should not end the session")
	}
	if g.machine.Score() != 1 || len(g.machine.Sequence()) != 2 {
		t.Errorf("score=%d seq=%d, want 1/2", g.machine.Score(), len(g.machine.Sequence()))
	}
	if g.lit != simon.SetOf(simon.Blue) {
		t.Errorf("lit = %s, want {Blue}", g.lit)
	}
	if len(snd.played) != 1 {
		t.Errorf("played %d tones, want 1", len(snd.played))
	}
	if len(g.messages) == 0 || g.messages[len(g.messages)-1] != "Round 1 complete!" {
		t.Errorf("messages = %v", g.messages)
	}
}

func TestHandleEventWrongPressRecordsScore(t *testing.T) {
	g, snd, keeper := newTestGame(t, simon.Medium, firstRand{})
	g.machine.StartNewGame()
	g.machine.SequenceShown()
	g.handleEvent(key('b'))
	g.machine.SequenceShown()

	g.handleEvent(key('r'))
	if g.machine.State() != simon.StateGameOver {
		t.Fatalf("state = %s, want GameOver", g.machine.State())
	}
	if snd.buzzes != 1 {
		t.Errorf("buzzes = %d, want 1", snd.buzzes)
	}
	if g.expected != simon.SetOf(simon.Blue) {
		t.Errorf("expected = %s, want {Blue}", g.expected)
	}
	if got := keeper.Best(simon.Medium); got.Today != 1 || got.Recorded != 1 {
		t.Errorf("Best = %+v, want today 1 from one game", got)
	}
}

func TestHandleEventPartialDoubleStep(t *testing.T) {
	g, _, _ := newTestGame(t, simon.Hard, &doubleRand{})
	g.machine.StartNewGame()
	g.machine.SequenceShown()

	g.handleEvent(key('r'))
	if g.machine.Pressed() != simon.SetOf(simon.Red) || g.machine.Score() != 0 {
		t.Fatalf("pressed=%s score=%d after first pad", g.machine.Pressed(), g.machine.Score())
	}
	g.handleEvent(key('b'))
	if g.machine.Score() != 1 {
		t.Errorf("score = %d after both pads, want 1", g.machine.Score())
	}
}

func TestPressDuringPlaybackIgnored(t *testing.T) {
	g, snd, _ := newTestGame(t, simon.Medium, firstRand{})
	g.machine.StartNewGame()

	g.handleEvent(key('y'))
	if g.machine.State() != simon.StateShowingSequence {
		t.Errorf("state = %s, want ShowingSequence", g.machine.State())
	}
	if len(snd.played) != 0 || snd.buzzes != 0 {
		t.Error("ignored press made a sound")
	}
}

func TestHandleEventQuit(t *testing.T) {
	g, _, _ := newTestGame(t, simon.Easy, firstRand{})
	if g.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should end the session")
	}
}

func TestSoundOffIsSilent(t *testing.T) {
	g, snd, _ := newTestGame(t, simon.Medium, firstRand{})
	g.soundOn = false
	g.machine.StartNewGame()
	g.showSequence()
	g.machine.SequenceShown()
	g.handleEvent(key('g'))
	if len(snd.played) != 0 || snd.buzzes != 0 {
		t.Errorf("sound off but played=%v buzzes=%d", snd.played, snd.buzzes)
	}
}

func TestPlayReturnsOnGameOver(t *testing.T) {
	g, _, _ := newTestGame(t, simon.Medium, firstRand{})
	g.machine.StartNewGame()
	g.machine.SequenceShown()
	g.handleEvent(key('y'))

	if !g.play() {
		t.Fatal("play should report a finished game, not a quit")
	}
	if g.lit != 0 {
		t.Errorf("lit = %s after game over", g.lit)
	}
}

func TestPlayStopsWhenScreenCloses(t *testing.T) {
	g, _, _ := newTestGame(t, simon.Medium, firstRand{})
	ch := make(chan tcell.Event)
	close(ch)
	g.events = ch
	g.machine.StartNewGame()
	g.machine.SequenceShown()
	if g.play() {
		t.Error("play should stop when the event stream closes")
	}
}

func TestMenuSavesPrefs(t *testing.T) {
	g, _, _ := newTestGame(t, simon.Easy, firstRand{})
	var saved []prefs.Prefs
	g.onPrefs = func(p prefs.Prefs) { saved = append(saved, p) }

	ch := make(chan tcell.Event, 3)
	ch <- key('j')
	ch <- key('s')
	ch <- tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	g.events = ch

	if !g.runMenu() {
		t.Fatal("runMenu should start a game on Enter")
	}
	if g.difficulty != simon.Medium || g.soundOn {
		t.Errorf("difficulty=%s sound=%v, want Medium/off", g.difficulty, g.soundOn)
	}
	last := saved[len(saved)-1]
	if last != (prefs.Prefs{Difficulty: simon.Medium, Sound: false}) {
		t.Errorf("last saved prefs = %+v", last)
	}
}

func TestPressFlashEndsDespiteOtherKeys(t *testing.T) {
	g, _, _ := newTestGame(t, simon.Medium, firstRand{})
	g.timing.PressFlash = 40 * time.Millisecond
	g.machine.StartNewGame()
	g.machine.SequenceShown()

	ch := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case ch <- key('x'):
			case <-done:
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
	g.events = ch

	g.press(simon.Blue)
	if g.lit == 0 {
		t.Fatal("pressed pad not lit")
	}
	deadline := time.Now().Add(2 * time.Second)
	for g.lit != 0 {
		if time.Now().After(deadline) {
			t.Fatal("pad stayed lit while unrelated keys kept arriving")
		}
		if !g.awaitInput() {
			t.Fatal("awaitInput stopped")
		}
	}
}

func TestExpiredFlashClearsWithoutInput(t *testing.T) {
	g, _, _ := newTestGame(t, simon.Medium, firstRand{})
	g.machine.StartNewGame()
	g.machine.SequenceShown()
	g.lit = simon.SetOf(simon.Red)
	g.flashUntil = time.Now().Add(-time.Millisecond)

	if !g.awaitInput() {
		t.Fatal("awaitInput stopped")
	}
	if g.lit != 0 {
		t.Errorf("lit = %s, want dark", g.lit)
	}
}
