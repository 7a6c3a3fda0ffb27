// Package simon holds the rules of the memory game: step generation and the
// round state machine. It knows nothing about screens, sounds or timing; a
// driver shows the sequence, reports when it has been shown, and forwards
// pad presses.
package simon

// State is the phase of the current game.
type State uint8

const (
	StateIdle State = iota
	StateShowingSequence
	StateWaitingForInput
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateShowingSequence:
		return "ShowingSequence"
	case StateWaitingForInput:
		return "WaitingForInput"
	case StateGameOver:
		return "GameOver"
	}
	return "Unknown"
}

// PressResult tells the driver what a pad press did.
type PressResult uint8

const (
	// PressIgnored means the machine was not waiting for input.
	PressIgnored PressResult = iota
	// PressPartial is a correct press inside a two-pad step that still needs
	// its other pad.
	PressPartial
	// PressStepComplete finished a step; more steps remain in this round.
	PressStepComplete
	// PressRoundComplete finished the last step; the next round has started.
	PressRoundComplete
	// PressWrong ended the game.
	PressWrong
)

// Recorder receives the final score of every game.
type Recorder interface {
	AddScore(d Difficulty, score int)
}

// Machine runs one game at a time. It is not safe for concurrent use; the
// driver that owns it serialises every call.
type Machine struct {
	difficulty Difficulty
	rng        Rand
	recorder   Recorder

	state      State
	sequence   []ColorSet
	playerStep int
	round      int
	score      int
	pressed    ColorSet
}

// NewMachine returns an idle machine. recorder may be nil.
func NewMachine(d Difficulty, rng Rand, recorder Recorder) *Machine {
	return &Machine{
		difficulty: d,
		rng:        rng,
		recorder:   recorder,
		state:      StateIdle,
	}
}

// StartNewGame clears the previous game and starts round one. It only acts
// in StateIdle and reports whether it did.
func (m *Machine) StartNewGame() bool {
	if m.state != StateIdle {
		return false
	}
	m.sequence = m.sequence[:0]
	m.round = 1
	m.score = 0
	m.startRound()
	return true
}

// RestartGame leaves StateGameOver and starts a fresh game with the same
// difficulty. It is a no-op in every other state.
func (m *Machine) RestartGame() bool {
	if m.state != StateGameOver {
		return false
	}
	m.state = StateIdle
	return m.StartNewGame()
}

// SequenceShown moves from playback to waiting for the player.
func (m *Machine) SequenceShown() bool {
	if m.state != StateShowingSequence {
		return false
	}
	m.state = StateWaitingForInput
	return true
}

// Press handles one pad press.
//
// A press is correct when the pad belongs to the current step and has not
// already been pressed for it. A repeat inside a two-pad step is wrong, even
// though the pad itself is part of the step.
func (m *Machine) Press(c Color) PressResult {
	if m.state != StateWaitingForInput {
		return PressIgnored
	}

	step := m.sequence[m.playerStep]
	if !step.Has(c) || m.pressed.Has(c) {
		m.gameOver()
		return PressWrong
	}

	m.pressed = m.pressed.With(c)
	if m.pressed.Len() < step.Len() {
		return PressPartial
	}

	m.playerStep++
	m.pressed = 0
	if m.playerStep < len(m.sequence) {
		return PressStepComplete
	}

	m.score++
	m.round++
	m.startRound()
	return PressRoundComplete
}

func (m *Machine) startRound() {
	m.sequence = append(m.sequence, NextStep(m.difficulty, m.rng))
	m.playerStep = 0
	m.pressed = 0
	m.state = StateShowingSequence
}

func (m *Machine) gameOver() {
	m.state = StateGameOver
	if m.recorder != nil {
		m.recorder.AddScore(m.difficulty, m.score)
	}
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Difficulty returns the tier this machine generates steps for.
func (m *Machine) Difficulty() Difficulty { return m.difficulty }

// Sequence returns a copy of every step generated so far.
func (m *Machine) Sequence() []ColorSet {
	out := make([]ColorSet, len(m.sequence))
	copy(out, m.sequence)
	return out
}

// PlayerStep is the index of the step the player must reproduce next.
func (m *Machine) PlayerStep() int { return m.playerStep }

// Round starts at 1 and grows with every completed round.
func (m *Machine) Round() int { return m.round }

// Score counts fully completed rounds.
func (m *Machine) Score() int { return m.score }

// Pressed returns the pads already pressed for the current step.
func (m *Machine) Pressed() ColorSet { return m.pressed }
