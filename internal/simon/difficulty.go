package simon

import (
	"fmt"
	"strings"
)

// Difficulty selects the step generation policy.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every tier in menu order.
var Difficulties = [...]Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// Key is the lower-case name used in preference and score files.
func (d Difficulty) Key() string { return strings.ToLower(d.String()) }

// ParseDifficulty accepts a difficulty name in any letter case.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}
