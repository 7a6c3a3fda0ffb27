package render

import (
	"github.com/gdamore/tcell/v2"

	"simon-says/internal/simon"
)

// PadTheme is how one pad looks on the board.
type PadTheme struct {
	Glyph string // emoji drawn in the middle of the pad
	Key   rune   // keyboard shortcut shown in the label
	Lit   tcell.Color
	Dim   tcell.Color
}

// PadThemes is indexed by simon.Color.
var PadThemes = [4]PadTheme{
	simon.Blue: {
		Glyph: "🔵",
		Key:   'b',
		Lit:   tcell.NewRGBColor(90, 160, 255),
		Dim:   tcell.NewRGBColor(15, 35, 90),
	},
	simon.Green: {
		Glyph: "🟢",
		Key:   'g',
		Lit:   tcell.NewRGBColor(90, 235, 120),
		Dim:   tcell.NewRGBColor(15, 70, 30),
	},
	simon.Yellow: {
		Glyph: "🟡",
		Key:   'y',
		Lit:   tcell.NewRGBColor(255, 230, 80),
		Dim:   tcell.NewRGBColor(85, 75, 10),
	},
	simon.Red: {
		Glyph: "🔴",
		Key:   'r',
		Lit:   tcell.NewRGBColor(255, 90, 90),
		Dim:   tcell.NewRGBColor(90, 15, 15),
	},
}

// DifficultyColors tints the difficulty name in menus and the HUD.
var DifficultyColors = [3]tcell.Color{
	simon.Easy:   tcell.ColorLime,
	simon.Medium: tcell.ColorYellow,
	simon.Hard:   tcell.ColorOrangeRed,
}

// boardLayout places the pads clockwise from the top left, as on the toy.
var boardLayout = [2][2]simon.Color{
	{simon.Green, simon.Red},
	{simon.Yellow, simon.Blue},
}
