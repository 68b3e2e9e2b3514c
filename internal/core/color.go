package core

// Color is the palette slot of a screen cell. The platform renderer picks the
// actual terminal color, so game code names roles rather than codes.
type Color uint8

// Palette, grouped by what the game paints with it.
const (
	// ColorDefault is the terminal's own foreground.
	ColorDefault Color = iota

	// Actors.
	ColorCyan         // player, question prompt
	ColorBrightYellow // vedas, liberation
	ColorYellow       // gate progress, loading and restart notices

	// Gate state and answer outcomes.
	ColorRed         // locked gate, wrong answer, load failures
	ColorGreen       // correct answer
	ColorBrightGreen // open gate, passable progress
	ColorOrange      // gate still short of answers

	// Chrome.
	ColorWhite // level title, plain notices
	ColorGray  // field border and HUD rule

	colorCount
)

// Valid reports whether c is a palette slot.
func (c Color) Valid() bool { return c < colorCount }
