package core

// Color represents a foreground color for a screen cell.
// The platform maps these to terminal styles.
type Color uint8

// Palette used by the word grid renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorGray
	ColorBrightWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
)
