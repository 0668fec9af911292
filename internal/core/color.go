package core

// Color represents a foreground color for a screen cell.
// Values map to the ANSI 16-color palette plus a few 256-color extras.
type Color uint8

// Palette used by the renderer. Piece kinds pick from these.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)
