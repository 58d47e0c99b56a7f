package window

const (
	// VerticalBias pushes centered windows down to leave room for the menu bar
	VerticalBias = 50

	MinCenterX = 50
	MinCenterY = 100
)

// FallbackScreen is assumed when the OS cannot report the main display size
var FallbackScreen = Size{Width: 1920, Height: 1080}

// CenterPosition returns the top-left corner that centers a width x height
// window horizontally on screen and VerticalBias pixels below the vertical
// center. Negative coordinates are replaced by MinCenterX / MinCenterY.
func CenterPosition(screen Size, width, height int) Point {
	x := (screen.Width - width) / 2
	y := (screen.Height-height)/2 + VerticalBias

	if x < 0 {
		x = MinCenterX
	}
	if y < 0 {
		y = MinCenterY
	}
	return Point{X: x, Y: y}
}
