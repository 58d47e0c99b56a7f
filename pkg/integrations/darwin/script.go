package darwin

import (
	"fmt"
	"strings"

	"github.com/estruyf/FrameFit/pkg/window"
)

// EscapeAppleScript makes s safe to embed inside an AppleScript string
// literal. Backslashes go first so the quote escapes are not doubled.
func EscapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

const resizeTemplate = `
activate application "%[1]s"
tell application "System Events"
	tell application process "%[1]s"
		if (count of windows) > 0 then
			set frontWindow to first window
			set size of frontWindow to {%[2]d, %[3]d}
		else
			error "No windows found"
		end if
	end tell
end tell
`

// The screen size is set twice around the delay so the position is computed
// after the resize has settled on the OS side.
const centerTemplate = `
activate application "%[1]s"
tell application "System Events"
	tell application process "%[1]s"
		if (count of windows) > 0 then
			set frontWindow to first window
			set size of frontWindow to {%[2]d, %[3]d}

			set screenWidth to %[4]d
			set screenHeight to %[5]d

			delay 0.1

			set screenWidth to %[4]d
			set screenHeight to %[5]d

			set xPos to (screenWidth - %[2]d) div 2
			set yPos to (screenHeight - %[3]d) div 2 + %[6]d

			if xPos < 0 then set xPos to %[7]d
			if yPos < 0 then set yPos to %[8]d

			set position of frontWindow to {xPos, yPos}
		else
			error "No windows found"
		end if
	end tell
end tell
`

// BuildResizeScript renders the AppleScript that carries out plan
func BuildResizeScript(plan window.ResizePlan) string {
	app := EscapeAppleScript(plan.Window.AppName)

	if !plan.Center {
		return fmt.Sprintf(resizeTemplate, app, plan.Width, plan.Height)
	}

	return fmt.Sprintf(centerTemplate,
		app,
		plan.Width,
		plan.Height,
		plan.Screen.Width,
		plan.Screen.Height,
		window.VerticalBias,
		window.MinCenterX,
		window.MinCenterY,
	)
}
