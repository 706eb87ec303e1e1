package ui

import (
	"fyne.io/fyne/v2"
)

// isMobileDevice checks if the app is running on a mobile device
func isMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// formWidth returns the width for centered forms and dialogs. Phones use
// the whole canvas instead of a fixed column.
func formWidth(desktop float32, canvas fyne.Canvas) float32 {
	if !isMobileDevice() || canvas == nil {
		return desktop
	}
	if w := canvas.Size().Width - 2*ToastMargin; w > 0 {
		return w
	}
	return desktop
}
