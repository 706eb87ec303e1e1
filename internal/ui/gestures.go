package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// GestureType represents different types of gestures
type GestureType int

const (
	GestureNone GestureType = iota
	GestureTap
	GestureSwipeLeft
	GestureSwipeRight
	GestureSwipeUp
	GestureSwipeDown
	GestureLongPress
)

// Gesture thresholds constants
const (
	DefaultSwipeThreshold    float32 = 50.0
	DefaultLongPressDuration         = 500 * time.Millisecond
)

// classifyGesture turns a touch from start to end lasting duration into a gesture
func classifyGesture(start, end fyne.Position, duration time.Duration) GestureType {
	dx := end.X - start.X
	dy := end.Y - start.Y
	absDx, absDy := abs32(dx), abs32(dy)

	if absDx < DefaultSwipeThreshold && absDy < DefaultSwipeThreshold {
		if duration >= DefaultLongPressDuration {
			return GestureLongPress
		}
		return GestureTap
	}

	// Determine primary direction
	if absDx > absDy {
		if dx > 0 {
			return GestureSwipeRight
		}
		return GestureSwipeLeft
	}
	if dy > 0 {
		return GestureSwipeDown
	}
	return GestureSwipeUp
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// SwipeArea wraps content and reports swipes on touch devices. Desktop
// input passes through untouched.
type SwipeArea struct {
	widget.BaseWidget

	content   fyne.CanvasObject
	onGesture func(GestureType)

	// Touch tracking
	touchStartTime time.Time
	touchStartPos  fyne.Position
	tracking       bool
}

// NewSwipeArea creates a swipe area around content
func NewSwipeArea(content fyne.CanvasObject, onGesture func(GestureType)) *SwipeArea {
	sa := &SwipeArea{content: content, onGesture: onGesture}
	sa.ExtendBaseWidget(sa)
	return sa
}

// TouchDown implements mobile.Touchable
func (sa *SwipeArea) TouchDown(event *mobile.TouchEvent) {
	sa.touchStartTime = time.Now()
	sa.touchStartPos = event.Position
	sa.tracking = true
}

// TouchUp implements mobile.Touchable
func (sa *SwipeArea) TouchUp(event *mobile.TouchEvent) {
	if !sa.tracking {
		return
	}
	sa.tracking = false
	gesture := classifyGesture(sa.touchStartPos, event.Position, time.Since(sa.touchStartTime))
	if sa.onGesture != nil {
		sa.onGesture(gesture)
	}
}

// TouchCancel implements mobile.Touchable
func (sa *SwipeArea) TouchCancel(*mobile.TouchEvent) {
	sa.tracking = false
}

// CreateRenderer creates the widget renderer
func (sa *SwipeArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(sa.content)
}

// navigationGestures maps the swipes shared by drill-down views: swipe
// right goes back and pulling down reloads.
func (ui *RootUI) navigationGestures(back func()) func(GestureType) {
	return func(g GestureType) {
		switch g {
		case GestureSwipeRight:
			back()
		case GestureSwipeDown:
			ui.reload()
		}
	}
}
