package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings  = "⚙"
	IconPlay      = "▶"
	IconLive      = "●"
	IconCompleted = "✓"
	IconClose     = "×"
	IconError     = "❌"
	IconEdit      = "✎"
	IconDelete    = "🗑️"
	IconTheme     = "◐"
	IconBack      = "←"
	IconAdd       = "+"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	LessonIndexFormat  = "%d."
)

// Layout sizing
const (
	RowMinWidth  float32 = 400
	RowMinHeight float32 = 48

	AuthFormWidth float32 = 360

	DialogWidth  float32 = 480
	DialogHeight float32 = 240
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 100
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)

// Request behavior
const (
	DefaultRequestTimeout = 15 * time.Second
)
