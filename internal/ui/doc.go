package ui

// Package ui contains the Fyne-based desktop user interface for the classroom.
// RootUI renders whatever view the router holds, runs loaders off the UI
// thread and drops their results once the view has moved on. Feedback goes
// through the toast notifier. All UI strings are localized via Localization.
