package catalog

// Package catalog loads courses, lessons, progress and profiles from the
// document store and enriches lessons with video metadata and completion
// state. Read failures degrade to empty or fallback results; writes report
// errors to the caller.
