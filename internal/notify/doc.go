package notify

// Package notify carries short-lived user feedback from services to whatever
// surface displays it. The desktop UI renders notices as auto-hiding toasts.
