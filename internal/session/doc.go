package session

// Package session turns auth provider events into router transitions. It
// loads the stored profile for every sign-in, applies role gating, and runs
// the sign-in, registration and sign-out forms.
