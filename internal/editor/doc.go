package editor

// Package editor backs the course and lesson modals and the sign-in and
// registration forms: it pre-fills forms, validates them and writes accepted
// submissions through the gateway.
