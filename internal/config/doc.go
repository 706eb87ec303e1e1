package config

// Package config resolves process configuration from the environment and
// stores user interface preferences in Fyne's preference store.
