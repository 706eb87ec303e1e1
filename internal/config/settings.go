package config

import (
	"fyne.io/fyne/v2"
)

// Theme variants
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Settings keys for Fyne preferences
const (
	KeyTheme     = "ui_theme"
	KeyLanguage  = "app_language"
	KeyLastEmail = "last_email"
	// KeyRefreshToken resumes the signed-in session on the next start
	KeyRefreshToken = "auth_refresh_token"
)

// Default values
const (
	DefaultTheme    = ThemeLight
	DefaultLanguage = "system"
)

// Settings manages user interface preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetTheme returns the stored theme, light unless dark was chosen
func (s *Settings) GetTheme() Theme {
	if Theme(s.app.Preferences().String(KeyTheme)) == ThemeDark {
		return ThemeDark
	}
	return DefaultTheme
}

// SetTheme stores the theme
func (s *Settings) SetTheme(theme Theme) {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	s.app.Preferences().SetString(KeyTheme, string(theme))
}

// ToggleTheme switches between light and dark and returns the new theme
func (s *Settings) ToggleTheme() Theme {
	next := ThemeDark
	if s.GetTheme() == ThemeDark {
		next = ThemeLight
	}
	s.SetTheme(next)
	return next
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetLastEmail returns the email of the last successful sign-in
func (s *Settings) GetLastEmail() string {
	return s.app.Preferences().String(KeyLastEmail)
}

// SetLastEmail remembers the email for the login form
func (s *Settings) SetLastEmail(email string) {
	s.app.Preferences().SetString(KeyLastEmail, email)
}

// GetRefreshToken returns the saved session token, empty when signed out
func (s *Settings) GetRefreshToken() string {
	return s.app.Preferences().String(KeyRefreshToken)
}

// SetRefreshToken saves the session token; empty removes it
func (s *Settings) SetRefreshToken(token string) {
	if token == "" {
		s.app.Preferences().RemoveValue(KeyRefreshToken)
		return
	}
	s.app.Preferences().SetString(KeyRefreshToken, token)
}
