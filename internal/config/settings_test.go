package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestTheme(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if settings.GetTheme() != ThemeLight {
		t.Errorf("Expected default theme %s, got %s", ThemeLight, settings.GetTheme())
	}

	settings.SetTheme(ThemeDark)
	if settings.GetTheme() != ThemeDark {
		t.Errorf("Expected theme %s, got %s", ThemeDark, settings.GetTheme())
	}

	if next := settings.ToggleTheme(); next != ThemeLight {
		t.Errorf("Expected toggle to light, got %s", next)
	}
	if next := settings.ToggleTheme(); next != ThemeDark {
		t.Errorf("Expected toggle to dark, got %s", next)
	}

	// Unknown values fall back to light
	settings.SetTheme(Theme("sepia"))
	if settings.GetTheme() != ThemeLight {
		t.Error("Unknown theme should be stored as light")
	}

	// A corrupted stored value also reads as light
	app.Preferences().SetString(KeyTheme, "purple")
	if settings.GetTheme() != ThemeLight {
		t.Error("Corrupted theme should read as light")
	}
}

func TestThemePersistsAcrossSettings(t *testing.T) {
	app := test.NewApp()
	NewSettings(app).SetTheme(ThemeDark)

	if NewSettings(app).GetTheme() != ThemeDark {
		t.Error("Theme should be read back from preferences")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("ru")
	if settings.GetLanguage() != "ru" {
		t.Errorf("Expected language ru, got %s", settings.GetLanguage())
	}

	options := settings.GetLanguageOptions()
	for _, code := range []string{"system", "en", "ru", "pt"} {
		if _, ok := options[code]; !ok {
			t.Errorf("Language option %s should exist", code)
		}
	}
}

func TestLastEmail(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetLastEmail() != "" {
		t.Error("Last email should be empty by default")
	}
	settings.SetLastEmail("ada@example.com")
	if settings.GetLastEmail() != "ada@example.com" {
		t.Errorf("Expected stored email, got %s", settings.GetLastEmail())
	}
}

func TestRefreshToken(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetRefreshToken() != "" {
		t.Error("no session should be saved initially")
	}

	settings.SetRefreshToken("refresh-1")
	if got := NewSettings(app).GetRefreshToken(); got != "refresh-1" {
		t.Errorf("expected saved token, got %q", got)
	}

	settings.SetRefreshToken("")
	if got := settings.GetRefreshToken(); got != "" {
		t.Errorf("expected token to be removed, got %q", got)
	}
}
