package ui

import (
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-classroom/internal/config"
	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/notify"
	"github.com/ytget/yt-classroom/internal/rolegate"
)

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	for lang := range l.GetAvailableLanguages() {
		for key := range l.texts["en"] {
			if _, ok := l.texts[lang][key]; !ok {
				t.Errorf("language %s is missing key %s", lang, key)
			}
		}
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("ru")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("expected ru, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Error("unknown language should be ignored")
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("system should resolve to en, got %s", l.GetCurrentLanguage())
	}

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key should fall back to itself, got %s", got)
	}
	if got := l.Format(KeyCompletedOf, 2, 5); got != "2 of 5 lessons completed" {
		t.Errorf("unexpected format result %q", got)
	}
}

func TestNewCompactTheme(t *testing.T) {
	tests := []struct {
		pref    config.Theme
		variant string
	}{
		{config.ThemeLight, "light"},
		{config.ThemeDark, "dark"},
	}

	for _, tt := range tests {
		t.Run(string(tt.pref), func(t *testing.T) {
			th := NewCompactTheme(tt.pref)
			// the OS variant passed in is ignored
			light := th.Color(theme.ColorNameBackground, theme.VariantLight)
			dark := th.Color(theme.ColorNameBackground, theme.VariantDark)
			if light != dark {
				t.Error("theme should not follow the requested variant")
			}
			r, _, _, _ := light.RGBA()
			isDark := r < 0x8000
			if isDark != (tt.variant == "dark") {
				t.Errorf("expected %s background, got %v", tt.variant, light)
			}
		})
	}

	if NewCompactTheme(config.ThemeLight).Size(theme.SizeNamePadding) != 3 {
		t.Error("expected compact padding")
	}
}

func TestToaster(t *testing.T) {
	test.NewApp()
	w := test.NewWindow(nil)
	defer w.Close()

	toaster := NewToaster(w)
	if toaster.Panel().Visible() {
		t.Error("panel should start hidden")
	}

	toaster.Notify(notify.Notice{Level: notify.LevelError, Title: "Save failed", Message: "the service could not be reached"})
	first := toaster.current()
	if first == nil || !first.Visible() {
		t.Fatal("expected a visible toast")
	}
	if !toaster.Panel().Visible() || toaster.label.Text != "the service could not be reached" {
		t.Errorf("panel should show the last message, got %q", toaster.label.Text)
	}

	toaster.Notify(notify.Notice{Level: notify.LevelSuccess, Title: "Saved", Message: "Course created"})
	second := toaster.current()
	if second == first || first.Visible() {
		t.Error("a new toast should replace the previous one")
	}

	toaster.ShowBusy("Loading...")
	if !toaster.spinner.Visible() {
		t.Error("busy panel should spin")
	}
	toaster.HideBusy()
	if toaster.Panel().Visible() {
		t.Error("panel should hide")
	}
}

func TestImportanceFor(t *testing.T) {
	if importanceFor(notify.LevelError) == importanceFor(notify.LevelSuccess) {
		t.Error("errors and successes should look different")
	}
}

func TestLessonRow(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()
	lesson := model.Lesson{ID: "l1", CourseID: "c1", Title: "Intro", YouTubeID: "abc123XYZ_-", Index: 3}

	row := NewLessonRow(lesson, loc)
	if row.indexLabel.Text != "3." || row.titleLabel.Text != "Intro" {
		t.Errorf("unexpected initial row %q %q", row.indexLabel.Text, row.titleLabel.Text)
	}
	if row.statusLabel.Text != "" {
		t.Errorf("expected no badges, got %q", row.statusLabel.Text)
	}

	row.UpdateRow(model.LessonRow{Lesson: lesson, Title: "Intro  to\nAlgebra", Live: true, Completed: true})
	if row.titleLabel.Text != "Intro to Algebra" {
		t.Errorf("title should be collapsed to one line, got %q", row.titleLabel.Text)
	}
	if !strings.Contains(row.statusLabel.Text, loc.GetText(KeyLiveNow)) || !strings.Contains(row.statusLabel.Text, loc.GetText(KeyCompleted)) {
		t.Errorf("expected live and completed badges, got %q", row.statusLabel.Text)
	}

	var played, edited, deleted string
	row.SetCallbacks(
		func(l model.Lesson) { played = l.ID },
		func(l model.Lesson) { edited = l.ID },
		func(l model.Lesson) { deleted = l.ID },
	)
	test.Tap(row.playBtn)
	test.Tap(row.editBtn)
	test.Tap(row.deleteBtn)
	if played != "l1" || edited != "l1" || deleted != "l1" {
		t.Errorf("callbacks got %q %q %q", played, edited, deleted)
	}

	gate := rolegate.New()
	row.RegisterGated(gate)
	gate.Apply(model.RoleStudent)
	if row.editBtn.Visible() || row.deleteBtn.Visible() {
		t.Error("students should not see authoring buttons")
	}
	if !row.playBtn.Visible() {
		t.Error("play should stay visible")
	}

	size := row.MinSize()
	if size.Width < RowMinWidth || size.Height < RowMinHeight {
		t.Errorf("row smaller than minimum: %v", size)
	}
}

func TestClassifyGesture(t *testing.T) {
	origin := fyne.NewPos(100, 100)
	tests := []struct {
		name     string
		end      fyne.Position
		duration time.Duration
		expected GestureType
	}{
		{"tap", fyne.NewPos(105, 102), 100 * time.Millisecond, GestureTap},
		{"long press", fyne.NewPos(101, 101), time.Second, GestureLongPress},
		{"swipe right", fyne.NewPos(220, 110), 200 * time.Millisecond, GestureSwipeRight},
		{"swipe left", fyne.NewPos(20, 90), 200 * time.Millisecond, GestureSwipeLeft},
		{"swipe down", fyne.NewPos(110, 250), 200 * time.Millisecond, GestureSwipeDown},
		{"swipe up", fyne.NewPos(90, 10), 200 * time.Millisecond, GestureSwipeUp},
		{"slow swipe is still a swipe", fyne.NewPos(220, 100), time.Second, GestureSwipeRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyGesture(origin, tt.end, tt.duration); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSwipeArea(t *testing.T) {
	test.NewApp()
	var got []GestureType
	area := NewSwipeArea(widget.NewLabel("content"), func(g GestureType) { got = append(got, g) })

	area.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	area.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 20)}})

	// cancelled touches report nothing
	area.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(10, 10)}})
	area.TouchCancel(nil)
	area.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(200, 20)}})

	if len(got) != 1 || got[0] != GestureSwipeRight {
		t.Errorf("expected one swipe right, got %v", got)
	}
}

func TestFormWidth(t *testing.T) {
	test.NewApp()
	// the test driver is a desktop device
	if w := formWidth(AuthFormWidth, nil); w != AuthFormWidth {
		t.Errorf("expected %v, got %v", AuthFormWidth, w)
	}
}
