package ui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-classroom/internal/catalog"
	"github.com/ytget/yt-classroom/internal/config"
	"github.com/ytget/yt-classroom/internal/editor"
	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/logger"
	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/notify"
	"github.com/ytget/yt-classroom/internal/rolegate"
	"github.com/ytget/yt-classroom/internal/router"
	"github.com/ytget/yt-classroom/internal/session"
)

// Backend carries the collaborators the UI is built on
type Backend struct {
	Gateway   *gateway.Gateway
	Metadata  catalog.MetadataLookup
	Playlists catalog.PlaylistSource
	Log       *logger.Logger

	// EnrichParallel bounds concurrent lesson enrichment, 0 keeps the default
	EnrichParallel int
	// RequestTimeout bounds every remote call started from the UI
	RequestTimeout time.Duration
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	log          *logger.Logger
	timeout      time.Duration

	router   *router.Router
	catalog  *catalog.Service
	editor   *editor.Service
	session  *session.Controller
	toaster  *Toaster
	notifier notify.Notifier

	// navGate holds header elements and lives as long as the window;
	// viewGate is reset on every view change.
	navGate  *rolegate.Gate
	viewGate *rolegate.Gate

	// Header
	header    *fyne.Container
	userLabel *widget.Label
	navBtns   map[model.View]*widget.Button
	addBtn    *widget.Button
	themeBtn  *widget.Button
	signOut   *widget.Button
	content   *fyne.Container

	// Rendered state, touched on the UI thread only
	rendered        router.State
	hasRendered     bool
	activeDialog    formDialog
	activeDialogKey string

	unsubscribe func()

	// async runs background work; tests swap it for an inline runner
	async func(func())
}

// gateApplier applies roles to a gate on the UI thread
type gateApplier struct {
	gate *rolegate.Gate
}

// Apply implements session.RoleApplier
func (g gateApplier) Apply(role model.Role) {
	fyne.Do(func() { g.gate.Apply(role) })
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, backend Backend) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	log := backend.Log
	if log == nil {
		log = logger.Nop()
	}
	timeout := backend.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		log:          log,
		timeout:      timeout,
		router:       router.New(),
		navGate:      rolegate.New(),
		viewGate:     rolegate.New(),
		async:        func(f func()) { go f() },
	}

	app.Settings().SetTheme(NewCompactTheme(settings.GetTheme()))

	ui.toaster = NewToaster(window)
	ui.notifier = notify.WithLogging(ui.toaster, log)

	ui.catalog = catalog.NewService(backend.Gateway.Store, backend.Metadata, log)
	if backend.EnrichParallel > 0 {
		ui.catalog.SetMaxParallel(backend.EnrichParallel)
	}

	ui.editor = editor.NewService(backend.Gateway.Store, ui.catalog, ui.router, ui.notifier, log)
	if backend.Playlists != nil {
		ui.editor.SetPlaylistSource(backend.Playlists)
	}
	ui.editor.SetUpdateCallback(ui.onSubmissionUpdate)
	ui.editor.SetTexts(ui.localization)

	ui.session = session.NewController(backend.Gateway.Auth, ui.catalog, ui.router, gateApplier{gate: ui.navGate}, ui.notifier, log)
	ui.session.SetTimeout(timeout)
	ui.session.SetTexts(ui.localization)

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	ui.userLabel = widget.NewLabel("")
	ui.userLabel.TextStyle = fyne.TextStyle{Italic: true}

	ui.navBtns = make(map[model.View]*widget.Button)
	navBox := container.NewHBox()
	for _, v := range model.AllViews {
		if !v.IsNavTarget() {
			continue
		}
		view := v // Capture for closure
		btn := widget.NewButton("", func() { ui.navigate(view) })
		btn.Importance = widget.LowImportance
		ui.navBtns[view] = btn
		navBox.Add(btn)
	}

	ui.addBtn = widget.NewButton("", func() { ui.beginEditCourse(nil) })
	ui.navGate.Register(rolegate.TeacherOnly, ui.addBtn)

	ui.themeBtn = widget.NewButton(IconTheme, ui.toggleTheme)
	ui.themeBtn.Importance = widget.LowImportance
	ui.signOut = widget.NewButton("", ui.onSignOut)

	// Create logo
	left := navBox
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		left = container.NewHBox(logoImage, navBox)
	}

	right := container.NewHBox(ui.addBtn, ui.userLabel, ui.themeBtn, ui.signOut)
	ui.header = container.NewBorder(nil, nil, left, right)
	ui.header.Hide()

	ui.content = container.NewStack()
	ui.refreshUITexts()

	top := container.NewVBox(ui.header, ui.toaster.Panel())
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.content))
}

// Start subscribes to the router, renders the current view and starts
// following the auth state. Call it on the UI thread.
func (ui *RootUI) Start() {
	ui.unsubscribe = ui.router.Subscribe(func(router.State) {
		fyne.Do(ui.sync)
	})
	ui.sync()
	ui.async(ui.session.Start)
}

// Stop detaches the UI from the router and the auth provider
func (ui *RootUI) Stop() {
	ui.session.Stop()
	if ui.unsubscribe != nil {
		ui.unsubscribe()
		ui.unsubscribe = nil
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	signOutItem := fyne.NewMenuItem(ui.localization.GetText(KeySignOut), ui.onSignOut)
	themeItem := fyne.NewMenuItem(ui.localization.GetText(KeyToggleTheme), ui.toggleTheme)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), signOutItem),
		fyne.NewMenu(ui.localization.GetText(KeyView), themeItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()

	// Views are built with the old texts, rebuild the current one
	ui.hasRendered = false
	ui.sync()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	// Update window title
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.navBtns[model.ViewDashboard].SetText(ui.localization.GetText(KeyDashboard))
	ui.navBtns[model.ViewCourses].SetText(ui.localization.GetText(KeyCourses))
	ui.navBtns[model.ViewProfile].SetText(ui.localization.GetText(KeyProfile))
	ui.addBtn.SetText(IconAdd + " " + ui.localization.GetText(KeyAddCourse))
	ui.signOut.SetText(ui.localization.GetText(KeySignOut))
}

// toggleTheme switches between light and dark and remembers the choice
func (ui *RootUI) toggleTheme() {
	ui.applyTheme(ui.settings.ToggleTheme())
}

func (ui *RootUI) applyTheme(theme config.Theme) {
	ui.settings.SetTheme(theme)
	ui.app.Settings().SetTheme(NewCompactTheme(theme))
}

// sync brings the window in line with the router. It always reads the
// latest state, so late or reordered notifications are harmless.
func (ui *RootUI) sync() {
	s, token := ui.router.Snapshot()

	viewChanged := !ui.hasRendered || s.Generation != ui.rendered.Generation
	ui.rendered = s
	ui.hasRendered = true

	if viewChanged {
		ui.renderHeader(s)
		ui.renderView(s, token)
	}
	ui.syncDialog(s)
}

func (ui *RootUI) renderHeader(s router.State) {
	if !s.SignedIn() {
		ui.header.Hide()
		return
	}
	ui.userLabel.SetText(s.User.GetDisplayName() + MiddleDotSeparator + ui.roleText(s.User.Role))
	for view, btn := range ui.navBtns {
		if view == s.View {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.LowImportance
		}
		btn.Refresh()
	}
	ui.navGate.Apply(s.Role())
	ui.header.Show()
}

// renderView replaces the content with a freshly built view
func (ui *RootUI) renderView(s router.State, token router.Token) {
	ui.viewGate.Reset()

	var view fyne.CanvasObject
	switch s.View {
	case model.ViewLogin:
		view = ui.loginView()
	case model.ViewRegister:
		view = ui.registerView()
	case model.ViewDashboard:
		view = ui.dashboardView(s, token)
	case model.ViewCourses:
		view = ui.coursesView(s, token)
	case model.ViewCourseDetail:
		view = ui.courseDetailView(s, token)
	case model.ViewVideoPlayer:
		view = ui.playerView(s, token)
	case model.ViewProfile:
		view = ui.profileView(s, token)
	default:
		ui.log.Error("no renderer for view", "view", s.View.String())
		view = widget.NewLabel(DashPlaceholder)
	}

	ui.viewGate.Apply(s.Role())
	ui.content.Objects = []fyne.CanvasObject{view}
	ui.content.Refresh()
}

// syncDialog opens or closes the form modal for the editing state
func (ui *RootUI) syncDialog(s router.State) {
	key := editingKey(s)
	if key == ui.activeDialogKey {
		return
	}
	if ui.activeDialog != nil {
		ui.activeDialog.Hide()
		ui.activeDialog = nil
	}
	ui.activeDialogKey = key

	switch s.Editing {
	case router.EditCourse:
		ui.activeDialog = NewCourseDialog(ui, s.EditingCourse)
	case router.EditLesson:
		if s.Course == nil {
			return
		}
		ui.activeDialog = NewLessonDialog(ui, s.Course.ID, s.EditingLesson)
	default:
		return
	}
	ui.activeDialog.Show()
}

// editingKey identifies the open form, empty when none is open
func editingKey(s router.State) string {
	switch s.Editing {
	case router.EditCourse:
		return editor.OpenCourse(s.EditingCourse).Key()
	case router.EditLesson:
		if s.Course == nil {
			return ""
		}
		return editor.OpenLesson(s.Course.ID, s.EditingLesson).Key()
	default:
		return ""
	}
}

// onSubmissionUpdate reloads the current view after a successful write
func (ui *RootUI) onSubmissionUpdate(sub model.Submission) {
	if sub.Status != model.SubmissionSaved {
		return
	}
	fyne.Do(ui.reload)
}

// reload re-enters the current view, which invalidates pending loads.
// Open forms stay open.
func (ui *RootUI) reload() {
	if !ui.router.State().SignedIn() {
		return
	}
	if err := ui.router.Reload(); err != nil {
		ui.log.Warn("reload failed", "error", err)
	}
}

// load runs work in the background and applies its result on the UI
// thread only while token is still valid.
func (ui *RootUI) load(token router.Token, work func(ctx context.Context) func()) {
	ui.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), ui.timeout)
		defer cancel()

		apply := work(ctx)
		if apply == nil {
			return
		}
		ui.applyIfCurrent(token, apply)
	})
}

// applyIfCurrent runs fn on the UI thread unless the view changed
func (ui *RootUI) applyIfCurrent(token router.Token, fn func()) {
	fyne.Do(func() {
		if !token.Valid() {
			ui.log.Debug("discarding stale result", "view", token.View().String(), "generation", token.Generation())
			return
		}
		fn()
	})
}

// navigate switches to a top-level view
func (ui *RootUI) navigate(view model.View) {
	if err := ui.router.Navigate(view); err != nil {
		ui.log.Warn("navigation rejected", "view", view.String(), "error", err)
	}
}

func (ui *RootUI) beginEditCourse(course *model.Course) {
	if err := ui.router.BeginEditCourse(course); err != nil {
		ui.log.Warn("cannot edit course", "error", err)
	}
}

func (ui *RootUI) beginEditLesson(lesson *model.Lesson) {
	if err := ui.router.BeginEditLesson(lesson); err != nil {
		ui.log.Warn("cannot edit lesson", "error", err)
	}
}

// onSignOut ends the session; the auth callback moves the router to login
func (ui *RootUI) onSignOut() {
	if !ui.router.State().SignedIn() {
		return
	}
	ui.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), ui.timeout)
		defer cancel()
		if err := ui.session.SignOut(ctx); err != nil {
			ui.log.Warn("sign out failed", "error", err)
		}
	})
}

// roleText returns the localized role name
func (ui *RootUI) roleText(role model.Role) string {
	switch role {
	case model.RoleTeacher:
		return ui.localization.GetText(KeyTeacher)
	case model.RoleStudent:
		return ui.localization.GetText(KeyStudent)
	default:
		return DashPlaceholder
	}
}
