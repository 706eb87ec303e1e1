package ui

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-classroom/internal/catalog"
	"github.com/ytget/yt-classroom/internal/config"
	"github.com/ytget/yt-classroom/internal/editor"
	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/notify"
	"github.com/ytget/yt-classroom/internal/platform"
	"github.com/ytget/yt-classroom/internal/rolegate"
	"github.com/ytget/yt-classroom/internal/router"
)

func heading(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// authCard centers a fixed-width form
func (ui *RootUI) authCard(title string, objects ...fyne.CanvasObject) fyne.CanvasObject {
	box := container.NewVBox(append([]fyne.CanvasObject{heading(title)}, objects...)...)
	width := formWidth(AuthFormWidth, ui.window.Canvas())
	sized := container.NewGridWrap(fyne.NewSize(width, box.MinSize().Height), box)
	return container.NewCenter(sized)
}

func (ui *RootUI) loginView() fyne.CanvasObject {
	loc := ui.localization

	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder(loc.GetText(KeyEmail))
	emailEntry.SetText(ui.settings.GetLastEmail())
	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder(loc.GetText(KeyPassword))

	var signInBtn *widget.Button
	submit := func() {
		ui.onSignIn(editor.LoginForm{Email: emailEntry.Text, Password: passwordEntry.Text}, signInBtn)
	}
	signInBtn = widget.NewButton(loc.GetText(KeySignIn), submit)
	signInBtn.Importance = widget.HighImportance
	passwordEntry.OnSubmitted = func(string) { submit() }

	registerLink := widget.NewButton(loc.GetText(KeyCreateAccount), func() {
		ui.navigate(model.ViewRegister)
	})
	registerLink.Importance = widget.LowImportance

	return ui.authCard(loc.GetText(KeySignIn), emailEntry, passwordEntry, signInBtn, registerLink)
}

// onSignIn signs in; the session controller moves the router on success
func (ui *RootUI) onSignIn(form editor.LoginForm, btn *widget.Button) {
	btn.Disable()
	ui.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), ui.timeout)
		defer cancel()
		err := ui.session.SignIn(ctx, form)
		fyne.Do(func() {
			btn.Enable()
			if err == nil {
				ui.settings.SetLastEmail(strings.TrimSpace(form.Email))
			}
		})
	})
}

func (ui *RootUI) registerView() fyne.CanvasObject {
	loc := ui.localization

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder(loc.GetText(KeyName))
	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder(loc.GetText(KeyEmail))
	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder(loc.GetText(KeyPassword))

	roles := map[string]model.Role{
		loc.GetText(KeyTeacher): model.RoleTeacher,
		loc.GetText(KeyStudent): model.RoleStudent,
	}
	roleGroup := widget.NewRadioGroup([]string{loc.GetText(KeyTeacher), loc.GetText(KeyStudent)}, nil)
	roleGroup.Horizontal = true
	roleGroup.SetSelected(loc.GetText(KeyStudent))

	var registerBtn *widget.Button
	registerBtn = widget.NewButton(loc.GetText(KeyRegister), func() {
		form := editor.RegisterForm{
			Name:     nameEntry.Text,
			Email:    emailEntry.Text,
			Password: passwordEntry.Text,
		}
		if role, ok := roles[roleGroup.Selected]; ok {
			form.Role = role.String()
		}
		ui.onRegister(form, registerBtn)
	})
	registerBtn.Importance = widget.HighImportance

	loginLink := widget.NewButton(loc.GetText(KeyHaveAccount), func() {
		ui.navigate(model.ViewLogin)
	})
	loginLink.Importance = widget.LowImportance

	return ui.authCard(loc.GetText(KeyRegister),
		nameEntry, emailEntry, passwordEntry,
		widget.NewLabel(loc.GetText(KeyRole)+":"), roleGroup,
		registerBtn, loginLink,
	)
}

func (ui *RootUI) onRegister(form editor.RegisterForm, btn *widget.Button) {
	btn.Disable()
	ui.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), ui.timeout)
		defer cancel()
		user, err := ui.session.Register(ctx, form)
		fyne.Do(func() {
			btn.Enable()
			if err == nil {
				ui.settings.SetLastEmail(user.Email)
			}
		})
	})
}

// courseFilter scopes the course list: teachers see what they authored
func courseFilter(user *model.User) catalog.CourseFilter {
	if user != nil && user.Role.CanAuthor() {
		return catalog.CourseFilter{CreatedBy: user.UID}
	}
	return catalog.CourseFilter{}
}

func (ui *RootUI) dashboardView(s router.State, token router.Token) fyne.CanvasObject {
	loc := ui.localization
	user := s.User

	welcome := heading(loc.Format(KeyWelcome, user.GetDisplayName()))
	summary := widget.NewLabel(loc.GetText(KeyLoading))

	coursesBtn := widget.NewButton(loc.GetText(KeyCourses), func() { ui.navigate(model.ViewCourses) })
	addBtn := widget.NewButton(IconAdd+" "+loc.GetText(KeyAddCourse), func() { ui.beginEditCourse(nil) })
	ui.viewGate.Register(rolegate.TeacherOnly, addBtn)

	ui.load(token, func(ctx context.Context) func() {
		text := ui.summaryText(ctx, user)
		return func() { summary.SetText(text) }
	})

	return container.NewVBox(welcome, summary, container.NewHBox(coursesBtn, addBtn))
}

// summaryText counts what matters to the role: own courses or completions
func (ui *RootUI) summaryText(ctx context.Context, user *model.User) string {
	loc := ui.localization
	if user.Role.TracksProgress() {
		progress, err := ui.catalog.Progress(ctx, user.UID)
		if err != nil {
			return loc.GetText(KeyLoadFailed)
		}
		return loc.Format(KeyLessonsCompleted, len(progress))
	}
	courses, err := ui.catalog.Courses(ctx, courseFilter(user))
	if err != nil {
		return loc.GetText(KeyLoadFailed)
	}
	return loc.Format(KeyCourseCount, len(courses))
}

func (ui *RootUI) coursesView(s router.State, token router.Token) fyne.CanvasObject {
	loc := ui.localization
	user := s.User
	role := s.Role()

	titleKey := KeyAllCourses
	if role.CanAuthor() {
		titleKey = KeyMyCourses
	}
	addBtn := widget.NewButton(IconAdd+" "+loc.GetText(KeyAddCourse), func() { ui.beginEditCourse(nil) })
	ui.viewGate.Register(rolegate.TeacherOnly, addBtn)

	list := container.NewVBox(widget.NewLabel(loc.GetText(KeyLoading)))

	ui.load(token, func(ctx context.Context) func() {
		courses, err := ui.catalog.Courses(ctx, courseFilter(user))
		return func() {
			list.RemoveAll()
			if err != nil {
				list.Add(widget.NewLabel(loc.GetText(KeyLoadFailed)))
				return
			}
			if len(courses) == 0 {
				list.Add(widget.NewLabel(loc.GetText(KeyNoCourses)))
				return
			}
			for _, c := range courses {
				course := c // Capture for closure
				openBtn := widget.NewButton(course.Name, func() { ui.openCourse(course) })
				openBtn.Alignment = widget.ButtonAlignLeading
				editBtn := widget.NewButton(IconEdit, func() { ui.beginEditCourse(&course) })
				editBtn.Importance = widget.LowImportance
				ui.viewGate.Register(rolegate.TeacherOnly, editBtn)
				list.Add(container.NewBorder(nil, nil, nil, editBtn, openBtn))
			}
			ui.viewGate.Apply(role)
		}
	})

	top := container.NewBorder(nil, nil, nil, addBtn, heading(loc.GetText(titleKey)))
	return container.NewBorder(top, nil, nil, nil, container.NewVScroll(list))
}

func (ui *RootUI) openCourse(course model.Course) {
	if err := ui.router.OpenCourse(course); err != nil {
		ui.log.Warn("cannot open course", "course", course.ID, "error", err)
	}
}

func (ui *RootUI) courseDetailView(s router.State, token router.Token) fyne.CanvasObject {
	loc := ui.localization
	course := *s.Course
	user := s.User
	role := s.Role()

	backBtn := widget.NewButton(IconBack+" "+loc.GetText(KeyBack), func() { ui.navigate(model.ViewCourses) })
	backBtn.Importance = widget.LowImportance

	editBtn := widget.NewButton(IconEdit+" "+loc.GetText(KeyEditCourse), func() { ui.beginEditCourse(&course) })
	addBtn := widget.NewButton(IconAdd+" "+loc.GetText(KeyAddLesson), func() { ui.beginEditLesson(nil) })
	importBtn := widget.NewButton(loc.GetText(KeyImportPlaylist), func() { ShowPlaylistDialog(ui, course.ID) })
	ui.viewGate.Register(rolegate.TeacherOnly, editBtn, addBtn, importBtn)

	summary := widget.NewLabel("")
	ui.viewGate.Register(rolegate.StudentOnly, summary)

	rows := container.NewVBox(widget.NewLabel(loc.GetText(KeyLoading)))

	// Only students have progress to look up
	uid := ""
	if role.TracksProgress() {
		uid = user.UID
	}

	ui.load(token, func(ctx context.Context) func() {
		lessons, err := ui.catalog.Lessons(ctx, course.ID)
		return func() {
			rows.RemoveAll()
			if err != nil {
				rows.Add(widget.NewLabel(loc.GetText(KeyLoadFailed)))
				return
			}
			if len(lessons) == 0 {
				rows.Add(widget.NewLabel(loc.GetText(KeyNoLessons)))
				summary.SetText(loc.Format(KeyCompletedOf, 0, 0))
				return
			}
			widgets := make([]*LessonRow, len(lessons))
			for i, lesson := range lessons {
				row := NewLessonRow(lesson, loc)
				row.SetCallbacks(ui.playLesson, ui.editLesson, ui.confirmDeleteLesson)
				row.RegisterGated(ui.viewGate)
				widgets[i] = row
				rows.Add(row)
			}
			ui.viewGate.Apply(role)
			ui.enrichRows(token, uid, lessons, widgets, summary)
		}
	})

	actions := container.NewHBox(backBtn, editBtn, addBtn, importBtn)
	top := container.NewVBox(actions, heading(course.Name), summary)
	content := container.NewBorder(top, nil, nil, nil, container.NewVScroll(rows))
	return NewSwipeArea(content, ui.navigationGestures(func() { ui.navigate(model.ViewCourses) }))
}

// enrichRows fills in metadata and completion row by row as lookups finish
func (ui *RootUI) enrichRows(token router.Token, uid string, lessons []model.Lesson, widgets []*LessonRow, summary *widget.Label) {
	ui.load(token, func(ctx context.Context) func() {
		results := ui.catalog.EnrichLessons(ctx, uid, lessons, func(position int, row model.LessonRow) {
			ui.applyIfCurrent(token, func() { widgets[position].UpdateRow(row) })
		})
		detail := model.CourseDetail{Rows: results}
		return func() {
			summary.SetText(ui.localization.Format(KeyCompletedOf, detail.CompletedCount(), len(results)))
		}
	})
}

func (ui *RootUI) playLesson(lesson model.Lesson) {
	if err := ui.router.PlayLesson(lesson); err != nil {
		ui.log.Warn("cannot play lesson", "lesson", lesson.ID, "error", err)
	}
}

func (ui *RootUI) editLesson(lesson model.Lesson) {
	ui.beginEditLesson(&lesson)
}

// confirmDeleteLesson asks before deleting; other lessons keep their index
func (ui *RootUI) confirmDeleteLesson(lesson model.Lesson) {
	loc := ui.localization
	title := model.LessonRow{Lesson: lesson}.GetDisplayTitle()
	dialog.ShowConfirm(loc.GetText(KeyDeleteLesson), loc.Format(KeyConfirmDelete, title), func(confirmed bool) {
		if !confirmed {
			return
		}
		ui.async(func() {
			ctx, cancel := context.WithTimeout(context.Background(), ui.timeout)
			defer cancel()
			if err := ui.editor.DeleteLesson(ctx, lesson.CourseID, lesson.ID); err != nil {
				ui.log.Warn("delete lesson failed", "lesson", lesson.ID, "error", err)
			}
		})
	}, ui.window)
}

func (ui *RootUI) playerView(s router.State, token router.Token) fyne.CanvasObject {
	loc := ui.localization
	lesson := *s.Lesson
	user := s.User
	role := s.Role()

	backBtn := widget.NewButton(IconBack+" "+loc.GetText(KeyBack), func() { ui.navigate(model.ViewCourseDetail) })
	backBtn.Importance = widget.LowImportance

	title := heading(model.LessonRow{Lesson: lesson}.GetDisplayTitle())
	status := widget.NewLabel("")
	status.Hide()

	var player fyne.CanvasObject = widget.NewLabel(DashPlaceholder)
	if embed, err := url.Parse(platform.EmbedURL(lesson.YouTubeID)); err == nil && lesson.YouTubeID != "" {
		player = widget.NewHyperlink(IconPlay+" "+embed.String(), embed)
	}

	openBtn := widget.NewButton(loc.GetText(KeyOpenInBrowser), func() { ui.openInBrowser(lesson) })

	var completeBtn *widget.Button
	completeBtn = widget.NewButton(IconCompleted+" "+loc.GetText(KeyMarkComplete), func() {
		ui.markComplete(token, user.UID, lesson, completeBtn, status)
	})
	completeBtn.Importance = widget.HighImportance
	ui.viewGate.Register(rolegate.StudentOnly, completeBtn)

	uid := ""
	if role.TracksProgress() {
		uid = user.UID
	}
	ui.load(token, func(ctx context.Context) func() {
		row := ui.catalog.EnrichLesson(ctx, uid, lesson)
		return func() {
			title.SetText(row.GetDisplayTitle())
			switch {
			case row.Live:
				status.SetText(IconLive + " " + loc.GetText(KeyLiveNow))
				status.Show()
			case row.Completed:
				status.SetText(IconCompleted + " " + loc.GetText(KeyCompleted))
				status.Show()
			}
			if row.Completed {
				completeBtn.Disable()
			}
		}
	})

	content := container.NewVBox(backBtn, title, status, player, container.NewHBox(openBtn, completeBtn))
	return NewSwipeArea(content, ui.navigationGestures(func() { ui.navigate(model.ViewCourseDetail) }))
}

func (ui *RootUI) openInBrowser(lesson model.Lesson) {
	if err := platform.OpenInBrowser(platform.WatchURL(lesson.YouTubeID)); err != nil {
		ui.log.Warn("failed to open browser", "lesson", lesson.ID, "error", err)
		notify.Error(ui.notifier, ui.localization.GetText(notify.KeyBrowserFailed), ui.localization.GetText(KeyErrorOpeningVideo))
	}
}

// markComplete records completion and shows the completed status;
// repeating it is harmless
func (ui *RootUI) markComplete(token router.Token, uid string, lesson model.Lesson, btn *widget.Button, status *widget.Label) {
	loc := ui.localization
	btn.Disable()
	ui.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), ui.timeout)
		defer cancel()
		err := ui.catalog.MarkComplete(ctx, uid, lesson.ID)
		if err != nil {
			ui.log.Warn("mark complete failed", "lesson", lesson.ID, "error", err)
			notify.Error(ui.notifier, loc.GetText(notify.KeyCompleteFailed), gateway.UserMessage(err))
			ui.applyIfCurrent(token, btn.Enable)
			return
		}
		notify.Success(ui.notifier, loc.GetText(notify.KeyLessonCompleted), loc.GetText(KeyMarkedComplete))
		ui.applyIfCurrent(token, func() {
			status.SetText(IconCompleted + " " + loc.GetText(KeyCompleted))
			status.Show()
		})
	})
}

func (ui *RootUI) profileView(s router.State, token router.Token) fyne.CanvasObject {
	loc := ui.localization
	user := s.User

	stats := widget.NewLabel(loc.GetText(KeyLoading))
	ui.load(token, func(ctx context.Context) func() {
		text := ui.summaryText(ctx, user)
		return func() { stats.SetText(text) }
	})

	themeNames := map[string]config.Theme{
		loc.GetText(KeyThemeLight): config.ThemeLight,
		loc.GetText(KeyThemeDark):  config.ThemeDark,
	}
	themeGroup := widget.NewRadioGroup([]string{loc.GetText(KeyThemeLight), loc.GetText(KeyThemeDark)}, nil)
	themeGroup.Horizontal = true
	if ui.settings.GetTheme() == config.ThemeDark {
		themeGroup.SetSelected(loc.GetText(KeyThemeDark))
	} else {
		themeGroup.SetSelected(loc.GetText(KeyThemeLight))
	}
	themeGroup.OnChanged = func(selected string) {
		if theme, ok := themeNames[selected]; ok {
			ui.applyTheme(theme)
		}
	}

	langCodes := make(map[string]string)
	var langNames []string
	for code, name := range ui.settings.GetLanguageOptions() {
		langCodes[name] = code
		langNames = append(langNames, name)
	}
	sort.Strings(langNames)
	langSelect := widget.NewSelect(langNames, nil)
	langSelect.SetSelected(ui.settings.GetLanguageOptions()[ui.settings.GetLanguage()])
	langSelect.OnChanged = func(name string) {
		if code, ok := langCodes[name]; ok && code != ui.settings.GetLanguage() {
			// Rebuilding the view from inside the select callback is deferred
			fyne.Do(func() { ui.onLanguageChange(code) })
		}
	}

	form := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyName), widget.NewLabel(user.GetDisplayName())),
		widget.NewFormItem(loc.GetText(KeyEmail), widget.NewLabel(user.Email)),
		widget.NewFormItem(loc.GetText(KeyRole), widget.NewLabel(ui.roleText(user.Role))),
		widget.NewFormItem(loc.GetText(KeyTheme), themeGroup),
		widget.NewFormItem(loc.GetText(KeyLanguage), langSelect),
	)

	return container.NewVBox(heading(loc.GetText(KeyProfile)), form, stats)
}
