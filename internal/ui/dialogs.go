package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"

	"github.com/ytget/yt-classroom/internal/editor"
	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/model"
)

// formDialog is a modal bound to the router's editing state
type formDialog interface {
	Show()
	Hide()
}

// fieldError shows a validation message under an entry
type fieldError struct {
	label *widget.Label
}

func newFieldError() *fieldError {
	label := widget.NewLabel("")
	label.Importance = widget.DangerImportance
	label.Wrapping = fyne.TextWrapWord
	label.Hide()
	return &fieldError{label: label}
}

func (f *fieldError) set(message string) {
	if message == "" {
		f.label.Hide()
		return
	}
	f.label.SetText(message)
	f.label.Show()
}

// showSubmitError spreads err over the field labels. Errors that are not
// about a field go to general.
func showSubmitError(err error, general *fieldError, fields map[string]*fieldError) {
	for _, f := range fields {
		f.set("")
	}
	general.set("")

	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		for name, message := range verr.Fields {
			if f, ok := fields[name]; ok {
				f.set(message)
			} else {
				general.set(message)
			}
		}
		return
	}
	if errors.Cause(err) == editor.ErrDuplicateSubmission {
		return
	}
	general.set(gateway.UserMessage(err))
}

// CourseDialog is the create/rename course modal
type CourseDialog struct {
	ui     *RootUI
	form   editor.CourseForm
	dialog *dialog.CustomDialog

	// UI components
	nameEntry *widget.Entry
	nameError *fieldError
	general   *fieldError
	saveBtn   *widget.Button
}

// NewCourseDialog creates the modal; existing nil means create
func NewCourseDialog(ui *RootUI, existing *model.Course) *CourseDialog {
	cd := &CourseDialog{ui: ui, form: editor.OpenCourse(existing)}
	cd.createUI()
	return cd
}

// Show displays the dialog
func (cd *CourseDialog) Show() {
	cd.dialog.Show()
	cd.ui.window.Canvas().Focus(cd.nameEntry)
}

// Hide closes the dialog without touching the router
func (cd *CourseDialog) Hide() {
	cd.dialog.Hide()
}

func (cd *CourseDialog) createUI() {
	loc := cd.ui.localization

	cd.nameEntry = widget.NewEntry()
	cd.nameEntry.SetPlaceHolder(loc.GetText(KeyCourseName))
	cd.nameEntry.SetText(cd.form.Name)
	cd.nameEntry.OnSubmitted = func(string) { cd.onSave() }
	cd.nameError = newFieldError()
	cd.general = newFieldError()

	cd.saveBtn = widget.NewButton(loc.GetText(KeySave), cd.onSave)
	cd.saveBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton(loc.GetText(KeyCancel), cd.ui.router.EndEditing)

	content := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyCourseName)+":"),
		cd.nameEntry,
		cd.nameError.label,
		cd.general.label,
	)

	title := loc.GetText(KeyAddCourse)
	if cd.form.Mode == editor.ModeEdit {
		title = loc.GetText(KeyEditCourse)
	}
	cd.dialog = dialog.NewCustomWithoutButtons(title, content, cd.ui.window)
	cd.dialog.SetButtons([]fyne.CanvasObject{cancelBtn, cd.saveBtn})
	cd.dialog.Resize(fyne.NewSize(formWidth(DialogWidth, cd.ui.window.Canvas()), DialogHeight))
}

// onSave submits the form; the router closes the dialog on success
func (cd *CourseDialog) onSave() {
	user := cd.ui.router.State().User
	if user == nil {
		return
	}
	form := cd.form
	form.Name = cd.nameEntry.Text

	cd.saveBtn.Disable()
	cd.ui.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cd.ui.timeout)
		defer cancel()
		_, err := cd.ui.editor.SubmitCourse(ctx, user.UID, form)
		fyne.Do(func() {
			cd.saveBtn.Enable()
			if err != nil {
				showSubmitError(err, cd.general, map[string]*fieldError{"name": cd.nameError})
			}
		})
	})
}

// LessonDialog is the create/edit lesson modal
type LessonDialog struct {
	ui     *RootUI
	form   editor.LessonForm
	dialog *dialog.CustomDialog

	// UI components
	titleEntry *widget.Entry
	urlEntry   *widget.Entry
	titleError *fieldError
	urlError   *fieldError
	general    *fieldError
	saveBtn    *widget.Button
}

// NewLessonDialog creates the modal for courseID; existing nil means create
func NewLessonDialog(ui *RootUI, courseID string, existing *model.Lesson) *LessonDialog {
	ld := &LessonDialog{ui: ui, form: editor.OpenLesson(courseID, existing)}
	ld.createUI()
	return ld
}

// Show displays the dialog
func (ld *LessonDialog) Show() {
	ld.dialog.Show()
	ld.ui.window.Canvas().Focus(ld.titleEntry)
}

// Hide closes the dialog without touching the router
func (ld *LessonDialog) Hide() {
	ld.dialog.Hide()
}

func (ld *LessonDialog) createUI() {
	loc := ld.ui.localization

	ld.titleEntry = widget.NewEntry()
	ld.titleEntry.SetPlaceHolder(loc.GetText(KeyLessonTitle))
	ld.titleEntry.SetText(ld.form.Title)
	ld.urlEntry = widget.NewEntry()
	ld.urlEntry.SetPlaceHolder(loc.GetText(KeyVideoURL))
	ld.urlEntry.SetText(ld.form.SourceURL)
	ld.urlEntry.OnSubmitted = func(string) { ld.onSave() }

	ld.titleError = newFieldError()
	ld.urlError = newFieldError()
	ld.general = newFieldError()

	ld.saveBtn = widget.NewButton(loc.GetText(KeySave), ld.onSave)
	ld.saveBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton(loc.GetText(KeyCancel), ld.ui.router.EndEditing)

	content := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyLessonTitle)+":"),
		ld.titleEntry,
		ld.titleError.label,
		widget.NewLabel(loc.GetText(KeyVideoURL)+":"),
		ld.urlEntry,
		ld.urlError.label,
		ld.general.label,
	)

	title := loc.GetText(KeyAddLesson)
	if ld.form.Mode == editor.ModeEdit {
		title = loc.GetText(KeyEditLesson)
	}
	ld.dialog = dialog.NewCustomWithoutButtons(title, content, ld.ui.window)
	ld.dialog.SetButtons([]fyne.CanvasObject{cancelBtn, ld.saveBtn})
	ld.dialog.Resize(fyne.NewSize(formWidth(DialogWidth, ld.ui.window.Canvas()), DialogHeight))
}

// onSave submits the form; the router closes the dialog on success
func (ld *LessonDialog) onSave() {
	form := ld.form
	form.Title = ld.titleEntry.Text
	form.SourceURL = ld.urlEntry.Text

	ld.saveBtn.Disable()
	ld.ui.async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), ld.ui.timeout)
		defer cancel()
		_, err := ld.ui.editor.SubmitLesson(ctx, form)
		fyne.Do(func() {
			ld.saveBtn.Enable()
			if err != nil {
				showSubmitError(err, ld.general, map[string]*fieldError{
					"title": ld.titleError,
					"url":   ld.urlError,
				})
			}
		})
	})
}

// ShowPlaylistDialog asks for a playlist link and imports it into courseID
func ShowPlaylistDialog(ui *RootUI, courseID string) {
	loc := ui.localization

	entry := widget.NewEntry()
	entry.SetPlaceHolder(loc.GetText(KeyPlaylistURL))

	items := []*widget.FormItem{widget.NewFormItem(loc.GetText(KeyPlaylistURL), entry)}
	d := dialog.NewForm(loc.GetText(KeyImportPlaylist), loc.GetText(KeySave), loc.GetText(KeyCancel), items, func(confirmed bool) {
		if !confirmed {
			return
		}
		form := editor.PlaylistForm{CourseID: courseID, PlaylistURL: entry.Text}
		ui.toaster.ShowBusy(loc.GetText(KeyLoading))
		ui.async(func() {
			ctx, cancel := context.WithTimeout(context.Background(), ui.timeout)
			defer cancel()
			if _, err := ui.editor.ImportPlaylist(ctx, form); err != nil {
				ui.log.Warn("playlist import failed", "course", courseID, "error", err)
			}
			ui.toaster.HideBusy()
		})
	}, ui.window)
	d.Resize(fyne.NewSize(formWidth(DialogWidth, ui.window.Canvas()), DialogHeight))
	d.Show()
}
