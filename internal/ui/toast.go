package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-classroom/internal/notify"
)

// Toaster shows notices as toasts in the top-right corner and keeps the
// latest one in a notification panel under the header.
type Toaster struct {
	window   fyne.Window
	autoHide time.Duration

	// Notification panel
	panel   *fyne.Container
	label   *widget.Label
	spinner *widget.ProgressBarInfinite

	mu    sync.Mutex
	toast *widget.PopUp
}

// NewToaster creates a toaster for window
func NewToaster(window fyne.Window) *Toaster {
	t := &Toaster{window: window, autoHide: ToastAutoHide}

	t.label = widget.NewLabel("")
	t.label.Alignment = fyne.TextAlignLeading
	t.label.Wrapping = fyne.TextWrapWord
	t.spinner = widget.NewProgressBarInfinite()
	t.spinner.Hide()
	t.panel = container.NewBorder(nil, nil, t.spinner, nil, t.label)
	t.panel.Hide()
	return t
}

// Panel returns the notification panel
func (t *Toaster) Panel() fyne.CanvasObject {
	return t.panel
}

// Notify implements notify.Notifier. It is safe to call from any goroutine.
func (t *Toaster) Notify(n notify.Notice) {
	fyne.Do(func() {
		t.showPanel(n.Message, false, importanceFor(n.Level))
		t.showToast(n)
	})
}

// ShowBusy shows message with a spinner until the next notice or HideBusy
func (t *Toaster) ShowBusy(message string) {
	fyne.Do(func() {
		t.showPanel(message, true, widget.MediumImportance)
	})
}

// HideBusy hides the notification panel
func (t *Toaster) HideBusy() {
	fyne.Do(func() {
		t.spinner.Hide()
		t.panel.Hide()
	})
}

func (t *Toaster) showPanel(message string, spinning bool, importance widget.Importance) {
	t.label.Importance = importance
	t.label.SetText(message)
	if spinning {
		t.spinner.Show()
	} else {
		t.spinner.Hide()
	}
	t.panel.Show()
	t.panel.Refresh()
}

// showToast replaces any visible toast; callers are on the UI thread
func (t *Toaster) showToast(n notify.Notice) {
	titleLabel := widget.NewLabel(n.Title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.Importance = importanceFor(n.Level)

	messageLabel := widget.NewLabel(n.Message)
	messageLabel.Wrapping = fyne.TextWrapWord
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var popup *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		popup.Hide()
	})
	closeBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, titleLabel, closeBtn)
	content := container.NewVBox(header, messageLabel)
	popup = widget.NewPopUp(content, t.window.Canvas())

	// Position in top-right corner
	canvasSize := t.window.Canvas().Size()
	toastSize := fyne.NewSize(ToastWidth, ToastHeight)
	popup.Resize(toastSize)
	popup.Move(fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin))

	t.mu.Lock()
	previous := t.toast
	t.toast = popup
	t.mu.Unlock()
	if previous != nil {
		previous.Hide()
	}
	popup.Show()

	// Auto-hide after configured time
	go func() {
		time.Sleep(t.autoHide)
		fyne.Do(func() {
			popup.Hide()
			t.mu.Lock()
			if t.toast == popup {
				t.toast = nil
			}
			t.mu.Unlock()
		})
	}()
}

// current returns the visible toast, if any
func (t *Toaster) current() *widget.PopUp {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.toast
}

func importanceFor(level notify.Level) widget.Importance {
	switch level {
	case notify.LevelError:
		return widget.DangerImportance
	case notify.LevelSuccess:
		return widget.SuccessImportance
	default:
		return widget.MediumImportance
	}
}
