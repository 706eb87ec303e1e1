package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/rolegate"
)

// LessonRow represents a compact lesson row widget
type LessonRow struct {
	widget.BaseWidget

	row          model.LessonRow
	localization *Localization

	// UI components
	indexLabel  *widget.Label
	titleLabel  *widget.Label
	statusLabel *widget.Label

	// Action buttons
	playBtn   *widget.Button
	editBtn   *widget.Button
	deleteBtn *widget.Button

	// Callbacks
	onPlay   func(lesson model.Lesson)
	onEdit   func(lesson model.Lesson)
	onDelete func(lesson model.Lesson)
}

// NewLessonRow creates a row showing the stored lesson until enrichment arrives
func NewLessonRow(lesson model.Lesson, localization *Localization) *LessonRow {
	lr := &LessonRow{
		row:          model.LessonRow{Lesson: lesson},
		localization: localization,
	}
	lr.ExtendBaseWidget(lr)
	lr.createUI()
	lr.updateFromRow()
	return lr
}

// SetCallbacks sets the action callbacks. The row's lesson is passed
// explicitly so handlers never depend on which widget fired.
func (lr *LessonRow) SetCallbacks(onPlay, onEdit, onDelete func(lesson model.Lesson)) {
	lr.onPlay = onPlay
	lr.onEdit = onEdit
	lr.onDelete = onDelete
}

// RegisterGated tags the author-only buttons
func (lr *LessonRow) RegisterGated(gate *rolegate.Gate) {
	gate.Register(rolegate.TeacherOnly, lr.editBtn, lr.deleteBtn)
}

// UpdateRow applies an enrichment result
func (lr *LessonRow) UpdateRow(row model.LessonRow) {
	lr.row = row
	lr.updateFromRow()
	lr.Refresh()
}

// Row returns the current row data
func (lr *LessonRow) Row() model.LessonRow {
	return lr.row
}

// createUI creates the UI components
func (lr *LessonRow) createUI() {
	lr.indexLabel = widget.NewLabel("")
	lr.indexLabel.TextStyle = fyne.TextStyle{Monospace: true}

	lr.titleLabel = widget.NewLabel("")
	lr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	lr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	lr.statusLabel = widget.NewLabel("")
	lr.statusLabel.Alignment = fyne.TextAlignTrailing

	lr.playBtn = widget.NewButton(IconPlay+" "+lr.localization.GetText(KeyPlay), func() {
		if lr.onPlay != nil {
			lr.onPlay(lr.row.Lesson)
		}
	})
	lr.playBtn.Importance = widget.HighImportance

	lr.editBtn = widget.NewButton(IconEdit, func() {
		if lr.onEdit != nil {
			lr.onEdit(lr.row.Lesson)
		}
	})
	lr.editBtn.Importance = widget.LowImportance

	lr.deleteBtn = widget.NewButton(IconDelete, func() {
		if lr.onDelete != nil {
			lr.onDelete(lr.row.Lesson)
		}
	})
	lr.deleteBtn.Importance = widget.LowImportance
}

// updateFromRow updates UI components based on row state
func (lr *LessonRow) updateFromRow() {
	lr.indexLabel.SetText(fmt.Sprintf(LessonIndexFormat, lr.row.Lesson.Index))

	title := strings.Join(strings.Fields(lr.row.GetDisplayTitle()), " ")
	lr.titleLabel.SetText(title)

	var badges []string
	switch {
	case lr.row.Live:
		lr.statusLabel.Importance = widget.DangerImportance
		badges = append(badges, IconLive+" "+lr.localization.GetText(KeyLiveNow))
	case lr.row.Completed:
		lr.statusLabel.Importance = widget.SuccessImportance
	default:
		lr.statusLabel.Importance = widget.MediumImportance
	}
	if lr.row.Completed {
		badges = append(badges, IconCompleted+" "+lr.localization.GetText(KeyCompleted))
	}
	lr.statusLabel.SetText(strings.Join(badges, MiddleDotSeparator))
}

// CreateRenderer creates the widget renderer
func (lr *LessonRow) CreateRenderer() fyne.WidgetRenderer {
	actions := container.NewHBox(lr.statusLabel, lr.playBtn, lr.editBtn, lr.deleteBtn)
	content := container.NewBorder(nil, nil, lr.indexLabel, actions, lr.titleLabel)
	return widget.NewSimpleRenderer(content)
}

// MinSize keeps rows readable in narrow windows
func (lr *LessonRow) MinSize() fyne.Size {
	lr.ExtendBaseWidget(lr)
	size := lr.BaseWidget.MinSize()
	if size.Width < RowMinWidth {
		size.Width = RowMinWidth
	}
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	return size
}
