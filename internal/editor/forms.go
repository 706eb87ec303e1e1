package editor

import (
	"strings"

	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/platform"
)

// Mode tells whether a form creates a new entity or edits an existing one
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// String returns the mode name
func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// CourseForm holds the course modal fields
type CourseForm struct {
	Mode     Mode   `json:"-"`
	CourseID string `json:"-"`
	Name     string `json:"name" validate:"required,notblank,max=120"`
}

// Key identifies the entity the form writes
func (f CourseForm) Key() string {
	if f.Mode == ModeEdit {
		return "course:" + f.CourseID
	}
	return "course:new"
}

// LessonForm holds the lesson modal fields. SourceURL is resolved to a
// video id on submit; the index is assigned automatically on create.
type LessonForm struct {
	Mode      Mode   `json:"-"`
	CourseID  string `json:"-"`
	LessonID  string `json:"-"`
	Title     string `json:"title" validate:"required,notblank,max=200"`
	SourceURL string `json:"url" validate:"required,videoref"`
}

// Key identifies the entity the form writes
func (f LessonForm) Key() string {
	if f.Mode == ModeEdit {
		return "lesson:" + f.CourseID + ":" + f.LessonID
	}
	return "lesson:" + f.CourseID + ":new"
}

// VideoID returns the id resolved from SourceURL
func (f LessonForm) VideoID() (string, bool) {
	return platform.ExtractVideoID(f.SourceURL)
}

// RegisterForm holds the sign-up fields
type RegisterForm struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,role"`
}

// LoginForm holds the sign-in fields
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PlaylistForm holds the playlist import field
type PlaylistForm struct {
	CourseID    string `json:"-"`
	PlaylistURL string `json:"playlist" validate:"required,url"`
}

// OpenCourse returns a form pre-filled from existing, or a blank create form
func OpenCourse(existing *model.Course) CourseForm {
	if existing == nil {
		return CourseForm{Mode: ModeCreate}
	}
	return CourseForm{Mode: ModeEdit, CourseID: existing.ID, Name: existing.Name}
}

// OpenLesson returns a form pre-filled from existing, or a blank create form
// for courseID. The source field shows the watch URL of the stored video.
func OpenLesson(courseID string, existing *model.Lesson) LessonForm {
	if existing == nil {
		return LessonForm{Mode: ModeCreate, CourseID: courseID}
	}
	form := LessonForm{
		Mode:     ModeEdit,
		CourseID: courseID,
		LessonID: existing.ID,
		Title:    existing.Title,
	}
	if existing.YouTubeID != "" {
		form.SourceURL = platform.WatchURL(existing.YouTubeID)
	}
	return form
}

func (f *CourseForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

func (f *LessonForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.SourceURL = strings.TrimSpace(f.SourceURL)
}

func (f *RegisterForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Role = strings.ToLower(strings.TrimSpace(f.Role))
}

func (f *LoginForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// Check validates a login form
func (f LoginForm) Check() (LoginForm, error) {
	f.normalize()
	return f, Validate(f)
}

// Check validates a registration form
func (f RegisterForm) Check() (RegisterForm, error) {
	f.normalize()
	return f, Validate(f)
}
