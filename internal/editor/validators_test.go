package editor

import (
	"testing"

	"github.com/ytget/yt-classroom/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   any
		fields []string
	}{
		{"course ok", CourseForm{Name: "Algebra I"}, nil},
		{"course empty", CourseForm{Name: ""}, []string{"name"}},
		{"course blank", CourseForm{Name: "   "}, []string{"name"}},
		{"lesson ok", LessonForm{Title: "Intro", SourceURL: "https://youtu.be/abc123XYZ"}, nil},
		{"lesson with playlist params", LessonForm{Title: "Intro", SourceURL: "https://youtube.com/watch?v=xyz&list=PL1"}, nil},
		{"lesson bad url", LessonForm{Title: "Intro", SourceURL: "https://vimeo.com/123"}, []string{"url"}},
		{"lesson empty", LessonForm{}, []string{"title", "url"}},
		{"register ok", RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: model.RoleNameTeacher}, nil},
		{"register bad role", RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "secret1", Role: "admin"}, []string{"role"}},
		{"register short password", RegisterForm{Name: "Ada", Email: "ada@example.com", Password: "123", Role: model.RoleNameStudent}, []string{"password"}},
		{"login bad email", LoginForm{Email: "ada", Password: "x"}, []string{"email"}},
		{"playlist not a url", PlaylistForm{PlaylistURL: "list"}, []string{"playlist"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.form)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if len(verr.Fields) != len(tt.fields) {
				t.Errorf("expected fields %v, got %v", tt.fields, verr.Fields)
			}
			for _, f := range tt.fields {
				if verr.Field(f) == "" {
					t.Errorf("expected a message for %s, got %v", f, verr.Fields)
				}
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	err := Validate(LessonForm{Title: " ", SourceURL: "not a link"}).(*ValidationError)

	if got := err.Field("title"); got != "title cannot be blank" {
		t.Errorf("unexpected title message %q", got)
	}
	if got := err.Field("url"); got != "could not find a YouTube video in this link" {
		t.Errorf("unexpected url message %q", got)
	}
	if err.Error() != "title cannot be blank; could not find a YouTube video in this link" {
		t.Errorf("unexpected joined message %q", err.Error())
	}
}

func TestOpenForms(t *testing.T) {
	create := OpenCourse(nil)
	if create.Mode != ModeCreate || create.Name != "" || create.Key() != "course:new" {
		t.Errorf("unexpected create form %+v", create)
	}

	edit := OpenCourse(&model.Course{ID: "c1", Name: "Algebra I"})
	if edit.Mode != ModeEdit || edit.Name != "Algebra I" || edit.Key() != "course:c1" {
		t.Errorf("unexpected edit form %+v", edit)
	}

	blank := OpenLesson("c1", nil)
	if blank.Mode != ModeCreate || blank.CourseID != "c1" || blank.SourceURL != "" {
		t.Errorf("unexpected blank lesson form %+v", blank)
	}

	lesson := OpenLesson("c1", &model.Lesson{ID: "l1", Title: "Intro", YouTubeID: "abc123XYZ", Index: 1})
	if lesson.Mode != ModeEdit || lesson.Title != "Intro" || lesson.Key() != "lesson:c1:l1" {
		t.Errorf("unexpected lesson form %+v", lesson)
	}
	if id, ok := lesson.VideoID(); !ok || id != "abc123XYZ" {
		t.Errorf("pre-filled URL should resolve to the stored id, got %q (%v)", id, ok)
	}
}
