package model

import (
	"sort"
	"strings"
	"time"
)

// User is the signed-in identity merged with its stored profile
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// GetDisplayName returns the profile name, falling back to the email
func (u *User) GetDisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return u.Email
}

// Course groups lessons authored by one teacher
type Course struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
}

// Lesson is one video within a course.
// Index is the 1-based position assigned at creation. Indices are never
// reassigned, so gaps and duplicates are possible.
type Lesson struct {
	ID        string `json:"id"`
	CourseID  string `json:"-"`
	Title     string `json:"title"`
	YouTubeID string `json:"youtubeId"`
	Index     int    `json:"index"`
}

// Progress marks a lesson as completed by a user. The record existing is the
// completion signal.
type Progress struct {
	UserID      string    `json:"-"`
	LessonID    string    `json:"-"`
	CompletedAt time.Time `json:"completedAt"`
}

// VideoMeta is the best-effort metadata returned by the video API
type VideoMeta struct {
	ID    string
	Title string
	Live  bool
}

// LessonRow is a lesson together with its enrichment results
type LessonRow struct {
	Lesson    Lesson
	Title     string // title from video metadata, empty if lookup failed
	Live      bool
	Completed bool
}

// GetDisplayTitle returns the metadata title, or the stored lesson title
func (r LessonRow) GetDisplayTitle() string {
	if strings.TrimSpace(r.Title) != "" {
		return r.Title
	}
	if strings.TrimSpace(r.Lesson.Title) != "" {
		return r.Lesson.Title
	}
	return r.Lesson.YouTubeID
}

// CourseDetail is a course with its fully enriched lesson rows
type CourseDetail struct {
	Course Course
	Rows   []LessonRow
}

// CompletedCount returns the number of rows marked completed
func (d *CourseDetail) CompletedCount() int {
	n := 0
	for _, row := range d.Rows {
		if row.Completed {
			n++
		}
	}
	return n
}

// SortLessons orders lessons by ascending index, keeping the original order
// of lessons that share an index.
func SortLessons(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].Index < lessons[j].Index
	})
}
