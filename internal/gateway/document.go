package gateway

import (
	"strings"
	"time"
)

// Document is one stored record. Path is relative to the database root.
type Document struct {
	ID   string
	Path string
	Data map[string]any
}

// Filter is an equality condition on one field
type Filter struct {
	Field string
	Value any
}

// Query selects documents of one collection. Filters are combined with AND,
// OrderBy sorts ascending by a single field.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
}

// Where returns a copy of q with an extra equality filter
func (q Query) Where(field string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Field: field, Value: value})
	return q
}

// String returns a string field, or "" when missing or not a string
func (d Document) String(field string) string {
	s, _ := d.Data[field].(string)
	return s
}

// Int returns a numeric field as int. Stores decode numbers differently, so
// all integer and float kinds are accepted.
func (d Document) Int(field string) int {
	switch v := d.Data[field].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Time returns a timestamp field, or the zero time
func (d Document) Time(field string) time.Time {
	switch v := d.Data[field].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

// Collection and field names
const (
	CollectionUsers    = "users"
	CollectionCourses  = "courses"
	CollectionLessons  = "lessons"
	CollectionProgress = "progress"

	FieldName        = "name"
	FieldEmail       = "email"
	FieldRole        = "role"
	FieldCreatedBy   = "createdBy"
	FieldTitle       = "title"
	FieldYouTubeID   = "youtubeId"
	FieldIndex       = "index"
	FieldCompletedAt = "completedAt"
)

// JoinPath joins path segments with "/"
func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}

// UserPath is users/{uid}
func UserPath(uid string) string {
	return JoinPath(CollectionUsers, uid)
}

// CoursePath is courses/{id}
func CoursePath(courseID string) string {
	return JoinPath(CollectionCourses, courseID)
}

// LessonsPath is courses/{id}/lessons
func LessonsPath(courseID string) string {
	return JoinPath(CollectionCourses, courseID, CollectionLessons)
}

// LessonPath is courses/{id}/lessons/{id}
func LessonPath(courseID, lessonID string) string {
	return JoinPath(LessonsPath(courseID), lessonID)
}

// ProgressCollectionPath is users/{uid}/progress
func ProgressCollectionPath(uid string) string {
	return JoinPath(CollectionUsers, uid, CollectionProgress)
}

// ProgressPath is users/{uid}/progress/{lessonId}
func ProgressPath(uid, lessonID string) string {
	return JoinPath(ProgressCollectionPath(uid), lessonID)
}

// splitDocPath splits a document path into its parent collection and id.
// Document paths have an even number of non-empty segments.
func splitDocPath(path string) (collection, id string, ok bool) {
	segments := strings.Split(path, "/")
	if len(segments) < 2 || len(segments)%2 != 0 {
		return "", "", false
	}
	for _, s := range segments {
		if s == "" {
			return "", "", false
		}
	}
	return strings.Join(segments[:len(segments)-1], "/"), segments[len(segments)-1], true
}

// validCollectionPath reports whether path has an odd number of non-empty segments
func validCollectionPath(path string) bool {
	segments := strings.Split(path, "/")
	if len(segments)%2 != 1 {
		return false
	}
	for _, s := range segments {
		if s == "" {
			return false
		}
	}
	return true
}
