package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/logger"
	"github.com/ytget/yt-classroom/internal/model"
)

// Default limits
const (
	DefaultMaxParallel = 4
)

// ErrProfileMissing is returned when a signed-in user has no profile document
var ErrProfileMissing = errors.New("user profile not found")

// CourseFilter restricts the course list. An empty CreatedBy lists every course.
type CourseFilter struct {
	CreatedBy string
}

// Service reads catalog entities
type Service struct {
	store       gateway.Store
	meta        MetadataLookup
	log         *logger.Logger
	maxParallel int
	now         func() time.Time
}

// NewService creates a catalog service. A nil meta disables metadata lookups.
func NewService(store gateway.Store, meta MetadataLookup, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:       store,
		meta:        meta,
		log:         log,
		maxParallel: DefaultMaxParallel,
		now:         time.Now,
	}
}

// SetMaxParallel bounds concurrent enrichments
func (s *Service) SetMaxParallel(n int) {
	if n < 1 {
		n = 1
	}
	s.maxParallel = n
}

// Courses lists courses in store order. Failures are logged and yield an
// empty list together with the error.
func (s *Service) Courses(ctx context.Context, filter CourseFilter) ([]model.Course, error) {
	q := gateway.Query{Collection: gateway.CollectionCourses}
	if filter.CreatedBy != "" {
		q = q.Where(gateway.FieldCreatedBy, filter.CreatedBy)
	}

	docs, err := s.store.Query(ctx, q)
	if err != nil {
		s.log.Warn("failed to load courses", "createdBy", filter.CreatedBy, "error", err)
		return []model.Course{}, errors.Wrap(err, "load courses")
	}

	courses := make([]model.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, courseFromDoc(doc))
	}
	return courses, nil
}

// Lessons lists a course's lessons by ascending index
func (s *Service) Lessons(ctx context.Context, courseID string) ([]model.Lesson, error) {
	docs, err := s.store.Query(ctx, gateway.Query{
		Collection: gateway.LessonsPath(courseID),
		OrderBy:    gateway.FieldIndex,
	})
	if err != nil {
		s.log.Warn("failed to load lessons", "course", courseID, "error", err)
		return []model.Lesson{}, errors.Wrapf(err, "load lessons of %s", courseID)
	}

	lessons := make([]model.Lesson, 0, len(docs))
	for _, doc := range docs {
		lessons = append(lessons, lessonFromDoc(courseID, doc))
	}
	model.SortLessons(lessons)
	return lessons, nil
}

// EnrichLesson resolves completion for uid and video metadata for one
// lesson. Each lookup that fails leaves its fields at the fallback value.
func (s *Service) EnrichLesson(ctx context.Context, uid string, lesson model.Lesson) model.LessonRow {
	row := model.LessonRow{Lesson: lesson}

	if uid != "" {
		_, err := s.store.Get(ctx, gateway.ProgressPath(uid, lesson.ID))
		switch {
		case err == nil:
			row.Completed = true
		case gateway.IsNotFound(err):
		default:
			s.log.Debug("progress lookup failed", "lesson", lesson.ID, "error", err)
		}
	}

	if s.meta != nil && lesson.YouTubeID != "" {
		meta, err := s.meta.Lookup(ctx, lesson.YouTubeID)
		if err != nil {
			s.log.Debug("metadata lookup failed", "video", lesson.YouTubeID, "error", err)
		} else if meta != nil {
			row.Title = meta.Title
			row.Live = meta.Live
		}
	}

	return row
}

// EnrichLessons enriches every lesson concurrently and returns once all of
// them settled. Rows keep the order of lessons. onRow, if set, sees each row
// as it completes.
func (s *Service) EnrichLessons(ctx context.Context, uid string, lessons []model.Lesson, onRow RowFunc) []model.LessonRow {
	rows := make([]model.LessonRow, len(lessons))

	g := new(errgroup.Group)
	g.SetLimit(s.maxParallel)
	for i, lesson := range lessons {
		g.Go(func() error {
			row := s.EnrichLesson(ctx, uid, lesson)
			rows[i] = row
			if onRow != nil {
				onRow(i, row)
			}
			return nil
		})
	}
	_ = g.Wait()

	return rows
}

// CourseDetail loads and enriches all lessons of course for uid.
// A lesson load failure yields a detail with no rows and the error.
func (s *Service) CourseDetail(ctx context.Context, uid string, course model.Course) (*model.CourseDetail, error) {
	detail := &model.CourseDetail{Course: course}

	lessons, err := s.Lessons(ctx, course.ID)
	if err != nil {
		return detail, err
	}

	detail.Rows = s.EnrichLessons(ctx, uid, lessons, nil)
	return detail, nil
}

// Progress lists the completion records of uid
func (s *Service) Progress(ctx context.Context, uid string) ([]model.Progress, error) {
	docs, err := s.store.Query(ctx, gateway.Query{Collection: gateway.ProgressCollectionPath(uid)})
	if err != nil {
		s.log.Warn("failed to load progress", "uid", uid, "error", err)
		return []model.Progress{}, errors.Wrapf(err, "load progress of %s", uid)
	}

	progress := make([]model.Progress, 0, len(docs))
	for _, doc := range docs {
		progress = append(progress, model.Progress{
			UserID:      uid,
			LessonID:    doc.ID,
			CompletedAt: doc.Time(gateway.FieldCompletedAt),
		})
	}
	return progress, nil
}

// Profile reads users/{uid} and merges it with the identity
func (s *Service) Profile(ctx context.Context, id gateway.Identity) (*model.User, error) {
	doc, err := s.store.Get(ctx, gateway.UserPath(id.UID))
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, errors.Wrapf(ErrProfileMissing, "uid %s", id.UID)
		}
		return nil, errors.Wrapf(err, "load profile of %s", id.UID)
	}

	role, err := model.ParseRole(doc.String(gateway.FieldRole))
	if err != nil {
		return nil, errors.Wrapf(err, "profile of %s", id.UID)
	}

	email := doc.String(gateway.FieldEmail)
	if email == "" {
		email = id.Email
	}
	return &model.User{
		UID:   id.UID,
		Email: email,
		Name:  doc.String(gateway.FieldName),
		Role:  role,
	}, nil
}

// SaveProfile writes users/{uid}
func (s *Service) SaveProfile(ctx context.Context, user model.User) error {
	err := s.store.Set(ctx, gateway.UserPath(user.UID), map[string]any{
		gateway.FieldName:  strings.TrimSpace(user.Name),
		gateway.FieldEmail: user.Email,
		gateway.FieldRole:  user.Role.String(),
	})
	return errors.Wrapf(err, "save profile of %s", user.UID)
}

// MarkComplete records that uid finished lessonID. Repeating it overwrites
// the timestamp with the latest one.
func (s *Service) MarkComplete(ctx context.Context, uid, lessonID string) error {
	if uid == "" || lessonID == "" {
		return gateway.InvalidError(gateway.OpSet, "user and lesson are required")
	}
	err := s.store.Set(ctx, gateway.ProgressPath(uid, lessonID), map[string]any{
		gateway.FieldCompletedAt: s.now().UTC(),
	})
	if err != nil {
		return errors.Wrapf(err, "mark lesson %s complete", lessonID)
	}
	s.log.Info("lesson completed", "uid", uid, "lesson", lessonID)
	return nil
}

// NextLessonIndex returns the index for a new lesson: the current count plus one
func (s *Service) NextLessonIndex(ctx context.Context, courseID string) (int, error) {
	docs, err := s.store.Query(ctx, gateway.Query{Collection: gateway.LessonsPath(courseID)})
	if err != nil {
		return 0, errors.Wrapf(err, "count lessons of %s", courseID)
	}
	return len(docs) + 1, nil
}

func courseFromDoc(doc gateway.Document) model.Course {
	return model.Course{
		ID:        doc.ID,
		Name:      doc.String(gateway.FieldName),
		CreatedBy: doc.String(gateway.FieldCreatedBy),
	}
}

func lessonFromDoc(courseID string, doc gateway.Document) model.Lesson {
	return model.Lesson{
		ID:        doc.ID,
		CourseID:  courseID,
		Title:     doc.String(gateway.FieldTitle),
		YouTubeID: doc.String(gateway.FieldYouTubeID),
		Index:     doc.Int(gateway.FieldIndex),
	}
}
