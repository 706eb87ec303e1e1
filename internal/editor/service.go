package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ytget/yt-classroom/internal/catalog"
	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/logger"
	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/notify"
)

// ErrDuplicateSubmission is returned while an earlier submission of the same
// form is still in flight
var ErrDuplicateSubmission = errors.New("submission already in progress")

// MaxFinishedSubmissions bounds how many finished submissions are kept
const MaxFinishedSubmissions = 32

// FormCloser is the part of the router the editor drives after a save.
// A save closes the form it came from, never one opened since.
type FormCloser interface {
	EditingSeq() uint64
	EndEditingIf(seq uint64) bool
	UpdateCourse(course model.Course)
}

// Service validates and writes form submissions
type Service struct {
	store     gateway.Store
	catalog   *catalog.Service
	playlists catalog.PlaylistSource
	forms     FormCloser
	notifier  notify.Notifier
	texts     notify.Texts
	log       *logger.Logger

	submissions map[string]*model.Submission
	mu          sync.RWMutex
	onUpdate    func(model.Submission) // callback for UI updates
}

// NewService creates an editor service. playlists may be nil when playlist
// import is unavailable.
func NewService(store gateway.Store, cat *catalog.Service, forms FormCloser, notifier notify.Notifier, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if notifier == nil {
		notifier = notify.Func(func(notify.Notice) {})
	}
	return &Service{
		store:       store,
		catalog:     cat,
		forms:       forms,
		notifier:    notifier,
		texts:       notify.English,
		log:         log,
		submissions: make(map[string]*model.Submission),
	}
}

// SetPlaylistSource enables playlist import
func (s *Service) SetPlaylistSource(src catalog.PlaylistSource) {
	s.playlists = src
}

// SetTexts sets the translations used for notices
func (s *Service) SetTexts(texts notify.Texts) {
	if texts != nil {
		s.texts = texts
	}
}

// SetUpdateCallback sets the callback function for submission updates
func (s *Service) SetUpdateCallback(callback func(model.Submission)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// GetSubmission returns a copy of a submission by ID
func (s *Service) GetSubmission(id string) (model.Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[id]
	if !ok {
		return model.Submission{}, false
	}
	return *sub, true
}

// GetActiveCount returns the number of submissions in flight
func (s *Service) GetActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sub := range s.submissions {
		if sub.Status.IsActive() {
			n++
		}
	}
	return n
}

// SubmitCourse creates a course owned by uid, or renames an existing one
func (s *Service) SubmitCourse(ctx context.Context, uid string, form CourseForm) (*model.Course, error) {
	kind := model.SubmissionCreateCourse
	if form.Mode == ModeEdit {
		kind = model.SubmissionRenameCourse
	}
	sub, err := s.begin(form.Key(), kind, true)
	if err != nil {
		return nil, err
	}

	form.normalize()
	if err := Validate(form); err != nil {
		return nil, s.reject(sub, err)
	}

	course := model.Course{ID: form.CourseID, Name: form.Name, CreatedBy: uid}
	if form.Mode == ModeEdit {
		err = s.store.Update(ctx, gateway.CoursePath(form.CourseID), map[string]any{
			gateway.FieldName: form.Name,
		})
	} else {
		course.ID, err = s.store.Add(ctx, gateway.CollectionCourses, map[string]any{
			gateway.FieldName:      form.Name,
			gateway.FieldCreatedBy: uid,
		})
	}
	if err != nil {
		return nil, s.fail(sub, errors.Wrapf(err, "%s %q", kind, form.Name))
	}

	if form.Mode == ModeEdit && s.forms != nil {
		s.forms.UpdateCourse(course)
	}
	s.save(sub, course.ID, s.texts.Format(notify.KeyCourseSaved, course.Name))
	return &course, nil
}

// SubmitLesson creates a lesson at the next index, or updates the title and
// video of an existing one. Updates never change the index.
func (s *Service) SubmitLesson(ctx context.Context, form LessonForm) (*model.Lesson, error) {
	kind := model.SubmissionCreateLesson
	if form.Mode == ModeEdit {
		kind = model.SubmissionUpdateLesson
	}
	sub, err := s.begin(form.Key(), kind, true)
	if err != nil {
		return nil, err
	}

	form.normalize()
	if err := Validate(form); err != nil {
		return nil, s.reject(sub, err)
	}
	videoID, _ := form.VideoID()

	lesson := model.Lesson{
		ID:        form.LessonID,
		CourseID:  form.CourseID,
		Title:     form.Title,
		YouTubeID: videoID,
	}
	if form.Mode == ModeEdit {
		err = s.store.Update(ctx, gateway.LessonPath(form.CourseID, form.LessonID), map[string]any{
			gateway.FieldTitle:     lesson.Title,
			gateway.FieldYouTubeID: lesson.YouTubeID,
		})
	} else {
		lesson.Index, err = s.catalog.NextLessonIndex(ctx, form.CourseID)
		if err == nil {
			lesson.ID, err = s.store.Add(ctx, gateway.LessonsPath(form.CourseID), map[string]any{
				gateway.FieldTitle:     lesson.Title,
				gateway.FieldYouTubeID: lesson.YouTubeID,
				gateway.FieldIndex:     lesson.Index,
			})
		}
	}
	if err != nil {
		return nil, s.fail(sub, errors.Wrapf(err, "%s %q", kind, form.Title))
	}

	s.save(sub, lesson.ID, s.texts.Format(notify.KeyLessonSaved, lesson.Title))
	return &lesson, nil
}

// DeleteLesson removes a lesson. Remaining lessons keep their indices.
func (s *Service) DeleteLesson(ctx context.Context, courseID, lessonID string) error {
	sub, err := s.begin("lesson:"+courseID+":"+lessonID, model.SubmissionDeleteLesson, false)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, gateway.LessonPath(courseID, lessonID)); err != nil {
		return s.fail(sub, errors.Wrapf(err, "delete lesson %s", lessonID))
	}
	s.save(sub, lessonID, s.texts.GetText(notify.KeyLessonDeleted))
	return nil
}

// ImportPlaylist adds every video of a playlist to the course
func (s *Service) ImportPlaylist(ctx context.Context, form PlaylistForm) ([]model.Lesson, error) {
	sub, err := s.begin("playlist:"+form.CourseID, model.SubmissionImport, false)
	if err != nil {
		return nil, err
	}
	if err := Validate(form); err != nil {
		return nil, s.reject(sub, err)
	}
	if s.playlists == nil {
		return nil, s.fail(sub, errors.New("playlist import is not available"))
	}

	playlist, err := s.playlists.ParsePlaylist(ctx, form.PlaylistURL)
	if err != nil {
		return nil, s.fail(sub, err)
	}
	created, err := s.catalog.ImportPlaylist(ctx, form.CourseID, playlist)
	if err != nil {
		return created, s.fail(sub, err)
	}

	s.save(sub, form.CourseID, s.texts.GetText(notify.KeyPlaylistImported))
	return created, nil
}

// begin registers a pending submission unless one with the same key is in
// flight. Submissions from a form remember which form was open.
func (s *Service) begin(key string, kind model.SubmissionKind, fromForm bool) (*model.Submission, error) {
	var formSeq uint64
	if fromForm && s.forms != nil {
		formSeq = s.forms.EditingSeq()
	}

	s.mu.Lock()
	for _, sub := range s.submissions {
		if sub.Key == key && sub.Status.IsActive() {
			s.mu.Unlock()
			s.log.Debug("duplicate submission ignored", "key", key)
			return nil, errors.Wrap(ErrDuplicateSubmission, key)
		}
	}
	sub := &model.Submission{
		ID:        generateSubmissionID(),
		Key:       key,
		Kind:      kind,
		Status:    model.SubmissionPending,
		FormSeq:   formSeq,
		StartedAt: time.Now(),
	}
	s.submissions[sub.ID] = sub
	s.mu.Unlock()

	s.notifyUpdate(sub)
	return sub, nil
}

// reject records a validation failure. The gateway is never called.
func (s *Service) reject(sub *model.Submission, err error) error {
	s.finish(sub, model.SubmissionRejected, "", err)
	notify.Error(s.notifier, s.texts.GetText(notify.KeyInvalidForm), err.Error())
	return err
}

// fail records a write failure. The form stays open so the user can retry.
func (s *Service) fail(sub *model.Submission, err error) error {
	s.finish(sub, model.SubmissionFailed, "", err)
	s.log.Warn("submission failed", "kind", string(sub.Kind), "error", err)
	notify.Error(s.notifier, s.texts.GetText(notify.KeySaveFailed), gateway.UserMessage(err))
	return err
}

// save records success, closes the originating form if it is still open
// and tells the user
func (s *Service) save(sub *model.Submission, entityID, message string) {
	if s.forms != nil && sub.FormSeq != 0 {
		s.forms.EndEditingIf(sub.FormSeq)
	}
	s.finish(sub, model.SubmissionSaved, entityID, nil)
	s.log.Info("submission saved", "kind", string(sub.Kind), "entity", entityID)
	notify.Success(s.notifier, s.texts.GetText(notify.KeySaved), message)
}

func (s *Service) finish(sub *model.Submission, status model.SubmissionStatus, entityID string, err error) {
	s.mu.Lock()
	sub.Status = status
	sub.EntityID = entityID
	if err != nil {
		sub.LastError = err.Error()
	}
	sub.FinishedAt = time.Now()
	s.pruneLocked()
	s.mu.Unlock()

	s.notifyUpdate(sub)
}

// pruneLocked drops the oldest finished submissions beyond the limit
func (s *Service) pruneLocked() {
	for {
		finished := 0
		var oldest *model.Submission
		for _, sub := range s.submissions {
			if !sub.Status.IsFinished() {
				continue
			}
			finished++
			if oldest == nil || sub.FinishedAt.Before(oldest.FinishedAt) {
				oldest = sub
			}
		}
		if finished <= MaxFinishedSubmissions {
			return
		}
		delete(s.submissions, oldest.ID)
	}
}

// notifyUpdate sends a copy of sub to the update callback
func (s *Service) notifyUpdate(sub *model.Submission) {
	s.mu.RLock()
	callback := s.onUpdate
	snapshot := *sub
	s.mu.RUnlock()

	if callback != nil {
		callback(snapshot)
	}
}

// generateSubmissionID generates a unique submission ID using UUID v7
func generateSubmissionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 fails
		return uuid.New().String()
	}
	return id.String()
}
