package notify

import "fmt"

// Text keys for notices raised by services
const (
	KeyInvalidForm      = "notice_invalid_form"
	KeySaveFailed       = "notice_save_failed"
	KeySaved            = "notice_saved"
	KeyCourseSaved      = "notice_course_saved"
	KeyLessonSaved      = "notice_lesson_saved"
	KeyLessonDeleted    = "notice_lesson_deleted"
	KeyPlaylistImported = "notice_playlist_imported"
	KeySignInFailed     = "notice_sign_in_failed"
	KeyRegisterFailed   = "notice_register_failed"
	KeySignOutFailed    = "notice_sign_out_failed"
	KeyProfileFailed    = "notice_profile_failed"
	KeyWelcome          = "notice_welcome"
	KeyLessonCompleted  = "notice_lesson_completed"
	KeyCompleteFailed   = "notice_complete_failed"
	KeyBrowserFailed    = "notice_browser_failed"
)

// Texts resolves text keys in the current language
type Texts interface {
	GetText(key string) string
	Format(key string, args ...any) string
}

// EnglishTexts holds the English notice texts
var EnglishTexts = map[string]string{
	KeyInvalidForm:      "Please check the form",
	KeySaveFailed:       "Could not save",
	KeySaved:            "Saved",
	KeyCourseSaved:      "Course \"%s\" saved.",
	KeyLessonSaved:      "Lesson \"%s\" saved.",
	KeyLessonDeleted:    "Lesson deleted.",
	KeyPlaylistImported: "Playlist imported.",
	KeySignInFailed:     "Sign in failed",
	KeyRegisterFailed:   "Registration failed",
	KeySignOutFailed:    "Sign out failed",
	KeyProfileFailed:    "Could not load your profile",
	KeyWelcome:          "Welcome",
	KeyLessonCompleted:  "Lesson completed",
	KeyCompleteFailed:   "Could not mark complete",
	KeyBrowserFailed:    "Could not open the browser",
}

// English is used until a localization is attached
var English Texts = textMap(EnglishTexts)

type textMap map[string]string

func (m textMap) GetText(key string) string {
	if text, ok := m[key]; ok {
		return text
	}
	return key
}

func (m textMap) Format(key string, args ...any) string {
	return fmt.Sprintf(m.GetText(key), args...)
}
