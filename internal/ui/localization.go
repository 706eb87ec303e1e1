package ui

import (
	"fmt"
	"sync"

	"github.com/ytget/yt-classroom/internal/notify"
)

// Localization manages UI text translations
// It is read by background services, so access is guarded.
type Localization struct {
	mu              sync.RWMutex
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyFile              = "file"
	KeyView              = "view"
	KeyLanguage          = "language"
	KeyToggleTheme       = "toggle_theme"
	KeyDashboard         = "dashboard"
	KeyCourses           = "courses"
	KeyProfile           = "profile"
	KeySignIn            = "sign_in"
	KeySignOut           = "sign_out"
	KeyRegister          = "register"
	KeyCreateAccount     = "create_account"
	KeyHaveAccount       = "have_account"
	KeyEmail             = "email"
	KeyPassword          = "password"
	KeyName              = "name"
	KeyRole              = "role"
	KeyTeacher           = "teacher"
	KeyStudent           = "student"
	KeyAddCourse         = "add_course"
	KeyEditCourse        = "edit_course"
	KeyCourseName        = "course_name"
	KeyAddLesson         = "add_lesson"
	KeyEditLesson        = "edit_lesson"
	KeyDeleteLesson      = "delete_lesson"
	KeyConfirmDelete     = "confirm_delete"
	KeyLessonTitle       = "lesson_title"
	KeyVideoURL          = "video_url"
	KeyImportPlaylist    = "import_playlist"
	KeyPlaylistURL       = "playlist_url"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBack              = "back"
	KeyPlay              = "play"
	KeyMarkComplete      = "mark_complete"
	KeyCompleted         = "completed"
	KeyLiveNow           = "live_now"
	KeyOpenInBrowser     = "open_in_browser"
	KeyNoCourses         = "no_courses"
	KeyNoLessons         = "no_lessons"
	KeyLoading           = "loading"
	KeyWelcome           = "welcome"
	KeyMyCourses         = "my_courses"
	KeyAllCourses        = "all_courses"
	KeyLessonsCompleted  = "lessons_completed"
	KeyCourseCount       = "course_count"
	KeyCompletedOf       = "completed_of"
	KeyMarkedComplete    = "marked_complete"
	KeyLoadFailed        = "load_failed"
	KeyTheme             = "theme"
	KeyThemeLight        = "theme_light"
	KeyThemeDark         = "theme_dark"
	KeyErrorOpeningVideo = "error_opening_video"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized format string for key applied to args
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Classroom",
		KeyFile:              "File",
		KeyView:              "View",
		KeyLanguage:          "Language",
		KeyToggleTheme:       "Toggle theme",
		KeyDashboard:         "Dashboard",
		KeyCourses:           "Courses",
		KeyProfile:           "Profile",
		KeySignIn:            "Sign in",
		KeySignOut:           "Sign out",
		KeyRegister:          "Register",
		KeyCreateAccount:     "Create an account",
		KeyHaveAccount:       "I already have an account",
		KeyEmail:             "Email",
		KeyPassword:          "Password",
		KeyName:              "Name",
		KeyRole:              "Role",
		KeyTeacher:           "Teacher",
		KeyStudent:           "Student",
		KeyAddCourse:         "Add course",
		KeyEditCourse:        "Edit course",
		KeyCourseName:        "Course name",
		KeyAddLesson:         "Add lesson",
		KeyEditLesson:        "Edit lesson",
		KeyDeleteLesson:      "Delete lesson",
		KeyConfirmDelete:     "Delete \"%s\"? Other lessons keep their numbers.",
		KeyLessonTitle:       "Lesson title",
		KeyVideoURL:          "YouTube link (https://youtu.be/...)",
		KeyImportPlaylist:    "Import playlist",
		KeyPlaylistURL:       "Playlist link (https://youtube.com/playlist?list=...)",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBack:              "Back",
		KeyPlay:              "Play",
		KeyMarkComplete:      "Mark complete",
		KeyCompleted:         "Completed",
		KeyLiveNow:           "Live now",
		KeyOpenInBrowser:     "Open in browser",
		KeyNoCourses:         "No courses yet",
		KeyNoLessons:         "No lessons yet",
		KeyLoading:           "Loading...",
		KeyWelcome:           "Welcome, %s",
		KeyMyCourses:         "My courses",
		KeyAllCourses:        "All courses",
		KeyLessonsCompleted:  "Lessons completed: %d",
		KeyCourseCount:       "Courses: %d",
		KeyCompletedOf:       "%d of %d lessons completed",
		KeyMarkedComplete:    "Lesson marked as completed",
		KeyLoadFailed:        "Could not load data. Try again later.",
		KeyTheme:             "Theme",
		KeyThemeLight:        "Light",
		KeyThemeDark:         "Dark",
		KeyErrorOpeningVideo: "Error opening video",
	}
	for key, text := range notify.EnglishTexts {
		l.texts["en"][key] = text
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Класс",
		KeyFile:              "Файл",
		KeyView:              "Вид",
		KeyLanguage:          "Язык",
		KeyToggleTheme:       "Сменить тему",
		KeyDashboard:         "Главная",
		KeyCourses:           "Курсы",
		KeyProfile:           "Профиль",
		KeySignIn:            "Войти",
		KeySignOut:           "Выйти",
		KeyRegister:          "Регистрация",
		KeyCreateAccount:     "Создать аккаунт",
		KeyHaveAccount:       "У меня уже есть аккаунт",
		KeyEmail:             "Email",
		KeyPassword:          "Пароль",
		KeyName:              "Имя",
		KeyRole:              "Роль",
		KeyTeacher:           "Преподаватель",
		KeyStudent:           "Студент",
		KeyAddCourse:         "Добавить курс",
		KeyEditCourse:        "Изменить курс",
		KeyCourseName:        "Название курса",
		KeyAddLesson:         "Добавить урок",
		KeyEditLesson:        "Изменить урок",
		KeyDeleteLesson:      "Удалить урок",
		KeyConfirmDelete:     "Удалить «%s»? Номера остальных уроков не изменятся.",
		KeyLessonTitle:       "Название урока",
		KeyVideoURL:          "Ссылка на YouTube (https://youtu.be/...)",
		KeyImportPlaylist:    "Импорт плейлиста",
		KeyPlaylistURL:       "Ссылка на плейлист",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBack:              "Назад",
		KeyPlay:              "Смотреть",
		KeyMarkComplete:      "Отметить пройденным",
		KeyCompleted:         "Пройдено",
		KeyLiveNow:           "В эфире",
		KeyOpenInBrowser:     "Открыть в браузере",
		KeyNoCourses:         "Курсов пока нет",
		KeyNoLessons:         "Уроков пока нет",
		KeyLoading:           "Загрузка...",
		KeyWelcome:           "Здравствуйте, %s",
		KeyMyCourses:         "Мои курсы",
		KeyAllCourses:        "Все курсы",
		KeyLessonsCompleted:  "Пройдено уроков: %d",
		KeyCourseCount:       "Курсов: %d",
		KeyCompletedOf:       "Пройдено %d из %d уроков",
		KeyMarkedComplete:    "Урок отмечен как пройденный",
		KeyLoadFailed:        "Не удалось загрузить данные. Попробуйте позже.",
		KeyTheme:             "Тема",
		KeyThemeLight:        "Светлая",
		KeyThemeDark:         "Тёмная",
		KeyErrorOpeningVideo: "Ошибка открытия видео",

		notify.KeyInvalidForm:      "Проверьте форму",
		notify.KeySaveFailed:       "Не удалось сохранить",
		notify.KeySaved:            "Сохранено",
		notify.KeyCourseSaved:      "Курс «%s» сохранён.",
		notify.KeyLessonSaved:      "Урок «%s» сохранён.",
		notify.KeyLessonDeleted:    "Урок удалён.",
		notify.KeyPlaylistImported: "Плейлист импортирован.",
		notify.KeySignInFailed:     "Не удалось войти",
		notify.KeyRegisterFailed:   "Не удалось зарегистрироваться",
		notify.KeySignOutFailed:    "Не удалось выйти",
		notify.KeyProfileFailed:    "Не удалось загрузить профиль",
		notify.KeyWelcome:          "Добро пожаловать",
		notify.KeyLessonCompleted:  "Урок пройден",
		notify.KeyCompleteFailed:   "Не удалось отметить урок",
		notify.KeyBrowserFailed:    "Не удалось открыть браузер",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Sala de Aula",
		KeyFile:              "Arquivo",
		KeyView:              "Exibir",
		KeyLanguage:          "Idioma",
		KeyToggleTheme:       "Alternar tema",
		KeyDashboard:         "Início",
		KeyCourses:           "Cursos",
		KeyProfile:           "Perfil",
		KeySignIn:            "Entrar",
		KeySignOut:           "Sair",
		KeyRegister:          "Cadastrar",
		KeyCreateAccount:     "Criar uma conta",
		KeyHaveAccount:       "Já tenho uma conta",
		KeyEmail:             "Email",
		KeyPassword:          "Senha",
		KeyName:              "Nome",
		KeyRole:              "Papel",
		KeyTeacher:           "Professor",
		KeyStudent:           "Aluno",
		KeyAddCourse:         "Adicionar curso",
		KeyEditCourse:        "Editar curso",
		KeyCourseName:        "Nome do curso",
		KeyAddLesson:         "Adicionar aula",
		KeyEditLesson:        "Editar aula",
		KeyDeleteLesson:      "Excluir aula",
		KeyConfirmDelete:     "Excluir \"%s\"? As outras aulas mantêm seus números.",
		KeyLessonTitle:       "Título da aula",
		KeyVideoURL:          "Link do YouTube (https://youtu.be/...)",
		KeyImportPlaylist:    "Importar playlist",
		KeyPlaylistURL:       "Link da playlist",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBack:              "Voltar",
		KeyPlay:              "Assistir",
		KeyMarkComplete:      "Marcar como concluída",
		KeyCompleted:         "Concluída",
		KeyLiveNow:           "Ao vivo",
		KeyOpenInBrowser:     "Abrir no navegador",
		KeyNoCourses:         "Nenhum curso ainda",
		KeyNoLessons:         "Nenhuma aula ainda",
		KeyLoading:           "Carregando...",
		KeyWelcome:           "Bem-vindo, %s",
		KeyMyCourses:         "Meus cursos",
		KeyAllCourses:        "Todos os cursos",
		KeyLessonsCompleted:  "Aulas concluídas: %d",
		KeyCourseCount:       "Cursos: %d",
		KeyCompletedOf:       "%d de %d aulas concluídas",
		KeyMarkedComplete:    "Aula marcada como concluída",
		KeyLoadFailed:        "Não foi possível carregar os dados. Tente mais tarde.",
		KeyTheme:             "Tema",
		KeyThemeLight:        "Claro",
		KeyThemeDark:         "Escuro",
		KeyErrorOpeningVideo: "Erro ao abrir o vídeo",

		notify.KeyInvalidForm:      "Verifique o formulário",
		notify.KeySaveFailed:       "Não foi possível salvar",
		notify.KeySaved:            "Salvo",
		notify.KeyCourseSaved:      "Curso \"%s\" salvo.",
		notify.KeyLessonSaved:      "Aula \"%s\" salva.",
		notify.KeyLessonDeleted:    "Aula excluída.",
		notify.KeyPlaylistImported: "Playlist importada.",
		notify.KeySignInFailed:     "Falha ao entrar",
		notify.KeyRegisterFailed:   "Falha no cadastro",
		notify.KeySignOutFailed:    "Falha ao sair",
		notify.KeyProfileFailed:    "Não foi possível carregar seu perfil",
		notify.KeyWelcome:          "Bem-vindo",
		notify.KeyLessonCompleted:  "Aula concluída",
		notify.KeyCompleteFailed:   "Não foi possível marcar a aula",
		notify.KeyBrowserFailed:    "Não foi possível abrir o navegador",
	}
}
