package notify

import (
	"sync"

	"github.com/ytget/yt-classroom/internal/logger"
)

// Level is the severity of a notice
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is one piece of feedback
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Notifier displays notices
type Notifier interface {
	Notify(n Notice)
}

// Func adapts a function to Notifier
type Func func(Notice)

// Notify calls f(n)
func (f Func) Notify(n Notice) { f(n) }

// Info sends an informational notice
func Info(n Notifier, title, message string) {
	n.Notify(Notice{Level: LevelInfo, Title: title, Message: message})
}

// Success sends a success notice
func Success(n Notifier, title, message string) {
	n.Notify(Notice{Level: LevelSuccess, Title: title, Message: message})
}

// Error sends an error notice
func Error(n Notifier, title, message string) {
	n.Notify(Notice{Level: LevelError, Title: title, Message: message})
}

// Recorder keeps every notice it receives
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify implements Notifier
func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of the recorded notices
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Count returns the number of notices at level
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, notice := range r.notices {
		if notice.Level == level {
			n++
		}
	}
	return n
}

// Logging forwards notices to next and records them in the log
type Logging struct {
	next Notifier
	log  *logger.Logger
}

// WithLogging wraps next
func WithLogging(next Notifier, log *logger.Logger) *Logging {
	return &Logging{next: next, log: log}
}

// Notify implements Notifier
func (l *Logging) Notify(n Notice) {
	if n.Level == LevelError {
		l.log.Warn("user notified of error", "title", n.Title, "message", n.Message)
	} else {
		l.log.Debug("user notified", "level", n.Level.String(), "title", n.Title)
	}
	if l.next != nil {
		l.next.Notify(n)
	}
}
