package model

// View identifies one full-screen state of the application
type View string

const (
	// ViewLogin is the sign-in screen shown whenever no session exists
	ViewLogin View = "login"

	// ViewRegister is the sign-up screen, reachable only from login
	ViewRegister View = "register"

	// ViewDashboard is the landing screen after a session is established
	ViewDashboard View = "dashboard"

	// ViewCourses lists every course visible to the user
	ViewCourses View = "courses"

	// ViewCourseDetail shows the lessons of the selected course
	ViewCourseDetail View = "course-detail"

	// ViewVideoPlayer plays the selected lesson
	ViewVideoPlayer View = "video-player"

	// ViewProfile shows the signed-in user's profile and progress
	ViewProfile View = "profile"
)

// DefaultLanding is the view entered when a session is established
const DefaultLanding = ViewDashboard

// AllViews lists every view in navigation order
var AllViews = []View{
	ViewLogin,
	ViewRegister,
	ViewDashboard,
	ViewCourses,
	ViewCourseDetail,
	ViewVideoPlayer,
	ViewProfile,
}

// String returns the string representation of View
func (v View) String() string {
	return string(v)
}

// RequiresAuth returns true if the view can only be shown with a session
func (v View) RequiresAuth() bool {
	switch v {
	case ViewLogin, ViewRegister:
		return false
	default:
		return true
	}
}

// IsValid returns true if v is one of the declared views
func (v View) IsValid() bool {
	for _, known := range AllViews {
		if v == known {
			return true
		}
	}
	return false
}

// IsNavTarget returns true if the view is reachable from the navigation bar.
// Detail and player views need a selected entity and are entered by drilling in.
func (v View) IsNavTarget() bool {
	return v == ViewDashboard || v == ViewCourses || v == ViewProfile
}
