package navigation

// ViewState identifies a screen of the portal.
type ViewState string

const (
	ViewHome          ViewState = "home"
	ViewDashboard     ViewState = "dashboard"
	ViewStudents      ViewState = "students"
	ViewCourses       ViewState = "courses"
	ViewExplore       ViewState = "explore"
	ViewMentors       ViewState = "mentors"
	ViewAdmin         ViewState = "admin"
	ViewUserProfile   ViewState = "user-profile"
	ViewUserSettings  ViewState = "user-settings"
	ViewMyCourses     ViewState = "my-courses"
	ViewApplyToTeach  ViewState = "apply-to-teach"
	ViewBlog          ViewState = "blog"
	ViewCourseDetails ViewState = "course-details"

	// DefaultView is the view every session starts on.
	DefaultView = ViewHome
)

var (
	// Views holds every ViewState, in registration order.
	Views = []ViewState{
		ViewHome,
		ViewDashboard,
		ViewStudents,
		ViewCourses,
		ViewExplore,
		ViewMentors,
		ViewAdmin,
		ViewUserProfile,
		ViewUserSettings,
		ViewMyCourses,
		ViewApplyToTeach,
		ViewBlog,
		ViewCourseDetails,
	}

	adminOnlyViews = map[ViewState]bool{
		ViewDashboard: true,
		ViewStudents:  true,
		ViewCourses:   true,
		ViewMentors:   true,
		ViewAdmin:     true,
	}
)

func (v ViewState) String() string {
	return string(v)
}

// IsValid reports whether v is one of Views.
func (v ViewState) IsValid() bool {
	for _, view := range Views {
		if view == v {
			return true
		}
	}
	return false
}

// AdminOnly reports whether v may only be rendered for admins.
func (v ViewState) AdminOnly() bool {
	return adminOnlyViews[v]
}
