package navigation

import (
	"fmt"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/user"
)

// Screen tells the rendering layer which screen to build.
type Screen string

const (
	ScreenHome           Screen = "home"
	ScreenDashboard      Screen = "dashboard"
	ScreenStudentManager Screen = "student-manager"
	ScreenCourseManager  Screen = "course-manager"
	ScreenExplore        Screen = "explore-courses"
	ScreenMentorManager  Screen = "mentor-manager"
	ScreenAdminPanel     Screen = "admin-panel"
	ScreenProfile        Screen = "profile"
	ScreenSettings       Screen = "settings"
	ScreenMyCourses      Screen = "my-courses"
	ScreenApplyToTeach   Screen = "apply-to-teach"
	ScreenBlog           Screen = "blog"
	ScreenCourseFullView Screen = "course-full-view"

	ScreenAccessDenied Screen = "access-denied"
	ScreenNotFound     Screen = "not-found"
)

const (
	accessDeniedReason = "Access Denied: Admin Only"
	notFoundReason     = "no screen registered for this view"
)

// ScreenDescriptor is what the Dispatcher selects for a view.
type ScreenDescriptor struct {
	Screen    Screen    `json:"screen"`
	View      ViewState `json:"view"`
	AdminOnly bool      `json:"admin_only"`
	Reason    string    `json:"reason,omitempty"`
}

// Denied reports whether the descriptor is a role-gated refusal.
func (d ScreenDescriptor) Denied() bool {
	return d.Screen == ScreenAccessDenied
}

// ScreenFactory builds the descriptor of a registered view.
type ScreenFactory func(view ViewState) ScreenDescriptor

// Dispatcher selects the screen to render for a view and a role.
type Dispatcher struct {
	factories map[ViewState]ScreenFactory
	logger    core.Logger
}

// NewDispatcher returns a Dispatcher with every view of Views registered to its screen.
func NewDispatcher(logger core.Logger) *Dispatcher {
	d := &Dispatcher{
		factories: make(map[ViewState]ScreenFactory, len(Views)),
		logger:    logger,
	}
	d.RegisterScreen(ViewHome, ScreenHome).
		RegisterScreen(ViewDashboard, ScreenDashboard).
		RegisterScreen(ViewStudents, ScreenStudentManager).
		RegisterScreen(ViewCourses, ScreenCourseManager).
		RegisterScreen(ViewExplore, ScreenExplore).
		RegisterScreen(ViewMentors, ScreenMentorManager).
		RegisterScreen(ViewAdmin, ScreenAdminPanel).
		RegisterScreen(ViewUserProfile, ScreenProfile).
		RegisterScreen(ViewUserSettings, ScreenSettings).
		RegisterScreen(ViewMyCourses, ScreenMyCourses).
		RegisterScreen(ViewApplyToTeach, ScreenApplyToTeach).
		RegisterScreen(ViewBlog, ScreenBlog).
		RegisterScreen(ViewCourseDetails, ScreenCourseFullView)
	return d
}

// Register sets the factory used for view, replacing any previous one.
func (d *Dispatcher) Register(view ViewState, factory ScreenFactory) *Dispatcher {
	d.factories[view] = factory
	return d
}

// RegisterScreen registers a factory always returning screen for view.
func (d *Dispatcher) RegisterScreen(view ViewState, screen Screen) *Dispatcher {
	return d.Register(view, func(v ViewState) ScreenDescriptor {
		return ScreenDescriptor{Screen: screen, View: v, AdminOnly: v.AdminOnly()}
	})
}

// Select returns the screen to render for view when seen by role.
// Admin-only views are masked for non admins; views without a factory
// yield ScreenNotFound.
func (d *Dispatcher) Select(view ViewState, role user.Role) ScreenDescriptor {
	factory, ok := d.factories[view]
	if !ok {
		if d.logger != nil {
			d.logger.Warn(fmt.Sprintf("no screen registered for view %q", view))
		}
		return ScreenDescriptor{Screen: ScreenNotFound, View: view, Reason: notFoundReason}
	}
	if view.AdminOnly() && role != user.RoleAdmin {
		return ScreenDescriptor{Screen: ScreenAccessDenied, View: view, AdminOnly: true, Reason: accessDeniedReason}
	}
	return factory(view)
}
