// Package session holds the state of signed-in clients: user, navigation,
// preferences, enrollments and chat transcript. Nothing is persisted.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/chatbot"
	"github.com/trezcool/thk/core/i18n"
	"github.com/trezcool/thk/core/navigation"
	"github.com/trezcool/thk/core/notification"
	"github.com/trezcool/thk/core/user"
)

var ErrNotFound = errors.New("session not found")

// CourseDetailsPath is pushed when a course is selected.
const CourseDetailsPath = "/course-details"

type Session struct {
	ID        string
	CreatedAt time.Time

	Nav     *navigation.Navigator
	History *navigation.PathLog
	Chat    *chatbot.Conversation
	Inbox   *notification.Inbox

	mu               sync.RWMutex
	usr              user.User
	lang             string
	darkMode         bool
	enrolled         []string // course IDs, in enrollment order
	selectedCourseID string
}

// State is a point-in-time copy of a Session, suitable for JSON.
type State struct {
	ID               string               `json:"id"`
	User             user.User            `json:"user"`
	Lang             string               `json:"lang"`
	DarkMode         bool                 `json:"dark_mode"`
	Enrolled         []string             `json:"enrolled_course_ids"`
	SelectedCourseID string               `json:"selected_course_id,omitempty"`
	View             navigation.ViewState `json:"view"`
	Path             string               `json:"path"`
	CreatedAt        time.Time            `json:"created_at"`
	Unread           int                  `json:"unread_notifications"`
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		ID:               s.ID,
		User:             s.usr,
		Lang:             s.lang,
		DarkMode:         s.darkMode,
		Enrolled:         append([]string{}, s.enrolled...),
		SelectedCourseID: s.selectedCourseID,
		View:             s.Nav.CurrentView(),
		Path:             s.Nav.CurrentPath(),
		CreatedAt:        s.CreatedAt,
		Unread:           s.Inbox.Unread(),
	}
}

func (s *Session) User() user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usr
}

// SetUser replaces the user snapshot (after a settings update).
func (s *Session) SetUser(usr user.User) {
	s.mu.Lock()
	s.usr = usr
	s.mu.Unlock()
}

func (s *Session) Role() user.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usr.Role
}

// SetRole switches the role of the session. Navigation is left untouched:
// admin-only screens are masked by the Dispatcher, not redirected.
func (s *Session) SetRole(role user.Role) {
	s.mu.Lock()
	s.usr.Role = role
	s.mu.Unlock()
}

func (s *Session) Lang() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Preferences are the optional fields of a preferences update.
type Preferences struct {
	Lang     *string `json:"lang"`
	DarkMode *bool   `json:"dark_mode"`
}

func (p Preferences) Validate() error {
	if p.Lang != nil && !i18n.IsSupported(*p.Lang) {
		return core.NewFieldError("lang", "lang must be one of en, vi")
	}
	return nil
}

func (s *Session) SetPreferences(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Lang != nil {
		s.lang = *p.Lang
	}
	if p.DarkMode != nil {
		s.darkMode = *p.DarkMode
	}
}

// Enroll adds courseID to the enrolled courses. It reports false if already enrolled.
func (s *Session) Enroll(courseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if core.StringsContain(s.enrolled, courseID) {
		return false
	}
	s.enrolled = append(s.enrolled, courseID)
	return true
}

func (s *Session) IsEnrolled(courseID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.StringsContain(s.enrolled, courseID)
}

func (s *Session) Enrolled() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.enrolled...)
}

// SelectCourse remembers courseID and navigates to the course details view.
func (s *Session) SelectCourse(courseID string) error {
	s.mu.Lock()
	s.selectedCourseID = courseID
	s.mu.Unlock()
	return s.Nav.Push(CourseDetailsPath)
}

func (s *Session) SelectedCourseID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedCourseID
}

// Store keeps the open sessions in memory.
// Sessions older than maxAge are dropped: lazily by Get, and swept by Open.
type Store struct {
	mapper      *navigation.Mapper
	logger      core.Logger
	historySize int
	maxAge      time.Duration // <= 0: never expire
	now         func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	onClose  []func(id string)
}

func NewStore(mapper *navigation.Mapper, logger core.Logger, historySize int, maxAge time.Duration) *Store {
	return &Store{
		mapper:      mapper,
		logger:      logger,
		historySize: historySize,
		maxAge:      maxAge,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// OnClose registers fn to be called with the ID of every closed or expired session.
func (st *Store) OnClose(fn func(id string)) {
	st.mu.Lock()
	st.onClose = append(st.onClose, fn)
	st.mu.Unlock()
}

func (st *Store) expired(s *Session, now time.Time) bool {
	return st.maxAge > 0 && now.Sub(s.CreatedAt) > st.maxAge
}

// Open starts a session for usr on the home view.
func (st *Store) Open(usr user.User, lang string) *Session {
	now := st.now().UTC()
	history := navigation.NewPathLog(st.historySize)
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		Nav:       navigation.NewNavigator(st.mapper, history, st.logger),
		History:   history,
		Chat:      chatbot.NewConversation(),
		Inbox:     notification.NewInbox(now),
		usr:       usr,
		lang:      i18n.ParseLang(lang),
		enrolled:  []string{},
	}

	st.mu.Lock()
	var swept []string
	for id, old := range st.sessions {
		if st.expired(old, now) {
			delete(st.sessions, id)
			swept = append(swept, id)
		}
	}
	st.sessions[s.ID] = s
	hooks := st.onClose
	st.mu.Unlock()

	for _, id := range swept {
		notify(hooks, id)
	}
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if st.expired(s, st.now().UTC()) {
		st.Close(id)
		return nil, ErrNotFound
	}
	return s, nil
}

// Close ends the session. Closing an unknown session is a no-op.
func (st *Store) Close(id string) {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	hooks := st.onClose
	st.mu.Unlock()

	if ok {
		notify(hooks, id)
	}
}

func notify(hooks []func(id string), id string) {
	for _, fn := range hooks {
		fn(id)
	}
}

// UpdateUser refreshes the user snapshot of every session of usr.
func (st *Store) UpdateUser(usr user.User) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.sessions {
		if s.User().ID == usr.ID {
			s.SetUser(usr)
		}
	}
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
