package navigation

import (
	"fmt"

	"go.uber.org/atomic"

	"github.com/trezcool/thk/core"
)

// Navigator holds the current view of a single session.
// Push is the only way to change it; concurrent pushes are last-write-wins.
type Navigator struct {
	mapper  *Mapper
	current *atomic.String
	history History
	logger  core.Logger
}

// NewNavigator returns a Navigator on DefaultView.
// history may be nil when nothing mirrors the navigations.
func NewNavigator(mapper *Mapper, history History, logger core.Logger) *Navigator {
	return &Navigator{
		mapper:  mapper,
		current: atomic.NewString(string(DefaultView)),
		history: history,
		logger:  logger,
	}
}

// Push moves the navigator to the view registered for path.
// An unregistered path leaves the current view untouched and returns ErrRouteNotFound.
func (n *Navigator) Push(path string) error {
	view, err := n.mapper.ResolveView(path)
	if err != nil {
		if n.logger != nil {
			n.logger.Warn(fmt.Sprintf("No route found for: %s", path))
		}
		return err
	}
	n.current.Store(string(view))
	if n.history != nil {
		n.history.Record(path)
	}
	return nil
}

func (n *Navigator) CurrentView() ViewState {
	return ViewState(n.current.Load())
}

// CurrentPath returns the canonical path of the current view.
func (n *Navigator) CurrentPath() string {
	return n.mapper.ResolvePath(n.CurrentView())
}

// Reset moves the navigator back to DefaultView without recording history.
func (n *Navigator) Reset() {
	n.current.Store(string(DefaultView))
}
