package navigation

import "sync"

// History mirrors successful navigations into an external address/history mechanism.
// Recording is best effort: a History never makes a navigation fail.
type History interface {
	Record(path string)
}

// PathLog is an in-memory History keeping the most recent paths, oldest first.
type PathLog struct {
	mu    sync.RWMutex
	size  int
	paths []string
}

var _ History = (*PathLog)(nil)

// NewPathLog returns a PathLog keeping at most size paths (unbounded when size <= 0).
func NewPathLog(size int) *PathLog {
	return &PathLog{size: size}
}

func (l *PathLog) Record(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.paths = append(l.paths, path)
	if l.size > 0 && len(l.paths) > l.size {
		l.paths = append(l.paths[:0:0], l.paths[len(l.paths)-l.size:]...)
	}
}

// Paths returns a copy of the recorded paths.
func (l *PathLog) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	paths := make([]string, len(l.paths))
	copy(paths, l.paths)
	return paths
}

// Last returns the most recently recorded path, if any.
func (l *PathLog) Last() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.paths) == 0 {
		return "", false
	}
	return l.paths[len(l.paths)-1], true
}
