package query

import (
	"sync"

	"github.com/AI2HU/tubedash/internal/models"
)

// State tracks per-dataset sort, filter and page for one session. Sort state
// starts at the dataset default and survives until Reset; a filter change
// snaps the page back to 1 while a sort change leaves it alone.
type State struct {
	mu      sync.Mutex
	sorts   map[string]models.SortState
	filters map[string]models.Filter
	pages   map[string]int
}

// NewState creates a session state with every dataset at its defaults.
func NewState() *State {
	return &State{
		sorts:   make(map[string]models.SortState),
		filters: make(map[string]models.Filter),
		pages:   make(map[string]int),
	}
}

// Sort returns the active sort for a dataset.
func (s *State) Sort(name string) models.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortLocked(name)
}

func (s *State) sortLocked(name string) models.SortState {
	if st, ok := s.sorts[name]; ok {
		return st
	}
	return MustGet(name).DefaultSort
}

// ToggleSort applies a sort-header interaction: clicking the active key flips
// the direction, a new key starts ascending.
func (s *State) ToggleSort(name, key string) models.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.sortLocked(name)
	if st.Key == key {
		if st.Dir == models.Asc {
			st.Dir = models.Desc
		} else {
			st.Dir = models.Asc
		}
	} else {
		st = models.SortState{Key: key, Dir: models.Asc}
	}
	s.sorts[name] = st
	return st
}

// SetSort installs an explicit sort. Empty key or direction fall back to the
// current values. The page is preserved.
func (s *State) SetSort(name, key, dir string) models.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.sortLocked(name)
	if key != "" {
		st.Key = key
	}
	if dir == models.Asc || dir == models.Desc {
		st.Dir = dir
	}
	s.sorts[name] = st
	return st
}

// Filter returns the active filter for a dataset.
func (s *State) Filter(name string) models.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters[name]
}

// SetFilter installs a filter. Any change resets the page to 1.
func (s *State) SetFilter(name string, f models.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filters[name] != f {
		s.pages[name] = 1
	}
	s.filters[name] = f
}

// Page returns the active page, defaulting to 1.
func (s *State) Page(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pages[name]; ok && p > 0 {
		return p
	}
	return 1
}

// SetPage installs the active page.
func (s *State) SetPage(name string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page <= 0 {
		page = 1
	}
	s.pages[name] = page
}

// Reset drops all session state back to dataset defaults. Used on full
// snapshot reload.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sorts = make(map[string]models.SortState)
	s.filters = make(map[string]models.Filter)
	s.pages = make(map[string]int)
}
