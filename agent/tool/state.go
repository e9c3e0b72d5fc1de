package tool

import "sync"

// State is the per-turn workflow state shared between an agent's tools and
// its orchestration loop. Tools mark themselves finished or failed; the loop
// reads it to decide whether to keep calling further tools.
type State struct {
	mu       sync.Mutex
	finished bool
	failed   bool
	reason   string
}

func NewState() *State {
	return &State{}
}

// MarkFinished signals a terminal condition: the loop should stop after the
// current tool.
func (s *State) MarkFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
}

func (s *State) MarkFailed(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
	s.reason = reason
}

func (s *State) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

func (s *State) Failed() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed, s.reason
}

// Terminal reports whether the loop should stop calling tools.
func (s *State) Terminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished || s.failed
}
