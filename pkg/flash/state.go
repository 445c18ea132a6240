package flash

import "sync"

// State is a Target that keeps the latest visual state, for serving to
// clients that render it themselves.
type State struct {
	mu       sync.Mutex
	image    string
	flashOut bool
	shake    bool
	swaps    int
}

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Image    string `json:"image"`
	FlashOut bool   `json:"flash_out"`
	Shake    bool   `json:"shake"`
	Swaps    int    `json:"swaps"`
}

func (s *State) SetImage(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if src != s.image {
		s.swaps++
	}
	s.image = src
}

func (s *State) SetFlashOut(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashOut = on
}

func (s *State) SetShake(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shake = on
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Image: s.image, FlashOut: s.flashOut, Shake: s.shake, Swaps: s.swaps}
}

var _ Target = (*State)(nil)
