package tracker

// Direction is the last observed scroll direction. It is sticky: an event
// that does not change the offset keeps the previous direction.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ScrollState tracks the last scroll offset and direction. Updated once per
// scroll event on the session loop.
type ScrollState struct {
	LastY     float64
	Direction Direction
}

// Update records a new scroll offset.
func (s *ScrollState) Update(y float64) {
	switch {
	case y > s.LastY:
		s.Direction = Down
	case y < s.LastY:
		s.Direction = Up
	}
	s.LastY = y
}
