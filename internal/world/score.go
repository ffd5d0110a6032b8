package world

// Score counts food pickups for the current session.
type Score struct {
	value int
}

func (s *Score) Value() int { return s.value }

// Inc adds one pickup and returns the new total.
func (s *Score) Inc() int {
	s.value++
	return s.value
}

func (s *Score) Reset() { s.value = 0 }
