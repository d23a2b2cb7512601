package random

// Stub is a scripted Source for previews and tests.
//
// Normal returns the next queued value from Normals, or mean when the queue is
// empty. Int and Float return the next queued value, or min. Chance returns the
// next queued value from Chances, or Always.
type Stub struct {
	Normals []float64
	Ints    []int
	Floats  []float64
	Chances []bool
	Always  bool

	// Calls counts draws per method, keyed by method name.
	Calls map[string]int
}

func (s *Stub) count(name string) {
	if s.Calls == nil {
		s.Calls = make(map[string]int)
	}
	s.Calls[name]++
}

func (s *Stub) Normal(mean, _ float64) float64 {
	s.count("Normal")
	if len(s.Normals) == 0 {
		return mean
	}
	v := s.Normals[0]
	s.Normals = s.Normals[1:]
	return v
}

func (s *Stub) Int(min, max int) int {
	s.count("Int")
	if max < min {
		min, max = max, min
	}
	if len(s.Ints) == 0 {
		return min
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (s *Stub) Float(min, max float64) float64 {
	s.count("Float")
	if len(s.Floats) == 0 {
		return min
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *Stub) Chance(probability float64) bool {
	s.count("Chance")
	if len(s.Chances) > 0 {
		v := s.Chances[0]
		s.Chances = s.Chances[1:]
		return v
	}
	if probability <= 0 {
		return false
	}
	return s.Always
}
