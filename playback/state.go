package playback

import "math"

// Playback mode.
type Mode uint8

const (
	// Steps only change on explicit Step calls.
	Discrete Mode = iota

	// Steps advance automatically on Tick.
	Continuous
)

func (m Mode) String() string {
	if m == Continuous {
		return "continuous"
	}
	return "discrete"
}

// Playback speed multipliers selectable through the speed index.
var SpeedTable = [...]float64{0.25, 0.5, 1.0, 2.0, 4.0}

// The speed index selected by Reset (1.0x).
const DefaultSpeedIndex = 2

// State tracks how far the construction timeline has been revealed. A step
// list of N entries has N+1 positions: CurrentStep entries are revealed.
type State struct {
	CurrentStep     int
	DirectionSign   int
	Mode            Mode
	SpeedIndex      int
	AccumulatedTime float64

	// The number of entries in the step list this state scrubs through.
	TotalSteps int
}

// Create a state for a step list of the given length.
func New(totalSteps int) *State {
	s := &State{}
	s.Reset(totalSteps)
	return s
}

// Rewind to the first step, playing forward at 1.0x in discrete mode. Must be
// called whenever the step list is replaced.
func (s *State) Reset(totalSteps int) {
	s.CurrentStep = 0
	s.DirectionSign = 1
	s.Mode = Discrete
	s.SpeedIndex = DefaultSpeedIndex
	s.AccumulatedTime = 0
	s.TotalSteps = max(0, totalSteps)
}

// Switch to continuous playback.
func (s *State) Play() {
	s.Mode = Continuous
	s.AccumulatedTime = 0
}

// Switch to discrete playback.
func (s *State) Pause() {
	s.Mode = Discrete
}

// Move one step. A positive direction moves along the playback direction, a
// negative one against it. The result is clamped to [0, TotalSteps].
func (s *State) Step(direction int) {
	switch {
	case direction > 0:
		direction = 1
	case direction < 0:
		direction = -1
	default:
		return
	}

	next := s.CurrentStep + direction*s.DirectionSign
	s.CurrentStep = min(max(next, 0), s.TotalSteps)
}

// Reverse the playback direction.
func (s *State) InvertDirection() {
	s.DirectionSign = -s.DirectionSign
}

// Select the next faster speed, up to the fastest entry of SpeedTable.
func (s *State) IncreaseSpeed() {
	s.SpeedIndex = min(s.SpeedIndex+1, len(SpeedTable)-1)
}

// Select the next slower speed, down to the slowest entry of SpeedTable.
func (s *State) DecreaseSpeed() {
	s.SpeedIndex = max(s.SpeedIndex-1, 0)
}

// Get the current speed multiplier.
func (s *State) Speed() float64 {
	return SpeedTable[s.SpeedIndex]
}

// Advance continuous playback by dt seconds scaled by the current speed. Every
// full second of accumulated time performs one step; the fractional remainder
// carries over to the next tick. Non-finite or non-positive deltas are
// ignored. Returns the number of steps the position actually moved.
func (s *State) Tick(dt float64) int {
	if s.Mode != Continuous || !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}

	s.AccumulatedTime += dt * s.Speed()
	whole := math.Floor(s.AccumulatedTime)
	if math.IsInf(whole, 0) {
		s.AccumulatedTime = 0
	} else {
		s.AccumulatedTime -= whole
	}

	// Steps past the timeline length cannot move the position any further.
	start := s.CurrentStep
	for n := int(min(whole, float64(s.TotalSteps))); n > 0; n-- {
		s.Step(1)
	}

	moved := s.CurrentStep - start
	if moved < 0 {
		moved = -moved
	}
	return moved
}

// Check whether playback cannot move further in its current direction.
func (s *State) AtEnd() bool {
	if s.DirectionSign > 0 {
		return s.CurrentStep >= s.TotalSteps
	}
	return s.CurrentStep <= 0
}
