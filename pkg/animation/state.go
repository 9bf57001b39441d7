package animation

// AnimationState is the playback state of one animated entity. Times are
// client ticks in milliseconds.
type AnimationState struct {
	Action    int
	StartTime uint32
	Time      uint32

	// Duration, when set, stretches the whole animation over this many
	// milliseconds instead of using the authored delays.
	Duration *uint32

	// Factor, when set, replaces the default delay multiplier of 50 with
	// Factor/5.
	Factor *float32
}

// NewAnimationState returns a state playing action 0 from startTime.
func NewAnimationState(startTime uint32) AnimationState {
	return AnimationState{StartTime: startTime}
}

// Update advances the elapsed time to clientTick.
func (s *AnimationState) Update(clientTick uint32) {
	s.Time = clientTick - s.StartTime
}

// SetAction switches to action and restarts playback when it changes.
func (s *AnimationState) SetAction(action int, clientTick uint32) {
	if s.Action != action {
		s.StartTime = clientTick
		s.Time = 0
	}
	s.Action = action
}

// SetStartTime restarts playback of the current action at clientTick.
func (s *AnimationState) SetStartTime(clientTick uint32) {
	s.StartTime = clientTick
	s.Time = 0
}

// FrameIndex returns the frame to show for the elapsed time in the state.
func FrameIndex(state *AnimationState, delay float32, frameCount int) int {
	if frameCount <= 0 {
		return 0
	}

	var frameTime uint32
	if state.Duration != nil && *state.Duration > 0 {
		frameTime = state.Time * uint32(frameCount) / *state.Duration
	} else {
		factor := delay * 50
		if state.Factor != nil {
			factor = delay * (*state.Factor / 5)
		}
		if factor > 0 {
			frameTime = uint32(float32(state.Time) / factor)
		}
	}
	return int(frameTime % uint32(frameCount))
}
