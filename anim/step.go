package anim

import "math"

// stepEpsilon absorbs the drift of accumulating fixed increments, so a fade
// of 10 x 0.1 converges on exactly the 10th frame.
const stepEpsilon = 1e-9

// reached reports whether v has converged on the target t.
func reached(v, t float64) bool {
	return math.Abs(t-v) < stepEpsilon
}

// advance moves v one increment d toward t, clamping to exactly t as soon
// as d would overshoot in the direction of travel.
func advance(v, t, d float64) float64 {
	next := v + d
	if d > 0 && next > t-stepEpsilon {
		return t
	}
	if d < 0 && next < t+stepEpsilon {
		return t
	}
	return next
}

// checkStep verifies that d moves v toward t at all.
func checkStep(v, t, d float64) error {
	if reached(v, t) {
		return nil
	}
	if d == 0 || (d > 0) != (t > v) {
		return &IncompatibleStepError{Current: v, Target: t, Increment: d}
	}
	return nil
}

// stepChannel advances one scalar channel by one frame and reports whether
// it has reached its target. Stepping a channel already at its target is a
// no-op that reports completion.
func stepChannel(v *float64, target, increment float64) (bool, error) {
	if reached(*v, target) {
		return true, nil
	}
	if err := checkStep(*v, target, increment); err != nil {
		return false, err
	}
	*v = advance(*v, target, increment)
	return reached(*v, target), nil
}
