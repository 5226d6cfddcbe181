package anim

import "fmt"

// InvalidAnimationError reports a submission that does not satisfy the
// Animation contract. The submission is rejected before anything is
// scheduled.
type InvalidAnimationError struct {
	Reason string
}

func (e *InvalidAnimationError) Error() string {
	return "anim: invalid animation: " + e.Reason
}

// IncompatibleStepError reports a per-frame increment that moves away from
// its target, or never moves at all. Left running such a step would consume
// frames forever without converging, so it is surfaced as a hard failure.
type IncompatibleStepError struct {
	Current   float64
	Target    float64
	Increment float64
}

func (e *IncompatibleStepError) Error() string {
	return fmt.Sprintf("anim: increment %v cannot move %v toward %v",
		e.Increment, e.Current, e.Target)
}
