package anim

// Axis selects which positional channel a FadeShift moves.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// A FadeShift is an Animation that fades a subject while sliding it between
// two offsets along one axis. Both channels are independent state machines
// stepped every frame; the whole step completes only when both have reached
// their targets.
type FadeShift struct {
	subject   *Subject
	fadeTo    float64
	fadeStep  float64
	shiftTo   float64
	shiftStep float64
	axis      Axis
}

// NewFadeShift creates an instance of a FadeShift object and places the
// subject at shiftFrom. A shiftStep of 0 derives a per-frame rate from the
// remaining fade increments, so the shift finishes on the same frame as the
// fade.
func NewFadeShift(subject *Subject, fadeTo, fadeStep, shiftFrom, shiftTo, shiftStep float64, axis Axis) *FadeShift {
	f := new(FadeShift)
	f.subject = subject
	f.fadeTo = fadeTo
	f.fadeStep = fadeStep
	f.shiftTo = shiftTo
	f.shiftStep = shiftStep
	f.axis = axis
	*f.offset() = shiftFrom
	return f
}

func (f *FadeShift) Kind() Kind {
	return KindFadeShift
}

func (f *FadeShift) Subjects() []*Subject {
	return []*Subject{f.subject}
}

func (f *FadeShift) offset() *float64 {
	if f.axis == AxisHorizontal {
		return &f.subject.OffsetX
	}
	return &f.subject.OffsetY
}

// deriveShiftStep spreads the remaining shift distance over the fade
// increments still to run. Recomputing it every frame keeps the channels
// converging on exactly the same frame, whatever progress either has made.
func (f *FadeShift) deriveShiftStep(offset float64) float64 {
	frames := (f.fadeTo - f.subject.Opacity) / f.fadeStep
	if frames < 1 {
		// Fade is finishing or already done; close the gap now.
		return f.shiftTo - offset
	}
	return (f.shiftTo - offset) / frames
}

// Step advances the opacity and offset channels together.
func (f *FadeShift) Step() (bool, error) {
	offset := f.offset()

	shiftStep := f.shiftStep
	if shiftStep == 0 {
		shiftStep = f.deriveShiftStep(*offset)
	}

	fadeDone, err := stepChannel(&f.subject.Opacity, f.fadeTo, f.fadeStep)
	if err != nil {
		return false, err
	}
	shiftDone, err := stepChannel(offset, f.shiftTo, shiftStep)
	if err != nil {
		return false, err
	}

	return fadeDone && shiftDone, nil
}
