package anim

// A Fade is an Animation that steps one subject's opacity toward a target
// at a fixed per-frame rate.
type Fade struct {
	subject *Subject
	fadeTo  float64
	step    float64
}

// NewFade creates an instance of a Fade object. The step must be signed to
// move the subject's opacity toward fadeTo.
func NewFade(subject *Subject, fadeTo, step float64) *Fade {
	f := new(Fade)
	f.subject = subject
	f.fadeTo = fadeTo
	f.step = step
	return f
}

func (f *Fade) Kind() Kind {
	return KindFade
}

func (f *Fade) Subjects() []*Subject {
	return []*Subject{f.subject}
}

// Step advances the opacity one increment, clamping at the target.
func (f *Fade) Step() (bool, error) {
	return stepChannel(&f.subject.Opacity, f.fadeTo, f.step)
}
