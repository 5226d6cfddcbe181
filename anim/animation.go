package anim

// Kind discriminates animation species. The registry allows at most one
// running animation per (subject, kind) pair, so two different kinds can
// animate the same subject concurrently.
type Kind string

const (
	KindFade      Kind = "fade"
	KindCrossFade Kind = "crossfade"
	KindFadeShift Kind = "fadeshift"
)

// An Animation mutates the visual state of its bound subjects one discrete
// step per frame.
type Animation interface {
	// Kind identifies the animation species for registry keying.
	Kind() Kind

	// Subjects returns the subjects this animation is bound to.
	Subjects() []*Subject

	// Step performs exactly one frame's worth of mutation. It returns true
	// once the goal is reached and the animation must not be rescheduled.
	// A non-nil error means the animation can never converge and must be
	// retired.
	Step() (bool, error)
}
