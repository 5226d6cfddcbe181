package anim

import (
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// key pairs a subject id with an animation kind. Using a struct rather than
// a concatenated string keeps ids containing any separator unambiguous.
type key struct {
	subject string
	kind    Kind
}

// A Registry tracks the scheduled frame callback for every running
// animation, keyed by (subject, kind). Submitting an animation cancels any
// animation of the same kind already running on the same subjects, so at
// most one live handle ever exists per key.
//
// A Registry is not safe for concurrent use; drive it from the scheduler
// goroutine only (see Driver.Call).
type Registry struct {
	scheduler FrameScheduler
	handles   map[key]Handle
}

// NewRegistry creates an instance of a Registry with no running animations.
func NewRegistry(scheduler FrameScheduler) *Registry {
	r := new(Registry)
	r.scheduler = scheduler
	r.handles = make(map[key]Handle)
	return r
}

// Submit starts an animation on the next frame. Any animation of the same
// kind already running on any of its subjects is cancelled first and never
// fires again. Returns *InvalidAnimationError if the animation does not
// satisfy the Animation contract.
func (r *Registry) Submit(a Animation) error {
	keys, err := validate(a)
	if err != nil {
		return err
	}

	for _, k := range keys {
		r.cancelKey(k)
	}

	t := &task{registry: r, animation: a, keys: keys}
	r.record(keys, r.scheduler.RequestFrame(t.run))
	return nil
}

// SubmitAfter defers a submission by the given delay, then proceeds exactly
// as Submit would. Validation still happens up front.
func (r *Registry) SubmitAfter(delay time.Duration, a Animation) error {
	if _, err := validate(a); err != nil {
		return err
	}

	r.scheduler.After(delay, func() {
		if err := r.Submit(a); err != nil {
			log.Error().Err(err).Str("kind", string(a.Kind())).Msg("deferred submission rejected")
		}
	})
	return nil
}

// Cancel stops the animation of the given kind on each subject. Subjects
// with no such animation are a no-op. Cancelling one subject of a
// multi-subject animation retires the whole animation.
func (r *Registry) Cancel(kind Kind, subjects ...string) {
	for _, id := range subjects {
		r.cancelKey(key{subject: id, kind: kind})
	}
}

// CancelAll stops every animation on the subject, regardless of kind.
func (r *Registry) CancelAll(subject string) {
	for k := range r.handles {
		if k.subject == subject {
			r.cancelKey(k)
		}
	}
}

// IsActive reports whether any animation is currently running on the
// subject.
func (r *Registry) IsActive(subject string) bool {
	for k := range r.handles {
		if k.subject == subject {
			return true
		}
	}
	return false
}

// Active returns the kinds currently running per subject, sorted for stable
// output.
func (r *Registry) Active() map[string][]Kind {
	active := make(map[string][]Kind)
	for k := range r.handles {
		active[k.subject] = append(active[k.subject], k.kind)
	}
	for _, kinds := range active {
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	}
	return active
}

// cancelKey unschedules the animation under k. A multi-subject animation
// shares one handle across all of its keys, so every key holding the same
// handle is dropped with it.
func (r *Registry) cancelKey(k key) {
	h, ok := r.handles[k]
	if !ok {
		return
	}
	for other, oh := range r.handles {
		if oh == h {
			delete(r.handles, other)
		}
	}
	r.scheduler.CancelFrame(h)
}

func (r *Registry) record(keys []key, h Handle) {
	for _, k := range keys {
		r.handles[k] = h
	}
}

// validate checks the Animation contract and returns the registry keys the
// animation implies.
func validate(a Animation) ([]key, error) {
	if a == nil {
		return nil, &InvalidAnimationError{Reason: "nil animation"}
	}
	if a.Kind() == "" {
		return nil, &InvalidAnimationError{Reason: "empty kind"}
	}
	subjects := a.Subjects()
	if len(subjects) == 0 {
		return nil, &InvalidAnimationError{Reason: "no bound subjects"}
	}
	keys := make([]key, 0, len(subjects))
	for _, s := range subjects {
		if s == nil || s.ID() == "" {
			return nil, &InvalidAnimationError{Reason: "bound subject without identifier"}
		}
		keys = append(keys, key{subject: s.ID(), kind: a.Kind()})
	}
	return keys, nil
}

// A task re-submits an animation's step for as long as it reports more
// work, updating the registry's handle for its keys each frame.
type task struct {
	registry  *Registry
	animation Animation
	keys      []key
}

func (t *task) run() {
	done, err := t.animation.Step()
	if err != nil {
		// A misconfigured step can never converge; retire it rather than
		// burning a frame callback forever.
		log.Error().Err(err).Str("kind", string(t.animation.Kind())).Msg("animation step failed")
		t.retire()
		return
	}
	if done {
		// Clear the map entries on natural completion too, or the registry
		// would keep a stale handle for the key.
		t.retire()
		return
	}
	t.registry.record(t.keys, t.registry.scheduler.RequestFrame(t.run))
}

func (t *task) retire() {
	for _, k := range t.keys {
		delete(t.registry.handles, k)
	}
}
