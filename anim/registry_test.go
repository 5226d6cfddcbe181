package anim

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAnimation is a scriptable Animation for registry tests.
type countingAnimation struct {
	kind      Kind
	subjects  []*Subject
	doneAfter int
	err       error
	steps     int
}

func (a *countingAnimation) Kind() Kind {
	return a.kind
}

func (a *countingAnimation) Subjects() []*Subject {
	return a.subjects
}

func (a *countingAnimation) Step() (bool, error) {
	a.steps++
	if a.err != nil {
		return false, a.err
	}
	return a.steps >= a.doneAfter, nil
}

func newCounting(kind Kind, doneAfter int, subjects ...*Subject) *countingAnimation {
	return &countingAnimation{kind: kind, subjects: subjects, doneAfter: doneAfter}
}

func newTestRegistry() (*Registry, *Driver) {
	d := NewDriver(30)
	return NewRegistry(d), d
}

func TestSubmitReplacesSameKey(t *testing.T) {
	r, d := newTestRegistry()
	s := testSubject("s1")

	first := newCounting(KindFade, 5, s)
	second := newCounting(KindFade, 5, s)

	require.NoError(t, r.Submit(first))
	require.NoError(t, r.Submit(second))

	for i := 0; i < 10; i++ {
		d.Tick()
	}

	assert.Equal(t, 0, first.steps, "superseded animation must never fire")
	assert.Equal(t, 5, second.steps)
	assert.False(t, r.IsActive("s1"))
}

func TestSubmitReplacesPendingRescheduledAnimation(t *testing.T) {
	r, d := newTestRegistry()
	s := testSubject("s1")

	first := newCounting(KindFade, 100, s)
	require.NoError(t, r.Submit(first))
	d.Tick()
	d.Tick()
	require.Equal(t, 2, first.steps)

	// Replace it mid-flight; the rescheduled callback must not fire again.
	second := newCounting(KindFade, 2, s)
	require.NoError(t, r.Submit(second))
	for i := 0; i < 5; i++ {
		d.Tick()
	}

	assert.Equal(t, 2, first.steps)
	assert.Equal(t, 2, second.steps)
}

func TestDistinctSubjectsDoNotInterfere(t *testing.T) {
	r, d := newTestRegistry()
	s1 := testSubject("s1")
	s2 := testSubject("s2")

	a1 := newCounting(KindFade, 3, s1)
	a2 := newCounting(KindFade, 3, s2)

	require.NoError(t, r.Submit(a1))
	require.NoError(t, r.Submit(a2))

	d.Tick()
	assert.Equal(t, 1, a1.steps)
	assert.Equal(t, 1, a2.steps)
	assert.True(t, r.IsActive("s1"))
	assert.True(t, r.IsActive("s2"))
}

func TestDistinctKindsRunConcurrently(t *testing.T) {
	r, d := newTestRegistry()
	s := testSubject("s1")

	fade := newCounting(KindFade, 4, s)
	shift := newCounting(KindFadeShift, 4, s)

	require.NoError(t, r.Submit(fade))
	require.NoError(t, r.Submit(shift))

	d.Tick()
	assert.Equal(t, 1, fade.steps)
	assert.Equal(t, 1, shift.steps)

	active := r.Active()
	assert.Equal(t, []Kind{KindFade, KindFadeShift}, active["s1"])
}

func TestCancelIsIdempotent(t *testing.T) {
	r, d := newTestRegistry()
	s := testSubject("s1")

	a := newCounting(KindFade, 10, s)
	require.NoError(t, r.Submit(a))

	r.Cancel(KindFade, "s1")
	r.Cancel(KindFade, "s1")
	r.Cancel(KindCrossFade, "never-submitted")

	d.Tick()
	assert.Equal(t, 0, a.steps)
	assert.False(t, r.IsActive("s1"))
}

func TestCancelOnlyNamedKind(t *testing.T) {
	r, d := newTestRegistry()
	s := testSubject("s1")

	fade := newCounting(KindFade, 10, s)
	shift := newCounting(KindFadeShift, 10, s)
	require.NoError(t, r.Submit(fade))
	require.NoError(t, r.Submit(shift))

	r.Cancel(KindFade, "s1")
	d.Tick()

	assert.Equal(t, 0, fade.steps)
	assert.Equal(t, 1, shift.steps)
	assert.True(t, r.IsActive("s1"))
}

func TestCancelAll(t *testing.T) {
	r, d := newTestRegistry()
	s1 := testSubject("s1")
	s2 := testSubject("s2")

	fade := newCounting(KindFade, 10, s1)
	shift := newCounting(KindFadeShift, 10, s1)
	other := newCounting(KindFade, 10, s2)
	require.NoError(t, r.Submit(fade))
	require.NoError(t, r.Submit(shift))
	require.NoError(t, r.Submit(other))

	r.CancelAll("s1")
	d.Tick()

	assert.Equal(t, 0, fade.steps)
	assert.Equal(t, 0, shift.steps)
	assert.Equal(t, 1, other.steps, "other subjects are untouched")
	assert.False(t, r.IsActive("s1"))
	assert.True(t, r.IsActive("s2"))
}

func TestCancelMultiSubjectAnimationByEitherSubject(t *testing.T) {
	r, d := newTestRegistry()
	front := testSubject("front")
	back := testSubject("back")

	a := newCounting(KindCrossFade, 10, front, back)
	require.NoError(t, r.Submit(a))
	require.True(t, r.IsActive("front"))
	require.True(t, r.IsActive("back"))

	r.Cancel(KindCrossFade, "back")
	d.Tick()

	assert.Equal(t, 0, a.steps)
	assert.False(t, r.IsActive("front"), "cancelling one key retires every key sharing the handle")
	assert.False(t, r.IsActive("back"))
}

func TestSubmitRejectsInvalidAnimations(t *testing.T) {
	r, _ := newTestRegistry()

	var invalid *InvalidAnimationError

	err := r.Submit(nil)
	require.ErrorAs(t, err, &invalid)

	err = r.Submit(&countingAnimation{kind: "", subjects: []*Subject{testSubject("s1")}})
	require.ErrorAs(t, err, &invalid)

	err = r.Submit(&countingAnimation{kind: KindFade})
	require.ErrorAs(t, err, &invalid)

	err = r.Submit(&countingAnimation{kind: KindFade, subjects: []*Subject{NewSubject("", colourOrDie("#808080"))}})
	require.ErrorAs(t, err, &invalid)

	assert.False(t, r.IsActive("s1"), "rejected submissions schedule nothing")
}

func TestStepErrorRetiresAnimation(t *testing.T) {
	r, d := newTestRegistry()
	s := testSubject("s1")

	a := newCounting(KindFade, 10, s)
	a.err = errors.New("boom")
	require.NoError(t, r.Submit(a))

	d.Tick()
	assert.Equal(t, 1, a.steps)
	assert.False(t, r.IsActive("s1"))

	d.Tick()
	assert.Equal(t, 1, a.steps, "a failed animation is never rescheduled")
}

func TestCompletionClearsRegistry(t *testing.T) {
	r, d := newTestRegistry()
	s := testSubject("s1")

	a := newCounting(KindFade, 2, s)
	require.NoError(t, r.Submit(a))

	d.Tick()
	assert.True(t, r.IsActive("s1"))
	d.Tick()
	assert.False(t, r.IsActive("s1"), "natural completion must clear the key too")
	d.Tick()
	assert.Equal(t, 2, a.steps)
}

// fakeScheduler records deferred one-shots so tests fire them by hand.
type fakeScheduler struct {
	next    Handle
	pending map[Handle]func()
	order   []Handle
	afters  []func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[Handle]func())}
}

func (f *fakeScheduler) RequestFrame(fn func()) Handle {
	f.next++
	f.pending[f.next] = fn
	f.order = append(f.order, f.next)
	return f.next
}

func (f *fakeScheduler) CancelFrame(h Handle) {
	delete(f.pending, h)
}

func (f *fakeScheduler) After(delay time.Duration, fn func()) {
	f.afters = append(f.afters, fn)
}

func (f *fakeScheduler) runFrame() {
	batch := f.order
	f.order = nil
	for _, h := range batch {
		fn, ok := f.pending[h]
		if !ok {
			continue
		}
		delete(f.pending, h)
		fn()
	}
}

func TestSubmitAfterDefersSubmission(t *testing.T) {
	sched := newFakeScheduler()
	r := NewRegistry(sched)
	s := testSubject("s1")

	a := newCounting(KindFade, 2, s)
	require.NoError(t, r.SubmitAfter(250*time.Millisecond, a))
	require.Len(t, sched.afters, 1)
	assert.False(t, r.IsActive("s1"), "nothing runs until the timer fires")

	sched.afters[0]()
	assert.True(t, r.IsActive("s1"))

	sched.runFrame()
	sched.runFrame()
	assert.Equal(t, 2, a.steps)
	assert.False(t, r.IsActive("s1"))
}

func TestSubmitAfterValidatesEagerly(t *testing.T) {
	sched := newFakeScheduler()
	r := NewRegistry(sched)

	var invalid *InvalidAnimationError
	err := r.SubmitAfter(time.Second, &countingAnimation{kind: KindFade})
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, sched.afters, "invalid submissions never reach the timer")
}
