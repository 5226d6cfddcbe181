package anim

import "time"

// A Handle identifies a pending frame callback so it can be cancelled. Zero
// is never a valid handle.
type Handle uint64

// A FrameScheduler queues callbacks to run before the next frame and can
// cancel them by handle while they are still pending.
//
// Implementations invoke every callback from a single goroutine, and
// RequestFrame/CancelFrame may only be called from that goroutine (typically
// from within a callback). A callback requested during a frame fires on the
// next frame, never the current one.
type FrameScheduler interface {
	// RequestFrame queues fn to run on the next frame.
	RequestFrame(fn func()) Handle

	// CancelFrame stops a pending callback from firing. Unknown or already
	// fired handles are a no-op.
	CancelFrame(h Handle)

	// After runs fn on the scheduler goroutine once the delay has elapsed.
	After(delay time.Duration, fn func())
}
