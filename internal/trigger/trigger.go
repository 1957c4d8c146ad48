// Package trigger runs the generate-and-display flow: reset the display to
// the placeholder, show the loading indicator, fetch one result, show it (or
// the placeholder on any failure) and always hide the indicator again.
package trigger

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"sketchgen/internal/generation"
)

// Trigger drives activations against one set of handles.
type Trigger struct {
	handles     Handles
	fetcher     generation.Fetcher
	placeholder string
	log         zerolog.Logger

	singleFlight bool
	inFlight     atomic.Bool
	seq          atomic.Uint64

	observers []func(Outcome)

	now func() time.Time
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Trigger) { t.log = l }
}

// WithSingleFlight makes activations that arrive while a request is in
// flight no-ops settling as KindSkipped.
func WithSingleFlight(enabled bool) Option {
	return func(t *Trigger) { t.singleFlight = enabled }
}

// WithObserver registers fn to receive every settled Outcome.
func WithObserver(fn func(Outcome)) Option {
	return func(t *Trigger) { t.observers = append(t.observers, fn) }
}

// New creates a Trigger. It does not touch the handles until the first activation.
func New(h Handles, f generation.Fetcher, placeholder string, opts ...Option) *Trigger {
	t := &Trigger{
		handles:     h,
		fetcher:     f,
		placeholder: placeholder,
		log:         zerolog.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Placeholder returns the fallback image reference.
func (t *Trigger) Placeholder() string {
	return t.placeholder
}

// Activation is one run of the flow between Begin and Complete.
type Activation struct {
	t       *Trigger
	seq     uint64
	started time.Time
	skipped bool
}

// Begin performs the synchronous part of an activation: the surface is reset
// to the placeholder and the indicator is shown before Begin returns.
func (t *Trigger) Begin() *Activation {
	a := &Activation{t: t, seq: t.seq.Add(1), started: t.now()}

	if t.singleFlight && !t.inFlight.CompareAndSwap(false, true) {
		a.skipped = true
		return a
	}

	t.handles.Surface.SetImage(t.placeholder)
	t.handles.Indicator.Show()
	return a
}

// Complete issues the request, updates the surface and hides the indicator.
// It must be called exactly once per Activation.
func (a *Activation) Complete(ctx context.Context) Outcome {
	var out Outcome
	if a.skipped {
		a.t.log.Debug().Uint64("activation", a.seq).Msg("generation already in flight, activation ignored")
		out = Outcome{Seq: a.seq, Started: a.started, Kind: KindSkipped}
	} else {
		out = a.run(ctx)
	}
	a.t.notify(out)
	return out
}

func (a *Activation) run(ctx context.Context) Outcome {
	t := a.t
	defer t.release()

	out := Outcome{Seq: a.seq, Started: a.started}

	res, err := t.fetcher.Fetch(ctx)
	switch {
	case err != nil:
		t.log.Error().
			Err(err).
			Str("kind", string(KindRequestFailure)).
			Uint64("activation", a.seq).
			Msg("error fetching generated image")
		t.handles.Surface.SetImage(t.placeholder)
		out.Kind = KindRequestFailure
		out.Err = err
	case !res.Usable():
		t.log.Error().
			Str("kind", string(KindMissingResult)).
			Uint64("activation", a.seq).
			Msg("no image URL in response")
		t.handles.Surface.SetImage(t.placeholder)
		out.Kind = KindMissingResult
		out.Err = generation.ErrMissingResult
	default:
		t.handles.Surface.SetImage(res.ImageURL)
		out.Kind = KindSuccess
		out.ImageRef = res.ImageURL
	}

	if out.Err != nil {
		out.ErrDetail = out.Err.Error()
		out.ImageRef = t.placeholder
	}
	out.Duration = t.now().Sub(a.started)
	return out
}

// completeDetached is Complete for activations running on their own
// goroutine: a panic during the request settles as a RequestFailure instead
// of taking the host down.
func (a *Activation) completeDetached(ctx context.Context) Outcome {
	if a.skipped {
		return a.Complete(ctx)
	}
	out := a.runRecovered(ctx)
	a.t.notify(out)
	return out
}

func (a *Activation) runRecovered(ctx context.Context) (out Outcome) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		t := a.t
		err := fmt.Errorf("generation panicked: %v", r)
		t.log.Error().
			Err(err).
			Str("kind", string(KindRequestFailure)).
			Uint64("activation", a.seq).
			Msg("error fetching generated image")
		t.handles.Surface.SetImage(t.placeholder)
		out = Outcome{
			Seq:       a.seq,
			Started:   a.started,
			Duration:  t.now().Sub(a.started),
			ImageRef:  t.placeholder,
			Kind:      KindRequestFailure,
			Err:       err,
			ErrDetail: err.Error(),
		}
	}()
	return a.run(ctx)
}

// release runs on every exit path of run, panics included.
func (t *Trigger) release() {
	t.handles.Indicator.Hide()
	if t.singleFlight {
		t.inFlight.Store(false)
	}
}

// notify fans out to observers fixed at construction, so no lock is needed.
func (t *Trigger) notify(out Outcome) {
	for _, fn := range t.observers {
		fn(out)
	}
}

// Activate runs one full activation and returns once it has settled.
func (t *Trigger) Activate(ctx context.Context) Outcome {
	return t.Begin().Complete(ctx)
}

// Bind attaches the trigger to its control. Each activation runs Begin on
// the caller's goroutine and Complete on a new one; onSettled (optional)
// receives the outcome after the indicator has been hidden. A panicking
// Fetcher settles as KindRequestFailure.
func (t *Trigger) Bind(ctx context.Context, onSettled func(Outcome)) {
	t.handles.Control.OnActivate(func() {
		a := t.Begin()
		go func() {
			out := a.completeDetached(ctx)
			if onSettled != nil {
				onSettled(out)
			}
		}()
	})
}
