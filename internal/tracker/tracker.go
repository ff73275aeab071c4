// Package tracker keeps track of which page section is currently in view so the
// navigation can highlight the matching link.
//
// The tracker does not measure anything itself. Geometry belongs to the host
// surface (a browser, a terminal viewport), which implements Observer and pushes
// batches of intersection changes into the tracker.
package tracker

import "sync"

// Region is a named section of the page. Top and Bottom are the section's
// extent along the scroll axis, in whatever unit the host uses (pixels, lines).
type Region struct {
	ID     string
	Top    int
	Bottom int
}

// Band narrows the viewport to the slice that decides the active section.
// Insets are fractions of the viewport height measured from the top and bottom
// edges. Threshold is the fraction of a region that must overlap the band.
type Band struct {
	TopInset    float64
	BottomInset float64
	Threshold   float64
}

// DefaultBand intersects roughly 40%..45% from the top of the viewport.
var DefaultBand = Band{TopInset: 0.40, BottomInset: 0.55, Threshold: 0.01}

// Entry reports one region crossing into or out of the band.
type Entry struct {
	ID           string
	Intersecting bool
	Ratio        float64
}

// Handle identifies a running observation. The zero Handle is never issued.
type Handle uint64

// Observer is the host's region-observation primitive. Observe may deliver the
// first batch before it returns. Batches for one handle must not be delivered
// concurrently. Stop must be idempotent.
type Observer interface {
	Observe(regions []Region, band Band, onBatch func([]Entry)) Handle
	Stop(h Handle)
}

// Tracker publishes the id of the region that most recently entered the band.
type Tracker struct {
	observer    Observer
	band        Band
	placeholder string

	mu        sync.Mutex
	active    string
	handle    Handle
	observing bool
	gen       uint64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBand replaces DefaultBand.
func WithBand(b Band) Option {
	return func(t *Tracker) { t.band = b }
}

// WithPlaceholder sets the id reported when no region was ever registered.
func WithPlaceholder(id string) Option {
	return func(t *Tracker) {
		t.placeholder = id
		t.active = id
	}
}

// New returns a tracker that observes through o. A nil observer is allowed; the
// tracker then never leaves its default.
func New(o Observer, opts ...Option) *Tracker {
	t := &Tracker{observer: o, band: DefaultBand}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register starts observing regions. The first region becomes the default
// active id. Regions with a duplicate or empty id are dropped. Calling Register
// again replaces the previous registration.
func (t *Tracker) Register(regions []Region) {
	regions = dedupe(regions)

	t.mu.Lock()
	prev, hadPrev := t.handle, t.observing
	t.gen++
	gen := t.gen
	t.handle = 0
	t.observing = t.observer != nil
	if len(regions) > 0 {
		t.active = regions[0].ID
	} else {
		t.active = t.placeholder
	}
	t.mu.Unlock()

	if hadPrev && prev != 0 {
		t.observer.Stop(prev)
	}
	if t.observer == nil {
		return
	}

	h := t.observer.Observe(regions, t.band, func(batch []Entry) {
		t.apply(gen, batch)
	})

	t.mu.Lock()
	current := t.gen == gen && t.observing
	if current {
		t.handle = h
	}
	t.mu.Unlock()

	// Unregister or a newer Register raced with Observe.
	if !current {
		t.observer.Stop(h)
	}
}

// CurrentActive returns the id of the active region.
func (t *Tracker) CurrentActive() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Unregister stops observation. The active id is frozen at its current value.
// It is safe to call any number of times, with or without a prior Register.
func (t *Tracker) Unregister() {
	t.mu.Lock()
	if !t.observing {
		t.mu.Unlock()
		return
	}
	t.observing = false
	t.gen++
	h := t.handle
	t.handle = 0
	t.mu.Unlock()

	if h != 0 {
		t.observer.Stop(h)
	}
}

// apply is the observation callback. Within a batch the last intersecting
// entry wins; no proximity or overlap comparison is made.
func (t *Tracker) apply(gen uint64, batch []Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen || !t.observing {
		return
	}
	for _, e := range batch {
		if e.Intersecting {
			t.active = e.ID
		}
	}
}

func dedupe(regions []Region) []Region {
	seen := make(map[string]struct{}, len(regions))
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		if r.ID == "" {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
