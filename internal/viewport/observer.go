// Package viewport implements tracker.Observer for a scrollable surface whose
// layout is known up front, such as the terminal rendition of the page.
//
// It follows IntersectionObserver semantics: every observed region is reported
// once when observation starts, and afterwards only regions whose intersecting
// state changed are reported, in registration order, one batch per Scroll.
package viewport

import (
	"sync"

	"github.com/bonhomie95/portfolio/internal/tracker"
)

// Observer tracks one vertical window (offset, height) over the content.
// Scroll and Observe must be called from a single goroutine, the host's event
// loop; Stop may be called from anywhere.
type Observer struct {
	mu     sync.Mutex
	next   tracker.Handle
	subs   map[tracker.Handle]*subscription
	offset int
	height int
}

type subscription struct {
	regions []tracker.Region
	band    tracker.Band
	onBatch func([]tracker.Entry)
	state   []bool
}

type delivery struct {
	onBatch func([]tracker.Entry)
	entries []tracker.Entry
}

// New returns an observer over a window of the given height at offset zero.
func New(height int) *Observer {
	return &Observer{
		subs:   make(map[tracker.Handle]*subscription),
		height: height,
	}
}

// Observe registers regions. Regions with Bottom < Top have no geometry and are
// skipped. The initial batch is delivered before Observe returns.
func (o *Observer) Observe(regions []tracker.Region, band tracker.Band, onBatch func([]tracker.Entry)) tracker.Handle {
	valid := make([]tracker.Region, 0, len(regions))
	for _, r := range regions {
		if r.Bottom < r.Top {
			continue
		}
		valid = append(valid, r)
	}

	o.mu.Lock()
	o.next++
	h := o.next
	sub := &subscription{
		regions: valid,
		band:    band,
		onBatch: onBatch,
		state:   make([]bool, len(valid)),
	}
	o.subs[h] = sub
	entries := make([]tracker.Entry, 0, len(valid))
	for i, r := range valid {
		ratio, ok := Intersect(r, band, o.offset, o.height)
		sub.state[i] = ok
		entries = append(entries, tracker.Entry{ID: r.ID, Intersecting: ok, Ratio: ratio})
	}
	o.mu.Unlock()

	if len(entries) > 0 && onBatch != nil {
		onBatch(entries)
	}
	return h
}

// Stop ends delivery for h. Unknown or already stopped handles are ignored.
func (o *Observer) Stop(h tracker.Handle) {
	o.mu.Lock()
	delete(o.subs, h)
	o.mu.Unlock()
}

// Scroll moves the window and reports regions that crossed the band.
func (o *Observer) Scroll(offset, height int) {
	o.mu.Lock()
	o.offset, o.height = offset, height
	pending := make([]delivery, 0, len(o.subs))
	for _, sub := range o.subs {
		var changed []tracker.Entry
		for i, r := range sub.regions {
			ratio, ok := Intersect(r, sub.band, offset, height)
			if ok == sub.state[i] {
				continue
			}
			sub.state[i] = ok
			changed = append(changed, tracker.Entry{ID: r.ID, Intersecting: ok, Ratio: ratio})
		}
		if len(changed) > 0 && sub.onBatch != nil {
			pending = append(pending, delivery{onBatch: sub.onBatch, entries: changed})
		}
	}
	o.mu.Unlock()

	for _, d := range pending {
		d.onBatch(d.entries)
	}
}

// Window returns the current offset and height.
func (o *Observer) Window() (offset, height int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.offset, o.height
}

// BandTop returns the first content line covered by the band when the window
// starts at offset.
func BandTop(band tracker.Band, offset, height int) float64 {
	return float64(offset) + band.TopInset*float64(height)
}

// Intersect reports how much of r overlaps the band of the window
// [offset, offset+height). The ratio is overlap divided by the region's extent.
// An empty region counts as intersecting when it sits inside the band,
// edges included.
func Intersect(r tracker.Region, band tracker.Band, offset, height int) (float64, bool) {
	top := BandTop(band, offset, height)
	bottom := float64(offset+height) - band.BottomInset*float64(height)
	if bottom <= top {
		return 0, false
	}

	rTop, rBottom := float64(r.Top), float64(r.Bottom)
	if rBottom == rTop {
		if rTop >= top && rTop <= bottom {
			return 1, true
		}
		return 0, false
	}

	overlap := min(rBottom, bottom) - max(rTop, top)
	if overlap <= 0 {
		return 0, false
	}
	ratio := overlap / (rBottom - rTop)
	return ratio, ratio >= band.Threshold
}
