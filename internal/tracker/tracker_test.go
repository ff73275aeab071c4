package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeObserver lets tests push synthetic batches.
type fakeObserver struct {
	next     Handle
	onBatch  map[Handle]func([]Entry)
	stopped  map[Handle]int
	band     Band
	observed []Region
}

func newFakeObserver() *fakeObserver {
	return &fakeObserver{
		onBatch: make(map[Handle]func([]Entry)),
		stopped: make(map[Handle]int),
	}
}

func (f *fakeObserver) Observe(regions []Region, band Band, onBatch func([]Entry)) Handle {
	f.next++
	f.onBatch[f.next] = onBatch
	f.band = band
	f.observed = regions
	return f.next
}

func (f *fakeObserver) Stop(h Handle) {
	f.stopped[h]++
}

// deliver calls the most recent callback even after Stop, so tests exercise
// the tracker's own guard against late batches.
func (f *fakeObserver) deliver(entries ...Entry) {
	f.onBatch[f.next](entries)
}

func entered(ids ...string) []Entry {
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, Entry{ID: id, Intersecting: true, Ratio: 0.5})
	}
	return out
}

func pageRegions() []Region {
	ids := []string{"home", "skills", "projects", "experience", "contact"}
	regions := make([]Region, 0, len(ids))
	for i, id := range ids {
		regions = append(regions, Region{ID: id, Top: i * 100, Bottom: (i + 1) * 100})
	}
	return regions
}

func TestDefaultIsFirstRegion(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs)
	tr.Register(pageRegions())

	require.Equal(t, "home", tr.CurrentActive())
	require.Equal(t, DefaultBand, obs.band)
	require.Len(t, obs.observed, 5)
}

func TestLastNotificationWins(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs)
	tr.Register(pageRegions())

	obs.deliver(entered("skills")...)
	require.Equal(t, "skills", tr.CurrentActive())

	obs.deliver(entered("projects", "experience")...)
	require.Equal(t, "experience", tr.CurrentActive())

	for _, seq := range [][]string{
		{"contact"},
		{"home", "contact", "skills"},
		{"projects"},
	} {
		for _, id := range seq {
			obs.deliver(entered(id)...)
		}
		require.Equal(t, seq[len(seq)-1], tr.CurrentActive())
	}
}

func TestLeavingEntriesDoNotChangeActive(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs)
	tr.Register(pageRegions())

	obs.deliver(entered("projects")...)
	obs.deliver(Entry{ID: "projects", Intersecting: false}, Entry{ID: "contact", Intersecting: false})
	require.Equal(t, "projects", tr.CurrentActive())

	obs.deliver(Entry{ID: "experience", Intersecting: true}, Entry{ID: "projects", Intersecting: false})
	require.Equal(t, "experience", tr.CurrentActive())
}

func TestUnregisterFreezesActive(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs)
	tr.Register(pageRegions())
	obs.deliver(entered("skills")...)

	tr.Unregister()
	require.Equal(t, 1, obs.stopped[1])

	obs.deliver(entered("contact")...)
	require.Equal(t, "skills", tr.CurrentActive())

	tr.Unregister()
	require.Equal(t, 1, obs.stopped[1])
	require.Equal(t, "skills", tr.CurrentActive())
}

func TestUnregisterWithoutRegister(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, WithPlaceholder("home"))

	require.NotPanics(t, tr.Unregister)
	require.NotPanics(t, tr.Unregister)
	require.Empty(t, obs.stopped)
	require.Equal(t, "home", tr.CurrentActive())
}

func TestZeroRegions(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs, WithPlaceholder("home"))
	tr.Register(nil)

	require.Equal(t, "home", tr.CurrentActive())
	require.NotPanics(t, tr.Unregister)
	require.NotPanics(t, tr.Unregister)
	require.Equal(t, "home", tr.CurrentActive())
}

func TestNilObserverKeepsDefault(t *testing.T) {
	tr := New(nil)
	tr.Register(pageRegions())
	require.Equal(t, "home", tr.CurrentActive())
	require.NotPanics(t, tr.Unregister)
}

func TestRegisterDropsDuplicateAndEmptyIDs(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs)
	tr.Register([]Region{{ID: ""}, {ID: "skills"}, {ID: "home"}, {ID: "skills"}})

	require.Equal(t, "skills", tr.CurrentActive())
	require.Equal(t, []Region{{ID: "skills"}, {ID: "home"}}, obs.observed)
}

func TestReRegisterStopsPreviousHandle(t *testing.T) {
	obs := newFakeObserver()
	tr := New(obs)
	tr.Register(pageRegions())
	stale := obs.onBatch[1]

	tr.Register(pageRegions()[2:])
	require.Equal(t, 1, obs.stopped[1])
	require.Equal(t, "projects", tr.CurrentActive())

	stale(entered("home"))
	require.Equal(t, "projects", tr.CurrentActive())

	obs.deliver(entered("contact")...)
	require.Equal(t, "contact", tr.CurrentActive())
}

// syncObserver delivers the first batch from inside Observe, as a browser
// IntersectionObserver does right after observe().
type syncObserver struct {
	fakeObserver
	initial []Entry
}

func (s *syncObserver) Observe(regions []Region, band Band, onBatch func([]Entry)) Handle {
	h := s.fakeObserver.Observe(regions, band, onBatch)
	onBatch(s.initial)
	return h
}

func TestInitialBatchDuringObserve(t *testing.T) {
	obs := &syncObserver{fakeObserver: *newFakeObserver(), initial: entered("projects")}
	tr := New(obs)
	tr.Register(pageRegions())

	require.Equal(t, "projects", tr.CurrentActive())
}

func TestWithBand(t *testing.T) {
	obs := newFakeObserver()
	band := Band{TopInset: 0.25, BottomInset: 0.25, Threshold: 0.5}
	New(obs, WithBand(band)).Register(pageRegions())
	require.Equal(t, band, obs.band)
}
