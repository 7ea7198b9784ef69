package persistence

import (
	"testing"

	"github.com/shaban/troubadour"
)

func TestApplyAndSnapshotRoundTrip(t *testing.T) {
	m := troubadour.NewMixer()
	section := FactoryDefault().Mixer

	if err := ApplyMixer(m, section); err != nil {
		t.Fatalf("ApplyMixer: %v", err)
	}
	if m.BusCount() != len(section.Buses) {
		t.Fatalf("BusCount() = %d, want %d", m.BusCount(), len(section.Buses))
	}
	for _, c := range section.Channels {
		ch, ok := m.Channel(c.ID)
		if !ok {
			t.Fatalf("channel %q missing after ApplyMixer", c.ID)
		}
		if ch.Volume.Float32() != float32(c.VolumeDB) {
			t.Errorf("channel %q volume = %v, want %v", c.ID, ch.Volume.Float32(), c.VolumeDB)
		}
	}

	snap := SnapshotMixer(m)
	if len(snap.Channels) != len(section.Channels) {
		t.Errorf("snapshot channel count = %d, want %d", len(snap.Channels), len(section.Channels))
	}
	if len(snap.Routing) != len(section.Routing) {
		t.Errorf("snapshot routing count = %d, want %d", len(snap.Routing), len(section.Routing))
	}
}

func TestApplyMixerClearsPreviousState(t *testing.T) {
	m := troubadour.NewMixer()
	if err := m.AddChannel("stale", "Stale"); err != nil {
		t.Fatalf("AddChannel: %v", err)
	}
	if err := ApplyMixer(m, MixerSection{Buses: []BusRecord{{ID: "A1"}, {ID: "A2"}}}); err != nil {
		t.Fatalf("ApplyMixer: %v", err)
	}
	if _, ok := m.Channel("stale"); ok {
		t.Errorf("ApplyMixer should drop channels not present in the new section")
	}
}
