package persistence

import "github.com/shaban/troubadour"

// ApplyMixer rebuilds m in place from section: existing channels and
// non-minimum buses are dropped first, then section's channels, buses,
// and routing are recreated. Used by config load and preset load
// (spec.md §6).
func ApplyMixer(m *troubadour.Mixer, section MixerSection) error {
	for id := range m.Channels() {
		if err := m.RemoveChannel(id); err != nil {
			return err
		}
	}
	for m.BusCount() > troubadour.MinBusCount {
		if err := m.RemoveBus(); err != nil {
			return err
		}
	}

	for i, b := range section.Buses {
		if i >= troubadour.MinBusCount {
			if _, err := m.AddBus(); err != nil {
				return err
			}
		}
		if err := m.SetBusVolume(b.ID, float32(b.VolumeDB)); err != nil {
			return err
		}
		if err := m.SetBusMute(b.ID, b.Muted); err != nil {
			return err
		}
		if err := m.SetBusOutputDevice(b.ID, b.OutputDevice); err != nil {
			return err
		}
	}

	for _, c := range section.Channels {
		if err := m.AddChannel(c.ID, c.Name); err != nil {
			return err
		}
		if err := m.SetChannelVolume(c.ID, float32(c.VolumeDB)); err != nil {
			return err
		}
		if c.Muted {
			if _, err := m.ToggleMute(c.ID); err != nil {
				return err
			}
		}
		if c.Solo {
			if _, err := m.ToggleSolo(c.ID); err != nil {
				return err
			}
		}
		if err := m.SetChannelInputDevice(c.ID, c.InputDevice); err != nil {
			return err
		}
	}

	for _, r := range section.Routing {
		if err := m.SetRoute(r.From, r.To, r.Enabled); err != nil {
			return err
		}
	}
	return nil
}

// SnapshotMixer captures m's current state as a MixerSection, suitable
// for Save or SavePreset.
func SnapshotMixer(m *troubadour.Mixer) MixerSection {
	channels := m.Channels()
	chRecords := make([]ChannelRecord, 0, len(channels))
	for id, ch := range channels {
		chRecords = append(chRecords, ChannelRecord{
			ID:          id,
			Name:        ch.Name,
			VolumeDB:    float64(ch.Volume.Float32()),
			Muted:       ch.Muted,
			Solo:        ch.Solo,
			InputDevice: ch.InputDevice,
		})
	}

	buses := m.Buses()
	busRecords := make([]BusRecord, 0, len(buses))
	for _, b := range buses {
		busRecords = append(busRecords, BusRecord{
			ID:           b.ID,
			Name:         b.Name,
			VolumeDB:     float64(b.Volume.Float32()),
			Muted:        b.Muted,
			OutputDevice: b.OutputDevice,
		})
	}

	var routes []RouteRecord
	for _, pair := range m.RoutingSnapshot() {
		routes = append(routes, RouteRecord{From: pair[0], To: pair[1], Enabled: true})
	}

	return MixerSection{Channels: chRecords, Buses: busRecords, Routing: routes}
}
