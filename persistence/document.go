// Package persistence implements the textual key-value document
// described in spec.md §6: the three sections app/audio/mixer shared
// by the main configuration file and presets, loaded and saved with a
// real TOML codec (BurntSushi/toml). This is a concrete implementation
// of what spec.md treats as an external collaborator, added because
// SPEC_FULL.md needs the round-tripping contract to be testable
// (SPEC_FULL.md §4.13).
package persistence

// AppSection holds process-wide tuning knobs.
type AppSection struct {
	BufferSize        int     `toml:"buffer_size"`
	SampleRate        int     `toml:"sample_rate"`
	EnableResampling  bool    `toml:"enable_resampling"`
	MeterDecayRate    float64 `toml:"meter_decay_rate"`
	PresetDir         string  `toml:"preset_dir"`
	AutoSaveIntervalS int     `toml:"auto_save_interval"`
}

// AudioSection holds the default device/stream configuration.
type AudioSection struct {
	InputDevice  string `toml:"input_device"`
	OutputDevice string `toml:"output_device"`
	SampleRate   int    `toml:"sample_rate"`
	BufferSize   int    `toml:"buffer_size"`
}

// ChannelRecord is one channel's persisted state.
type ChannelRecord struct {
	ID          string  `toml:"id"`
	Name        string  `toml:"name"`
	VolumeDB    float64 `toml:"volume_db"`
	Muted       bool    `toml:"muted"`
	Solo        bool    `toml:"solo"`
	InputDevice *string `toml:"input_device,omitempty"`
}

// BusRecord is one bus's persisted state.
type BusRecord struct {
	ID           string  `toml:"id"`
	Name         string  `toml:"name"`
	VolumeDB     float64 `toml:"volume_db"`
	Muted        bool    `toml:"muted"`
	OutputDevice *string `toml:"output_device,omitempty"`
}

// RouteRecord is one routing-matrix entry.
type RouteRecord struct {
	From    string `toml:"from"`
	To      string `toml:"to"`
	Enabled bool   `toml:"enabled"`
}

// MixerSection is the full mixer state: channels, buses, routing.
type MixerSection struct {
	Channels []ChannelRecord `toml:"channels"`
	Buses    []BusRecord     `toml:"buses"`
	Routing  []RouteRecord   `toml:"routing"`
}

// Document is the full persisted file: main config carries all three
// sections, a preset carries Mixer alone (App/Audio left zero).
type Document struct {
	App   AppSection   `toml:"app"`
	Audio AudioSection `toml:"audio"`
	Mixer MixerSection `toml:"mixer"`
}

// FactoryDefault returns the document spec.md §6 specifies: three
// channels (mic 0dB, music -6dB, system -12dB), two buses (A1, A2),
// and every channel routed to every bus.
func FactoryDefault() Document {
	channels := []ChannelRecord{
		{ID: "mic", Name: "mic", VolumeDB: 0},
		{ID: "music", Name: "music", VolumeDB: -6},
		{ID: "system", Name: "system", VolumeDB: -12},
	}
	buses := []BusRecord{
		{ID: "A1", Name: "A1"},
		{ID: "A2", Name: "A2"},
	}
	var routes []RouteRecord
	for _, c := range channels {
		for _, b := range buses {
			routes = append(routes, RouteRecord{From: c.ID, To: b.ID, Enabled: true})
		}
	}
	return Document{
		App: AppSection{
			BufferSize:     512,
			SampleRate:     48000,
			MeterDecayRate: 3.0,
			PresetDir:      "presets",
		},
		Mixer: MixerSection{Channels: channels, Buses: buses, Routing: routes},
	}
}

// Valid reports whether doc satisfies the invariants persistence must
// check before handing state to the mixer: bus count in [2, 5]
// (SPEC_FULL.md §3's supplemental invariant).
func (d Document) Valid() bool {
	return len(d.Mixer.Buses) >= 2 && len(d.Mixer.Buses) <= 5
}
