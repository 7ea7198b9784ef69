package troubadour

import "github.com/shaban/troubadour/dsp"

// Channel is a virtual input strip: gain, mute, solo, a level meter, an
// effects-chain configuration, and an optional bound input device.
// Channel is data only — the live filter state lives in a dsp.Chain
// instance owned by the stream orchestrator, never here (spec.md §3).
type Channel struct {
	ID          string
	Name        string
	Volume      Decibel
	Muted       bool
	Solo        bool
	Meter       Level
	Effects     dsp.ChainConfig
	InputDevice *string
}

// NewChannel constructs a channel at unity gain, unmuted, not soloed.
func NewChannel(id, name string) Channel {
	return Channel{
		ID:     id,
		Name:   name,
		Volume: NewDecibel(0),
	}
}

// SetVolume clamps and assigns.
func (c *Channel) SetVolume(db float32) {
	c.Volume = NewDecibel(db)
}
