package troubadour

// Bus is a virtual output mix: its own gain and mute, and an optional
// bound playback device. Bus ids are drawn from the ordered prefix of
// the A-series (A1..A5); spec.md §3.
type Bus struct {
	ID           string
	Name         string
	Volume       Decibel
	Muted        bool
	OutputDevice *string
}

// NewBus constructs a bus at unity gain, unmuted.
func NewBus(id, name string) Bus {
	return Bus{ID: id, Name: name, Volume: NewDecibel(0)}
}

// SetVolume clamps and assigns.
func (b *Bus) SetVolume(db float32) {
	b.Volume = NewDecibel(db)
}

// EffectiveGain returns the linear amplitude to apply to this bus's
// accumulated buffer: zero when muted, else the volume's amplitude.
func (b *Bus) EffectiveGain() float32 {
	if b.Muted {
		return 0
	}
	return b.Volume.Amplitude()
}
