package troubadour

import (
	"math"
	"sync"

	"github.com/shaban/troubadour/dsp"
)

// Mixer aggregates channels, buses, and the routing matrix, and
// performs the per-frame mix with solo/mute semantics and bus gain
// (spec.md §4.9). It is guarded by a single mutex; every mutation and
// the per-frame ProcessWithEffects call are performed while holding it
// (spec.md §5). The lock must never be held across platform-stream
// construction or destruction — that discipline lives in the
// orchestrator, not here.
type Mixer struct {
	mu sync.Mutex

	channels map[string]*Channel
	busOrder []string
	buses    map[string]*Bus
	routing  *RoutingMatrix

	soloedChannel *string
}

// NewMixer returns a mixer with no channels and two buses, A1 and A2
// (the minimum bus count), routed to nothing.
func NewMixer() *Mixer {
	m := &Mixer{
		channels: make(map[string]*Channel),
		buses:    make(map[string]*Bus),
		routing:  NewRoutingMatrix(),
	}
	for _, id := range busSeries[:MinBusCount] {
		b := NewBus(id, id)
		m.buses[id] = &b
		m.busOrder = append(m.busOrder, id)
	}
	return m
}

// --- Channel management ---

// AddChannel inserts a new channel. Returns ErrValidation if id or
// name is malformed, or if id is already in use.
func (m *Mixer) AddChannel(id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !ValidID(id) {
		return validationf("invalid channel id %q", id)
	}
	if !ValidName(name) {
		return validationf("invalid channel name %q", name)
	}
	if _, exists := m.channels[id]; exists {
		return validationf("channel %q already exists", id)
	}
	ch := NewChannel(id, name)
	m.channels[id] = &ch
	return nil
}

// RemoveChannel deletes the channel and purges every routing entry
// naming it (spec.md invariant 5). Returns ErrNotFound if id is
// unknown; no partial mutation occurs.
func (m *Mixer) RemoveChannel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[id]; !ok {
		return notFoundf("channel %q", id)
	}
	delete(m.channels, id)
	m.routing.RemoveEntity(id)
	if m.soloedChannel != nil && *m.soloedChannel == id {
		m.soloedChannel = nil
	}
	return nil
}

// Channel returns a copy of the named channel and whether it exists.
func (m *Mixer) Channel(id string) (Channel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[id]
	if !ok {
		return Channel{}, false
	}
	return *ch, true
}

// Channels returns a copy of every channel, keyed by id.
func (m *Mixer) Channels() map[string]Channel {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Channel, len(m.channels))
	for id, ch := range m.channels {
		out[id] = *ch
	}
	return out
}

// --- Bus management ---

// AddBus appends the next bus id in the A-series. Returns
// ErrInvalidConfiguration when the bus count is already at the
// maximum.
func (m *Mixer) AddBus() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.busOrder) >= MaxBusCount {
		return "", invalidConfigf("bus limit reached")
	}
	id := busSeries[len(m.busOrder)]
	b := NewBus(id, id)
	m.buses[id] = &b
	m.busOrder = append(m.busOrder, id)
	return id, nil
}

// RemoveBus pops the last bus and purges routing entries naming it.
// Returns ErrInvalidConfiguration when the bus count is already at the
// minimum.
func (m *Mixer) RemoveBus() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.busOrder) <= MinBusCount {
		return invalidConfigf("bus minimum reached")
	}
	last := m.busOrder[len(m.busOrder)-1]
	m.busOrder = m.busOrder[:len(m.busOrder)-1]
	delete(m.buses, last)
	m.routing.RemoveEntity(last)
	return nil
}

// Bus returns a copy of the named bus and whether it exists.
func (m *Mixer) Bus(id string) (Bus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buses[id]
	if !ok {
		return Bus{}, false
	}
	return *b, true
}

// Buses returns a copy of every bus, in A-series order.
func (m *Mixer) Buses() []Bus {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Bus, 0, len(m.busOrder))
	for _, id := range m.busOrder {
		out = append(out, *m.buses[id])
	}
	return out
}

// BusCount returns the current number of buses.
func (m *Mixer) BusCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.busOrder)
}

// --- Routing ---

// SetRoute upserts from->to. Either end must be a known channel or bus
// id.
func (m *Mixer) SetRoute(from, to string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.knownID(from) || !m.knownID(to) {
		return validationf("unknown route endpoint %q -> %q", from, to)
	}
	m.routing.SetRoute(from, to, enabled)
	return nil
}

func (m *Mixer) knownID(id string) bool {
	if _, ok := m.channels[id]; ok {
		return true
	}
	_, ok := m.buses[id]
	return ok
}

// RoutingSnapshot returns every enabled route as (from, to) pairs, for
// persistence round-tripping. Order is unspecified.
func (m *Mixer) RoutingSnapshot() [][2]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routing.Snapshot()
}

// SetChannelBuses atomically replaces channel's bus routes with
// exactly the given set.
func (m *Mixer) SetChannelBuses(channel string, buses []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[channel]; !ok {
		return notFoundf("channel %q", channel)
	}
	wanted := make(map[string]bool, len(buses))
	for _, b := range buses {
		wanted[b] = true
	}
	for _, id := range m.busOrder {
		m.routing.SetRoute(channel, id, wanted[id])
	}
	return nil
}

// --- Mute / solo ---

// SetChannelVolume clamps db and assigns it to channel.
func (m *Mixer) SetChannelVolume(id string, db float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[id]
	if !ok {
		return notFoundf("channel %q", id)
	}
	ch.SetVolume(db)
	return nil
}

// ToggleMute flips channel's mute flag and returns the new state.
func (m *Mixer) ToggleMute(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[id]
	if !ok {
		return false, notFoundf("channel %q", id)
	}
	ch.Muted = !ch.Muted
	return ch.Muted, nil
}

// ToggleSolo flips channel's solo flag non-exclusively and returns the
// new state.
func (m *Mixer) ToggleSolo(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[id]
	if !ok {
		return false, notFoundf("channel %q", id)
	}
	ch.Solo = !ch.Solo
	if !ch.Solo && m.soloedChannel != nil && *m.soloedChannel == id {
		m.soloedChannel = nil
	}
	return ch.Solo, nil
}

// SetSoloExclusive sets solo=true on exactly id and false on every
// other channel when enabled is true, recording id as the soloed
// channel. When enabled is false it clears solo on id and, if id was
// the soloed channel, clears that record too (spec.md §4.9).
func (m *Mixer) SetSoloExclusive(id string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[id]; !ok {
		return notFoundf("channel %q", id)
	}
	if enabled {
		for cid, ch := range m.channels {
			ch.Solo = cid == id
		}
		m.soloedChannel = &id
		return nil
	}
	m.channels[id].Solo = false
	if m.soloedChannel != nil && *m.soloedChannel == id {
		m.soloedChannel = nil
	}
	return nil
}

// --- Bus mute/volume/device ---

// SetBusVolume clamps db and assigns it to bus.
func (m *Mixer) SetBusVolume(id string, db float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buses[id]
	if !ok {
		return notFoundf("bus %q", id)
	}
	b.SetVolume(db)
	return nil
}

// SetBusMute assigns bus's mute flag.
func (m *Mixer) SetBusMute(id string, muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buses[id]
	if !ok {
		return notFoundf("bus %q", id)
	}
	b.Muted = muted
	return nil
}

// SetChannelInputDevice assigns channel's input device id (nil clears
// it). The caller is responsible for refreshing streams afterward.
func (m *Mixer) SetChannelInputDevice(id string, device *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[id]
	if !ok {
		return notFoundf("channel %q", id)
	}
	ch.InputDevice = device
	return nil
}

// SetBusOutputDevice assigns bus's output device id (nil clears it).
// The caller is responsible for refreshing streams afterward.
func (m *Mixer) SetBusOutputDevice(id string, device *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buses[id]
	if !ok {
		return notFoundf("bus %q", id)
	}
	b.OutputDevice = device
	return nil
}

// --- Frame processing ---

// anySoloActiveLocked reports whether any channel currently has solo
// set. Caller must hold m.mu.
func (m *Mixer) anySoloActiveLocked() bool {
	for _, ch := range m.channels {
		if ch.Solo {
			return true
		}
	}
	return false
}

// audibleLocked applies spec.md §4.9's audibility rule: a channel
// contributes iff it is not muted, and either no channel is soloed or
// it itself is soloed. Caller must hold m.mu.
func (m *Mixer) audibleLocked(ch *Channel, anySolo bool) bool {
	if ch.Muted {
		return false
	}
	return !anySolo || ch.Solo
}

// ProcessWithEffects mixes inputs (channel id -> interleaved buffer)
// into per-destination buffers per spec.md §4.9. Every channel with an
// input buffer has its level meter updated first, regardless of mute
// or solo state; only then does an audible, unmuted channel get
// cloned, optionally run through processors[id], scaled by its gain,
// and fan-out-accumulated into every routed destination. Destinations
// that are buses then have bus gain applied in place. processors may
// be nil or partial; a channel with no entry is mixed unprocessed.
func (m *Mixer) ProcessWithEffects(inputs map[string][]float32, processors map[string]*dsp.Chain) map[string][]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	anySolo := m.anySoloActiveLocked()
	out := make(map[string][]float32, len(inputs))

	for chID, buf := range inputs {
		ch, ok := m.channels[chID]
		if !ok {
			continue
		}
		ch.Meter.Update(rms(buf))
		if !m.audibleLocked(ch, anySolo) {
			continue
		}

		clone := make([]float32, len(buf))
		copy(clone, buf)
		if proc, ok := processors[chID]; ok && proc != nil {
			proc.Process(clone)
		}
		gain := ch.Volume.Amplitude()

		for _, dest := range m.routing.GetOutputs(chID) {
			dst, ok := out[dest]
			if !ok {
				dst = make([]float32, len(clone))
				out[dest] = dst
			}
			for i, s := range clone {
				if i >= len(dst) {
					break
				}
				dst[i] += s * gain
			}
		}
	}

	for destID, buf := range out {
		if b, ok := m.buses[destID]; ok {
			g := b.EffectiveGain()
			for i := range buf {
				buf[i] *= g
			}
		}
	}

	return out
}

// DecayMeters lowers every channel's peak by amount dB, floored. It is
// called by the orchestrator on a schedule, not on every frame
// (spec.md §4.9).
func (m *Mixer) DecayMeters(amount float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.channels {
		ch.Meter.DecayPeak(amount)
	}
}

func rms(buf []float32) float32 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, s := range buf {
		sum += float64(s) * float64(s)
	}
	mean := sum / float64(len(buf))
	return float32(math.Sqrt(mean))
}
