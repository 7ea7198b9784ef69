package dsp

import "fmt"

// EffectKind tags a ChainEntry's variant.
type EffectKind string

const (
	EffectEqualizer EffectKind = "equalizer"
	EffectCompressor EffectKind = "compressor"
	EffectNoiseGate  EffectKind = "noise-gate"
)

// ChainEntry is one ordered effect-variant entry, tagged with its own
// parameter record. Exactly one of the typed parameter fields is
// meaningful, selected by Kind; spec.md §3.
type ChainEntry struct {
	Kind       EffectKind
	Equalizer  EqualizerParams
	Compressor CompressorParams
	Gate       GateParams
	Bypassed   bool
}

// ChainConfig is an ordered sequence of effect-variant entries. It is
// data only: a Chain is built from it by the stream orchestrator at
// stream start.
type ChainConfig struct {
	Entries []ChainEntry
}

// Append adds an entry to the end of the configuration.
func (c *ChainConfig) Append(e ChainEntry) {
	c.Entries = append(c.Entries, e)
}

// RemoveAt removes the i-th entry, preserving the order of the
// remainder. Returns false if i is out of range.
func (c *ChainConfig) RemoveAt(i int) bool {
	if i < 0 || i >= len(c.Entries) {
		return false
	}
	c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
	return true
}

// effect is the stateful runtime form of one ChainEntry.
type effect interface {
	Process(buf []float32)
	Reset()
	SetBypass(bool)
}

type eqEffect struct{ *Equalizer }

func (e eqEffect) Process(buf []float32) { e.Equalizer.Process(buf) }

type compEffect struct{ *Compressor }

func (c compEffect) Process(buf []float32) { c.Compressor.Process(buf) }

type gateEffect struct{ *Gate }

func (g gateEffect) Process(buf []float32) { g.Gate.Process(buf, nil) }

// Chain is a processor instantiated from a ChainConfig at a fixed
// sample rate: one stateful effect per entry, in order. It is owned by
// the stream orchestrator and never touched from an audio callback
// (spec.md §4.7, §9).
type Chain struct {
	sampleRate float32
	effects    []effect
}

// NewChain builds a Chain from cfg at sampleRate, instantiating one
// stateful effect per entry in order.
func NewChain(cfg ChainConfig, sampleRate float32) *Chain {
	ch := &Chain{sampleRate: sampleRate}
	for _, e := range cfg.Entries {
		ch.effects = append(ch.effects, newEffect(e, sampleRate))
	}
	return ch
}

func newEffect(e ChainEntry, sampleRate float32) effect {
	switch e.Kind {
	case EffectEqualizer:
		eq := NewEqualizer(sampleRate)
		eq.SetParams(e.Equalizer)
		eq.SetBypass(e.Bypassed)
		return eqEffect{eq}
	case EffectCompressor:
		comp := NewCompressor(sampleRate)
		comp.SetParams(e.Compressor)
		comp.SetBypass(e.Bypassed)
		return compEffect{comp}
	case EffectNoiseGate:
		gate := NewGate(sampleRate)
		gate.SetParams(e.Gate)
		gate.SetBypass(e.Bypassed)
		return gateEffect{gate}
	default:
		return eqEffect{NewEqualizer(sampleRate)}
	}
}

// Process runs every non-bypassed effect on buf in place, in order.
// A panicking effect is treated as non-fatal per spec.md §7: its frame
// is skipped (the buffer is left as the prior effect produced it) and
// the remaining effects still run.
func (c *Chain) Process(buf []float32) {
	for _, e := range c.effects {
		c.runOne(e, buf)
	}
}

func (c *Chain) runOne(e effect, buf []float32) (err error) {
	saved := append([]float32(nil), buf...)
	defer func() {
		if r := recover(); r != nil {
			copy(buf, saved)
			err = fmt.Errorf("effect panic: %v", r)
		}
	}()
	e.Process(buf)
	return nil
}

// Reset resets every effect's state.
func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}

// SetBypass toggles bypass on the i-th effect. No-op if i is out of
// range.
func (c *Chain) SetBypass(i int, b bool) {
	if i < 0 || i >= len(c.effects) {
		return
	}
	c.effects[i].SetBypass(b)
}

// Len returns the number of effects in the chain.
func (c *Chain) Len() int { return len(c.effects) }
