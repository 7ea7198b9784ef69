package dsp

// Equalizer corner frequencies are fixed by spec.md §3: a 200 Hz low
// shelf and a 2000 Hz high shelf bracket a sweepable mid peaking band.
const (
	LowShelfFreqHz  = 200
	HighShelfFreqHz = 2000
)

// EqualizerParams are clamped on every setter; spec.md §3.
type EqualizerParams struct {
	LowGainDB  float32
	MidFreqHz  float32
	MidGainDB  float32
	MidQ       float32
	HighGainDB float32
}

// DefaultEqualizerParams returns a flat response at a mid-band center
// of 1 kHz.
func DefaultEqualizerParams() EqualizerParams {
	return EqualizerParams{MidFreqHz: 1000, MidQ: 0.707}
}

// Clamp returns p with every field restricted to its documented
// interval.
func (p EqualizerParams) Clamp() EqualizerParams {
	return EqualizerParams{
		LowGainDB:  clamp(p.LowGainDB, -12, 12),
		MidFreqHz:  clamp(p.MidFreqHz, 200, 2000),
		MidGainDB:  clamp(p.MidGainDB, -12, 12),
		MidQ:       clamp(p.MidQ, 0.1, 5.0),
		HighGainDB: clamp(p.HighGainDB, -12, 12),
	}
}

// Equalizer owns six biquads: three bands times a stereo pair. The
// buffer is treated as interleaved stereo; an odd-length tail passes
// through the left-channel filters only (spec.md §4.4).
type Equalizer struct {
	sampleRate float32
	params     EqualizerParams
	bypass     bool

	lowL, midL, highL *Biquad
	lowR, midR, highR *Biquad
}

// NewEqualizer constructs a flat equalizer for the given sample rate.
func NewEqualizer(sampleRate float32) *Equalizer {
	e := &Equalizer{
		sampleRate: sampleRate,
		params:     DefaultEqualizerParams(),
		lowL:       NewBiquad(), midL: NewBiquad(), highL: NewBiquad(),
		lowR: NewBiquad(), midR: NewBiquad(), highR: NewBiquad(),
	}
	e.applyCoeffs()
	return e
}

// SetParams clamps then regenerates all coefficients in place; filter
// state is preserved.
func (e *Equalizer) SetParams(p EqualizerParams) {
	e.params = p.Clamp()
	e.applyCoeffs()
}

func (e *Equalizer) applyCoeffs() {
	p := e.params
	low := LowShelf(p.LowGainDB, LowShelfFreqHz, e.sampleRate, 0.707)
	mid := Peaking(p.MidGainDB, p.MidFreqHz, e.sampleRate, p.MidQ)
	high := HighShelf(p.HighGainDB, HighShelfFreqHz, e.sampleRate, 0.707)
	e.lowL.SetCoeffs(low)
	e.lowR.SetCoeffs(low)
	e.midL.SetCoeffs(mid)
	e.midR.SetCoeffs(mid)
	e.highL.SetCoeffs(high)
	e.highR.SetCoeffs(high)
}

// SetBypass toggles bypass; entering bypass resets all filter state.
func (e *Equalizer) SetBypass(b bool) {
	if b && !e.bypass {
		e.Reset()
	}
	e.bypass = b
}

// Reset clears all six filters' state.
func (e *Equalizer) Reset() {
	for _, b := range []*Biquad{e.lowL, e.midL, e.highL, e.lowR, e.midR, e.highR} {
		b.Reset()
	}
}

// Process filters buf in place, interpreted as interleaved stereo.
func (e *Equalizer) Process(buf []float32) {
	if e.bypass {
		return
	}
	n := len(buf)
	frames := n / 2
	for i := 0; i < frames; i++ {
		l := buf[2*i]
		r := buf[2*i+1]
		l = e.lowL.Process(l)
		l = e.midL.Process(l)
		l = e.highL.Process(l)
		r = e.lowR.Process(r)
		r = e.midR.Process(r)
		r = e.highR.Process(r)
		buf[2*i] = l
		buf[2*i+1] = r
	}
	if n%2 == 1 {
		x := buf[n-1]
		x = e.lowL.Process(x)
		x = e.midL.Process(x)
		x = e.highL.Process(x)
		buf[n-1] = x
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
