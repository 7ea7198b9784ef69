package dsp

import "math"

// GateParams are clamped on every setter; spec.md §3.
type GateParams struct {
	ThresholdDB  float32
	AttackS      float32
	ReleaseS     float32
	HoldS        float32
	UseSidechain bool
}

// DefaultGateParams returns a conservative starting point.
func DefaultGateParams() GateParams {
	return GateParams{ThresholdDB: -45, AttackS: 0.001, ReleaseS: 0.1, HoldS: 0.05}
}

// Clamp returns p with every field restricted to its documented
// interval.
func (p GateParams) Clamp() GateParams {
	return GateParams{
		ThresholdDB:  clamp(p.ThresholdDB, -60, 0),
		AttackS:      clamp(p.AttackS, 0.0001, 0.1),
		ReleaseS:     clamp(p.ReleaseS, 0.01, 1.0),
		HoldS:        clamp(p.HoldS, 0, 2),
		UseSidechain: p.UseSidechain,
	}
}

// gateSide is one channel's gate state: a binary-target envelope, a
// hold counter, and a second smoother producing the actual output
// gain. Two first-order smoothers, not one, because the audible gain
// ramp must not chatter when the binary target flickers near the hold
// boundary.
type gateSide struct {
	envelope envelopeFollower
	gain     envelopeFollower
	hold     int
}

// Gate is a hold-stabilized noise gate operating in-place on
// interleaved stereo; a mono tail uses the left side's state.
type Gate struct {
	sampleRate float32
	params     GateParams
	bypass     bool
	left, right gateSide
}

// NewGate constructs a gate for the given sample rate. The sample rate
// must be the engine's actual rate, not a hard-coded constant, per
// spec.md §9's call-out of the reference implementation's bug.
func NewGate(sampleRate float32) *Gate {
	return &Gate{sampleRate: sampleRate, params: DefaultGateParams()}
}

// SetParams clamps then assigns.
func (g *Gate) SetParams(p GateParams) {
	g.params = p.Clamp()
}

// SetBypass toggles bypass; entering bypass resets all per-side state.
func (g *Gate) SetBypass(b bool) {
	if b && !g.bypass {
		g.Reset()
	}
	g.bypass = b
}

// Reset zeroes both sides' envelope, gain, and hold counter.
func (g *Gate) Reset() {
	g.left = gateSide{}
	g.right = gateSide{}
}

func (g *Gate) holdSamples() int {
	return int(g.params.HoldS * g.sampleRate)
}

// stepSide advances one side's state by one sample given the level (in
// linear magnitude) used to decide whether the gate should be open,
// and returns the output gain to apply.
func (g *Gate) stepSide(s *gateSide, level float32, attack, release float32) float32 {
	threshLinear := NewDecibelLike(g.params.ThresholdDB)
	var binaryTarget float32
	if level > threshLinear {
		binaryTarget = 1
	}
	env := s.envelope.step(binaryTarget, attack, release)

	if env > 0.5 {
		s.hold = g.holdSamples()
	} else if s.hold > 0 {
		s.hold--
	}

	var gainTarget float32
	if env > 0.5 || s.hold > 0 {
		gainTarget = 1
	}
	return s.gain.step(gainTarget, attack, release)
}

// Process gates buf in place. sidechain, when non-nil and
// params.UseSidechain is set, supplies an externally measured dB level
// per sample (mono) used in place of the input's own magnitude to pick
// the binary target.
func (g *Gate) Process(buf []float32, sidechain []float32) {
	if g.bypass {
		return
	}
	attack := timeConstantCoeff(g.params.AttackS, g.sampleRate)
	release := timeConstantCoeff(g.params.ReleaseS, g.sampleRate)

	n := len(buf)
	frames := n / 2
	for i := 0; i < frames; i++ {
		l, r := buf[2*i], buf[2*i+1]
		levelL, levelR := float32(math.Abs(float64(l))), float32(math.Abs(float64(r)))
		if g.params.UseSidechain && sidechain != nil && i < len(sidechain) {
			sc := NewDecibelLike(sidechain[i])
			levelL, levelR = sc, sc
		}
		gl := g.stepSide(&g.left, levelL, attack, release)
		gr := g.stepSide(&g.right, levelR, attack, release)
		buf[2*i] = l * gl
		buf[2*i+1] = r * gr
	}
	if n%2 == 1 {
		x := buf[n-1]
		level := float32(math.Abs(float64(x)))
		if g.params.UseSidechain && sidechain != nil && frames < len(sidechain) {
			level = NewDecibelLike(sidechain[frames])
		}
		gl := g.stepSide(&g.left, level, attack, release)
		buf[n-1] = x * gl
	}
}
