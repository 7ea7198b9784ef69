package dsp

import "math"

// CompressorParams are clamped on every setter; spec.md §3.
type CompressorParams struct {
	ThresholdDB  float32
	Ratio        float32
	AttackS      float32
	ReleaseS     float32
	MakeupGainDB float32
}

// DefaultCompressorParams returns a gentle starting point.
func DefaultCompressorParams() CompressorParams {
	return CompressorParams{ThresholdDB: -18, Ratio: 2, AttackS: 0.01, ReleaseS: 0.15}
}

// Clamp returns p with every field restricted to its documented
// interval.
func (p CompressorParams) Clamp() CompressorParams {
	return CompressorParams{
		ThresholdDB:  clamp(p.ThresholdDB, -60, 0),
		Ratio:        clamp(p.Ratio, 1, 20),
		AttackS:      clamp(p.AttackS, 0.0001, 0.1),
		ReleaseS:     clamp(p.ReleaseS, 0.01, 1.0),
		MakeupGainDB: clamp(p.MakeupGainDB, 0, 24),
	}
}

// envelopeFollower is the one-pole follower shared, by construction, with
// Gate: on each sample it moves toward target at attackCoeff when rising
// past it, releaseCoeff otherwise.
type envelopeFollower struct {
	value float32
}

func (f *envelopeFollower) step(target, attackCoeff, releaseCoeff float32) float32 {
	coeff := releaseCoeff
	if target > f.value {
		coeff = attackCoeff
	}
	f.value = coeff*f.value + (1-coeff)*target
	return f.value
}

// timeConstantCoeff converts a time constant in seconds to the
// per-sample one-pole coefficient exp(-1/(tau*fs)).
func timeConstantCoeff(tau, sampleRate float32) float32 {
	if tau <= 0 || sampleRate <= 0 {
		return 0
	}
	return float32(math.Exp(-1 / (float64(tau) * float64(sampleRate))))
}

// Compressor is a feed-forward, dB-domain compressor operating
// in-place on interleaved stereo; a mono tail uses the left envelope.
type Compressor struct {
	sampleRate float32
	params     CompressorParams
	bypass     bool
	envL, envR envelopeFollower
}

// NewCompressor constructs a compressor for the given sample rate.
func NewCompressor(sampleRate float32) *Compressor {
	return &Compressor{sampleRate: sampleRate, params: DefaultCompressorParams()}
}

// SetParams clamps then assigns.
func (c *Compressor) SetParams(p CompressorParams) {
	c.params = p.Clamp()
}

// SetBypass toggles bypass; entering bypass resets both envelopes.
func (c *Compressor) SetBypass(b bool) {
	if b && !c.bypass {
		c.Reset()
	}
	c.bypass = b
}

// Reset zeroes both channel envelopes.
func (c *Compressor) Reset() {
	c.envL.value = 0
	c.envR.value = 0
}

// gainFor converts one side's current envelope to a linear gain
// multiplier per spec.md §4.5/§9: reduction is computed in the dB
// domain as (env_db - threshold_db)*(1 - 1/ratio), never the
// (env/threshold)^(1/ratio) form.
func (c *Compressor) gainFor(env float32) float32 {
	const floorLinear = 1e-6
	var envDB float32
	if env < floorLinear {
		envDB = -60
	} else {
		envDB = float32(20 * math.Log10(float64(env)))
	}
	if envDB <= c.params.ThresholdDB {
		return 1
	}
	reductionDB := (envDB - c.params.ThresholdDB) * (1 - 1/c.params.Ratio)
	return float32(math.Pow(10, float64(-reductionDB)/20))
}

// Process compresses buf in place.
func (c *Compressor) Process(buf []float32) {
	if c.bypass {
		return
	}
	attack := timeConstantCoeff(c.params.AttackS, c.sampleRate)
	release := timeConstantCoeff(c.params.ReleaseS, c.sampleRate)
	makeup := NewDecibelLike(c.params.MakeupGainDB)

	n := len(buf)
	frames := n / 2
	for i := 0; i < frames; i++ {
		l, r := buf[2*i], buf[2*i+1]
		el := c.envL.step(float32(math.Abs(float64(l))), attack, release)
		er := c.envR.step(float32(math.Abs(float64(r))), attack, release)
		buf[2*i] = l * c.gainFor(el) * makeup
		buf[2*i+1] = r * c.gainFor(er) * makeup
	}
	if n%2 == 1 {
		x := buf[n-1]
		el := c.envL.step(float32(math.Abs(float64(x))), attack, release)
		buf[n-1] = x * c.gainFor(el) * makeup
	}
}

// NewDecibelLike converts a dB value to linear amplitude without
// depending on the root package's clamped Decibel type (dsp must not
// import troubadour, which imports dsp).
func NewDecibelLike(db float32) float32 {
	if db <= -60 {
		return 0
	}
	return float32(math.Pow(10, float64(db)/20))
}
