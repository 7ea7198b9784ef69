// Package dsp implements the mixer's per-channel signal-processing
// primitives: a Direct Form I biquad, a three-band parametric
// equalizer, a feed-forward compressor, a noise gate, and the ordered
// effects chain that strings them together.
package dsp

import "math"

// Coeffs are normalized biquad coefficients (a0 is pre-divided out).
// The zero value outputs silence; UnityCoeffs gives pass-through.
type Coeffs struct {
	B0, B1, B2 float32
	A1, A2     float32
}

// UnityCoeffs returns a pass-through filter.
func UnityCoeffs() Coeffs {
	return Coeffs{B0: 1}
}

// Finite reports whether every coefficient is finite, per spec.md
// invariant 2.
func (c Coeffs) Finite() bool {
	for _, v := range []float32{c.B0, c.B1, c.B2, c.A1, c.A2} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Biquad is a Direct Form I second-order IIR filter holding the last
// two inputs and outputs.
type Biquad struct {
	c          Coeffs
	x1, x2     float32
	y1, y2     float32
}

// NewBiquad returns a unity-coefficient, zero-state filter.
func NewBiquad() *Biquad {
	return &Biquad{c: UnityCoeffs()}
}

// SetCoeffs replaces the coefficients without touching state, so a
// parameter change does not introduce a discontinuity beyond what
// Direct Form I already tolerates at audio rates.
func (b *Biquad) SetCoeffs(c Coeffs) {
	if !c.Finite() {
		return
	}
	b.c = c
}

// Reset zeroes all filter state.
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

// Process filters one sample.
func (b *Biquad) Process(x float32) float32 {
	c := b.c
	y := c.B0*x + c.B1*b.x1 + c.B2*b.x2 - c.A1*b.y1 - c.A2*b.y2
	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y
	return y
}

// clampGainDB clamps an equalizer-band gain request to ±12 dB
// regardless of the caller's slider range, per spec.md §4.4.
func clampGainDB(db float32) float32 {
	const lim = 12
	if db > lim {
		return lim
	}
	if db < -lim {
		return -lim
	}
	return db
}

// LowShelf returns RBJ audio-EQ-cookbook low-shelf coefficients.
func LowShelf(dbGain float32, freqHz, sampleRate, q float32) Coeffs {
	dbGain = clampGainDB(dbGain)
	a := math.Pow(10, float64(dbGain)/40)
	w := 2 * math.Pi * float64(freqHz) / float64(sampleRate)
	cosw, sinw := math.Cos(w), math.Sin(w)
	alpha := sinw / (2 * float64(q))
	sqrtA := math.Sqrt(a)

	b0 := a * ((a + 1) - (a-1)*cosw + 2*sqrtA*alpha)
	b1 := 2 * a * ((a - 1) - (a+1)*cosw)
	b2 := a * ((a + 1) - (a-1)*cosw - 2*sqrtA*alpha)
	a0 := (a + 1) + (a-1)*cosw + 2*sqrtA*alpha
	a1 := -2 * ((a - 1) + (a+1)*cosw)
	a2 := (a + 1) + (a-1)*cosw - 2*sqrtA*alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

// HighShelf returns RBJ audio-EQ-cookbook high-shelf coefficients,
// mirroring LowShelf with the sign changes on the (a-1)*cos terms.
func HighShelf(dbGain float32, freqHz, sampleRate, q float32) Coeffs {
	dbGain = clampGainDB(dbGain)
	a := math.Pow(10, float64(dbGain)/40)
	w := 2 * math.Pi * float64(freqHz) / float64(sampleRate)
	cosw, sinw := math.Cos(w), math.Sin(w)
	alpha := sinw / (2 * float64(q))
	sqrtA := math.Sqrt(a)

	b0 := a * ((a + 1) + (a-1)*cosw + 2*sqrtA*alpha)
	b1 := -2 * a * ((a - 1) + (a+1)*cosw)
	b2 := a * ((a + 1) + (a-1)*cosw - 2*sqrtA*alpha)
	a0 := (a + 1) - (a-1)*cosw + 2*sqrtA*alpha
	a1 := 2 * ((a - 1) - (a+1)*cosw)
	a2 := (a + 1) - (a-1)*cosw - 2*sqrtA*alpha

	return normalize(b0, b1, b2, a0, a1, a2)
}

// Peaking returns RBJ audio-EQ-cookbook peaking-EQ coefficients.
func Peaking(dbGain float32, freqHz, sampleRate, q float32) Coeffs {
	dbGain = clampGainDB(dbGain)
	a := math.Pow(10, float64(dbGain)/40)
	w := 2 * math.Pi * float64(freqHz) / float64(sampleRate)
	cosw, sinw := math.Cos(w), math.Sin(w)
	alpha := sinw / (2 * float64(q))

	b0 := 1 + alpha*a
	b1 := -2 * cosw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cosw
	a2 := 1 - alpha/a

	return normalize(b0, b1, b2, a0, a1, a2)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coeffs {
	if a0 == 0 {
		return UnityCoeffs()
	}
	return Coeffs{
		B0: float32(b0 / a0),
		B1: float32(b1 / a0),
		B2: float32(b2 / a0),
		A1: float32(a1 / a0),
		A2: float32(a2 / a0),
	}
}
