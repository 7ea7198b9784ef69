// Package resample implements the mixer's per-stream sample-rate
// converter: linear interpolation with a bypass fast path when source
// and target rates already match (spec.md §4.3).
package resample

// Resampler converts interleaved multi-channel audio from a source
// sample rate to a target rate by linear interpolation. It keeps a
// fractional read position across calls so streaming input produces
// continuous output.
type Resampler struct {
	sourceRate, targetRate int
	channels               int
	pos                    float64 // fractional frame position into the pending input
	scratch                []float32
}

// New constructs a resampler for the given rates and channel count.
func New(sourceRate, targetRate, channels int) *Resampler {
	if channels < 1 {
		channels = 1
	}
	return &Resampler{sourceRate: sourceRate, targetRate: targetRate, channels: channels}
}

// Bypass reports whether source and target rates match, in which case
// Process is a straight copy.
func (r *Resampler) Bypass() bool { return r.sourceRate == r.targetRate }

// Reset clears the fractional read position.
func (r *Resampler) Reset() { r.pos = 0 }

// ScratchBuf returns a pre-allocated scratch buffer of at least n
// samples, growing it only when necessary so that a caller driving
// this resampler from an audio callback can avoid allocating there
// (spec.md §5: the resampler is allocation-free except for a
// per-stream temporary buffer the caller must pre-allocate).
func (r *Resampler) ScratchBuf(n int) []float32 {
	if cap(r.scratch) < n {
		r.scratch = make([]float32, n)
	}
	return r.scratch[:n]
}

// Process converts in (interleaved, r.channels-wide frames) into out,
// returning the count of interleaved samples written. out must be at
// least as long as the caller expects to receive; Process writes no
// more than len(out) samples. When Bypass is true this is a memcpy.
func (r *Resampler) Process(in, out []float32) int {
	if r.Bypass() {
		n := len(in)
		if n > len(out) {
			n = len(out)
		}
		n -= n % r.channels // keep frame alignment
		copy(out, in[:n])
		return n
	}

	ch := r.channels
	inFrames := len(in) / ch
	if inFrames == 0 {
		return 0
	}
	outFrames := len(out) / ch
	ratio := float64(r.targetRate) / float64(r.sourceRate)

	written := 0
	p := r.pos
	for k := 0; k < outFrames; k++ {
		i0 := int(p)
		if i0 >= inFrames {
			break
		}
		i1 := i0 + 1
		if i1 > inFrames-1 {
			i1 = inFrames - 1 // never extrapolate past the end
		}
		frac := float32(p - float64(i0))
		for c := 0; c < ch; c++ {
			a := in[i0*ch+c]
			b := in[i1*ch+c]
			out[k*ch+c] = a + (b-a)*frac
		}
		written += ch
		p += 1 / ratio
	}

	// Keep the fractional position modulo the input length so the next
	// call continues smoothly; spec.md §4.3.
	for p >= float64(inFrames) {
		p -= float64(inFrames)
	}
	r.pos = p
	return written
}

// OutputFrames estimates how many output frames inputFrames will
// produce, for pre-sizing destination buffers.
func (r *Resampler) OutputFrames(inputFrames int) int {
	if r.Bypass() {
		return inputFrames
	}
	ratio := float64(r.targetRate) / float64(r.sourceRate)
	return int(float64(inputFrames) * ratio)
}
