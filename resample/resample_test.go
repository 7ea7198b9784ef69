package resample

import "testing"

func TestBypassWhenRatesMatch(t *testing.T) {
	r := New(48000, 48000, 2)
	if !r.Bypass() {
		t.Fatalf("equal rates should bypass")
	}
}

func TestBypassCopiesAndAlignsFrames(t *testing.T) {
	r := New(48000, 48000, 2)
	in := []float32{1, 2, 3, 4, 5}
	out := make([]float32, 3)
	n := r.Process(in, out)
	if n != 2 {
		t.Fatalf("Process returned %d, want 2 (clamped to len(out), frame-aligned)", n)
	}
	if out[0] != 1 || out[1] != 2 {
		t.Fatalf("unexpected bypass output: %v", out[:n])
	}
}

func TestBypassNeverWritesPastOut(t *testing.T) {
	r := New(48000, 48000, 1)
	in := make([]float32, 100)
	for i := range in {
		in[i] = float32(i)
	}
	out := make([]float32, 10)
	n := r.Process(in, out)
	if n != 10 {
		t.Fatalf("Process returned %d, want 10", n)
	}
}

func TestUpsampleProducesMoreFrames(t *testing.T) {
	r := New(24000, 48000, 1)
	in := []float32{0, 1, 0, -1, 0, 1, 0, -1}
	out := make([]float32, 64)
	n := r.Process(in, out)
	if n <= len(in) {
		t.Fatalf("upsampling should produce more samples than input, got %d from %d", n, len(in))
	}
}

func TestDownsampleProducesFewerFrames(t *testing.T) {
	r := New(48000, 24000, 1)
	in := make([]float32, 64)
	for i := range in {
		in[i] = float32(i % 2)
	}
	out := make([]float32, 64)
	n := r.Process(in, out)
	if n >= len(in) {
		t.Fatalf("downsampling should produce fewer samples than input, got %d from %d", n, len(in))
	}
}

func TestOutputFramesEstimate(t *testing.T) {
	r := New(24000, 48000, 1)
	if got := r.OutputFrames(100); got != 200 {
		t.Errorf("OutputFrames(100) = %d, want 200", got)
	}
	rb := New(48000, 48000, 2)
	if got := rb.OutputFrames(50); got != 50 {
		t.Errorf("bypass OutputFrames(50) = %d, want 50", got)
	}
}

func TestScratchBufGrowsOnlyWhenNeeded(t *testing.T) {
	r := New(48000, 48000, 1)
	a := r.ScratchBuf(4)
	a[0] = 42
	b := r.ScratchBuf(2)
	if b[0] != 42 {
		t.Errorf("ScratchBuf should reuse backing array when shrinking, lost prior contents")
	}
	c := r.ScratchBuf(100)
	if len(c) != 100 {
		t.Errorf("ScratchBuf(100) len = %d, want 100", len(c))
	}
}

func TestProcessAfterResetProducesOutput(t *testing.T) {
	r := New(24000, 48000, 1)
	in := []float32{0, 1, 0, -1}
	out := make([]float32, 16)
	r.Process(in, out)
	r.Reset()
	out2 := make([]float32, 16)
	n1 := r.Process(in, out2)
	if n1 == 0 {
		t.Fatalf("expected output after reset")
	}
}
