package ringbuffer

import "testing"

func TestNewRoundsCapacityToPowerOfTwo(t *testing.T) {
	cases := map[int]int{1: 2, 2: 2, 3: 4, 5: 8, 16: 16, 17: 32}
	for req, want := range cases {
		rb := New(req)
		if got := rb.Capacity(); got != want {
			t.Errorf("New(%d).Capacity() = %d, want %d", req, got, want)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	rb := New(8)
	in := []float32{1, 2, 3, 4}
	n := rb.Write(in)
	if n != 4 {
		t.Fatalf("Write returned %d, want 4", n)
	}
	out := make([]float32, 4)
	n = rb.Read(out)
	if n != 4 {
		t.Fatalf("Read returned %d, want 4", n)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestWriteNeverExceedsAvailable(t *testing.T) {
	rb := New(4) // capacity 4, one slot always free -> 3 writable
	n := rb.Write([]float32{1, 2, 3, 4, 5})
	if n != 3 {
		t.Fatalf("Write returned %d, want 3 (capacity-1)", n)
	}
	if rb.AvailableWrite() != 0 {
		t.Fatalf("AvailableWrite() = %d, want 0", rb.AvailableWrite())
	}
}

func TestReadNeverExceedsAvailable(t *testing.T) {
	rb := New(8)
	rb.Write([]float32{1, 2})
	out := make([]float32, 5)
	n := rb.Read(out)
	if n != 2 {
		t.Fatalf("Read returned %d, want 2", n)
	}
}

func TestIsEmpty(t *testing.T) {
	rb := New(8)
	if !rb.IsEmpty() {
		t.Fatalf("fresh ring buffer should be empty")
	}
	rb.Write([]float32{1})
	if rb.IsEmpty() {
		t.Fatalf("ring buffer should not be empty after a write")
	}
}

func TestClearResetsCursors(t *testing.T) {
	rb := New(8)
	rb.Write([]float32{1, 2, 3})
	rb.Clear()
	if rb.AvailableRead() != 0 {
		t.Fatalf("AvailableRead() after Clear = %d, want 0", rb.AvailableRead())
	}
	if rb.AvailableWrite() != rb.Capacity()-1 {
		t.Fatalf("AvailableWrite() after Clear = %d, want %d", rb.AvailableWrite(), rb.Capacity()-1)
	}
}

func TestWrapAroundPreservesOrder(t *testing.T) {
	rb := New(4) // capacity 4
	buf := make([]float32, 2)
	for round := 0; round < 5; round++ {
		rb.Write([]float32{float32(round*2 + 1), float32(round*2 + 2)})
		rb.Read(buf)
		if buf[0] != float32(round*2+1) || buf[1] != float32(round*2+2) {
			t.Fatalf("round %d: got %v, want [%v %v]", round, buf, round*2+1, round*2+2)
		}
	}
}
