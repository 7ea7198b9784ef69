package memhost

import (
	"testing"
	"time"

	"github.com/shaban/troubadour/audiohost"
)

func TestDefaultDeviceWithNoneRegisteredFails(t *testing.T) {
	h := New()
	if _, err := h.DefaultInputDevice(); err != audiohost.ErrNoDevice {
		t.Errorf("DefaultInputDevice on empty host = %v, want ErrNoDevice", err)
	}
}

func TestAddAndListDevices(t *testing.T) {
	h := New()
	h.AddInputDevice(audiohost.DeviceInfo{ID: "mic0", DisplayName: "Mic"})
	devices, err := h.ListInputDevices()
	if err != nil {
		t.Fatalf("ListInputDevices: %v", err)
	}
	if len(devices) != 1 || devices[0].ID != "mic0" {
		t.Fatalf("ListInputDevices = %+v, want one device mic0", devices)
	}
}

func TestOpenInputStreamUnknownDeviceFails(t *testing.T) {
	h := New()
	_, err := h.OpenInputStream("ghost", audiohost.StreamConfig{SampleRate: 48000, Channels: 1, BufferSize: 64}, func([]float32) {})
	if err != audiohost.ErrNoDevice {
		t.Errorf("OpenInputStream(unknown) = %v, want ErrNoDevice", err)
	}
}

func TestOpenInputStreamEmptyDeviceIDAllowed(t *testing.T) {
	h := New()
	s, err := h.OpenInputStream("", audiohost.StreamConfig{SampleRate: 48000, Channels: 1, BufferSize: 64}, func([]float32) {})
	if err != nil {
		t.Fatalf("OpenInputStream(\"\") should be allowed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestInputStreamFeedDeliversToCallback(t *testing.T) {
	h := New()
	delivered := make(chan []float32, 1)
	cfg := audiohost.StreamConfig{SampleRate: 48000, Channels: 1, BufferSize: 4}
	s, err := h.OpenInputStream("", cfg, func(frames []float32) {
		cp := append([]float32(nil), frames...)
		select {
		case delivered <- cp:
		default:
		}
	})
	if err != nil {
		t.Fatalf("OpenInputStream: %v", err)
	}
	ms := s.(*Stream)
	ms.Feed([]float32{1, 2, 3, 4})
	if err := s.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	defer s.Close()

	select {
	case got := <-delivered:
		if len(got) == 0 {
			t.Errorf("callback received an empty buffer")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the input callback")
	}
}

func TestOutputStreamCallbackFillsRing(t *testing.T) {
	h := New()
	cfg := audiohost.StreamConfig{SampleRate: 48000, Channels: 1, BufferSize: 4}
	s, err := h.OpenOutputStream("", cfg, func(frames []float32) {
		for i := range frames {
			frames[i] = 1
		}
	})
	if err != nil {
		t.Fatalf("OpenOutputStream: %v", err)
	}
	ms := s.(*Stream)
	if err := s.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	defer s.Close()

	buf := make([]float32, 4)
	deadline := time.Now().Add(2 * time.Second)
	var n int
	for time.Now().Before(deadline) {
		n = ms.Drain(buf)
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if n == 0 {
		t.Fatalf("timed out waiting for output callback to fill the ring")
	}
}

func TestCloseIsIdempotentAndStopsCallback(t *testing.T) {
	h := New()
	cfg := audiohost.StreamConfig{SampleRate: 48000, Channels: 1, BufferSize: 4}
	s, err := h.OpenInputStream("", cfg, func([]float32) {})
	if err != nil {
		t.Fatalf("OpenInputStream: %v", err)
	}
	if err := s.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}
}
