// Package memhost is an in-process audiohost.Host backed by
// troubadour/ringbuffer, used by the orchestrator's test suite and as
// a stand-in for device capture (there is no cgo-free, cross-platform
// Go capture API among the reference corpus's dependencies; see
// DESIGN.md). Each stream runs a synthetic clock goroutine that
// invokes the registered callback at a fixed cadence, feeding or
// draining the stream's ring buffer the way a real platform callback
// would.
package memhost

import (
	"sync"
	"time"

	"github.com/shaban/troubadour/audiohost"
	"github.com/shaban/troubadour/ringbuffer"
)

// Host is an in-memory audiohost.Host. Devices are registered ahead of
// time with AddInputDevice / AddOutputDevice.
type Host struct {
	mu      sync.Mutex
	inputs  map[string]audiohost.DeviceInfo
	outputs map[string]audiohost.DeviceInfo
}

// New returns an empty host.
func New() *Host {
	return &Host{
		inputs:  make(map[string]audiohost.DeviceInfo),
		outputs: make(map[string]audiohost.DeviceInfo),
	}
}

// AddInputDevice registers a synthetic input device.
func (h *Host) AddInputDevice(d audiohost.DeviceInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d.Kind = audiohost.KindInput
	h.inputs[d.ID] = d
}

// AddOutputDevice registers a synthetic output device.
func (h *Host) AddOutputDevice(d audiohost.DeviceInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	d.Kind = audiohost.KindOutput
	h.outputs[d.ID] = d
}

func (h *Host) ListInputDevices() ([]audiohost.DeviceInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]audiohost.DeviceInfo, 0, len(h.inputs))
	for _, d := range h.inputs {
		out = append(out, d)
	}
	return out, nil
}

func (h *Host) ListOutputDevices() ([]audiohost.DeviceInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]audiohost.DeviceInfo, 0, len(h.outputs))
	for _, d := range h.outputs {
		out = append(out, d)
	}
	return out, nil
}

func (h *Host) DefaultInputDevice() (audiohost.DeviceInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range h.inputs {
		return d, nil
	}
	return audiohost.DeviceInfo{}, audiohost.ErrNoDevice
}

func (h *Host) DefaultOutputDevice() (audiohost.DeviceInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, d := range h.outputs {
		return d, nil
	}
	return audiohost.DeviceInfo{}, audiohost.ErrNoDevice
}

// Stream is a synthetic platform stream. For input streams, Feed
// pushes samples the clock goroutine will hand to the callback. For
// output streams, the callback fills a buffer the clock goroutine
// writes into the ring buffer; Drain reads it back out for inspection.
type Stream struct {
	ring     *ringbuffer.RingBuffer
	cfg      audiohost.StreamConfig
	inputCb  audiohost.InputCallback
	outputCb audiohost.OutputCallback

	mu      sync.Mutex
	playing bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func newStream(cfg audiohost.StreamConfig) *Stream {
	return &Stream{
		ring: ringbuffer.New(cfg.BufferSize * cfg.Channels * 8),
		cfg:  cfg,
		stop: make(chan struct{}),
	}
}

func (h *Host) OpenInputStream(deviceID string, cfg audiohost.StreamConfig, cb audiohost.InputCallback) (audiohost.Stream, error) {
	h.mu.Lock()
	_, ok := h.inputs[deviceID]
	h.mu.Unlock()
	if deviceID != "" && !ok {
		return nil, audiohost.ErrNoDevice
	}
	s := newStream(cfg)
	s.inputCb = cb
	return s, nil
}

func (h *Host) OpenOutputStream(deviceID string, cfg audiohost.StreamConfig, cb audiohost.OutputCallback) (audiohost.Stream, error) {
	h.mu.Lock()
	_, ok := h.outputs[deviceID]
	h.mu.Unlock()
	if deviceID != "" && !ok {
		return nil, audiohost.ErrNoDevice
	}
	s := newStream(cfg)
	s.outputCb = cb
	return s, nil
}

// Play starts the synthetic clock goroutine.
func (s *Stream) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playing {
		return nil
	}
	s.playing = true
	interval := time.Second * time.Duration(s.cfg.BufferSize) / time.Duration(max(s.cfg.SampleRate, 1))
	if interval <= 0 {
		interval = time.Millisecond
	}
	s.wg.Add(1)
	go s.clock(interval)
	return nil
}

func (s *Stream) clock(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	buf := make([]float32, s.cfg.BufferSize*s.cfg.Channels)
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if s.inputCb != nil {
				n := s.ring.Read(buf)
				if n > 0 {
					s.inputCb(buf[:n])
				}
			}
			if s.outputCb != nil {
				s.outputCb(buf)
				s.ring.Write(buf)
			}
		}
	}
}

// Close stops the clock goroutine and waits for it to exit before
// returning, guaranteeing the callback never fires again afterward.
func (s *Stream) Close() error {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return nil
	}
	s.playing = false
	s.mu.Unlock()
	close(s.stop)
	s.wg.Wait()
	return nil
}

// Feed pushes samples into an input stream's ring buffer, simulating a
// capture device producing audio.
func (s *Stream) Feed(samples []float32) int {
	return s.ring.Write(samples)
}

// Drain reads samples an output stream has written into its ring
// buffer, simulating a playback device consuming audio.
func (s *Stream) Drain(buf []float32) int {
	return s.ring.Read(buf)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
