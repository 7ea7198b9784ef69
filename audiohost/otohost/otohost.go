// Package otohost is a real, cross-platform, cgo-free audiohost.Host
// output backend built on ebitengine/oto/v3 (grounded on
// IntuitionAmiga-IntuitionEngine's audio_backend_oto.go). oto exposes
// no capture API, so this backend is output-only by construction:
// ListInputDevices reports no devices, and DefaultInputDevice and
// OpenInputStream report audiohost.ErrUnsupported.
package otohost

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/shaban/troubadour/audiohost"
)

const defaultDeviceID = "default"

// Host wraps a single oto.Context. oto manages the system's default
// output device directly; there is no device enumeration API, so the
// host exposes exactly one synthetic "default" device. Its listed
// rates (44100, 48000; default 48000) are fixed and do not follow the
// rate of the oto context once one has been created.
type Host struct {
	mu  sync.Mutex
	ctx *oto.Context
}

// New returns an otohost.Host with no context yet created; the first
// OpenOutputStream call creates one at the requested sample rate.
func New() *Host {
	return &Host{}
}

func (h *Host) ListInputDevices() ([]audiohost.DeviceInfo, error) {
	return nil, nil
}

func (h *Host) ListOutputDevices() ([]audiohost.DeviceInfo, error) {
	return []audiohost.DeviceInfo{{
		ID:                defaultDeviceID,
		DisplayName:       "System default output",
		SampleRates:       []int{44100, 48000},
		ChannelCounts:     []int{2},
		DefaultSampleRate: 48000,
		Kind:              audiohost.KindOutput,
	}}, nil
}

func (h *Host) DefaultInputDevice() (audiohost.DeviceInfo, error) {
	return audiohost.DeviceInfo{}, audiohost.ErrUnsupported
}

func (h *Host) DefaultOutputDevice() (audiohost.DeviceInfo, error) {
	devs, _ := h.ListOutputDevices()
	return devs[0], nil
}

func (h *Host) OpenInputStream(string, audiohost.StreamConfig, audiohost.InputCallback) (audiohost.Stream, error) {
	return nil, audiohost.ErrUnsupported
}

func (h *Host) OpenOutputStream(deviceID string, cfg audiohost.StreamConfig, cb audiohost.OutputCallback) (audiohost.Stream, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatFloat32LE,
			BufferSize:   0,
		})
		if err != nil {
			return nil, audiohost.ErrUnsupported
		}
		<-ready
		h.ctx = ctx
	}

	s := &Stream{cb: cb, frameBytes: cfg.Channels * 4}
	s.player = h.ctx.NewPlayer(s)
	return s, nil
}

// Stream adapts an audiohost.OutputCallback to oto's io.Reader-driven
// player: each Read pulls one buffer's worth of float32 samples from
// the callback and encodes them little-endian.
type Stream struct {
	cb         audiohost.OutputCallback
	player     *oto.Player
	frameBytes int

	sampleBuf []float32
	playing   atomic.Bool
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.cb == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	n := len(p) / 4
	if cap(s.sampleBuf) < n {
		s.sampleBuf = make([]float32, n)
	}
	samples := s.sampleBuf[:n]
	s.cb(samples)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return n * 4, nil
}

func (s *Stream) Play() error {
	if s.playing.CompareAndSwap(false, true) {
		s.player.Play()
	}
	return nil
}

func (s *Stream) Close() error {
	if s.playing.CompareAndSwap(true, false) {
		return s.player.Close()
	}
	return s.player.Close()
}
