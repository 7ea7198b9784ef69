// Package orchestrator implements the stream-orchestration layer that
// binds per-channel device capture, mixer processing, and per-bus
// device playback into one coherent pipeline (spec.md §4.10).
package orchestrator

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/shaban/troubadour"
	"github.com/shaban/troubadour/audiohost"
	"github.com/shaban/troubadour/dsp"
	"github.com/shaban/troubadour/resample"
	"github.com/shaban/troubadour/ringbuffer"
)

// Telemetry counts non-fatal runtime conditions spec.md §5/§7 say are
// observable but not errors: ring underruns/overruns and dropped
// output pushes.
type Telemetry struct {
	InputUnderruns  atomic.Int64
	OutputOverruns  atomic.Int64
	OutputsDropped  atomic.Int64
}

type activeInputStream struct {
	stream     audiohost.Stream
	ring       *ringbuffer.RingBuffer
	resampler  *resample.Resampler
	channelIDs []string
}

type activeOutputStream struct {
	stream    audiohost.Stream
	ring      *ringbuffer.RingBuffer
	resampler *resample.Resampler
	busIDs    []string
}

// Orchestrator owns the audio-host handle, the mixer, and the active
// stream maps (spec.md §4.10). The active-stream maps are mutated only
// on the control-plane thread: Start*, Refresh, and Stop.
type Orchestrator struct {
	host       audiohost.Host
	mixer      *troubadour.Mixer
	sampleRate int
	channels   int
	bufferSize int

	mu      sync.Mutex
	inputs  map[string]*activeInputStream
	outputs map[string]*activeOutputStream
	running atomic.Bool

	// processors holds one effects chain per channel. The control-plane
	// thread replaces the whole map under mu on start/refresh and clears
	// it on stop; ProcessAudio takes the current map under mu and runs
	// the chains on the worker thread. It is never touched from an
	// audio callback.
	processors map[string]*dsp.Chain

	Telemetry Telemetry
	logger    *log.Logger
}

// Config parameterizes a new Orchestrator.
type Config struct {
	SampleRate int
	Channels   int // interleaved channel count, e.g. 2 for stereo
	BufferSize int
	Logger     *log.Logger
}

// New returns an orchestrator bound to host and mixer, with no active
// streams.
func New(host audiohost.Host, mixer *troubadour.Mixer, cfg Config) *Orchestrator {
	if cfg.Channels < 1 {
		cfg.Channels = 2
	}
	if cfg.BufferSize < 1 {
		cfg.BufferSize = 512
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		host:       host,
		mixer:      mixer,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		bufferSize: cfg.BufferSize,
		inputs:     make(map[string]*activeInputStream),
		outputs:    make(map[string]*activeOutputStream),
		processors: make(map[string]*dsp.Chain),
		logger:     logger,
	}
}

// Running reports whether streams are currently active.
func (o *Orchestrator) Running() bool { return o.running.Load() }

// teardownLocked stops and drops every active stream. Caller must hold
// o.mu.
func (o *Orchestrator) teardownLocked() {
	for id, s := range o.inputs {
		if err := s.stream.Close(); err != nil {
			o.logger.Warn("input stream close failed", "device", id, "err", err)
		}
	}
	for id, s := range o.outputs {
		if err := s.stream.Close(); err != nil {
			o.logger.Warn("output stream close failed", "device", id, "err", err)
		}
	}
	o.inputs = make(map[string]*activeInputStream)
	o.outputs = make(map[string]*activeOutputStream)
}

// Stop tears down all streams and discards the effects processors.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.teardownLocked()
	o.processors = make(map[string]*dsp.Chain)
	o.running.Store(false)
}

// deviceRate picks the sample rate a device stream should run at: the
// device's default, else its first listed rate, else the engine rate.
func (o *Orchestrator) deviceRate(info audiohost.DeviceInfo) int {
	if info.DefaultSampleRate > 0 {
		return info.DefaultSampleRate
	}
	if len(info.SampleRates) > 0 {
		return info.SampleRates[0]
	}
	return o.sampleRate
}
