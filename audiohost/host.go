// Package audiohost defines the platform audio-host abstraction the
// stream orchestrator consumes: device enumeration and callback
// registration (spec.md §6). The interface is the contract; this
// module treats concrete host implementations as external
// collaborators, per spec.md §1, shipping only what is needed to
// exercise and test the orchestrator end to end (audiohost/memhost,
// audiohost/otohost).
package audiohost

// DeviceKind classifies a device's capability.
type DeviceKind int

const (
	KindInput DeviceKind = iota
	KindOutput
	KindDuplex
)

// DeviceInfo describes one enumerable audio device.
type DeviceInfo struct {
	ID                string
	DisplayName       string
	SampleRates       []int
	ChannelCounts     []int
	DefaultSampleRate int
	Kind              DeviceKind
}

// StreamConfig parameterizes a platform stream. Sample format is
// always float32 (spec.md §6).
type StreamConfig struct {
	SampleRate int
	Channels   int
	BufferSize int
}

// InputCallback receives one buffer of interleaved input frames.
type InputCallback func(frames []float32)

// OutputCallback fills one buffer of interleaved output frames.
type OutputCallback func(frames []float32)

// Stream is a running platform stream. Close stops the stream and
// guarantees the callback will not fire again before any resource it
// owns is released (spec.md §5).
type Stream interface {
	Play() error
	Close() error
}

// Host is the platform audio-host abstraction consumed by the stream
// orchestrator.
type Host interface {
	ListInputDevices() ([]DeviceInfo, error)
	ListOutputDevices() ([]DeviceInfo, error)
	DefaultInputDevice() (DeviceInfo, error)
	DefaultOutputDevice() (DeviceInfo, error)
	OpenInputStream(deviceID string, cfg StreamConfig, cb InputCallback) (Stream, error)
	OpenOutputStream(deviceID string, cfg StreamConfig, cb OutputCallback) (Stream, error)
}
