package orchestrator

import (
	"github.com/shaban/troubadour"
	"github.com/shaban/troubadour/audiohost"
	"github.com/shaban/troubadour/resample"
	"github.com/shaban/troubadour/ringbuffer"
)

// StartChannelStreams groups the mixer's channels by their bound input
// device, opens one platform input stream per device, and records each
// as an active stream (spec.md §4.10). On failure it tears down any
// streams already started in this call before returning the error.
func (o *Orchestrator) StartChannelStreams() error {
	channels := o.mixer.Channels() // snapshot without holding the mixer lock across stream construction

	groups := make(map[string][]string)
	for id, ch := range channels {
		dev, err := o.resolveInputDevice(ch.InputDevice)
		if err != nil {
			continue // no device available for this channel; it simply produces no input
		}
		groups[dev] = append(groups[dev], id)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	started := make([]string, 0, len(groups))
	for deviceID, ids := range groups {
		as, err := o.openInputGroup(deviceID, ids)
		if err != nil {
			for _, sid := range started {
				if s, ok := o.inputs[sid]; ok {
					s.stream.Close()
					delete(o.inputs, sid)
				}
			}
			return troubadour.NewStreamError(deviceID, err)
		}
		o.inputs[deviceID] = as
		started = append(started, deviceID)
		if err := as.stream.Play(); err != nil {
			for _, sid := range started {
				if s, ok := o.inputs[sid]; ok {
					s.stream.Close()
					delete(o.inputs, sid)
				}
			}
			return troubadour.NewStreamError(deviceID, err)
		}
	}
	o.running.Store(true)
	return nil
}

func (o *Orchestrator) resolveInputDevice(assigned *string) (string, error) {
	if assigned != nil {
		return *assigned, nil
	}
	d, err := o.host.DefaultInputDevice()
	if err != nil {
		return "", err
	}
	return d.ID, nil
}

func (o *Orchestrator) resolveOutputDevice(assigned *string) (string, bool) {
	if assigned == nil {
		return "", false
	}
	return *assigned, true
}

func (o *Orchestrator) openInputGroup(deviceID string, channelIDs []string) (*activeInputStream, error) {
	devices, err := o.host.ListInputDevices()
	if err != nil {
		return nil, err
	}
	var info audiohost.DeviceInfo
	found := false
	for _, d := range devices {
		if d.ID == deviceID {
			info, found = d, true
			break
		}
	}
	if !found {
		info = audiohost.DeviceInfo{ID: deviceID, DefaultSampleRate: o.sampleRate}
	}
	devRate := o.deviceRate(info)

	ring := ringbuffer.New(o.bufferSize * o.channels * 8)
	resampler := resample.New(devRate, o.sampleRate, o.channels)

	cb := func(frames []float32) {
		outFrames := resampler.OutputFrames(len(frames) / o.channels)
		out := resampler.ScratchBuf(outFrames * o.channels)
		n := resampler.Process(frames, out)
		ring.Write(out[:n])
	}

	stream, err := o.host.OpenInputStream(deviceID, audiohost.StreamConfig{
		SampleRate: devRate,
		Channels:   o.channels,
		BufferSize: o.bufferSize,
	}, cb)
	if err != nil {
		return nil, err
	}

	return &activeInputStream{
		stream:     stream,
		ring:       ring,
		resampler:  resampler,
		channelIDs: channelIDs,
	}, nil
}

// StartBusStreams groups the mixer's buses by their bound output
// device (skipping buses with no device), opens one platform output
// stream per device, and records each as an active stream. On failure
// it tears down any streams already started in this call before
// returning the error.
func (o *Orchestrator) StartBusStreams() error {
	buses := o.mixer.Buses()

	groups := make(map[string][]string)
	for _, b := range buses {
		dev, ok := o.resolveOutputDevice(b.OutputDevice)
		if !ok {
			continue
		}
		groups[dev] = append(groups[dev], b.ID)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	started := make([]string, 0, len(groups))
	for deviceID, ids := range groups {
		as, err := o.openOutputGroup(deviceID, ids)
		if err != nil {
			for _, sid := range started {
				if s, ok := o.outputs[sid]; ok {
					s.stream.Close()
					delete(o.outputs, sid)
				}
			}
			return troubadour.NewStreamError(deviceID, err)
		}
		o.outputs[deviceID] = as
		started = append(started, deviceID)
		if err := as.stream.Play(); err != nil {
			for _, sid := range started {
				if s, ok := o.outputs[sid]; ok {
					s.stream.Close()
					delete(o.outputs, sid)
				}
			}
			return troubadour.NewStreamError(deviceID, err)
		}
	}
	o.running.Store(true)
	return nil
}

func (o *Orchestrator) openOutputGroup(deviceID string, busIDs []string) (*activeOutputStream, error) {
	devices, err := o.host.ListOutputDevices()
	if err != nil {
		return nil, err
	}
	var info audiohost.DeviceInfo
	found := false
	for _, d := range devices {
		if d.ID == deviceID {
			info, found = d, true
			break
		}
	}
	if !found {
		info = audiohost.DeviceInfo{ID: deviceID, DefaultSampleRate: o.sampleRate}
	}
	devRate := o.deviceRate(info)

	ring := ringbuffer.New(o.bufferSize * o.channels * 8)
	resampler := resample.New(o.sampleRate, devRate, o.channels)

	cb := func(frames []float32) {
		n := ring.Read(frames)
		for i := n; i < len(frames); i++ {
			frames[i] = 0
		}
	}

	stream, err := o.host.OpenOutputStream(deviceID, audiohost.StreamConfig{
		SampleRate: devRate,
		Channels:   o.channels,
		BufferSize: o.bufferSize,
	}, cb)
	if err != nil {
		return nil, err
	}

	return &activeOutputStream{
		stream:    stream,
		ring:      ring,
		resampler: resampler,
		busIDs:    busIDs,
	}, nil
}
