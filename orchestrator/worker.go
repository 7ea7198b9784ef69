package orchestrator

import "github.com/shaban/troubadour/dsp"

// ProcessAudio runs one iteration of the audio worker (spec.md §4.10):
// drain each active input ring, fan out to bound channels, run the
// mixer, and push per-device output accumulations.
func (o *Orchestrator) ProcessAudio() {
	o.mu.Lock()
	inputsSnapshot := make(map[string]*activeInputStream, len(o.inputs))
	for id, s := range o.inputs {
		inputsSnapshot[id] = s
	}
	outputsSnapshot := make(map[string]*activeOutputStream, len(o.outputs))
	for id, s := range o.outputs {
		outputsSnapshot[id] = s
	}
	processors := o.processors
	o.mu.Unlock()

	inputBuf := make([]float32, o.bufferSize*o.channels)
	perChannel := make(map[string][]float32)

	for _, as := range inputsSnapshot {
		n := as.ring.Read(inputBuf)
		if n == 0 {
			o.Telemetry.InputUnderruns.Add(1)
			continue
		}
		for _, chID := range as.channelIDs {
			buf := make([]float32, n)
			copy(buf, inputBuf[:n])
			perChannel[chID] = buf
		}
	}

	out := o.mixer.ProcessWithEffects(perChannel, processors)

	perDeviceOutput := make(map[string][]float32)
	buses := o.mixer.Buses()
	busDevice := make(map[string]*string, len(buses))
	for _, b := range buses {
		busDevice[b.ID] = b.OutputDevice
	}

	for destID, buf := range out {
		devPtr, isBus := busDevice[destID]
		if !isBus || devPtr == nil {
			continue
		}
		acc, ok := perDeviceOutput[*devPtr]
		if !ok {
			acc = make([]float32, len(buf))
			perDeviceOutput[*devPtr] = acc
		}
		for i, s := range buf {
			if i >= len(acc) {
				break
			}
			acc[i] += s
		}
	}

	for deviceID, buf := range perDeviceOutput {
		as, ok := outputsSnapshot[deviceID]
		if !ok {
			o.logger.Warn("no active output stream for device", "device", deviceID)
			o.Telemetry.OutputsDropped.Add(1)
			continue
		}
		outFrames := as.resampler.OutputFrames(len(buf) / o.channels)
		resampled := as.resampler.ScratchBuf(outFrames * o.channels)
		n := as.resampler.Process(buf, resampled)
		written := as.ring.Write(resampled[:n])
		if written < n {
			o.Telemetry.OutputOverruns.Add(1)
		}
	}
}

// ensureProcessors builds a fresh dsp.Chain for every channel from its
// current effects configuration at the engine sample rate, replacing
// the previous set. Called by the control-plane thread on
// start/refresh; never from ProcessAudio.
func (o *Orchestrator) ensureProcessors() {
	channels := o.mixer.Channels()
	fresh := make(map[string]*dsp.Chain, len(channels))
	for id, ch := range channels {
		fresh[id] = dsp.NewChain(ch.Effects, float32(o.sampleRate))
	}
	o.mu.Lock()
	o.processors = fresh
	o.mu.Unlock()
}
