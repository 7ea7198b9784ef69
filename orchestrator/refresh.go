package orchestrator

// RefreshStreams tears down all active streams and re-runs the input
// and output start sequences, reflecting the current device-assignment
// state. Must not be called from an audio callback (spec.md §4.10).
func (o *Orchestrator) RefreshStreams() error {
	o.mu.Lock()
	o.teardownLocked()
	o.mu.Unlock()

	o.ensureProcessors()

	if err := o.StartChannelStreams(); err != nil {
		return err
	}
	return o.StartBusStreams()
}

// Start is a convenience wrapper used by the command surface's
// start_audio: it builds the effects processors from the current
// configuration, then starts input and output streams.
func (o *Orchestrator) Start() error {
	o.ensureProcessors()
	if err := o.StartChannelStreams(); err != nil {
		return err
	}
	return o.StartBusStreams()
}
