package troubadour

// CommandResult is the uniform outcome of a control command: either
// Ok (optionally carrying a value, e.g. the id returned by AddBus) or
// an error drawn from the kinds in errors.go.
type CommandResult struct {
	Value string
	Err   error
}

// Ok reports success.
func (r CommandResult) Ok() bool { return r.Err == nil }

func ok(value string) CommandResult  { return CommandResult{Value: value} }
func fail(err error) CommandResult   { return CommandResult{Err: err} }

// CommandSurface exposes the control-plane command taxonomy of
// spec.md §6 against a single Mixer. Every method is safe to call
// from any goroutine; each forwards to the corresponding Mixer method
// and folds its error, if any, into a CommandResult.
type CommandSurface struct {
	Mixer *Mixer
}

// NewCommandSurface binds a command surface to m.
func NewCommandSurface(m *Mixer) *CommandSurface {
	return &CommandSurface{Mixer: m}
}

func (s *CommandSurface) SetVolume(channel string, db float32) CommandResult {
	if err := s.Mixer.SetChannelVolume(channel, db); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) ToggleMute(channel string) CommandResult {
	state, err := s.Mixer.ToggleMute(channel)
	if err != nil {
		return fail(err)
	}
	return ok(boolString(state))
}

func (s *CommandSurface) ToggleSolo(channel string) CommandResult {
	state, err := s.Mixer.ToggleSolo(channel)
	if err != nil {
		return fail(err)
	}
	return ok(boolString(state))
}

func (s *CommandSurface) SetSoloExclusive(channel string, enabled bool) CommandResult {
	if err := s.Mixer.SetSoloExclusive(channel, enabled); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) AddChannel(id, name string) CommandResult {
	if err := s.Mixer.AddChannel(id, name); err != nil {
		return fail(err)
	}
	return ok(id)
}

func (s *CommandSurface) RemoveChannel(id string) CommandResult {
	if err := s.Mixer.RemoveChannel(id); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) SetChannelInputDevice(id string, device *string) CommandResult {
	if err := s.Mixer.SetChannelInputDevice(id, device); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) SetRoute(from, to string, enabled bool) CommandResult {
	if err := s.Mixer.SetRoute(from, to, enabled); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) AddBus() CommandResult {
	id, err := s.Mixer.AddBus()
	if err != nil {
		return fail(err)
	}
	return ok(id)
}

func (s *CommandSurface) RemoveBus() CommandResult {
	if err := s.Mixer.RemoveBus(); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) SetBusVolume(bus string, db float32) CommandResult {
	if err := s.Mixer.SetBusVolume(bus, db); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) SetBusMute(bus string, muted bool) CommandResult {
	if err := s.Mixer.SetBusMute(bus, muted); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) SetBusOutputDevice(bus string, device *string) CommandResult {
	if err := s.Mixer.SetBusOutputDevice(bus, device); err != nil {
		return fail(err)
	}
	return ok("")
}

func (s *CommandSurface) SetChannelBuses(channel string, buses []string) CommandResult {
	if err := s.Mixer.SetChannelBuses(channel, buses); err != nil {
		return fail(err)
	}
	return ok("")
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
