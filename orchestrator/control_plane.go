package orchestrator

import (
	"github.com/shaban/troubadour"
	"github.com/shaban/troubadour/persistence"
)

// ControlPlane extends the mixer-only command surface with the
// stream-lifecycle and persistence commands of spec.md §6 that require
// the orchestrator: start_audio, stop_audio, refresh_streams,
// load_preset, save_preset. Every method is intended to run on a
// CommandQueue worker goroutine, never on an audio callback.
type ControlPlane struct {
	*troubadour.CommandSurface
	orch      *Orchestrator
	presetDir string
}

// NewControlPlane binds a control plane to orch, reading/writing
// presets under presetDir.
func NewControlPlane(orch *Orchestrator, mixer *troubadour.Mixer, presetDir string) *ControlPlane {
	return &ControlPlane{
		CommandSurface: troubadour.NewCommandSurface(mixer),
		orch:           orch,
		presetDir:      presetDir,
	}
}

// StartAudio builds effects processors and opens input/output streams.
func (c *ControlPlane) StartAudio() troubadour.CommandResult {
	if err := c.orch.Start(); err != nil {
		return troubadour.CommandResult{Err: err}
	}
	return troubadour.CommandResult{Value: "started"}
}

// StopAudio tears down all active streams.
func (c *ControlPlane) StopAudio() troubadour.CommandResult {
	c.orch.Stop()
	return troubadour.CommandResult{Value: "stopped"}
}

// RefreshStreams drops every active stream and reopens streams for the
// current device assignments, per the deferred-refresh resolution of
// SPEC_FULL.md's open question on bus removal.
func (c *ControlPlane) RefreshStreams() troubadour.CommandResult {
	if err := c.orch.RefreshStreams(); err != nil {
		return troubadour.CommandResult{Err: err}
	}
	return troubadour.CommandResult{Value: "refreshed"}
}

// LoadPreset replaces the mixer's channel/bus/routing state with the
// named preset.
func (c *ControlPlane) LoadPreset(name string) troubadour.CommandResult {
	section, err := persistence.LoadPreset(c.presetDir, name)
	if err != nil {
		return troubadour.CommandResult{Err: err}
	}
	if err := persistence.ApplyMixer(c.Mixer, section); err != nil {
		return troubadour.CommandResult{Err: err}
	}
	return troubadour.CommandResult{Value: name}
}

// SavePreset writes the mixer's current channel/bus/routing state as a
// named preset.
func (c *ControlPlane) SavePreset(name string) troubadour.CommandResult {
	section := persistence.SnapshotMixer(c.Mixer)
	if err := persistence.SavePreset(c.presetDir, name, section); err != nil {
		return troubadour.CommandResult{Err: err}
	}
	return troubadour.CommandResult{Value: name}
}
