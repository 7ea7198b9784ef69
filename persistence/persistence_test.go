package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shaban/troubadour"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	doc := FactoryDefault()
	doc.App.BufferSize = 256
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.App.BufferSize != 256 {
		t.Errorf("loaded BufferSize = %d, want 256", loaded.App.BufferSize)
	}
	if len(loaded.Mixer.Channels) != len(doc.Mixer.Channels) {
		t.Errorf("loaded channel count = %d, want %d", len(loaded.Mixer.Channels), len(doc.Mixer.Channels))
	}
	if len(loaded.Mixer.Routing) != len(doc.Mixer.Routing) {
		t.Errorf("loaded routing count = %d, want %d", len(loaded.Mixer.Routing), len(doc.Mixer.Routing))
	}
}

func TestLoadMissingFileReturnsFactoryDefault(t *testing.T) {
	dir := t.TempDir()
	doc, err := Load(filepath.Join(dir, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load on a missing file should not error: %v", err)
	}
	if len(doc.Mixer.Buses) != len(FactoryDefault().Mixer.Buses) {
		t.Errorf("missing-file load should return FactoryDefault")
	}
}

func TestLoadCorruptFileQuarantinesAndReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("this is not valid toml {{{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load on a corrupt file should not error: %v", err)
	}
	if len(doc.Mixer.Buses) != len(FactoryDefault().Mixer.Buses) {
		t.Errorf("corrupt-file load should return FactoryDefault")
	}
	if _, err := os.Stat(path + corruptSuffix); err != nil {
		t.Errorf("corrupt file should be quarantined, stat failed: %v", err)
	}
}

func TestLoadInvariantViolationQuarantinesAndReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	doc := Document{Mixer: MixerSection{Buses: []BusRecord{{ID: "A1"}}}} // only one bus, violates [2,5]
	if err := Save(path, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Mixer.Buses) != len(FactoryDefault().Mixer.Buses) {
		t.Errorf("invariant-violating load should return FactoryDefault")
	}
	if _, err := os.Stat(path + corruptSuffix); err != nil {
		t.Errorf("invariant-violating file should be quarantined: %v", err)
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	path := filepath.Join(dir, "config.toml")
	if err := Save(path, FactoryDefault()); err != nil {
		t.Fatalf("Save should create parent directories: %v", err)
	}
}

func TestPresetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	section := MixerSection{
		Channels: []ChannelRecord{{ID: "mic", Name: "Mic", VolumeDB: -3}},
		Buses:    []BusRecord{{ID: "A1"}, {ID: "A2"}},
	}
	if err := SavePreset(dir, "scene1", section); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	loaded, err := LoadPreset(dir, "scene1")
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if len(loaded.Channels) != 1 || loaded.Channels[0].ID != "mic" {
		t.Fatalf("LoadPreset channels = %+v, want one entry mic", loaded.Channels)
	}
}

func TestLoadPresetMissingReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadPreset(dir, "no-such-scene")
	if !errors.Is(err, troubadour.ErrNotFound) {
		t.Fatalf("LoadPreset on a missing name should be ErrNotFound, got %v", err)
	}
}

func TestFactoryDefaultRoutesEveryChannelToEveryBus(t *testing.T) {
	doc := FactoryDefault()
	want := len(doc.Mixer.Channels) * len(doc.Mixer.Buses)
	if len(doc.Mixer.Routing) != want {
		t.Errorf("FactoryDefault routing count = %d, want %d", len(doc.Mixer.Routing), want)
	}
}
