package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/shaban/troubadour"
)

const corruptSuffix = ".corrupt"

// Load reads a Document from path. On a parse error or an invariant
// violation (bus count outside [2, 5]) the bad file is renamed aside
// with a ".corrupt" suffix and FactoryDefault is returned instead of
// an error: a malformed config must not block startup (spec.md §7).
func Load(path string) (Document, error) {
	var doc Document
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if os.IsNotExist(err) {
			return FactoryDefault(), nil
		}
		quarantine(path)
		return FactoryDefault(), nil
	}
	if !doc.Valid() {
		quarantine(path)
		return FactoryDefault(), nil
	}
	return doc, nil
}

// quarantine renames a corrupt file aside so it isn't silently
// overwritten by the next Save, best-effort: a failure to quarantine
// is not itself a reason to fail Load.
func quarantine(path string) {
	_ = os.Rename(path, path+corruptSuffix)
}

// Save writes doc to path atomically: it marshals to a temp file in
// the same directory, then renames it over the target. os.Rename is
// atomic within a single filesystem on both POSIX and Windows.
func Save(path string, doc Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".troubadour-*.toml.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// LoadPreset loads a named preset from dir, decoding only the Mixer
// section (App/Audio are left zero-valued). Unlike Load, a missing
// preset file is a genuine not-found result rather than a fallback to
// FactoryDefault: presets are a distinct command result (spec.md §6)
// and a typo'd name must not silently hand back default mixer state.
func LoadPreset(dir, name string) (MixerSection, error) {
	path := presetPath(dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return MixerSection{}, fmt.Errorf("preset %q: %w", name, troubadour.ErrNotFound)
		}
		return MixerSection{}, err
	}

	doc, err := Load(path)
	if err != nil {
		return MixerSection{}, err
	}
	return doc.Mixer, nil
}

// SavePreset writes mixer as a preset document under dir, keyed by
// name.
func SavePreset(dir, name string, mixer MixerSection) error {
	return Save(presetPath(dir, name), Document{Mixer: mixer})
}

func presetPath(dir, name string) string {
	return filepath.Join(dir, name+".toml")
}
