// Package settings loads p4bridge behavior flags from a settings file.
//
// Editor-style settings files conventionally allow comments, so the JSON
// form is parsed as JSONC: github.com/tidwall/jsonc strips comments and
// trailing commas before the standard encoding/json parser runs. A YAML
// form is accepted as well, selected by file extension.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/samueldotj/p4bridge/internal/model"
)

// Settings holds the behavior flags for the action dispatch layer.
//
// The flags are passed explicitly into the dispatcher at construction
// time — no package reads them from ambient global state.
type Settings struct {
	// AutoOpen opens a file for edit when a dirty buffer is about to be
	// saved (the before-persist hook).
	AutoOpen bool `json:"autoOpen" yaml:"autoOpen"`

	// AutoAdd schedules a freshly saved file for add when it lies under
	// the client root (the after-persist hook).
	AutoAdd bool `json:"autoAdd" yaml:"autoAdd"`

	// WarningsEnabled surfaces warning messages to the user. When false,
	// warnings still go to the diagnostic log but are not shown.
	WarningsEnabled bool `json:"warningsEnabled" yaml:"warningsEnabled"`

	// IgnoreSuffixes lists file-name suffixes the watch host skips
	// (temporary files, build artifacts). Matched with strings.HasSuffix.
	IgnoreSuffixes []string `json:"ignoreSuffixes" yaml:"ignoreSuffixes"`
}

// fileNames are the settings file names Discover searches for, in
// precedence order within each directory.
var fileNames = []string{
	".p4bridge.jsonc",
	".p4bridge.json",
	".p4bridge.yaml",
	".p4bridge.yml",
}

// maxAscent bounds the upward search, for the same reason the .p4config
// resolver bounds its walk.
const maxAscent = 256

// Default returns the settings used when no settings file exists.
func Default() Settings {
	return Settings{
		AutoOpen:        true,
		AutoAdd:         false,
		WarningsEnabled: true,
	}
}

// Load reads a settings file, choosing the parser by extension.
// Fields absent from the file keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304 — path is the user's own settings file
	if err != nil {
		return Settings{}, model.WrapCLIError(model.ExitConfigParse,
			fmt.Sprintf("cannot read settings file %s", path), err)
	}

	s := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// jsonc.ToJSON rewrites comments and trailing commas to
		// whitespace, preserving offsets for the standard parser.
		if err := json.Unmarshal(jsonc.ToJSON(data), &s); err != nil {
			return Settings{}, model.WrapCLIError(model.ExitConfigParse,
				fmt.Sprintf("cannot parse settings file %s", path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, model.WrapCLIError(model.ExitConfigParse,
				fmt.Sprintf("cannot parse settings file %s", path), err)
		}
	default:
		return Settings{}, model.NewCLIError(model.ExitConfigParse,
			fmt.Sprintf("unsupported settings file extension: %s", path))
	}

	return s, nil
}

// Discover finds and loads the nearest settings file.
//
// The search walks upward from startDir toward the filesystem root, then
// falls back to the user's home directory, mirroring how the .p4config
// resolver walks for Perforce settings. Returns the defaults and an
// empty path when no file exists anywhere; a file that exists but cannot
// be parsed is an error, not a silent fallback.
func Discover(startDir string) (Settings, string, error) {
	if startDir != "" {
		dir := startDir
		for i := 0; i < maxAscent; i++ {
			if path, ok := findIn(dir); ok {
				s, err := Load(path)
				return s, path, err
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if path, ok := findIn(home); ok {
			s, err := Load(path)
			return s, path, err
		}
	}

	return Default(), "", nil
}

// findIn checks a single directory for a settings file, honoring the
// precedence order of fileNames.
func findIn(dir string) (string, bool) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}
