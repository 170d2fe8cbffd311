// Package manifest reads the project's composer.json.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrManifestUnreadable is returned when the manifest is missing or not valid JSON.
	ErrManifestUnreadable = errors.New("manifest unreadable")
	// ErrMissingDependency is returned when a required package is not declared.
	ErrMissingDependency = errors.New("missing dependency")
)

// Manifest is the subset of composer.json marygen needs.
type Manifest struct {
	Require     map[string]string `json:"require"`
	RequireDev  map[string]string `json:"require-dev"`
	Autoload    Autoload          `json:"autoload"`
	AutoloadDev Autoload          `json:"autoload-dev"`
}

// Autoload holds the PSR-4 namespace to directory map.
type Autoload struct {
	PSR4 map[string]psr4Dirs `json:"psr-4"`
}

// psr4Dirs accepts both "App\\": "app/" and "App\\": ["app/", "src/"].
type psr4Dirs []string

func (d *psr4Dirs) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*d = psr4Dirs{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*d = many
	return nil
}

// Load reads and parses a composer.json file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestUnreadable, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in %s: %v", ErrManifestUnreadable, path, err)
	}

	return &m, nil
}

// Has reports whether pkg is listed under require or require-dev.
func (m *Manifest) Has(pkg string) bool {
	if _, ok := m.Require[pkg]; ok {
		return true
	}
	_, ok := m.RequireDev[pkg]
	return ok
}

// RequirePackage fails with ErrMissingDependency when pkg is not declared.
func (m *Manifest) RequirePackage(pkg string) error {
	if !m.Has(pkg) {
		return fmt.Errorf("%w: %s", ErrMissingDependency, pkg)
	}
	return nil
}

// ClassPath maps a fully qualified class name to the file PSR-4 autoloading would load.
// It returns false when no configured namespace prefix matches.
func (m *Manifest) ClassPath(projectDir, fqcn string) (string, bool) {
	fqcn = strings.TrimPrefix(fqcn, `\`)

	prefixes := make(map[string]psr4Dirs)
	for _, a := range []Autoload{m.Autoload, m.AutoloadDev} {
		for ns, dirs := range a.PSR4 {
			prefixes[ns] = append(prefixes[ns], dirs...)
		}
	}

	// longest namespace prefix wins
	keys := make([]string, 0, len(prefixes))
	for ns := range prefixes {
		keys = append(keys, ns)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	for _, ns := range keys {
		if !strings.HasPrefix(fqcn, ns) {
			continue
		}
		rel := strings.ReplaceAll(strings.TrimPrefix(fqcn, ns), `\`, "/") + ".php"
		for _, dir := range prefixes[ns] {
			path := filepath.Join(projectDir, filepath.FromSlash(dir), filepath.FromSlash(rel))
			if _, err := os.Stat(path); err == nil {
				return path, true
			}
		}
	}
	return "", false
}
