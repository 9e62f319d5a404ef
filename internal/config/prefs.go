// Package config provides JSON-backed default settings for the command-line
// tools. Flags given on the command line always take precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const (
	appDir    = "channelprep"
	prefsFile = "preferences.json"
)

// Preference keys.
const (
	KeyExts    = "folder.exts"
	KeySuffix  = "folder.suffix"
	KeyKeepExt = "folder.keep_ext"
	KeyChannel = "dataset.channel"
	KeyWorkers = "workers"
)

// Keys lists the recognised preference keys.
func Keys() []string {
	return []string{KeyExts, KeySuffix, KeyKeepExt, KeyChannel, KeyWorkers}
}

// Prefs stores settings as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// DefaultPath returns ~/.config/channelprep/preferences.json (or the
// platform equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, prefsFile)
}

// Load reads preferences from path. A missing file yields empty preferences;
// a malformed one is an error.
func Load(path string) (*Prefs, error) {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("parsing preferences %s: %w", path, err)
	}
	return p, nil
}

// Path returns the backing file path.
func (p *Prefs) Path() string {
	return p.path
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// String returns a string preference, or fallback if not set.
func (p *Prefs) String(key, fallback string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Bool returns a bool preference, or fallback if not set.
func (p *Prefs) Bool(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Int returns an integer preference, or fallback if not set.
func (p *Prefs) Int(key string, fallback int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return fallback
}

// Strings returns a comma-separated list preference, or fallback if not set.
func (p *Prefs) Strings(key string, fallback []string) []string {
	s := p.String(key, "")
	if s == "" {
		return fallback
	}
	return strings.Split(s, ",")
}

// Set parses raw according to the type of key and stores it.
func (p *Prefs) Set(key, raw string) error {
	var val interface{}
	switch key {
	case KeyExts, KeySuffix, KeyChannel:
		val = raw
	case KeyKeepExt:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		val = b
	case KeyWorkers:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if n < 1 {
			return fmt.Errorf("%s must be at least 1", key)
		}
		val = n
	default:
		return fmt.Errorf("unknown preference %q (known: %s)", key, strings.Join(Keys(), ", "))
	}

	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
	return nil
}

// Entries returns the stored preferences as sorted "key = value" lines.
func (p *Prefs) Entries() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.values))
	for k, v := range p.values {
		out = append(out, fmt.Sprintf("%s = %v", k, v))
	}
	sort.Strings(out)
	return out
}
