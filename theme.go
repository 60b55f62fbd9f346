package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// PreferenceStore is a string key/value preference backend.
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

type MemoryPreferences struct {
	values map[string]string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (p *MemoryPreferences) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *MemoryPreferences) Set(key, value string) error {
	p.values[key] = value
	return nil
}

// FilePreferences keeps preferences in a flat TOML table and rewrites the
// whole file on every Set.
type FilePreferences struct {
	path   string
	values map[string]string
}

func OpenFilePreferences(path string) (*FilePreferences, error) {
	p := &FilePreferences{path: path, values: make(map[string]string)}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, &p.values); err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}
	return p, nil
}

func (p *FilePreferences) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Set writes the file first and only then updates the in-memory value.
func (p *FilePreferences) Set(key, value string) error {
	next := make(map[string]string, len(p.values)+1)
	for k, v := range p.values {
		next[k] = v
	}
	next[key] = value
	if err := p.write(next); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	p.values = next
	return nil
}

func (p *FilePreferences) write(values map[string]string) (err error) {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(p.path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return toml.NewEncoder(f).Encode(values)
}

func themeKey(namespace string) string {
	return namespace + "@theme"
}

// ThemeController reads the theme preference once and writes it back on
// every change.
type ThemeController struct {
	prefs PreferenceStore
	key   string
	theme Theme
}

func NewThemeController(prefs PreferenceStore, namespace string) *ThemeController {
	c := &ThemeController{prefs: prefs, key: themeKey(namespace), theme: ThemeAuto}
	if v, ok := prefs.Get(c.key); ok && Theme(v) == ThemeDark {
		c.theme = ThemeDark
	}
	return c
}

func (c *ThemeController) Theme() Theme {
	return c.theme
}

func (c *ThemeController) Set(t Theme) error {
	if t != ThemeAuto && t != ThemeDark {
		return fmt.Errorf("unknown theme %q", t)
	}
	if err := c.prefs.Set(c.key, string(t)); err != nil {
		return err
	}
	c.theme = t
	return nil
}

func (c *ThemeController) Toggle() error {
	if c.theme == ThemeDark {
		return c.Set(ThemeAuto)
	}
	return c.Set(ThemeDark)
}

// Dark reports whether the dark palette applies. "auto" follows the
// terminal background.
func (c *ThemeController) Dark(systemDark bool) bool {
	return c.theme == ThemeDark || (c.theme == ThemeAuto && systemDark)
}
