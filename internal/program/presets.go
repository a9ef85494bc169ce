package program

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed presets/*.yaml
var presetFS embed.FS

var ErrUnknownPreset = errors.New("unknown preset")

// Catalog holds program definitions by key.
type Catalog struct {
	defs map[string]*Definition
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]*Definition)}
}

// LoadPresets returns a catalog of the built-in programs.
func LoadPresets() (*Catalog, error) {
	c := NewCatalog()
	if err := c.LoadFS(presetFS, "presets"); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoadPresets is LoadPresets for program startup. The built-in
// definitions are compiled in, so failure is a programming error.
func MustLoadPresets() *Catalog {
	c, err := LoadPresets()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog returns the built-in programs plus any definitions in dir.
// Definitions in dir replace built-ins with the same key.
func LoadCatalog(dir string) (*Catalog, error) {
	c, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return c, nil
	}
	if err := c.LoadFS(os.DirFS(dir), "."); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFS adds every .yaml/.yml file in dir of fsys, keyed by file name
// without extension. Later files replace earlier keys.
func (c *Catalog) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading programs from %s: %w", dir, err)
	}
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		def, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name(), err)
		}
		c.Add(strings.TrimSuffix(e.Name(), ext), def)
	}
	return nil
}

// Add registers def under key.
func (c *Catalog) Add(key string, def *Definition) {
	c.defs[key] = def
}

// Get returns the definition for key.
func (c *Catalog) Get(key string) (*Definition, error) {
	def, ok := c.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return def, nil
}

// Keys returns every key in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.defs))
	for k := range c.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
