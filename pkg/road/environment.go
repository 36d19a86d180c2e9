package road

import (
	_ "embed"
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"
)

//go:embed environments.yaml
var builtinEnvironments []byte

// RGB is a colour as it appears in environments.yaml
type RGB [3]uint8

// Color converts to an opaque colour
func (c RGB) Color() color.RGBA {
	return color.RGBA{c[0], c[1], c[2], 255}
}

// Environment is one roadside theme. The core treats the name as opaque;
// only the presentation layers look at the colours.
type Environment struct {
	Name    string  `yaml:"name"`
	Label   string  `yaml:"label"`
	Ground  RGB     `yaml:"ground"`
	Foliage RGB     `yaml:"foliage"`
	Road    RGB     `yaml:"road"`
	Line    RGB     `yaml:"line"`
	Density float64 `yaml:"density"` // 0.0-1.0, how much foliage is drawn
}

type environmentFile struct {
	Environments []Environment `yaml:"environments"`
	NightDim     float64       `yaml:"night_dim"`
}

// Catalog holds the available environments in file order
type Catalog struct {
	envs     []Environment
	byName   map[string]int
	NightDim float64
}

// LoadCatalog parses an environments YAML document
func LoadCatalog(data []byte) (*Catalog, error) {
	var f environmentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse environments: %w", err)
	}
	if len(f.Environments) == 0 {
		return nil, fmt.Errorf("parse environments: no environments defined")
	}

	c := &Catalog{
		envs:     f.Environments,
		byName:   make(map[string]int, len(f.Environments)),
		NightDim: f.NightDim,
	}
	for i, env := range f.Environments {
		if env.Name == "" {
			return nil, fmt.Errorf("environment %d has no name", i)
		}
		if _, dup := c.byName[env.Name]; dup {
			return nil, fmt.Errorf("environment %q defined twice", env.Name)
		}
		c.byName[env.Name] = i
	}
	if c.NightDim <= 0 || c.NightDim > 1 {
		c.NightDim = 0.5
	}
	return c, nil
}

// DefaultCatalog returns the embedded environments
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(builtinEnvironments)
	if err != nil {
		panic(err) // embedded file is part of the build
	}
	return c
}

// Get returns the named environment, falling back to the first one
func (c *Catalog) Get(name string) Environment {
	if i, ok := c.byName[name]; ok {
		return c.envs[i]
	}
	return c.envs[0]
}

// Has reports whether name is a known environment
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names lists environment names in file order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.envs))
	for i, env := range c.envs {
		names[i] = env.Name
	}
	return names
}

// Next returns the environment after name, wrapping around
func (c *Catalog) Next(name string) Environment {
	i, ok := c.byName[name]
	if !ok {
		return c.envs[0]
	}
	return c.envs[(i+1)%len(c.envs)]
}

// Dim applies the night tint to a colour
func (c *Catalog) Dim(clr color.RGBA, night bool) color.RGBA {
	if !night {
		return clr
	}
	f := c.NightDim
	return color.RGBA{
		R: uint8(float64(clr.R) * f),
		G: uint8(float64(clr.G) * f),
		B: uint8(float64(clr.B) * f),
		A: clr.A,
	}
}
