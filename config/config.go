// Package config loads the raconfig.yaml file describing where a resource
// adapter project keeps its sources, type tables and deployment descriptor.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/raconfig/java"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "raconfig.yaml"

// Conventional Maven locations, used when the configuration names none.
const (
	DefaultSourceDir  = "src/main/java"
	DefaultDescriptor = "src/main/rar/META-INF/ra.xml"
)

type Config struct {
	// Root is the project directory. Relative paths resolve against it.
	Root string `yaml:"-"`

	ModuleName string `yaml:"moduleName"`

	// Sources are directories scanned for .java files.
	Sources []string `yaml:"sources"`
	// Types are YAML type tables describing classes without sources, such
	// as those of library jars.
	Types []string `yaml:"types"`
	// Descriptor is the ra.xml to merge into. Annotations alone define the
	// adapter when it is empty or missing.
	Descriptor string `yaml:"descriptor"`
	// Defaults is an optional table of accessor values consulted before
	// evaluating accessors from source.
	Defaults string `yaml:"defaults"`

	Workers   int `yaml:"workers"`
	CacheSize int `yaml:"cacheSize"`
}

// Default returns the configuration used for a project without a
// configuration file.
func Default(root string) *Config {
	c := &Config{Root: root}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.ModuleName == "" {
		abs, err := filepath.Abs(c.Root)
		if err == nil {
			c.ModuleName = filepath.Base(abs)
		}
	}
	if len(c.Sources) == 0 {
		if isDir(filepath.Join(c.Root, DefaultSourceDir)) {
			c.Sources = []string{DefaultSourceDir}
		} else {
			c.Sources = []string{"."}
		}
	}
	if c.Descriptor == "" && fileExists(filepath.Join(c.Root, DefaultDescriptor)) {
		c.Descriptor = DefaultDescriptor
	}
	if c.CacheSize == 0 {
		c.CacheSize = java.DefaultCacheSize
	}
}

// Load reads a configuration file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	c := &Config{}
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid configuration YAML in %q: %w", path, err)
	}
	c.Root = filepath.Dir(path)
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadDir loads FileName from dir, falling back to Default when the file
// does not exist.
func LoadDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		c := Default(dir)
		return c, c.Validate()
	}
	return Load(path)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cacheSize must not be negative, got %d", c.CacheSize))
	}
	for _, src := range c.Sources {
		if !isDir(c.Path(src)) {
			errs = append(errs, fmt.Errorf("source directory %q does not exist", src))
		}
	}
	for _, t := range c.Types {
		if !fileExists(c.Path(t)) {
			errs = append(errs, fmt.Errorf("type table %q does not exist", t))
		}
	}
	if c.Defaults != "" && !fileExists(c.Path(c.Defaults)) {
		errs = append(errs, fmt.Errorf("defaults table %q does not exist", c.Defaults))
	}
	return errors.Join(errs...)
}

// Path resolves p against the project root.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// DescriptorPath returns the resolved descriptor path, or "" when the
// descriptor is not configured or does not exist.
func (c *Config) DescriptorPath() string {
	if c.Descriptor == "" {
		return ""
	}
	p := c.Path(c.Descriptor)
	if !fileExists(p) {
		return ""
	}
	return p
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
