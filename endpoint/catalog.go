package endpoint

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/samber/lo"
	"github.com/vidpool/vidpool/filesystem"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

type catalogFile struct {
	Endpoints []catalogEntry `yaml:"endpoints"`
}

type catalogEntry struct {
	Name         string   `yaml:"name"`
	URL          string   `yaml:"url"`
	Dialect      string   `yaml:"dialect"`
	Capabilities []string `yaml:"capabilities"`
	Priority     int      `yaml:"priority"`
	Insecure     bool     `yaml:"insecure"`
	Fingerprint  bool     `yaml:"fingerprint"`
	Script       string   `yaml:"script"`
	Timeout      string   `yaml:"timeout"`
}

// Builtin returns the catalog compiled into the binary.
func Builtin() *Registry {
	return lo.Must(ParseCatalog(builtinCatalog))
}

// Load reads the catalog at path, or returns the built-in one when the file does not exist.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Builtin(), nil
	}

	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return Builtin(), nil
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read endpoint catalog: %w", err)
	}

	registry, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return registry, nil
}

// ParseCatalog expands every entry into one Endpoint per listed capability.
func ParseCatalog(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse endpoint catalog: %w", err)
	}

	var endpoints []Endpoint
	for i, entry := range file.Endpoints {
		expanded, err := entry.expand()
		if err != nil {
			return nil, fmt.Errorf("endpoint #%d (%s): %w", i+1, entry.Name, err)
		}
		endpoints = append(endpoints, expanded...)
	}

	return NewRegistry(endpoints...), nil
}

func (c catalogEntry) expand() ([]Endpoint, error) {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", c.URL)
	}

	if !lo.Contains(Dialects(), c.Dialect) {
		return nil, fmt.Errorf("unknown dialect %q", c.Dialect)
	}

	if c.Dialect == Custom && c.Script == "" {
		return nil, errors.New("custom dialect requires a script")
	}

	if len(c.Capabilities) == 0 {
		return nil, errors.New("no capabilities listed")
	}

	var timeout time.Duration
	if c.Timeout != "" {
		if timeout, err = time.ParseDuration(c.Timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout %q", c.Timeout)
		}
	}

	name := c.Name
	if name == "" {
		name = u.Host
	}

	endpoints := make([]Endpoint, 0, len(c.Capabilities))
	for _, raw := range lo.Uniq(c.Capabilities) {
		capability, err := ParseCapability(raw)
		if err != nil {
			return nil, err
		}

		endpoints = append(endpoints, Endpoint{
			Name:        name,
			BaseURL:     c.URL,
			Capability:  capability,
			Priority:    c.Priority,
			Dialect:     c.Dialect,
			Insecure:    c.Insecure,
			Fingerprint: c.Fingerprint,
			Script:      c.Script,
			Timeout:     timeout,
		})
	}

	return endpoints, nil
}
