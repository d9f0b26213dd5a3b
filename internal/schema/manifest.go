package schema

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// Manifest describes the module itself.
type Manifest struct {
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version" json:"version"`
	Author      string `yaml:"author" json:"author"`
	TextDomain  string `yaml:"text_domain" json:"text_domain"`
}

// LoadManifest parses the embedded manifest.
func LoadManifest() (Manifest, error) {
	return ParseManifest(manifestYAML)
}

func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Name == "" {
		return Manifest{}, errors.New("manifest: name is required")
	}
	if m.Version == "" {
		return Manifest{}, errors.New("manifest: version is required")
	}
	return m, nil
}
