package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of a platforms.yaml override file.
type Loader struct {
	filePath string
}

// platformsFile is the on-disk schema.
//
//	platforms:
//	  - name: Mastodon
//	    icon: FaMastodon
//	    color: bg-indigo-500
//	    darkColor: bg-indigo-600
//	    placeholder: https://mastodon.social/@you
type platformsFile struct {
	Platforms []Platform `yaml:"platforms"`
}

// NewLoader creates a new catalog loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the platforms file and merges it over the
// built-in defaults. A loader without a configured file returns the
// defaults unchanged.
func (l *Loader) Load() ([]Platform, error) {
	if l.filePath == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read platforms file: %w", err)
	}

	var file platformsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse platforms yaml: %w", err)
	}

	for i, p := range file.Platforms {
		if p.Name == "" {
			return nil, fmt.Errorf("platform entry %d has no name", i)
		}
	}

	return Merge(Defaults(), file.Platforms), nil
}
