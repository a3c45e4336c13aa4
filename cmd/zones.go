package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"runplanner/internal/core/domain/model/zone"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type zoneEntry struct {
	Name     string   `koanf:"name"`
	Patterns []string `koanf:"patterns"`
	Home     bool     `koanf:"home"`
}

// LoadZones reads the zone configuration from a YAML or JSON file:
//
//	zones:
//	  - name: Central
//	    home: true
//	    patterns: ["SW1%", "EC*"]
//
// Zone order is kept; the first matching zone wins on classification. An
// empty path yields an empty set, which classifies nothing.
func LoadZones(path string) (zone.Set, error) {
	if path == "" {
		return zone.NewSet(nil)
	}

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return zone.Set{}, fmt.Errorf("unsupported zones file format: %s", ext)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return zone.Set{}, fmt.Errorf("load zones file: %w", err)
	}

	var entries []zoneEntry
	if err := k.Unmarshal("zones", &entries); err != nil {
		return zone.Set{}, fmt.Errorf("decode zones: %w", err)
	}

	zones := make([]zone.Zone, 0, len(entries))
	for i, e := range entries {
		z, err := zone.NewZone(e.Name, e.Patterns, e.Home)
		if err != nil {
			return zone.Set{}, fmt.Errorf("zone %d: %w", i, err)
		}
		zones = append(zones, z)
	}
	return zone.NewSet(zones)
}
