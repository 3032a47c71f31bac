package config

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultYAML returns the embedded default table for a game, or nil.
func DefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", gameID+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// DefaultIDs lists the games that ship an embedded table, sorted.
func DefaultIDs() []string {
	entries, err := fs.ReadDir(defaultsFS, "defaults")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, ".yaml") {
			ids = append(ids, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(ids)
	return ids
}

// Defaults parses every embedded table. Any invalid table is an error.
func Defaults() ([]GameConfig, error) {
	ids := DefaultIDs()
	out := make([]GameConfig, 0, len(ids))
	for _, id := range ids {
		cfg, err := Parse(DefaultYAML(id), "embedded:"+id+".yaml")
		if err != nil {
			return nil, err
		}
		if cfg.ID != id {
			return nil, fmt.Errorf("config: embedded table %s.yaml declares id %q", id, cfg.ID)
		}
		out = append(out, cfg)
	}
	return out, nil
}
