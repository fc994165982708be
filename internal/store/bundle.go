package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"whisperdeck/internal/model"

	"gopkg.in/yaml.v3"
)

// Bundle is the portable export format holding both collections.
type Bundle struct {
	Version int            `json:"version" yaml:"version"`
	Users   []model.User   `json:"users" yaml:"users"`
	Prompts []model.Prompt `json:"prompts" yaml:"prompts"`
}

// EncodeBundle serializes b as json or yaml.
func EncodeBundle(b Bundle, format string) ([]byte, error) {
	if b.Version == 0 {
		b.Version = 1
	}
	if b.Users == nil {
		b.Users = []model.User{}
	}
	if b.Prompts == nil {
		b.Prompts = []model.Prompt{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		out, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(b)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// DecodeBundle parses a bundle. Format "" infers from the file name extension, defaulting
// to JSON; YAML is a superset of JSON so a .yaml bundle may hold either.
func DecodeBundle(data []byte, format string, name string) (Bundle, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			f = "yaml"
		default:
			f = "json"
		}
	}
	var b Bundle
	switch f {
	case "json":
		if err := json.Unmarshal(data, &b); err != nil {
			return Bundle{}, fmt.Errorf("decode bundle: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &b); err != nil {
			return Bundle{}, fmt.Errorf("decode bundle: %w", err)
		}
	default:
		return Bundle{}, fmt.Errorf("unknown format: %s", format)
	}
	if b.Users == nil {
		b.Users = []model.User{}
	}
	if b.Prompts == nil {
		b.Prompts = []model.Prompt{}
	}
	return b, nil
}
