// Package config resolves session options from project files and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DeckConfigFile is the optional deck configuration inside the slides directory.
const DeckConfigFile = "_config.yaml"

// Options is the fully resolved configuration of one invocation.
type Options struct {
	Script string `mapstructure:"script"`
	Slides string `mapstructure:"slides"`

	RunAll       bool   `mapstructure:"run_all"`
	Presentation bool   `mapstructure:"presentation"`
	Short        bool   `mapstructure:"short"`
	Timer        bool   `mapstructure:"timer"`
	Color        string `mapstructure:"color"`
	Style        string `mapstructure:"style"`
	Highlight    bool   `mapstructure:"highlight"`

	// NoReturn and NoEcho apply to every slide of the deck.
	NoReturn bool `mapstructure:"no_return"`
	NoEcho   bool `mapstructure:"no_echo"`

	// Extensions lists the chapter file suffixes offered by the menu.
	Extensions []string `mapstructure:"extensions"`
	// Globals are bound in the environment before the init slide runs.
	Globals map[string]any `mapstructure:"globals"`

	Watch   bool   `mapstructure:"watch"`
	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log_file"`
	History string `mapstructure:"history"`
}

// Defaults returns the base layer of every resolution.
func Defaults() map[string]any {
	return map[string]any{
		"slides":     "slides",
		"color":      "auto",
		"highlight":  true,
		"extensions": []string{".star", ".py"},
	}
}

// LoadProject reads the [tool.sliderepl] table of a pyproject.toml file.
// A missing file yields an empty table.
func LoadProject(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	var doc struct {
		Tool struct {
			Sliderepl map[string]any `toml:"sliderepl"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", path, err)
	}
	if doc.Tool.Sliderepl == nil {
		return map[string]any{}, nil
	}
	return doc.Tool.Sliderepl, nil
}

// LoadDeck reads <slides>/_config.yaml. A missing file yields an empty map.
func LoadDeck(slides string) (map[string]any, error) {
	path := filepath.Join(slides, DeckConfigFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deck config: %w", err)
	}

	m := map[string]any{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid deck config %s: %w", path, err)
	}
	return m, nil
}

// Merge layers maps left to right; later keys win.
func Merge(layers ...map[string]any) map[string]any {
	out := map[string]any{}
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}

// Decode converts a merged map into Options.
func Decode(m map[string]any) (Options, error) {
	var opts Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(m); err != nil {
		return opts, fmt.Errorf("invalid configuration: %w", err)
	}
	return opts, nil
}

// Resolve builds Options from defaults, the project table, the deck config of the
// selected slides directory and finally the flags the user set explicitly.
func Resolve(projectFile string, flags map[string]any) (Options, error) {
	project, err := LoadProject(projectFile)
	if err != nil {
		return Options{}, err
	}

	slides := Merge(Defaults(), project, flags)["slides"]
	dir, _ := slides.(string)
	deck, err := LoadDeck(dir)
	if err != nil {
		return Options{}, err
	}

	return Decode(Merge(Defaults(), project, deck, flags))
}
