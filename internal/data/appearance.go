package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/squaregame/squares/internal/component"
)

// EntityLook is how one entity kind is drawn.
type EntityLook struct {
	Kind  string `yaml:"kind"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// ButtonLook describes the menu's Play button.
type ButtonLook struct {
	Label   string `yaml:"label"`
	Width   int    `yaml:"width"`  // columns
	Height  int    `yaml:"height"` // rows
	Text    string `yaml:"text"`
	Normal  string `yaml:"normal"`
	Hovered string `yaml:"hovered"`
	Pressed string `yaml:"pressed"`
}

// ScoreLook describes the score line.
type ScoreLook struct {
	Label      string `yaml:"label"`
	LabelColor string `yaml:"label_color"`
	ValueColor string `yaml:"value_color"`
}

type appearanceFile struct {
	Entities []EntityLook `yaml:"entities"`
	Button   ButtonLook   `yaml:"button"`
	Score    ScoreLook    `yaml:"score"`
}

// AppearanceTable resolves the look of entities and menu widgets.
type AppearanceTable struct {
	entities map[component.Kind]EntityLook
	Button   ButtonLook
	Score    ScoreLook
}

// LoadAppearanceTable loads appearance.yaml.
func LoadAppearanceTable(path string) (*AppearanceTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read appearance table: %w", err)
	}
	return ParseAppearanceTable(raw)
}

// ParseAppearanceTable builds a table from yaml bytes. Every entity kind
// must be listed exactly once.
func ParseAppearanceTable(raw []byte) (*AppearanceTable, error) {
	var f appearanceFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse appearance table: %w", err)
	}
	t := &AppearanceTable{
		entities: make(map[component.Kind]EntityLook, len(f.Entities)),
		Button:   f.Button,
		Score:    f.Score,
	}
	for _, e := range f.Entities {
		kind, ok := kindByName[e.Kind]
		if !ok {
			return nil, fmt.Errorf("appearance: unknown kind %q", e.Kind)
		}
		if _, dup := t.entities[kind]; dup {
			return nil, fmt.Errorf("appearance: kind %q listed twice", e.Kind)
		}
		if e.Glyph == "" {
			return nil, fmt.Errorf("appearance: kind %q has no glyph", e.Kind)
		}
		t.entities[kind] = e
	}
	for name, kind := range kindByName {
		if _, ok := t.entities[kind]; !ok {
			return nil, fmt.Errorf("appearance: kind %q missing", name)
		}
	}
	if t.Button.Width <= 0 || t.Button.Height <= 0 {
		return nil, fmt.Errorf("appearance: button size %dx%d", t.Button.Width, t.Button.Height)
	}
	return t, nil
}

// Entity returns the look for a kind.
func (t *AppearanceTable) Entity(kind component.Kind) EntityLook {
	return t.entities[kind]
}

// Count returns the number of entity looks loaded.
func (t *AppearanceTable) Count() int {
	return len(t.entities)
}

var kindByName = map[string]component.Kind{
	component.KindPlayer.String(): component.KindPlayer,
	component.KindFood.String():   component.KindFood,
	component.KindEnemy.String():  component.KindEnemy,
}
