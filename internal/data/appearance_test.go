package data

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squaregame/squares/internal/component"
)

func repoFile(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", rel)
}

func TestLoadShippedAppearanceTable(t *testing.T) {
	table, err := LoadAppearanceTable(repoFile(t, "data/yaml/appearance.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3, table.Count())
	assert.Equal(t, "#0000ff", table.Entity(component.KindPlayer).Color)
	assert.Equal(t, "#00ff00", table.Entity(component.KindFood).Color)
	assert.Equal(t, "#ff0000", table.Entity(component.KindEnemy).Color)
	assert.Equal(t, "Play", table.Button.Label)
	assert.Equal(t, "Score: ", table.Score.Label)
}

func TestParseAppearanceTableErrors(t *testing.T) {
	const button = "button: {label: Play, width: 15, height: 3}\n"
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "entities: [", "parse appearance"},
		{"unknown kind", "entities:\n  - {kind: boss, glyph: B}\n" + button, "unknown kind"},
		{"duplicate", "entities:\n  - {kind: player, glyph: P}\n  - {kind: player, glyph: P}\n" + button, "twice"},
		{"missing glyph", "entities:\n  - {kind: player}\n" + button, "no glyph"},
		{"missing kind", "entities:\n  - {kind: player, glyph: P}\n" + button, "missing"},
		{"button size", "entities:\n  - {kind: player, glyph: P}\n  - {kind: food, glyph: F}\n  - {kind: enemy, glyph: E}\n", "button size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAppearanceTable([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
