package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}

	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	data := "GIMP Palette\nName: test\nColumns: 2\n# comment\n10 20 30 first\n40 50 60 second\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	p, err := LoadGPL(path)
	require.NoError(t, err)
	assert.Equal(t, "test", p.Name)
	require.Len(t, p.Colors, 2)
	assert.Equal(t, RGB{10, 20, 30}, p.Colors[0])

	_, err = LoadGPL(filepath.Join(t.TempDir(), "missing.gpl"))
	assert.Error(t, err)
}

func TestDefaultPaletteCoversRoles(t *testing.T) {
	th := New(Default())
	assert.NotEqual(t, th.BG(), th.Accent())
	assert.Equal(t, "#0d0887", string(th.BG()))
}
