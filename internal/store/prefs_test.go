package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefs_SetPersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	p, err := s.OpenPrefs()
	require.NoError(t, err)

	_, ok := p.Get("fishInventory.autosave.enabled")
	assert.False(t, ok)
	assert.Equal(t, "30", p.GetOr("fishInventory.autosave.minutes", "30"))

	require.NoError(t, p.SetMany(map[string]string{
		"fishInventory.autosave.enabled": "true",
		"fishInventory.autosave.minutes": "10",
	}))

	p2, err := s.OpenPrefs()
	require.NoError(t, err)
	v, ok := p2.Get("fishInventory.autosave.enabled")
	assert.True(t, ok)
	assert.Equal(t, "true", v)
	assert.Equal(t, "10", p2.GetOr("fishInventory.autosave.minutes", "30"))
	assert.Equal(t, []string{"fishInventory.autosave.enabled", "fishInventory.autosave.minutes"}, p2.Keys())

	// No temp files left behind.
	ents, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	require.Len(t, ents, 1)
	assert.Equal(t, prefsFileName, ents[0].Name())
}

func TestPrefs_CorruptFileReadsEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, prefsFileName), []byte("not json"), 0o644))

	p, err := Store{Dir: dir}.OpenPrefs()
	require.NoError(t, err)
	assert.Empty(t, p.Keys())

	require.NoError(t, p.Set("k", "v"))
	p2, err := Store{Dir: dir}.OpenPrefs()
	require.NoError(t, err)
	assert.Equal(t, "v", p2.GetOr("k", ""))
}

func TestPrefs_InMemoryWithoutDir(t *testing.T) {
	t.Parallel()

	p, err := Store{}.OpenPrefs()
	require.NoError(t, err)
	require.NoError(t, p.Set("k", "v"))
	assert.Equal(t, "v", p.GetOr("k", ""))
}
