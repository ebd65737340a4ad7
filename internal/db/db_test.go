package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	database, err := Open(":memory:")
	require.NoError(t, err)
	defer database.Close()

	v, err := database.GetSetting("missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, database.SetSetting("view", "tree"))
	require.NoError(t, database.SetSetting("view", "cards"))

	v, err = database.GetSetting("view")
	require.NoError(t, err)
	assert.Equal(t, "cards", v)
}

func TestPreferencesRoundTrip(t *testing.T) {
	dir := t.TempDir()

	database, err := New(filepath.Join(dir, "data"))
	require.NoError(t, err)

	p, err := database.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, p)

	want := Preferences{View: "tree", TagFilter: "urgent", StatusFilter: "all"}
	require.NoError(t, database.SavePreferences(want))
	require.NoError(t, database.Close())

	_, err = os.Stat(filepath.Join(dir, "data", FileName))
	require.NoError(t, err)

	reopened, err := New(filepath.Join(dir, "data"))
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
