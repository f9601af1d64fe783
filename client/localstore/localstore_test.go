package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingDirStartsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "fresh"))
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot())
}

func TestSetGetPersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("thislife-ideas", `[{"id":"idea_1"}]`))

	reopened, err := Open(dir)
	require.NoError(t, err)
	v, ok := reopened.Get("thislife-ideas")
	require.True(t, ok)
	assert.Equal(t, `[{"id":"idea_1"}]`, v)
}

func TestCorruptFileFallsBackEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0o644))

	s, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, s.Snapshot())
}

func TestGetJSONFallback(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	var out []string
	assert.True(t, s.GetJSON("missing", &out))

	require.NoError(t, s.Set("bad", "{corrupt"))
	assert.True(t, s.GetJSON("bad", &out))

	require.NoError(t, s.SetJSON("good", []string{"a", "b"}))
	assert.False(t, s.GetJSON("good", &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestOnChangeFiresForWritesOnly(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	var fired int
	s.OnChange(func() { fired++ })

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Remove("k"))
	assert.Equal(t, 2, fired)

	// Applying a pulled snapshot must not trigger a push cycle.
	require.NoError(t, s.Replace(map[string]string{"k2": "v2"}))
	assert.Equal(t, 2, fired)

	v, ok := s.Get("k2")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}
