package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolioCMS/internal/logger"
)

func TestSaveAndLoadFieldGroups(t *testing.T) {
	dir := t.TempDir()

	written, err := SaveFieldGroup(dir, DefaultFieldGroup())
	require.NoError(t, err)
	assert.True(t, written)

	written, err = SaveFieldGroup(dir, DefaultFieldGroup())
	require.NoError(t, err)
	assert.False(t, written)

	groups, err := LoadFieldGroups(dir, logger.Discard())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, DefaultGroupKey, groups[0].Key)
	assert.Len(t, groups[0].Fields, 12)
	assert.Equal(t, "text", groups[0].Fields[10].Type)
}

func TestLoadFieldGroups(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		groups, err := LoadFieldGroups(filepath.Join(t.TempDir(), "absent"), logger.Discard())
		require.NoError(t, err)
		assert.Empty(t, groups)
	})

	t.Run("unknown fields are kept", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "group_extra.json"),
			[]byte(`{"key":"group_extra","title":"Extra","fields":[{"key":"f1","name":"shoe_size","type":"text"}]}`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitkeep"), nil, 0o644))

		groups, err := LoadFieldGroups(dir, logger.Discard())
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "shoe_size", groups[0].Fields[0].Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644))

		_, err := LoadFieldGroups(dir, logger.Discard())
		assert.Error(t, err)
	})
}
