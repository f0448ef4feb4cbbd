package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "data"), ExpandPath("~/data"))
	assert.Equal(t, "/absolute/path", ExpandPath("/absolute/path"))

	t.Setenv("CITRUS_TEST_DIR", "/tmp/citrus")
	assert.Equal(t, "/tmp/citrus/db", ExpandPath("$CITRUS_TEST_DIR/db"))
}

func TestDefaultPaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(DefaultDatabasePath(), filepath.Join(".local", "share", "citrus", "citrus.db")))
	assert.True(t, strings.HasSuffix(DefaultTokenPath(), filepath.Join(".config", "citrus", "token")))
	assert.False(t, strings.Contains(DefaultDatabasePath(), "~"))
}
