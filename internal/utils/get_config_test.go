package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
DB_HOST: localhost
DB_PORT: "5432"
JWT_SECRET: from-yaml
LAYOUT_COLUMNS: "3"
LAYOUT_PATTERNS:
  compact:
    dairy: {w: 2, h: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("JWT_SECRET", "from-env")

	LoadConfigFrom(path)

	assert.Equal(t, "localhost", GetConfig("DB_HOST"))
	assert.Equal(t, "from-env", GetConfig("JWT_SECRET"))
	assert.Equal(t, 3, GetConfigInt("LAYOUT_COLUMNS", 2))
	assert.Equal(t, 24, GetConfigInt("DIGEST_INTERVAL_HOURS", 24))
	assert.Equal(t, "", GetConfig("NOT_A_KEY"))
	assert.Equal(t, PatternFootprint{W: 2, H: 1}, GetLayoutPatterns()["compact"]["dairy"])
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)
	require.NoError(t, ComparePassword(hashed, "s3cret"))
	require.Error(t, ComparePassword(hashed, "wrong"))
}
