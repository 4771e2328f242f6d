package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javijec/new-biblia/internal/config"
	berrors "github.com/javijec/new-biblia/internal/errors"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "__P*.HTM", cfg.Build.Pattern)
	assert.Equal(t, 5, cfg.Search.ProgressEvery)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biblia.toml")
	content := `
[corpus]
version = "Test Edition"

[build]
source_dir = "/srv/legacy"
duplicate_policy = "longest"
compress = "zstd"

[search]
progress_every = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Edition", cfg.Corpus.Version)
	assert.Equal(t, "es", cfg.Corpus.Language, "unset keys keep defaults")
	assert.Equal(t, "/srv/legacy", cfg.Build.SourceDir)
	assert.Equal(t, "/srv/legacy", cfg.Build.LinkedSourceDir())
	assert.Equal(t, "longest", cfg.Build.DuplicatePolicy)
	assert.Equal(t, "zstd", cfg.Build.Compress)
	assert.Equal(t, 10, cfg.Search.ProgressEvery)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biblia.toml")
	require.NoError(t, os.WriteFile(path, []byte("[build]\nduplicate_policy = \"random\"\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, berrors.IsInvalidInput(err))
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biblia.toml")
	require.NoError(t, os.WriteFile(path, []byte("[build\nsource_dir = "), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)

	var pe *berrors.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "biblia.toml")
	cfg := config.Default()
	cfg.Build.LinkedDir = "linked"
	cfg.Server.Addr = ":9090"

	require.NoError(t, config.Save(path, cfg))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
