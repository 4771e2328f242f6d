// Package config loads the TOML configuration shared by the builder, indexer
// and searcher binaries. A missing file yields the defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	berrors "github.com/javijec/new-biblia/internal/errors"
)

type Config struct {
	Corpus Corpus `toml:"corpus"`
	Build  Build  `toml:"build"`
	Index  Index  `toml:"index"`
	Search Search `toml:"search"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Corpus holds the metadata stamped onto every emitted artifact.
type Corpus struct {
	Version  string `toml:"version"`
	Language string `toml:"language"`
	Source   string `toml:"source"`
}

type Build struct {
	SourceDir       string `toml:"source_dir"`
	LinkedDir       string `toml:"linked_dir"`
	OutputDir       string `toml:"output_dir"`
	Pattern         string `toml:"pattern"`
	LinkedPattern   string `toml:"linked_pattern"`
	Encoding        string `toml:"encoding"`
	DuplicatePolicy string `toml:"duplicate_policy"`
	Compress        string `toml:"compress"`
	CorpusDB        string `toml:"corpus_db"`
}

// LinkedSourceDir is LinkedDir, or SourceDir when no linked directory is set.
func (b Build) LinkedSourceDir() string {
	if b.LinkedDir != "" {
		return b.LinkedDir
	}
	return b.SourceDir
}

type Index struct {
	DBPath    string `toml:"db_path"`
	BatchSize int    `toml:"batch_size"`
}

type Search struct {
	DataDir       string `toml:"data_dir"`
	ProgressEvery int    `toml:"progress_every"`
	CacheSize     int    `toml:"cache_size"`
	IndexDB       string `toml:"index_db"`
}

type Server struct {
	Addr string `toml:"addr"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Corpus: Corpus{
			Version:  "Biblia del Pueblo de Dios",
			Language: "es",
			Source:   "Vatican (2007)",
		},
		Build: Build{
			SourceDir:       "old_biblia",
			OutputDir:       "data",
			Pattern:         "__P*.HTM",
			LinkedPattern:   "_P*.HTM",
			Encoding:        "windows-1252",
			DuplicatePolicy: "first",
			CorpusDB:        filepath.Join("data", "corpus.db"),
		},
		Index: Index{
			DBPath:    filepath.Join("data", "index.db"),
			BatchSize: 1000,
		},
		Search: Search{
			DataDir:       "data",
			ProgressEvery: 5,
			IndexDB:       filepath.Join("data", "index.db"),
		},
		Server: Server{
			Addr: ":8080",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, berrors.NewIO("read", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, berrors.NewParse("TOML", path, "invalid configuration", err)
	}

	return cfg, cfg.Validate()
}

// Save writes cfg as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return berrors.NewIO("create", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Build.DuplicatePolicy) {
	case "", "first", "last", "longest":
	default:
		return berrors.NewValidation("build.duplicate_policy", "must be one of first, last, longest")
	}
	switch strings.ToLower(c.Build.Compress) {
	case "", "none", "zstd":
	default:
		return berrors.NewValidation("build.compress", "must be none or zstd")
	}
	if c.Index.BatchSize < 0 {
		return berrors.NewValidation("index.batch_size", "must not be negative")
	}
	if c.Search.ProgressEvery < 0 {
		return berrors.NewValidation("search.progress_every", "must not be negative")
	}
	if c.Search.CacheSize < 0 {
		return berrors.NewValidation("search.cache_size", "must not be negative")
	}
	return nil
}
