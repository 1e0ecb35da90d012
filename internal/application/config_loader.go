package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-arena/internal/ports"
)

// ConfigLoader parses, validates and caches tournament configurations
// written in YAML.
// Keys omitted from a document keep their value from
// DefaultTournamentConfig, so a document only needs to state what differs.
type ConfigLoader struct {
	// cache stores validated configs indexed by the SHA256 hash of the
	// normalized document.
	cache   map[string]TournamentConfig
	cacheMu sync.RWMutex
	// sf collapses concurrent loads of the same document.
	sf singleflight.Group
}

// NewConfigLoader creates a loader with an empty cache.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{cache: make(map[string]TournamentConfig)}
}

// LoadFromFile loads a configuration from a YAML file. A missing file is
// reported as a *ports.ConfigError matching ports.ErrConfigNotFound.
func (cl *ConfigLoader) LoadFromFile(ctx context.Context, path string) (TournamentConfig, error) {
	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return TournamentConfig{}, ports.NewConfigError(cleanPath, fmt.Errorf("%w: %w", ports.ErrConfigNotFound, err))
		}
		return TournamentConfig{}, fmt.Errorf("failed to read file: %w", err)
	}

	return cl.load(ctx, data)
}

// LoadFromReader loads a configuration from r.
func (cl *ConfigLoader) LoadFromReader(ctx context.Context, r io.Reader) (TournamentConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return TournamentConfig{}, fmt.Errorf("failed to read data: %w", err)
	}

	return cl.load(ctx, data)
}

// load parses data, then validates it once per distinct normalized
// document. The returned config is a copy the caller may modify.
func (cl *ConfigLoader) load(ctx context.Context, data []byte) (TournamentConfig, error) {
	if err := ctx.Err(); err != nil {
		return TournamentConfig{}, err
	}

	config, err := parseConfigYAML(data)
	if err != nil {
		return TournamentConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Hash the normalized config, not the raw bytes, so formatting and key
	// order do not defeat the cache.
	hash, err := configHash(config)
	if err != nil {
		return TournamentConfig{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	v, err, _ := cl.sf.Do(hash, func() (any, error) {
		if cached, ok := cl.cached(hash); ok {
			return cached, nil
		}
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
		cl.store(hash, config)
		return config, nil
	})
	if err != nil {
		return TournamentConfig{}, err
	}

	return v.(TournamentConfig).Clone(), nil
}

// parseConfigYAML decodes data over the defaults. Decoding is strict:
// unknown keys are errors so that typos are never silently ignored.
func parseConfigYAML(data []byte) (TournamentConfig, error) {
	config := DefaultTournamentConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return TournamentConfig{}, fmt.Errorf("YAML decode failed: %w", err)
	}
	return config, nil
}

// configHash computes the SHA256 hash of the re-encoded config.
func configHash(config TournamentConfig) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(config); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode config for hashing: %w", err)
	}

	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:]), nil
}

func (cl *ConfigLoader) cached(hash string) (TournamentConfig, bool) {
	cl.cacheMu.RLock()
	defer cl.cacheMu.RUnlock()

	config, ok := cl.cache[hash]
	return config, ok
}

func (cl *ConfigLoader) store(hash string, config TournamentConfig) {
	cl.cacheMu.Lock()
	defer cl.cacheMu.Unlock()

	cl.cache[hash] = config
}

// CacheSize returns the number of distinct validated configs held.
func (cl *ConfigLoader) CacheSize() int {
	cl.cacheMu.RLock()
	defer cl.cacheMu.RUnlock()

	return len(cl.cache)
}

// ClearCache drops every cached config.
func (cl *ConfigLoader) ClearCache() {
	cl.cacheMu.Lock()
	defer cl.cacheMu.Unlock()

	cl.cache = make(map[string]TournamentConfig)
}
