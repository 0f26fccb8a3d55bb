// Package profilefile stores the raw profile collection as a single JSON or
// YAML file.
package profilefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ProfileStore = (*Store)(nil)

// Format is the on-disk encoding of a profile collection.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: profile file %q (want .json, .yaml or .yml)", domain.ErrUnsupportedType, path)
	}
}

// Store reads and writes a profile collection file.
type Store struct {
	path   string
	format Format
}

// NewStore creates a store for path. The file need not exist yet.
func NewStore(path string) (*Store, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, format: format}, nil
}

// Path returns the collection file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole collection. A missing file is an empty collection.
func (s *Store) Load(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profiles: %w", err)
	}

	profiles, err := Decode(data, s.format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return profiles, nil
}

// Save writes the collection to a temporary file and renames it over the
// target, so readers never see a partial file.
func (s *Store) Save(ctx context.Context, profiles []domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(profiles, s.format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing profiles: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing profiles: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing profiles: %w", err)
	}
	return nil
}

// ReadFile decodes a standalone profile file, choosing the format by extension.
func ReadFile(path string) ([]domain.Profile, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	profiles, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return profiles, nil
}

// Decode parses a collection. Empty input decodes to an empty collection.
func Decode(data []byte, format Format) ([]domain.Profile, error) {
	profiles := []domain.Profile{}
	if len(bytes.TrimSpace(data)) == 0 {
		return profiles, nil
	}

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &profiles); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &profiles); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: format %q", domain.ErrUnsupportedType, format)
	}

	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

// Encode serialises a collection. JSON is indented and keeps non-ASCII text as-is.
func Encode(profiles []domain.Profile, format Format) ([]byte, error) {
	if profiles == nil {
		profiles = []domain.Profile{}
	}

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(profiles); err != nil {
			return nil, fmt.Errorf("encoding profiles: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(profiles); err != nil {
			return nil, fmt.Errorf("encoding profiles: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding profiles: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: format %q", domain.ErrUnsupportedType, format)
	}
}
