// Package storage reads and writes hero snapshots as JSON or YAML files.
// Files are accessed through afero so tests and the CLI can swap the filesystem.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/tourofheroes/heroes/internal/domain"
)

// Store is a minimal file store.
type Store interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
}

// AferoStore implements Store on top of an afero filesystem.
type AferoStore struct {
	fs afero.Fs
}

// NewAferoStore creates a new AferoStore.
func NewAferoStore(fs afero.Fs) *AferoStore {
	return &AferoStore{fs: fs}
}

// NewOSStore returns a store backed by the real filesystem.
func NewOSStore() *AferoStore {
	return NewAferoStore(afero.NewOsFs())
}

// Save writes the content of reader to path, creating parent directories.
func (s *AferoStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, reader)
}

// Open opens path for reading.
func (s *AferoStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.fs.OpenFile(path, os.O_RDONLY, 0)
}

// ReadHeroes decodes a list of heroes from path, as YAML when the file has a
// .yaml or .yml extension and as JSON otherwise. Every hero must carry a
// positive id and a non-blank name.
func ReadHeroes(ctx context.Context, s Store, path string) ([]domain.Hero, error) {
	f, err := s.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open hero snapshot %s: %w", path, err)
	}
	defer f.Close()

	var heroes []domain.Hero
	if isYAML(path) {
		err = yaml.NewDecoder(f).Decode(&heroes)
	} else {
		err = json.NewDecoder(f).Decode(&heroes)
	}
	if err != nil {
		return nil, fmt.Errorf("decode hero snapshot %s: %w", path, err)
	}
	for i, h := range heroes {
		if h.ID <= 0 || !domain.ValidName(h.Name) {
			return nil, fmt.Errorf("hero snapshot %s entry %d: %w", path, i, domain.ErrInvalidHero)
		}
	}
	return heroes, nil
}

// WriteHeroes encodes heroes at path in the format its extension selects
// (see ReadHeroes). JSON is indented.
func WriteHeroes(ctx context.Context, s Store, path string, heroes []domain.Hero) error {
	if heroes == nil {
		heroes = []domain.Hero{}
	}

	var payload []byte
	var err error
	if isYAML(path) {
		payload, err = yaml.Marshal(heroes)
	} else {
		payload, err = json.MarshalIndent(heroes, "", "  ")
		payload = append(payload, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode hero snapshot: %w", err)
	}
	if _, err := s.Save(ctx, path, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("write hero snapshot %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
