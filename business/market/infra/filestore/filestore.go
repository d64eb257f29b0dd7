// Package filestore reads and writes the local stores snapshot used when the API is down.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fd1az/eco-market-bot/business/market/domain"
	"github.com/fd1az/eco-market-bot/internal/apperror"
)

// DefaultPath is the snapshot file name looked up in the working directory.
const DefaultPath = "stores_data.json"

// Store is a JSON file holding a StoresPayload.
type Store struct {
	path string
}

// New creates a file store at path.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// FetchStores loads the saved listing. No freshness check is made.
func (s *Store) FetchStores(_ context.Context) ([]domain.RawStore, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperror.New(apperror.CodeFallbackNotFound, apperror.WithContext(s.path), apperror.WithCause(err))
		}
		return nil, apperror.Internal(apperror.CodeFallbackNotFound, s.path, err)
	}

	var payload domain.StoresPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, apperror.Internal(apperror.CodeFallbackInvalid, s.path, err)
	}
	if payload.Stores == nil {
		return nil, apperror.New(apperror.CodeFallbackInvalid, apperror.WithContext(s.path+": no Stores field"))
	}
	return payload.Stores, nil
}

// SaveStores writes the listing via a temp file and rename.
func (s *Store) SaveStores(_ context.Context, stores []domain.RawStore) error {
	data, err := json.MarshalIndent(domain.StoresPayload{Stores: stores}, "", "  ")
	if err != nil {
		return apperror.Internal(apperror.CodeInternalError, "encode stores", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".stores-*.json")
	if err != nil {
		return apperror.Internal(apperror.CodeInternalError, "create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperror.Internal(apperror.CodeInternalError, "write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return apperror.Internal(apperror.CodeInternalError, "close temp file", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return apperror.Internal(apperror.CodeInternalError, "rename snapshot", err)
	}
	return nil
}
