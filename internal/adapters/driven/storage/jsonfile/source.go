package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// fileExt is the dataset file extension.
const fileExt = ".json"

// Path returns the dataset file of type t inside dir.
func Path(dir string, t domain.ContentType) string {
	return filepath.Join(dir, t.String()+fileExt)
}

// RecordSource implements driven.RecordSource over one dataset file.
type RecordSource[T any] struct {
	path string
	typ  domain.ContentType
}

var _ driven.RecordSource[domain.NewsItem] = (*RecordSource[domain.NewsItem])(nil)

// NewRecordSource returns a source reading <dir>/<t>.json.
func NewRecordSource[T any](dir string, t domain.ContentType) *RecordSource[T] {
	return &RecordSource[T]{path: Path(dir, t), typ: t}
}

// Path returns the dataset file path.
func (s *RecordSource[T]) Path() string {
	return s.path
}

// ListAll decodes the dataset file in file order.
// A missing file is an empty collection.
func (s *RecordSource[T]) ListAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrSourceUnavailable, s.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", domain.ErrSourceUnavailable, s.path, err)
	}
	return records, nil
}

// Write stores records as the dataset of type t in dir, replacing any previous file.
// The file is written to a temporary name and renamed into place.
func Write[T any](dir string, t domain.ContentType, records []T) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedType, t)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", t, err)
	}

	path := Path(dir, t)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
