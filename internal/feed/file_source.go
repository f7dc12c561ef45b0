package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hkopendata/mobile-post-services/api/internal/postoffice/application"
)

// FileSource reads a JSON array of rows from a local file.
type FileSource struct {
	path string
}

// NewFileSource builds a source over a JSON file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Rows reads and decodes the file.
func (s *FileSource) Rows(_ context.Context) ([]application.SourceRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := decodeRows(json.NewDecoder(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return rows, nil
}
