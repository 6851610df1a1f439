// Package files provides local-disk storage for uploaded licensing
// documents. Files are laid out as <root>/<user-id>/<kind>_<uuid><ext>
// so a user's documents can be located and cleaned up together.
package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	coreid "medstock/internal/core/id"
	"medstock/internal/domain/auth"
)

// Store implements auth.DocumentStore on the local filesystem.
type Store struct {
	root string
}

// NewStore creates a document store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("document store root is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return &Store{root: dir}, nil
}

// Save stores an upload and returns the path relative to the store root.
func (s *Store) Save(ctx context.Context, userID coreid.ID, kind string, upload *auth.Upload) (string, error) {
	if upload == nil {
		return "", fmt.Errorf("nil upload")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	userDir := filepath.Join(s.root, userID.String())
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("create user dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	name := fmt.Sprintf("%s_%s%s", kind, coreid.New().String(), ext)

	fullPath := filepath.Join(userDir, name)
	if err := os.WriteFile(fullPath, upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}

	return filepath.Join(userID.String(), name), nil
}

// Remove deletes a stored document. Missing files are not an error.
func (s *Store) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	// Reject paths escaping the store root.
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("invalid document path: %s", path)
	}

	err := os.Remove(filepath.Join(s.root, clean))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove document: %w", err)
	}
	return nil
}

// Ensure interface compliance
var _ auth.DocumentStore = (*Store)(nil)
