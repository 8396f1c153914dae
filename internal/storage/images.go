package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxImageSize = 5 * 1024 * 1024

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = fmt.Errorf("file exceeds %d bytes", MaxImageSize)
	ErrUnknownFolder   = errors.New("unknown image folder")
)

var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// categoryFolders maps an upload category to its folder under the
// image root; anything unknown lands in "other".
var categoryFolders = map[string]string{
	"logos":      "logos",
	"categories": "categories",
	"products":   "menu",
	"other":      "other",
}

// ImageStore saves uploaded menu images under a root directory using
// random filenames, and serves the stored paths back as public URLs.
type ImageStore struct {
	Root string
}

func NewImageStore(root string) *ImageStore {
	return &ImageStore{Root: root}
}

// Save validates and writes an uploaded image, returning its public
// path ("/images/<folder>/<uuid>.<ext>").
func (s *ImageStore) Save(r io.Reader, size int64, contentType, category string) (string, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	if size > MaxImageSize {
		return "", ErrTooLarge
	}

	folder, ok := categoryFolders[category]
	if !ok {
		folder = "other"
	}

	filename := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	dir := filepath.Join(s.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(r, MaxImageSize+1)); err != nil {
		return "", err
	}

	return path.Join("/images", folder, filename), nil
}

// knownFolder reports whether f is one of the fixed folders under the
// image root. Anything else, in particular traversal attempts, is
// refused.
func knownFolder(f string) bool {
	for _, v := range categoryFolders {
		if v == f {
			return true
		}
	}
	return false
}

// List returns the public paths of all stored images, optionally
// narrowed to one folder.
func (s *ImageStore) List(folder string) ([]string, error) {
	folders := make([]string, 0, len(categoryFolders))
	if folder != "" {
		if !knownFolder(folder) {
			return nil, ErrUnknownFolder
		}
		folders = append(folders, folder)
	} else {
		for _, f := range categoryFolders {
			folders = append(folders, f)
		}
	}

	var out []string
	for _, f := range folders {
		entries, err := os.ReadDir(filepath.Join(s.Root, f))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			out = append(out, path.Join("/images", f, e.Name()))
		}
	}
	return out, nil
}

// Delete removes a stored image by its public path. Paths that escape
// the image root are rejected.
func (s *ImageStore) Delete(publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, "/images/")
	if !ok {
		return fmt.Errorf("not an image path: %s", publicPath)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("invalid image path: %s", publicPath)
	}
	return os.Remove(filepath.Join(s.Root, rel))
}
