package signature

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrNotPNG = errors.New("signature must be a PNG image")
	ErrBlank  = errors.New("signature image is blank")
)

// Store saves signature images under a base directory and hands back
// path references. The tracking core never reads the images; it only
// stores the references this package returns.
type Store struct {
	dir string
}

// NewStore creates a signature store rooted at dir, creating it if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create signature directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save validates the PNG, rejects blank captures and writes the image
// under a fresh unique name. Returns the stored path reference.
func (s *Store) Save(data []byte) (string, error) {
	img, err := decode(data)
	if err != nil {
		return "", err
	}
	if isBlank(img) {
		return "", ErrBlank
	}

	path := filepath.Join(s.dir, fmt.Sprintf("user_%s.png", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write signature: %w", err)
	}
	return path, nil
}

// Remove deletes a stored signature, used to roll back a failed sign-up
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsSigned reports whether the PNG contains any drawing at all
func IsSigned(data []byte) (bool, error) {
	img, err := decode(data)
	if err != nil {
		return false, err
	}
	return !isBlank(img), nil
}

func decode(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotPNG
	}
	return img, nil
}

// isBlank scans for any pixel that is not pure white. The capture pad
// starts from a white canvas, so one darker pixel means a stroke exists.
func isBlank(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				return false
			}
		}
	}
	return true
}
