package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the largest image accepted for upload (10 MiB).
const DefaultMaxBytes int64 = 10 * 1024 * 1024

var (
	ErrInvalidType = errors.New("please choose an image file (JPG, PNG, etc.)")
	ErrTooLarge    = errors.New("image is too large, please choose an image smaller than 10MB")
)

// SelectedImage is the image currently held for submission.
type SelectedImage struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Candidate is a file offered by the user that has not been validated yet.
// Its body is only read by Load, after Validate succeeded.
type Candidate struct {
	Name        string
	ContentType string
	Size        int64
	open        func() (io.ReadCloser, error)
}

// FromPath builds a candidate from a file picked on disk.
// An empty contentType means the declared type is resolved from the file itself.
func FromPath(path string, contentType string) (Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("os.Stat(%s) > %w", path, err)
	}
	if info.IsDir() {
		return Candidate{}, fmt.Errorf("%s is a directory", path)
	}

	if contentType == "" {
		contentType, err = declaredType(path)
		if err != nil {
			return Candidate{}, fmt.Errorf("declaredType(%s) > %w", path, err)
		}
	}

	return Candidate{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FromDrop builds a candidate from text a terminal inserted for a dropped file.
func FromDrop(dropped string, contentType string) (Candidate, error) {
	path, err := DroppedPath(dropped)
	if err != nil {
		return Candidate{}, err
	}
	return FromPath(path, contentType)
}

// FromBytes builds a candidate from an in-memory payload.
func FromBytes(name string, contentType string, data []byte) Candidate {
	return Candidate{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// declaredType mirrors what a browser reports for a picked file:
// the extension decides, and the content is only sniffed when the extension is unknown.
func declaredType(path string) (string, error) {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType, nil
		}
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("mimetype.DetectFile > %w", err)
	}
	mediaType, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return detected.String(), nil
	}
	return mediaType, nil
}

type Validator struct {
	maxBytes int64
}

func NewValidator(maxBytes int64) Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return Validator{maxBytes: maxBytes}
}

func (v Validator) MaxBytes() int64 {
	return v.maxBytes
}

// Validate checks the declared type first, then the size.
func (v Validator) Validate(candidate Candidate) error {
	if !strings.HasPrefix(candidate.ContentType, "image/") {
		return fmt.Errorf("%w: %q has type %q", ErrInvalidType, candidate.Name, candidate.ContentType)
	}
	if candidate.Size > v.maxBytes {
		return fmt.Errorf("%w: %q is %d bytes", ErrTooLarge, candidate.Name, candidate.Size)
	}
	return nil
}

// Load reads a validated candidate into memory.
// The file may have grown since it was stat'ed, so the size limit is enforced again while reading.
func (v Validator) Load(candidate Candidate) (SelectedImage, error) {
	if candidate.open == nil {
		return SelectedImage{}, fmt.Errorf("candidate %q has no content", candidate.Name)
	}
	reader, err := candidate.open()
	if err != nil {
		return SelectedImage{}, fmt.Errorf("open(%s) > %w", candidate.Name, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(reader, v.maxBytes+1))
	if err != nil {
		return SelectedImage{}, fmt.Errorf("io.ReadAll(%s) > %w", candidate.Name, err)
	}
	if int64(len(data)) > v.maxBytes {
		return SelectedImage{}, fmt.Errorf("%w: %q grew past %d bytes", ErrTooLarge, candidate.Name, v.maxBytes)
	}

	return SelectedImage{
		Name:        candidate.Name,
		ContentType: candidate.ContentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
