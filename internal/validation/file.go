package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNoFiles       = errors.New("no files provided")
	ErrTooManyFiles  = errors.New("too many files")
	ErrFileTooLarge  = errors.New("file too large")
	ErrFileType      = errors.New("invalid file type")
	ErrFileExtension = errors.New("invalid file extension")
)

// FileError ties a validation failure to the file it came from.
type FileError struct {
	Filename string
	Err      error
}

func (e *FileError) Error() string {
	return e.Filename + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

var (
	// ImageConstraints covers inventory photos, including iPhone HEIC.
	ImageConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"image/jpeg": true,
			"image/png":  true,
			"image/webp": true,
			"image/heic": true,
		},
		AllowedExtensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".webp": true,
			".heic": true,
		},
		MaxSize: 20 << 20, // 20MB
	}

	// VideoConstraints covers walk-through videos of the home.
	VideoConstraints = FileConstraints{
		AllowedMimeTypes: map[string]bool{
			"video/mp4":       true,
			"video/quicktime": true,
			"video/webm":      true,
		},
		AllowedExtensions: map[string]bool{
			".mp4":  true,
			".mov":  true,
			".webm": true,
		},
		MaxSize: 100 << 20, // 100MB
	}

	// MaxMediaFiles caps one upload batch.
	MaxMediaFiles = 20
)

// MaxBatchSize is the largest payload a batch of valid files can add up to.
func MaxBatchSize() int64 {
	return int64(MaxMediaFiles) * max(ImageConstraints.MaxSize, VideoConstraints.MaxSize)
}

// ValidateMedia validates a batch of inventory uploads and returns the
// detected MIME type of every file, in order.
func ValidateMedia(headers []*multipart.FileHeader) ([]string, error) {
	if len(headers) == 0 {
		return nil, ErrNoFiles
	}
	if len(headers) > MaxMediaFiles {
		return nil, fmt.Errorf("%w: maximum is %d", ErrTooManyFiles, MaxMediaFiles)
	}

	types := make([]string, 0, len(headers))
	for _, h := range headers {
		mime, err := ValidateFile(h, ImageConstraints, VideoConstraints)
		if err != nil {
			return nil, &FileError{Filename: h.Filename, Err: err}
		}
		types = append(types, mime)
	}
	return types, nil
}

// ValidateFile validates a file upload against one or more constraint sets
// and returns its detected MIME type. The file must match at least one set.
func ValidateFile(header *multipart.FileHeader, constraints ...FileConstraints) (string, error) {
	if len(constraints) == 0 {
		return "", fmt.Errorf("no file constraints provided")
	}

	detected, err := detect(header)
	if err != nil {
		return "", err
	}

	// The detected type picks the constraint set whose limits apply.
	for _, constraint := range constraints {
		if !constraint.AllowedMimeTypes[detected] {
			continue
		}
		err := validateAgainstConstraint(header, detected, constraint)
		if err != nil {
			return "", err
		}
		return detected, nil
	}

	return "", fmt.Errorf("%w (detected: %s)", ErrFileType, detected)
}

// detect sniffs the content type from magic numbers, which cannot be
// faked by renaming the file or setting a Content-Type header.
func detect(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Strip parameters such as "; charset=utf-8"
	mime, _, _ := strings.Cut(mt.String(), ";")
	return mime, nil
}

func validateAgainstConstraint(header *multipart.FileHeader, detected string, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("%w: maximum size is %d MB", ErrFileTooLarge, maxMB)
	}

	if !constraints.AllowedMimeTypes[detected] {
		return fmt.Errorf("%w (detected: %s)", ErrFileType, detected)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrFileExtension, ext)
	}

	return nil
}
