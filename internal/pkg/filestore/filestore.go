package filestore

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrInvalidName = errors.New("invalid stored file name")

var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)

// Store keeps uploaded files flat in one managed directory.
type Store struct {
	dir string
	log zerolog.Logger
}

// New creates dir if it does not exist yet.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{
		dir: dir,
		log: log.With().Str("component", "filestore").Str("dir", dir).Logger(),
	}, nil
}

func (s *Store) Dir() string { return s.dir }

// GenerateName builds "<prefix>-<unix millis>-<12 hex chars><ext>". The
// extension comes from originalName, or from mediaType when the name has none.
func GenerateName(prefix, originalName, mediaType string, now time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("%s-%d-%s%s", prefix, now.UnixMilli(), hex.EncodeToString(id[:6]), extensionFor(originalName, mediaType))
}

func extensionFor(originalName, mediaType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if extPattern.MatchString(ext) {
		return ext
	}
	if mt := mimetype.Lookup(strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))); mt != nil {
		return mt.Extension()
	}
	return ""
}

// Save streams r into a new file called name and returns the bytes written.
// A partially written file is removed on failure.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) (size int64, err error) {
	path, err := s.path(name)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	defer func() {
		if err != nil {
			s.log.Error().Err(err).Str("file", name).Msg("store file failed")
		} else {
			s.log.Debug().Str("file", name).Int64("size", size).Msg("file stored")
		}
	}()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}

	size, err = io.Copy(dst, r)
	if err == nil {
		err = dst.Sync()
	}
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write: %w", err)
	}

	return size, nil
}

// Remove deletes the named file. A file that is already gone is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Error().Err(err).Str("file", name).Msg("remove file failed")
		return fmt.Errorf("remove: %w", err)
	}
	s.log.Debug().Str("file", name).Msg("file removed")
	return nil
}

func (s *Store) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}
