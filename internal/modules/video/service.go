package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"videoportfolio/internal/domain"
	"videoportfolio/internal/pkg/filestore"
	"videoportfolio/internal/pkg/validator"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const filePrefix = "video"

type Service struct {
	videos         VideoRepositoryInterface
	files          FileStore
	maxUploadBytes int64
	urlPath        string
	observer       UploadObserver
	now            func() time.Time
}

// NewService wires the catalogue. urlPath is the public prefix stored files
// are served under, e.g. "/uploads".
func NewService(videos VideoRepositoryInterface, files FileStore, maxUploadBytes int64, urlPath string) *Service {
	return &Service{
		videos:         videos,
		files:          files,
		maxUploadBytes: maxUploadBytes,
		urlPath:        strings.TrimRight(urlPath, "/"),
		now:            time.Now,
	}
}

// WithUploadObserver sets o to receive the size of each stored upload.
func (s *Service) WithUploadObserver(o UploadObserver) *Service {
	s.observer = o
	return s
}

func (s *Service) MaxUploadBytes() int64 { return s.maxUploadBytes }

func (s *Service) List(ctx context.Context) ([]domain.Video, error) {
	return s.list(ctx, false)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Video, error) {
	return s.list(ctx, true)
}

func (s *Service) list(ctx context.Context, featuredOnly bool) ([]domain.Video, error) {
	videos, err := s.videos.List(ctx, featuredOnly)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	for i := range videos {
		s.withURL(&videos[i])
	}
	return videos, nil
}

// Upload validates the file and metadata, stores the file and then the record.
// Nothing is written when validation fails, and the stored file is removed
// again if the record cannot be created.
func (s *Service) Upload(ctx context.Context, req UploadRequest, file *UploadFile) (*domain.Video, error) {
	if file == nil || file.Content == nil {
		return nil, ErrNoFile
	}
	mediaType := strings.ToLower(strings.TrimSpace(file.MediaType))
	if !strings.HasPrefix(mediaType, "video/") {
		return nil, ErrUnsupportedMediaType
	}
	if s.maxUploadBytes > 0 && file.Size > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	v, err := req.toVideo()
	if err != nil {
		return nil, err
	}

	name := filestore.GenerateName(filePrefix, file.Filename, mediaType, s.now())
	content := file.Content
	if s.maxUploadBytes > 0 {
		content = io.LimitReader(content, s.maxUploadBytes+1)
	}
	size, err := s.files.Save(ctx, name, content)
	if err != nil {
		return nil, fmt.Errorf("store video file: %w", err)
	}
	if s.maxUploadBytes > 0 && size > s.maxUploadBytes {
		s.removeFile(ctx, name)
		return nil, ErrFileTooLarge
	}

	v.Filename = name
	v.OriginalName = file.Filename
	v.Size = size
	v.MimeType = mediaType

	if err := s.videos.Create(ctx, v); err != nil {
		s.removeFile(ctx, name)
		return nil, fmt.Errorf("create video: %w", err)
	}

	log.Info().Str("video_id", v.ID).Str("file", name).Int64("size", size).Msg("video uploaded")
	if s.observer != nil {
		s.observer.ObserveUpload(size)
	}
	s.withURL(v)
	return v, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*domain.Video, error) {
	req = req.trimmed()
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	if err := s.videos.Update(ctx, v, req.apply(v)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("update video: %w", err)
	}

	s.withURL(v)
	return v, nil
}

// Delete removes the record first so the catalogue never points at a missing
// file. The stored file is removed afterwards; failures there are only logged.
func (s *Service) Delete(ctx context.Context, id string) error {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("get video: %w", err)
	}

	if err := s.videos.Delete(ctx, v.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("delete video: %w", err)
	}

	s.removeFile(ctx, v.Filename)
	return nil
}

func (s *Service) removeFile(ctx context.Context, name string) {
	// the request may already be cancelled; cleanup still has to run
	if err := s.files.Remove(context.WithoutCancel(ctx), name); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("stored video file left behind")
	}
}

func (s *Service) withURL(v *domain.Video) {
	v.URL = s.urlPath + "/" + v.Filename
}
