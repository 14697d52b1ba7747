package video

import (
	"context"
	"io"

	"videoportfolio/internal/domain"
)

type VideoRepositoryInterface interface {
	Create(ctx context.Context, v *domain.Video) error
	GetByID(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context, featuredOnly bool) ([]domain.Video, error)
	Update(ctx context.Context, v *domain.Video, fields []string) error
	Delete(ctx context.Context, id string) error
}

// FileStore persists uploaded media under server-generated names.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	Remove(ctx context.Context, name string) error
}

// UploadObserver is told the size of every stored upload.
type UploadObserver interface {
	ObserveUpload(size int64)
}
