package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoCategory string

const (
	CategoryTeasers   VideoCategory = "Teasers"
	CategoryPromos    VideoCategory = "Promos"
	CategoryReels     VideoCategory = "Reels"
	CategoryShortFilm VideoCategory = "short-film"
	CategoryOther     VideoCategory = "other"
)

// Video is the metadata record of an uploaded file. Filename is the name
// under the upload directory; URL is derived and never stored.
type Video struct {
	ID           string        `json:"id" gorm:"primaryKey;size:36"`
	Title        string        `json:"title" gorm:"not null"`
	Description  string        `json:"description" gorm:"not null"`
	Filename     string        `json:"filename" gorm:"uniqueIndex;not null"`
	OriginalName string        `json:"originalName" gorm:"not null"`
	Size         int64         `json:"size" gorm:"not null"`
	MimeType     string        `json:"mimeType"`
	Duration     *string       `json:"duration,omitempty"`
	Thumbnail    *string       `json:"thumbnail,omitempty"`
	Category     VideoCategory `json:"category" gorm:"not null;default:other"`
	Client       *string       `json:"client,omitempty"`
	Year         *int          `json:"year,omitempty"`
	Featured     bool          `json:"featured" gorm:"not null;default:false;index"`
	Order        int           `json:"order" gorm:"column:sort_order;not null;default:0"`
	URL          string        `json:"url" gorm:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (Video) TableName() string { return "videos" }

func (v *Video) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Category == "" {
		v.Category = CategoryOther
	}
	return nil
}
