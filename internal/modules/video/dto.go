package video

import (
	"io"
	"strconv"
	"strings"

	"videoportfolio/internal/domain"
	"videoportfolio/internal/pkg/validator"
)

// UploadRequest is the metadata sent as multipart form fields next to the file.
type UploadRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Category    string `form:"category" validate:"omitempty,oneof=Teasers Promos Reels short-film other"`
	Client      string `form:"client"`
	Year        string `form:"year"`
	Featured    string `form:"featured"`
	Order       string `form:"order"`
}

// UploadFile is the file part of an upload as declared by the client.
type UploadFile struct {
	Filename  string
	MediaType string
	Size      int64
	Content   io.Reader
}

// toVideo validates the metadata and builds a record without file fields.
func (r UploadRequest) toVideo() (*domain.Video, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	if err := validator.Check(r); err != nil {
		return nil, err
	}

	v := &domain.Video{
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.CategoryOther,
		Featured:    parseFeatured(r.Featured),
	}
	if r.Category != "" {
		v.Category = domain.VideoCategory(r.Category)
	}
	if client := strings.TrimSpace(r.Client); client != "" {
		v.Client = &client
	}
	if year := strings.TrimSpace(r.Year); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			return nil, validator.Field("year", "integer")
		}
		v.Year = &n
	}
	if order := strings.TrimSpace(r.Order); order != "" {
		n, err := strconv.Atoi(order)
		if err != nil {
			return nil, validator.Field("order", "integer")
		}
		v.Order = n
	}
	return v, nil
}

// parseFeatured accepts the usual boolean spellings; anything else is false.
func parseFeatured(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// UpdateRequest lists the patchable video fields. Stored file fields
// (filename, size, original name) are never patchable.
type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Category    *string `json:"category" validate:"omitempty,oneof=Teasers Promos Reels short-film other"`
	Client      *string `json:"client"`
	Year        *int    `json:"year"`
	Featured    *bool   `json:"featured"`
	Order       *int    `json:"order"`
	Duration    *string `json:"duration"`
	Thumbnail   *string `json:"thumbnail"`
}

// trimmed returns r with the text fields trimmed the same way uploads are,
// so validation sees what would be stored.
func (r UpdateRequest) trimmed() UpdateRequest {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	r.Category = trimPtr(r.Category)
	return r
}

func (r UpdateRequest) apply(v *domain.Video) []string {
	var fields []string
	if r.Title != nil {
		v.Title = *r.Title
		fields = append(fields, "Title")
	}
	if r.Description != nil {
		v.Description = *r.Description
		fields = append(fields, "Description")
	}
	if r.Category != nil {
		v.Category = domain.VideoCategory(*r.Category)
		fields = append(fields, "Category")
	}
	if r.Client != nil {
		v.Client = emptyToNil(*r.Client)
		fields = append(fields, "Client")
	}
	if r.Year != nil {
		year := *r.Year
		v.Year = &year
		fields = append(fields, "Year")
	}
	if r.Featured != nil {
		v.Featured = *r.Featured
		fields = append(fields, "Featured")
	}
	if r.Order != nil {
		v.Order = *r.Order
		fields = append(fields, "Order")
	}
	if r.Duration != nil {
		v.Duration = emptyToNil(*r.Duration)
		fields = append(fields, "Duration")
	}
	if r.Thumbnail != nil {
		v.Thumbnail = emptyToNil(*r.Thumbnail)
		fields = append(fields, "Thumbnail")
	}
	return fields
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
