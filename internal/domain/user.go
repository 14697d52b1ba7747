package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultUserTitle = "Video Editor"

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Social struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Contact struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Social   Social `json:"social"`
}

// User is both the account and the portfolio profile. The system has a
// single portfolio owner; any further users are co-admins.
type User struct {
	ID           string       `json:"id" gorm:"primaryKey;size:36"`
	Username     string       `json:"username" gorm:"uniqueIndex;not null"`
	Email        string       `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string       `json:"-" gorm:"column:password_hash;not null"`
	Name         string       `json:"name" gorm:"not null"`
	Title        string       `json:"title"`
	About        string       `json:"about"`
	Experience   []Experience `json:"experience" gorm:"type:text;serializer:json"`
	Skills       []string     `json:"skills" gorm:"type:text;serializer:json"`
	Contact      Contact      `json:"contact" gorm:"type:text;serializer:json"`
	CreatedAt    time.Time    `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Title == "" {
		u.Title = DefaultUserTitle
	}
	if u.Experience == nil {
		u.Experience = []Experience{}
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	return nil
}

// PublicProfile is the portfolio as shown to anonymous visitors.
type PublicProfile struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	About      string       `json:"about"`
	Experience []Experience `json:"experience"`
	Skills     []string     `json:"skills"`
	Contact    Contact      `json:"contact"`
}

func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:         u.ID,
		Name:       u.Name,
		Title:      u.Title,
		About:      u.About,
		Experience: u.Experience,
		Skills:     u.Skills,
		Contact:    u.Contact,
	}
}
