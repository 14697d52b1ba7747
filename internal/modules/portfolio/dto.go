package portfolio

import (
	"strings"

	"videoportfolio/internal/domain"
)

// UpdateRequest lists every field the owner may patch. Absent (nil) fields
// are left unchanged; lists and the contact block are replaced wholesale.
// Username and email are not patchable here.
type UpdateRequest struct {
	Name       *string              `json:"name" validate:"omitempty,min=1"`
	Title      *string              `json:"title"`
	About      *string              `json:"about"`
	Experience *[]domain.Experience `json:"experience"`
	Skills     *[]string            `json:"skills"`
	Contact    *domain.Contact      `json:"contact"`
	Password   *string              `json:"password" validate:"omitempty,min=1,max=72"`
}

// trimmed returns r with the name trimmed so a blank name fails validation.
func (r UpdateRequest) trimmed() UpdateRequest {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	return r
}

// apply copies the present fields onto u and returns the struct field names
// that changed. The password is handled by the service since it needs hashing.
func (r UpdateRequest) apply(u *domain.User) []string {
	var fields []string
	if r.Name != nil {
		u.Name = *r.Name
		fields = append(fields, "Name")
	}
	if r.Title != nil {
		u.Title = *r.Title
		fields = append(fields, "Title")
	}
	if r.About != nil {
		u.About = *r.About
		fields = append(fields, "About")
	}
	if r.Experience != nil {
		u.Experience = *r.Experience
		if u.Experience == nil {
			u.Experience = []domain.Experience{}
		}
		fields = append(fields, "Experience")
	}
	if r.Skills != nil {
		u.Skills = *r.Skills
		if u.Skills == nil {
			u.Skills = []string{}
		}
		fields = append(fields, "Skills")
	}
	if r.Contact != nil {
		u.Contact = *r.Contact
		fields = append(fields, "Contact")
	}
	return fields
}
