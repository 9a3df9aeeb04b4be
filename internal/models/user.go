package models

import "time"

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	College string `json:"college,omitempty"`
	Course  string `json:"course,omitempty"`
	Bio     string `json:"bio,omitempty"`

	ProfilePicture string `json:"profile_picture,omitempty"`
	CoverPicture   string `json:"cover_picture,omitempty"`

	// Social links
	Linkedin   string `json:"linkedin,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	Github     string `json:"github,omitempty"`
	CustomLink string `json:"custom_link,omitempty"`
	UniLink    string `json:"uni_link,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	College  string `json:"college"`
	Course   string `json:"course"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfilePatch carries only the fields the client actually sent; a nil field
// means "leave as is". Applied field-by-field, never by reflection.
type ProfilePatch struct {
	Name           *string `json:"name"`
	Username       *string `json:"username"`
	Bio            *string `json:"bio"`
	College        *string `json:"college"`
	Course         *string `json:"course"`
	ProfilePicture *string `json:"profile_picture"`
	CoverPicture   *string `json:"cover_picture"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
	Github         *string `json:"github"`
	CustomLink     *string `json:"custom_link"`
	UniLink        *string `json:"uni_link"`
}

// Apply copies every present patch field onto the user.
func (p *ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.College != nil {
		u.College = *p.College
	}
	if p.Course != nil {
		u.Course = *p.Course
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = *p.ProfilePicture
	}
	if p.CoverPicture != nil {
		u.CoverPicture = *p.CoverPicture
	}
	if p.Linkedin != nil {
		u.Linkedin = *p.Linkedin
	}
	if p.Instagram != nil {
		u.Instagram = *p.Instagram
	}
	if p.Github != nil {
		u.Github = *p.Github
	}
	if p.CustomLink != nil {
		u.CustomLink = *p.CustomLink
	}
	if p.UniLink != nil {
		u.UniLink = *p.UniLink
	}
}
