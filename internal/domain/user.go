package domain

import "time"

// User is the domain model for registered users. PasswordHash and
// RefreshToken are private credentials and must never appear in any
// team-facing response; use UserSummary or MemberProfile instead.
type User struct {
	ID           string
	Name         string
	Email        string
	PhotoURL     string
	PasswordHash string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the public projection used when enriching teams and tasks.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MemberProfile is the richer projection returned by team info lookups.
type MemberProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url"`
}

// Summary projects a user down to its public fields.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Profile projects a user down to its member-profile fields.
func (u *User) Profile() MemberProfile {
	return MemberProfile{ID: u.ID, Name: u.Name, Email: u.Email, PhotoURL: u.PhotoURL}
}
