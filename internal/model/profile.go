package model

import "time"

// Profile is the account profile maintained by the identity provider.
type Profile struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Role      UserRole  `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Technician is the capster-specific record attached to a technician profile.
// Availability holds the daily time slots the technician accepts bookings for.
type Technician struct {
	UserID       string    `json:"user_id"`
	Specialty    string    `json:"specialty"`
	Rating       float64   `json:"rating"`
	Bio          string    `json:"bio,omitempty"`
	Availability []string  `json:"availability"`
	CreatedAt    time.Time `json:"created_at"`
	Profile      *Profile  `json:"profile,omitempty"`
}
