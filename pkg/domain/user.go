package domain

import "time"

const (
	ProviderPassword  = "password"
	ProviderGoogle    = "google"
	ProviderAnonymous = "anonymous"
)

type User struct {
	ID           string `bun:",pk"`
	Email        string `bun:",nullzero"`
	DisplayName  string
	PasswordHash string
	Provider     string
	CreatedAt    time.Time
}

func (u *User) IsAnonymous() bool {
	return u.Provider == ProviderAnonymous
}

// Label is the display name shown next to a user's gallery records.
func (u *User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Email != "" {
		return u.Email
	}
	return "anonymous"
}
