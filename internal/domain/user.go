package domain

import "time"

// GlobalOwnerID is the identity of the first user ever registered. The
// global owner may join private channels and act on any channel's owner
// set without being an owner there.
const GlobalOwnerID int64 = 0

type User struct {
	ID           int64     `json:"u_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"name_first"`
	LastName     string    `json:"name_last"`
	Handle       string    `json:"handle_str"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Profile is the full user projection returned by profile endpoints.
type Profile struct {
	ID        int64  `json:"u_id"`
	Email     string `json:"email"`
	FirstName string `json:"name_first"`
	LastName  string `json:"name_last"`
	Handle    string `json:"handle_str"`
}

// UserSummary is the lightweight projection used in channel details.
// Email and handle are deliberately absent.
type UserSummary struct {
	ID        int64  `json:"u_id"`
	FirstName string `json:"name_first"`
	LastName  string `json:"name_last"`
}

func (u *User) Profile() *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Handle:    u.Handle,
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
