package domain

import "time"

// MaxChannelNameLen caps channel names at creation.
const MaxChannelNameLen = 20

// Channel is a named group with an ordered member set and an owner set.
// Owners are always a subset of members; the creator starts as both.
type Channel struct {
	ID        int64     `json:"channel_id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"is_public"`
	CreatedBy int64     `json:"-"`
	CreatedAt time.Time `json:"-"`

	// Members and Owners are u_ids in insertion order.
	Members []int64 `json:"-"`
	Owners  []int64 `json:"-"`
}

// ChannelSummary is the projection used by channel listings.
type ChannelSummary struct {
	ID   int64  `json:"channel_id"`
	Name string `json:"name"`
}

// ChannelDetails resolves member and owner sets to user summaries.
type ChannelDetails struct {
	Name     string        `json:"name"`
	IsPublic bool          `json:"is_public"`
	Owners   []UserSummary `json:"owner_members"`
	Members  []UserSummary `json:"all_members"`
}
