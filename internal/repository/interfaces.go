package repository

import (
	"context"

	"github.com/flockrhq/flockr/internal/domain"
)

// Repositories follow a nil-without-error convention for lookups: a
// missing entity returns (nil, nil) and services decide which error
// kind that is.

type UserRepository interface {
	// Create assigns the next u_id (starting at 0) and stores the user.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, token string, userID int64) error
	// Resolve maps a token to a user id; ok is false for inactive tokens.
	Resolve(ctx context.Context, token string) (userID int64, ok bool, err error)
	// ByUser returns the user's active token, if any.
	ByUser(ctx context.Context, userID int64) (token string, ok bool, err error)
	// Delete invalidates a token. Reports false, not an error, if the
	// token was already inactive.
	Delete(ctx context.Context, token string) (bool, error)
}

type ChannelRepository interface {
	// Create assigns the next channel_id and stores the channel with
	// the creator as sole member and owner.
	Create(ctx context.Context, channel *domain.Channel) error
	GetByID(ctx context.Context, id int64) (*domain.Channel, error)
	List(ctx context.Context) ([]domain.Channel, error)
	Exists(ctx context.Context, id int64) (bool, error)
	IsMember(ctx context.Context, channelID, userID int64) (bool, error)
	IsOwner(ctx context.Context, channelID, userID int64) (bool, error)
	AddMember(ctx context.Context, channelID, userID int64) error
	// RemoveMember drops the user from owners first, then members, so
	// owners remain a subset of members throughout.
	RemoveMember(ctx context.Context, channelID, userID int64) error
	AddOwner(ctx context.Context, channelID, userID int64) error
	RemoveOwner(ctx context.Context, channelID, userID int64) error
}

type MessageRepository interface {
	// Append assigns the next global message_id, timestamps the message
	// and prepends it to the channel's log. No length cap is applied
	// here: composite standup messages may exceed the direct-send cap.
	Append(ctx context.Context, channelID, senderID int64, body string) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	UpdateBody(ctx context.Context, id int64, body string) error
	// Tombstone clears the body in place; the id and log position stay.
	Tombstone(ctx context.Context, id int64) error
	Count(ctx context.Context, channelID int64) (int, error)
	// Window returns up to limit messages starting at offset start in
	// most-recent-first order, tombstones included.
	Window(ctx context.Context, channelID int64, start, limit int) ([]domain.Message, error)
	// Search scans the given channels for non-tombstoned messages
	// containing query as a substring, most recent first.
	Search(ctx context.Context, channelIDs []int64, query string) ([]domain.Message, error)
}
