package service

import (
	"context"

	"github.com/flockrhq/flockr/internal/domain"
	"github.com/flockrhq/flockr/internal/repository"
)

// Guard is the authorization seam every operation passes through
// before touching channel or message state. The check order is fixed:
// resolve the caller's identity, then the structural existence of the
// target, then the caller's permission. Tests depend on that order for
// deterministic error kinds.
type Guard struct {
	sessions repository.SessionRepository
	channels repository.ChannelRepository
}

func NewGuard(sessions repository.SessionRepository, channels repository.ChannelRepository) *Guard {
	return &Guard{sessions: sessions, channels: channels}
}

// Caller resolves an opaque token to a user id.
func (g *Guard) Caller(ctx context.Context, token string) (int64, error) {
	uid, ok, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.Accessf("token is not active")
	}
	return uid, nil
}

// CallerForChannel resolves the caller and checks the channel exists,
// without requiring membership. Used by join.
func (g *Guard) CallerForChannel(ctx context.Context, token string, channelID int64) (int64, error) {
	uid, err := g.Caller(ctx, token)
	if err != nil {
		return 0, err
	}
	exists, err := g.channels.Exists(ctx, channelID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.Inputf("channel %d does not exist", channelID)
	}
	return uid, nil
}

// MemberOfChannel resolves the caller, checks the channel exists, then
// requires membership.
func (g *Guard) MemberOfChannel(ctx context.Context, token string, channelID int64) (int64, error) {
	uid, err := g.CallerForChannel(ctx, token, channelID)
	if err != nil {
		return 0, err
	}
	member, err := g.channels.IsMember(ctx, channelID, uid)
	if err != nil {
		return 0, err
	}
	if !member {
		return 0, domain.Accessf("user %d is not a member of channel %d", uid, channelID)
	}
	return uid, nil
}

// OwnerOfChannel resolves the caller, checks the channel exists, then
// requires channel ownership or the global-owner bypass.
func (g *Guard) OwnerOfChannel(ctx context.Context, token string, channelID int64) (int64, error) {
	uid, err := g.CallerForChannel(ctx, token, channelID)
	if err != nil {
		return 0, err
	}
	if uid == domain.GlobalOwnerID {
		return uid, nil
	}
	owner, err := g.channels.IsOwner(ctx, channelID, uid)
	if err != nil {
		return 0, err
	}
	if !owner {
		return 0, domain.Accessf("user %d is not an owner of channel %d", uid, channelID)
	}
	return uid, nil
}
