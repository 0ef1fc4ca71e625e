package service

import (
	"context"
	"time"

	"github.com/flockrhq/flockr/internal/domain"
	"github.com/flockrhq/flockr/internal/repository"
)

type ChannelService struct {
	channels repository.ChannelRepository
	users    repository.UserRepository
	guard    *Guard
}

func NewChannelService(channels repository.ChannelRepository, users repository.UserRepository, guard *Guard) *ChannelService {
	return &ChannelService{channels: channels, users: users, guard: guard}
}

func (s *ChannelService) Create(ctx context.Context, token, name string, isPublic bool) (int64, error) {
	uid, err := s.guard.Caller(ctx, token)
	if err != nil {
		return 0, err
	}
	if len([]rune(name)) > domain.MaxChannelNameLen {
		return 0, domain.Inputf("channel name must be at most %d characters", domain.MaxChannelNameLen)
	}

	ch := &domain.Channel{
		Name:      name,
		IsPublic:  isPublic,
		CreatedBy: uid,
		CreatedAt: time.Now(),
	}
	if err := s.channels.Create(ctx, ch); err != nil {
		return 0, err
	}
	return ch.ID, nil
}

func (s *ChannelService) Invite(ctx context.Context, token string, channelID, targetID int64) error {
	uid, err := s.guard.CallerForChannel(ctx, token, channelID)
	if err != nil {
		return err
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.Inputf("user %d does not exist", targetID)
	}

	member, err := s.channels.IsMember(ctx, channelID, uid)
	if err != nil {
		return err
	}
	if !member {
		return domain.Accessf("user %d is not a member of channel %d", uid, channelID)
	}

	// AddMember rejects an existing member with an input error.
	return s.channels.AddMember(ctx, channelID, targetID)
}

func (s *ChannelService) Join(ctx context.Context, token string, channelID int64) error {
	uid, err := s.guard.CallerForChannel(ctx, token, channelID)
	if err != nil {
		return err
	}

	already, err := s.channels.IsMember(ctx, channelID, uid)
	if err != nil {
		return err
	}
	if already {
		return domain.Inputf("user %d is already a member of channel %d", uid, channelID)
	}

	ch, err := s.channels.GetByID(ctx, channelID)
	if err != nil {
		return err
	}
	if !ch.IsPublic && uid != domain.GlobalOwnerID {
		return domain.Accessf("channel %d is private", channelID)
	}

	return s.channels.AddMember(ctx, channelID, uid)
}

func (s *ChannelService) Leave(ctx context.Context, token string, channelID int64) error {
	uid, err := s.guard.MemberOfChannel(ctx, token, channelID)
	if err != nil {
		return err
	}
	return s.channels.RemoveMember(ctx, channelID, uid)
}

func (s *ChannelService) AddOwner(ctx context.Context, token string, channelID, targetID int64) error {
	if _, err := s.guard.OwnerOfChannel(ctx, token, channelID); err != nil {
		return err
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.Inputf("user %d does not exist", targetID)
	}
	// AddOwner enforces membership and rejects an existing owner.
	return s.channels.AddOwner(ctx, channelID, targetID)
}

func (s *ChannelService) RemoveOwner(ctx context.Context, token string, channelID, targetID int64) error {
	uid, err := s.guard.OwnerOfChannel(ctx, token, channelID)
	if err != nil {
		return err
	}
	if targetID == uid {
		return domain.Inputf("cannot remove yourself as owner")
	}
	return s.channels.RemoveOwner(ctx, channelID, targetID)
}

// Details returns the channel's name plus owner and member sets
// resolved to user summaries, in insertion order.
func (s *ChannelService) Details(ctx context.Context, token string, channelID int64) (*domain.ChannelDetails, error) {
	if _, err := s.guard.MemberOfChannel(ctx, token, channelID); err != nil {
		return nil, err
	}

	ch, err := s.channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	owners, err := s.summaries(ctx, ch.Owners)
	if err != nil {
		return nil, err
	}
	members, err := s.summaries(ctx, ch.Members)
	if err != nil {
		return nil, err
	}

	return &domain.ChannelDetails{
		Name:     ch.Name,
		IsPublic: ch.IsPublic,
		Owners:   owners,
		Members:  members,
	}, nil
}

// List returns the channels the caller belongs to.
func (s *ChannelService) List(ctx context.Context, token string) ([]domain.ChannelSummary, error) {
	uid, err := s.guard.Caller(ctx, token)
	if err != nil {
		return nil, err
	}
	all, err := s.channels.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChannelSummary, 0)
	for _, ch := range all {
		for _, member := range ch.Members {
			if member == uid {
				out = append(out, domain.ChannelSummary{ID: ch.ID, Name: ch.Name})
				break
			}
		}
	}
	return out, nil
}

// ListAll returns every channel, public or private. Listing a channel
// is not joining it.
func (s *ChannelService) ListAll(ctx context.Context, token string) ([]domain.ChannelSummary, error) {
	if _, err := s.guard.Caller(ctx, token); err != nil {
		return nil, err
	}
	all, err := s.channels.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ChannelSummary, 0, len(all))
	for _, ch := range all {
		out = append(out, domain.ChannelSummary{ID: ch.ID, Name: ch.Name})
	}
	return out, nil
}

// MemberChannelIDs lists the ids of channels the user belongs to.
// Used by search.
func (s *ChannelService) MemberChannelIDs(ctx context.Context, userID int64) ([]int64, error) {
	all, err := s.channels.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []int64
	for _, ch := range all {
		for _, member := range ch.Members {
			if member == userID {
				out = append(out, ch.ID)
				break
			}
		}
	}
	return out, nil
}

func (s *ChannelService) summaries(ctx context.Context, ids []int64) ([]domain.UserSummary, error) {
	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		out = append(out, user.Summary())
	}
	return out, nil
}
