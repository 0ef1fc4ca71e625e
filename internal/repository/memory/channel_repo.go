package memory

import (
	"context"

	"github.com/flockrhq/flockr/internal/domain"
)

type ChannelRepo struct {
	store *Store
}

func (r *ChannelRepo) Create(_ context.Context, channel *domain.Channel) error {
	s := r.store
	s.chanMu.Lock()
	defer s.chanMu.Unlock()

	channel.ID = s.nextChannelID
	s.nextChannelID++
	channel.Members = []int64{channel.CreatedBy}
	channel.Owners = []int64{channel.CreatedBy}

	st := &channelState{channel: *channel}
	st.channel.Members = append([]int64(nil), channel.Members...)
	st.channel.Owners = append([]int64(nil), channel.Owners...)
	s.channels[channel.ID] = st
	s.channelOrder = append(s.channelOrder, channel.ID)
	return nil
}

func (r *ChannelRepo) GetByID(_ context.Context, id int64) (*domain.Channel, error) {
	st := r.store.channel(id)
	if st == nil {
		return nil, nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	clone := st.channel
	clone.Members = append([]int64(nil), st.channel.Members...)
	clone.Owners = append([]int64(nil), st.channel.Owners...)
	return &clone, nil
}

func (r *ChannelRepo) List(ctx context.Context) ([]domain.Channel, error) {
	s := r.store
	s.chanMu.RLock()
	order := append([]int64(nil), s.channelOrder...)
	s.chanMu.RUnlock()

	out := make([]domain.Channel, 0, len(order))
	for _, id := range order {
		ch, err := r.GetByID(ctx, id)
		if err != nil || ch == nil {
			continue
		}
		out = append(out, *ch)
	}
	return out, nil
}

func (r *ChannelRepo) Exists(_ context.Context, id int64) (bool, error) {
	return r.store.channel(id) != nil, nil
}

func (r *ChannelRepo) IsMember(_ context.Context, channelID, userID int64) (bool, error) {
	st := r.store.channel(channelID)
	if st == nil {
		return false, nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return contains(st.channel.Members, userID), nil
}

func (r *ChannelRepo) IsOwner(_ context.Context, channelID, userID int64) (bool, error) {
	st := r.store.channel(channelID)
	if st == nil {
		return false, nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return contains(st.channel.Owners, userID), nil
}

func (r *ChannelRepo) AddMember(_ context.Context, channelID, userID int64) error {
	st := r.store.channel(channelID)
	if st == nil {
		return domain.Inputf("channel %d does not exist", channelID)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if contains(st.channel.Members, userID) {
		return domain.Inputf("user %d is already a member of channel %d", userID, channelID)
	}
	st.channel.Members = append(st.channel.Members, userID)
	return nil
}

func (r *ChannelRepo) RemoveMember(_ context.Context, channelID, userID int64) error {
	st := r.store.channel(channelID)
	if st == nil {
		return domain.Inputf("channel %d does not exist", channelID)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	// Owners first, so owners never outlive membership.
	st.channel.Owners = remove(st.channel.Owners, userID)
	st.channel.Members = remove(st.channel.Members, userID)
	return nil
}

func (r *ChannelRepo) AddOwner(_ context.Context, channelID, userID int64) error {
	st := r.store.channel(channelID)
	if st == nil {
		return domain.Inputf("channel %d does not exist", channelID)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if !contains(st.channel.Members, userID) {
		return domain.Inputf("user %d is not a member of channel %d", userID, channelID)
	}
	if contains(st.channel.Owners, userID) {
		return domain.Inputf("user %d is already an owner of channel %d", userID, channelID)
	}
	st.channel.Owners = append(st.channel.Owners, userID)
	return nil
}

func (r *ChannelRepo) RemoveOwner(_ context.Context, channelID, userID int64) error {
	st := r.store.channel(channelID)
	if st == nil {
		return domain.Inputf("channel %d does not exist", channelID)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if !contains(st.channel.Owners, userID) {
		return domain.Inputf("user %d is not an owner of channel %d", userID, channelID)
	}
	st.channel.Owners = remove(st.channel.Owners, userID)
	return nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
