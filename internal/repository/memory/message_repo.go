package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/flockrhq/flockr/internal/domain"
)

type MessageRepo struct {
	store *Store
}

func (r *MessageRepo) Append(_ context.Context, channelID, senderID int64, body string) (*domain.Message, error) {
	s := r.store
	st := s.channel(channelID)
	if st == nil {
		return nil, domain.Inputf("channel %d does not exist", channelID)
	}

	s.msgMu.Lock()
	id := s.nextMsgID
	s.nextMsgID++
	s.msgMu.Unlock()

	rec := &messageRecord{msg: domain.Message{
		ID:        id,
		ChannelID: channelID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now().Unix(),
	}}

	st.mu.Lock()
	st.log = append([]*messageRecord{rec}, st.log...)
	st.mu.Unlock()

	s.msgMu.Lock()
	s.msgIndex[id] = rec
	s.msgMu.Unlock()

	clone := rec.msg
	return &clone, nil
}

func (r *MessageRepo) GetByID(_ context.Context, id int64) (*domain.Message, error) {
	s := r.store
	s.msgMu.RLock()
	rec, ok := s.msgIndex[id]
	s.msgMu.RUnlock()
	if !ok {
		return nil, nil
	}

	st := s.channel(rec.msg.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()
	clone := rec.msg
	return &clone, nil
}

func (r *MessageRepo) UpdateBody(_ context.Context, id int64, body string) error {
	s := r.store
	s.msgMu.RLock()
	rec, ok := s.msgIndex[id]
	s.msgMu.RUnlock()
	if !ok {
		return domain.Inputf("message %d does not exist", id)
	}

	st := s.channel(rec.msg.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if rec.msg.Removed {
		return domain.Inputf("message %d has been removed", id)
	}
	rec.msg.Body = body
	return nil
}

func (r *MessageRepo) Tombstone(_ context.Context, id int64) error {
	s := r.store
	s.msgMu.RLock()
	rec, ok := s.msgIndex[id]
	s.msgMu.RUnlock()
	if !ok {
		return domain.Inputf("message %d does not exist", id)
	}

	st := s.channel(rec.msg.ChannelID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if rec.msg.Removed {
		return domain.Inputf("message %d has already been removed", id)
	}
	rec.msg.Removed = true
	rec.msg.Body = ""
	return nil
}

func (r *MessageRepo) Count(_ context.Context, channelID int64) (int, error) {
	st := r.store.channel(channelID)
	if st == nil {
		return 0, domain.Inputf("channel %d does not exist", channelID)
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.log), nil
}

func (r *MessageRepo) Window(_ context.Context, channelID int64, start, limit int) ([]domain.Message, error) {
	st := r.store.channel(channelID)
	if st == nil {
		return nil, domain.Inputf("channel %d does not exist", channelID)
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	if start < 0 || start > len(st.log) {
		return nil, domain.Inputf("start %d is out of range", start)
	}
	end := start + limit
	if end > len(st.log) {
		end = len(st.log)
	}
	out := make([]domain.Message, 0, end-start)
	for _, rec := range st.log[start:end] {
		out = append(out, rec.msg)
	}
	return out, nil
}

func (r *MessageRepo) Search(_ context.Context, channelIDs []int64, query string) ([]domain.Message, error) {
	var out []domain.Message
	for _, channelID := range channelIDs {
		st := r.store.channel(channelID)
		if st == nil {
			continue
		}
		st.mu.Lock()
		for _, rec := range st.log {
			if rec.msg.Removed {
				continue
			}
			if strings.Contains(rec.msg.Body, query) {
				out = append(out, rec.msg)
			}
		}
		st.mu.Unlock()
	}
	// Ids are globally monotonic, so id order is creation order across
	// channels.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
