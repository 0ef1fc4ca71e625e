package service

import (
	"context"

	"github.com/flockrhq/flockr/internal/domain"
	"github.com/flockrhq/flockr/internal/metrics"
	"github.com/flockrhq/flockr/internal/repository"
)

// Notifier broadcasts real-time events to connected clients.
type Notifier interface {
	NotifyNewMessage(msg *domain.Message)
	NotifyEditedMessage(msg *domain.Message)
	NotifyRemovedMessage(channelID, messageID int64)
	NotifyStandupStarted(channelID, deadline int64)
	NotifyStandupFlushed(msg *domain.Message)
}

type MessageService struct {
	messages repository.MessageRepository
	channels *ChannelService
	standups *StandupService
	guard    *Guard
	notifier Notifier
}

func NewMessageService(
	messages repository.MessageRepository,
	channels *ChannelService,
	standups *StandupService,
	guard *Guard,
) *MessageService {
	return &MessageService{
		messages: messages,
		channels: channels,
		standups: standups,
		guard:    guard,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *MessageService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Send posts a message into the channel. While a standup window is
// open the line is buffered into the standup instead of appended to
// the log; the receipt says which happened.
func (s *MessageService) Send(ctx context.Context, token string, channelID int64, body string) (*domain.SendReceipt, error) {
	uid, err := s.guard.MemberOfChannel(ctx, token, channelID)
	if err != nil {
		return nil, err
	}
	if body == "" || len([]rune(body)) > domain.MaxMessageLen {
		return nil, domain.Inputf("message must be 1-%d characters", domain.MaxMessageLen)
	}

	buffered, err := s.standups.Buffer(ctx, channelID, uid, body)
	if err != nil {
		return nil, err
	}
	if buffered {
		return &domain.SendReceipt{Buffered: true}, nil
	}

	msg, err := s.messages.Append(ctx, channelID, uid, body)
	if err != nil {
		return nil, err
	}

	metrics.MessagesSentTotal.WithLabelValues("direct").Inc()
	if s.notifier != nil {
		s.notifier.NotifyNewMessage(msg)
	}
	return &domain.SendReceipt{MessageID: msg.ID}, nil
}

// Edit replaces a message's body. Editing to an empty body tombstones
// the message, same as Remove.
func (s *MessageService) Edit(ctx context.Context, token string, messageID int64, body string) error {
	uid, msg, err := s.resolveMessage(ctx, token, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != uid && uid != domain.GlobalOwnerID {
		return domain.Accessf("user %d may not edit message %d", uid, messageID)
	}
	if len([]rune(body)) > domain.MaxMessageLen {
		return domain.Inputf("message must be at most %d characters", domain.MaxMessageLen)
	}

	if body == "" {
		if err := s.messages.Tombstone(ctx, messageID); err != nil {
			return err
		}
		if s.notifier != nil {
			s.notifier.NotifyRemovedMessage(msg.ChannelID, messageID)
		}
		return nil
	}

	if err := s.messages.UpdateBody(ctx, messageID, body); err != nil {
		return err
	}
	if s.notifier != nil {
		msg.Body = body
		s.notifier.NotifyEditedMessage(msg)
	}
	return nil
}

// Remove tombstones a message in place: the id stays so pagination
// offsets never shift and ids are never reused.
func (s *MessageService) Remove(ctx context.Context, token string, messageID int64) error {
	uid, msg, err := s.resolveMessage(ctx, token, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != uid && uid != domain.GlobalOwnerID {
		return domain.Accessf("user %d may not remove message %d", uid, messageID)
	}

	if err := s.messages.Tombstone(ctx, messageID); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.NotifyRemovedMessage(msg.ChannelID, messageID)
	}
	return nil
}

// Page returns one 50-wide window over the channel's log starting at
// start, most recent first. End is start+50 when more remain and -1
// when the window reached the oldest message.
func (s *MessageService) Page(ctx context.Context, token string, channelID int64, start int) (*domain.MessagePage, error) {
	if _, err := s.guard.MemberOfChannel(ctx, token, channelID); err != nil {
		return nil, err
	}

	count, err := s.messages.Count(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if start < 0 || start > count {
		return nil, domain.Inputf("start %d is out of range for %d messages", start, count)
	}

	msgs, err := s.messages.Window(ctx, channelID, start, domain.MessagePageSize)
	if err != nil {
		return nil, err
	}

	end := start + domain.MessagePageSize
	if end >= count {
		end = domain.PageEnd
	}
	return &domain.MessagePage{Messages: msgs, Start: start, End: end}, nil
}

// Search scans the caller's channels for messages containing query,
// most recent first within each channel.
func (s *MessageService) Search(ctx context.Context, token, query string) ([]domain.Message, error) {
	uid, err := s.guard.Caller(ctx, token)
	if err != nil {
		return nil, err
	}
	channelIDs, err := s.channels.MemberChannelIDs(ctx, uid)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messages.Search(ctx, channelIDs, query)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}

// resolveMessage applies the guard ordering for message-targeted
// operations: identity first, then message existence. Permission is
// the caller's to check.
func (s *MessageService) resolveMessage(ctx context.Context, token string, messageID int64) (int64, *domain.Message, error) {
	uid, err := s.guard.Caller(ctx, token)
	if err != nil {
		return 0, nil, err
	}
	msg, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return 0, nil, err
	}
	if msg == nil {
		return 0, nil, domain.Inputf("message %d does not exist", messageID)
	}
	if msg.Removed {
		return 0, nil, domain.Inputf("message %d has been removed", messageID)
	}
	return uid, msg, nil
}
