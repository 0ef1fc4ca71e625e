package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flockrhq/flockr/internal/domain"
	"github.com/flockrhq/flockr/internal/metrics"
	"github.com/flockrhq/flockr/internal/repository"
)

// StandupService runs the per-channel standup state machine:
// Idle -> Active -> (timer fires) -> Idle. While Active, contributions
// are buffered in arrival order; the flush joins them into one
// composite message attributed to the initiator and returns the
// channel to Idle, whatever happens to the append.
type StandupService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	guard    *Guard
	log      zerolog.Logger
	notifier Notifier

	mu     sync.Mutex
	active map[int64]*standupState
}

// standupState is one channel's live standup. Its own mutex serializes
// buffer appends against the flush; the service mutex only guards the
// active map, so channels never contend with each other.
type standupState struct {
	mu          sync.Mutex
	initiatorID int64
	deadline    int64
	lines       []string
	flushed     bool
}

func NewStandupService(
	messages repository.MessageRepository,
	users repository.UserRepository,
	guard *Guard,
	log zerolog.Logger,
) *StandupService {
	return &StandupService{
		messages: messages,
		users:    users,
		guard:    guard,
		log:      log,
		active:   make(map[int64]*standupState),
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *StandupService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Start opens a standup window of length seconds and arms the flush
// timer. It returns the deadline in unix seconds. The initiator's
// identity is captured here and owns the eventual composite message
// no matter what happens to that identity before the deadline.
func (s *StandupService) Start(ctx context.Context, token string, channelID int64, length int64) (int64, error) {
	uid, err := s.guard.MemberOfChannel(ctx, token, channelID)
	if err != nil {
		return 0, err
	}
	if length <= 0 {
		return 0, domain.Inputf("standup length must be positive, got %d", length)
	}

	deadline := time.Now().Unix() + length

	s.mu.Lock()
	if _, running := s.active[channelID]; running {
		s.mu.Unlock()
		return 0, domain.Inputf("a standup is already active in channel %d", channelID)
	}
	st := &standupState{initiatorID: uid, deadline: deadline}
	s.active[channelID] = st
	s.mu.Unlock()

	time.AfterFunc(time.Duration(length)*time.Second, func() {
		s.flush(channelID)
	})

	metrics.StandupsStartedTotal.Inc()
	metrics.StandupsActive.Inc()
	if s.notifier != nil {
		s.notifier.NotifyStandupStarted(channelID, deadline)
	}
	return deadline, nil
}

// Active reports whether a standup is running in the channel and, if
// so, its deadline.
func (s *StandupService) Active(ctx context.Context, token string, channelID int64) (*domain.StandupStatus, error) {
	if _, err := s.guard.MemberOfChannel(ctx, token, channelID); err != nil {
		return nil, err
	}
	active, deadline := s.activeState(channelID)
	return &domain.StandupStatus{IsActive: active, TimeFinish: deadline}, nil
}

// Send buffers one line into the channel's active standup as
// "handle: line".
func (s *StandupService) Send(ctx context.Context, token string, channelID int64, line string) error {
	uid, err := s.guard.MemberOfChannel(ctx, token, channelID)
	if err != nil {
		return err
	}
	if line == "" || len([]rune(line)) > domain.MaxMessageLen {
		return domain.Inputf("message must be 1-%d characters", domain.MaxMessageLen)
	}
	buffered, err := s.Buffer(ctx, channelID, uid, line)
	if err != nil {
		return err
	}
	if !buffered {
		return domain.Inputf("no standup is active in channel %d", channelID)
	}
	return nil
}

// Buffer appends a contribution if the channel has a live standup.
// It reports false when the channel is idle so the caller can post
// directly instead. Callers are expected to have validated the line
// and the sender's membership already.
func (s *StandupService) Buffer(ctx context.Context, channelID, senderID int64, line string) (bool, error) {
	s.mu.Lock()
	st := s.active[channelID]
	s.mu.Unlock()
	if st == nil {
		return false, nil
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return false, err
	}
	if sender == nil {
		return false, domain.Inputf("user %d does not exist", senderID)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.flushed {
		// Timer fired between the map lookup and here.
		return false, nil
	}
	st.lines = append(st.lines, fmt.Sprintf("%s: %s", sender.Handle, line))
	metrics.StandupContributionsTotal.Inc()
	return true, nil
}

func (s *StandupService) activeState(channelID int64) (bool, int64) {
	s.mu.Lock()
	st := s.active[channelID]
	s.mu.Unlock()
	if st == nil {
		return false, 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.flushed {
		return false, 0
	}
	return true, st.deadline
}

// flush runs on timer expiry with no caller to report to. It marks the
// window closed, appends the composite message under the initiator's
// identity, and always returns the channel to Idle: the active entry is
// removed even when the append fails, so a channel can never be stuck
// Active. The joined body is exempt from the direct-send length cap.
func (s *StandupService) flush(channelID int64) {
	s.mu.Lock()
	st := s.active[channelID]
	s.mu.Unlock()
	if st == nil {
		return
	}

	st.mu.Lock()
	st.flushed = true
	lines := st.lines
	initiator := st.initiatorID
	st.mu.Unlock()

	// The entry stays in the map until the append completes so a new
	// Start cannot be accepted while this flush is pending.
	defer func() {
		s.mu.Lock()
		delete(s.active, channelID)
		s.mu.Unlock()
		metrics.StandupsActive.Dec()
	}()

	if len(lines) == 0 {
		metrics.StandupFlushesTotal.WithLabelValues("empty").Inc()
		return
	}

	msg, err := s.messages.Append(context.Background(), channelID, initiator, strings.Join(lines, "\n"))
	if err != nil {
		s.log.Error().Err(err).
			Int64("channel_id", channelID).
			Int64("initiator_id", initiator).
			Msg("standup flush failed to append composite message")
		metrics.StandupFlushesTotal.WithLabelValues("error").Inc()
		return
	}

	metrics.StandupFlushesTotal.WithLabelValues("flushed").Inc()
	metrics.MessagesSentTotal.WithLabelValues("composite").Inc()
	if s.notifier != nil {
		s.notifier.NotifyStandupFlushed(msg)
	}
}
