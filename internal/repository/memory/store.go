// Package memory implements the repositories over an in-process store.
// The store owns typed tables for users, sessions, channels and
// messages; it is constructed once per process and handed to each
// repository. Nothing here survives a restart.
package memory

import (
	"sync"

	"github.com/flockrhq/flockr/internal/domain"
)

// Store holds every table. Locking is scoped the way the traffic is
// shaped: one coarse lock for the append-mostly user and session
// tables, one lock for the channel table itself, and a per-channel
// lock for each channel's member/owner sets and message log so
// cross-channel operations never contend.
type Store struct {
	userMu     sync.RWMutex
	users      []*domain.User
	byEmail    map[string]*domain.User
	byHandle   map[string]*domain.User
	sessions   map[string]int64 // token -> u_id
	userTokens map[int64]string // u_id -> token

	chanMu        sync.RWMutex
	channels      map[int64]*channelState
	channelOrder  []int64
	nextChannelID int64

	msgMu     sync.RWMutex
	msgIndex  map[int64]*messageRecord
	nextMsgID int64
}

type channelState struct {
	mu      sync.Mutex
	channel domain.Channel
	log     []*messageRecord // most recent first
}

type messageRecord struct {
	msg domain.Message
}

func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

// Reset clears every table. For test isolation only.
func (s *Store) Reset() {
	s.userMu.Lock()
	defer s.userMu.Unlock()
	s.chanMu.Lock()
	defer s.chanMu.Unlock()
	s.msgMu.Lock()
	defer s.msgMu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.users = nil
	s.byEmail = make(map[string]*domain.User)
	s.byHandle = make(map[string]*domain.User)
	s.sessions = make(map[string]int64)
	s.userTokens = make(map[int64]string)
	s.channels = make(map[int64]*channelState)
	s.channelOrder = nil
	s.nextChannelID = 1
	s.msgIndex = make(map[int64]*messageRecord)
	s.nextMsgID = 1
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Sessions returns the session repository view of the store.
func (s *Store) Sessions() *SessionRepo { return &SessionRepo{store: s} }

// Channels returns the channel repository view of the store.
func (s *Store) Channels() *ChannelRepo { return &ChannelRepo{store: s} }

// Messages returns the message repository view of the store.
func (s *Store) Messages() *MessageRepo { return &MessageRepo{store: s} }

// channel returns the state for id, or nil.
func (s *Store) channel(id int64) *channelState {
	s.chanMu.RLock()
	defer s.chanMu.RUnlock()
	return s.channels[id]
}
