package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/flockrhq/flockr/internal/repository/memory"
)

// env wires every service over a fresh in-memory store.
type env struct {
	store    *memory.Store
	guard    *Guard
	auth     *AuthService
	users    *UserService
	channels *ChannelService
	messages *MessageService
	standups *StandupService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.NewStore()
	userRepo := store.Users()
	sessionRepo := store.Sessions()
	channelRepo := store.Channels()
	messageRepo := store.Messages()

	guard := NewGuard(sessionRepo, channelRepo)
	auth := NewAuthService(userRepo, sessionRepo, "test-secret")
	users := NewUserService(userRepo, guard)
	channels := NewChannelService(channelRepo, userRepo, guard)
	standups := NewStandupService(messageRepo, userRepo, guard, zerolog.Nop())
	messages := NewMessageService(messageRepo, channels, standups, guard)

	return &env{
		store:    store,
		guard:    guard,
		auth:     auth,
		users:    users,
		channels: channels,
		messages: messages,
		standups: standups,
	}
}

func (e *env) register(t *testing.T, email, password, first, last string) *AuthResult {
	t.Helper()
	res, err := e.auth.Register(context.Background(), email, password, first, last)
	require.NoError(t, err)
	return res
}

func (e *env) createChannel(t *testing.T, token, name string, isPublic bool) int64 {
	t.Helper()
	id, err := e.channels.Create(context.Background(), token, name, isPublic)
	require.NoError(t, err)
	return id
}
