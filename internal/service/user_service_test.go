package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flockrhq/flockr/internal/domain"
)

func TestUserProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")

	profile, err := e.users.Profile(ctx, h.Token, a.UserID)
	require.NoError(t, err)
	require.Equal(t, "Andras", profile.FirstName)
	require.Equal(t, "andrasarato", profile.Handle)

	_, err = e.users.Profile(ctx, h.Token, 999)
	require.ErrorIs(t, err, domain.ErrInput)

	_, err = e.users.Profile(ctx, "bogus", h.UserID)
	require.ErrorIs(t, err, domain.ErrAccess)
}

func TestUserSetName(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")

	require.NoError(t, e.users.SetName(ctx, h.Token, "New", "Name"))

	profile, err := e.users.Profile(ctx, h.Token, h.UserID)
	require.NoError(t, err)
	require.Equal(t, "New", profile.FirstName)
	require.Equal(t, "Name", profile.LastName)
	// The handle does not follow name changes.
	require.Equal(t, "haydeneverest", profile.Handle)

	require.ErrorIs(t, e.users.SetName(ctx, h.Token, "", "Name"), domain.ErrInput)
}

func TestUserSetEmail(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")

	require.NoError(t, e.users.SetEmail(ctx, h.Token, "hayden@x.com"))

	// Another user's email is taken.
	require.ErrorIs(t, e.users.SetEmail(ctx, h.Token, "a@x.com"), domain.ErrInput)
	// Your own current email is fine.
	require.NoError(t, e.users.SetEmail(ctx, a.Token, "a@x.com"))

	require.ErrorIs(t, e.users.SetEmail(ctx, h.Token, "not-an-email"), domain.ErrInput)
}

func TestUserSetHandle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")

	require.NoError(t, e.users.SetHandle(ctx, h.Token, "hayden42"))

	require.ErrorIs(t, e.users.SetHandle(ctx, a.Token, "hayden42"), domain.ErrInput)
	require.ErrorIs(t, e.users.SetHandle(ctx, a.Token, "ab"), domain.ErrInput)
	require.ErrorIs(t, e.users.SetHandle(ctx, a.Token, "has spaces"), domain.ErrInput)
}

func TestUsersAll(t *testing.T) {
	e := newEnv(t)
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	e.register(t, "a@x.com", "abc456", "Andras", "Arato")

	users, err := e.users.All(context.Background(), h.Token)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "haydeneverest", users[0].Handle)
	require.Equal(t, "andrasarato", users[1].Handle)
}
