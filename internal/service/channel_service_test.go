package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flockrhq/flockr/internal/domain"
)

func TestChannelCreate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")

	ch := e.createChannel(t, h.Token, "Chan1", true)
	require.Equal(t, int64(1), ch)

	details, err := e.channels.Details(ctx, h.Token, ch)
	require.NoError(t, err)
	require.Equal(t, "Chan1", details.Name)
	require.Equal(t, []int64{h.UserID}, summaryIDs(details.Owners))
	require.Equal(t, []int64{h.UserID}, summaryIDs(details.Members))
}

func TestChannelCreate_NameTooLong(t *testing.T) {
	e := newEnv(t)
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")

	_, err := e.channels.Create(context.Background(), h.Token, strings.Repeat("x", 21), true)
	require.ErrorIs(t, err, domain.ErrInput)
}

func TestChannelInvite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	b := e.register(t, "b@x.com", "abc789", "Bea", "Borbala")
	ch := e.createChannel(t, h.Token, "Chan1", true)

	// Non-member cannot invite.
	err := e.channels.Invite(ctx, a.Token, ch, b.UserID)
	require.ErrorIs(t, err, domain.ErrAccess)

	// Unknown target.
	err = e.channels.Invite(ctx, h.Token, ch, 999)
	require.ErrorIs(t, err, domain.ErrInput)

	// Unknown channel.
	err = e.channels.Invite(ctx, h.Token, 999, a.UserID)
	require.ErrorIs(t, err, domain.ErrInput)

	require.NoError(t, e.channels.Invite(ctx, h.Token, ch, a.UserID))

	// Invited user is a member but not an owner.
	details, err := e.channels.Details(ctx, a.Token, ch)
	require.NoError(t, err)
	require.Equal(t, []int64{h.UserID, a.UserID}, summaryIDs(details.Members))
	require.Equal(t, []int64{h.UserID}, summaryIDs(details.Owners))

	// Already a member.
	err = e.channels.Invite(ctx, h.Token, ch, a.UserID)
	require.ErrorIs(t, err, domain.ErrInput)
}

func TestChannelJoin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest") // global owner
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	b := e.register(t, "b@x.com", "abc789", "Bea", "Borbala")

	public := e.createChannel(t, a.Token, "public", true)
	private := e.createChannel(t, a.Token, "private", false)

	require.NoError(t, e.channels.Join(ctx, b.Token, public))

	// Joining again is an input error.
	err := e.channels.Join(ctx, b.Token, public)
	require.ErrorIs(t, err, domain.ErrInput)

	// Private channels reject ordinary users...
	err = e.channels.Join(ctx, b.Token, private)
	require.ErrorIs(t, err, domain.ErrAccess)

	// ...but the global owner may join any channel.
	require.NoError(t, e.channels.Join(ctx, h.Token, private))
}

func TestChannelLeave_OwnersStaySubsetOfMembers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	ch := e.createChannel(t, h.Token, "Chan1", true)
	require.NoError(t, e.channels.Join(ctx, a.Token, ch))

	// The owner leaves: gone from both sets.
	require.NoError(t, e.channels.Leave(ctx, h.Token, ch))

	details, err := e.channels.Details(ctx, a.Token, ch)
	require.NoError(t, err)
	require.Equal(t, []int64{a.UserID}, summaryIDs(details.Members))
	require.Empty(t, details.Owners)
	requireOwnersSubsetOfMembers(t, details)

	// A departed user cannot leave again.
	err = e.channels.Leave(ctx, h.Token, ch)
	require.ErrorIs(t, err, domain.ErrAccess)
}

func TestChannelAddOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "root@x.com", "abc123", "Global", "Owner")
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	ch := e.createChannel(t, h.Token, "Chan1", true)
	require.NoError(t, e.channels.Join(ctx, a.Token, ch))

	// A plain member cannot promote.
	err := e.channels.AddOwner(ctx, a.Token, ch, a.UserID)
	require.ErrorIs(t, err, domain.ErrAccess)

	require.NoError(t, e.channels.AddOwner(ctx, h.Token, ch, a.UserID))

	// Promoting an owner again is an input error.
	err = e.channels.AddOwner(ctx, h.Token, ch, a.UserID)
	require.ErrorIs(t, err, domain.ErrInput)

	details, err := e.channels.Details(ctx, h.Token, ch)
	require.NoError(t, err)
	require.Equal(t, []int64{h.UserID, a.UserID}, summaryIDs(details.Owners))
	requireOwnersSubsetOfMembers(t, details)
}

func TestChannelAddOwner_NonMemberTarget(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	ch := e.createChannel(t, h.Token, "Chan1", true)

	// Promoting a non-member would leave an owner outside the member
	// set.
	err := e.channels.AddOwner(ctx, h.Token, ch, a.UserID)
	require.ErrorIs(t, err, domain.ErrInput)
}

func TestChannelRemoveOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	ch := e.createChannel(t, h.Token, "Chan1", true)
	require.NoError(t, e.channels.Join(ctx, a.Token, ch))
	require.NoError(t, e.channels.AddOwner(ctx, h.Token, ch, a.UserID))

	// Removing yourself is an input error.
	err := e.channels.RemoveOwner(ctx, h.Token, ch, h.UserID)
	require.ErrorIs(t, err, domain.ErrInput)

	require.NoError(t, e.channels.RemoveOwner(ctx, h.Token, ch, a.UserID))

	// The target is no longer an owner.
	err = e.channels.RemoveOwner(ctx, h.Token, ch, a.UserID)
	require.ErrorIs(t, err, domain.ErrInput)

	// Demoted owners remain members.
	details, err := e.channels.Details(ctx, a.Token, ch)
	require.NoError(t, err)
	require.Equal(t, []int64{h.UserID, a.UserID}, summaryIDs(details.Members))
}

func TestChannelDetails_MemberOnly(t *testing.T) {
	e := newEnv(t)
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	ch := e.createChannel(t, h.Token, "Chan1", true)

	_, err := e.channels.Details(context.Background(), a.Token, ch)
	require.ErrorIs(t, err, domain.ErrAccess)
}

func TestChannelListings(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")

	c1 := e.createChannel(t, h.Token, "mine", true)
	c2 := e.createChannel(t, a.Token, "theirs", false)

	mine, err := e.channels.List(ctx, h.Token)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, c1, mine[0].ID)

	// ListAll includes private channels; listing is not joining.
	all, err := e.channels.ListAll(ctx, h.Token)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, c2, all[1].ID)
}

func summaryIDs(users []domain.UserSummary) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func requireOwnersSubsetOfMembers(t *testing.T, details *domain.ChannelDetails) {
	t.Helper()
	members := make(map[int64]bool)
	for _, m := range details.Members {
		members[m.ID] = true
	}
	for _, o := range details.Owners {
		require.True(t, members[o.ID], "owner %d is not a member", o.ID)
	}
}
