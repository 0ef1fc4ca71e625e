package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/flockrhq/flockr/internal/domain"
)

func TestRegister_AssignsSequentialIDs(t *testing.T) {
	e := newEnv(t)

	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	require.Equal(t, int64(0), h.UserID)
	require.NotEmpty(t, h.Token)

	a := e.register(t, "a@x.com", "abc456", "Andras", "Arato")
	require.Equal(t, int64(1), a.UserID)
}

func TestRegister_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name                         string
		email, password, first, last string
	}{
		{"malformed email", "not-an-email", "abc123", "Hayden", "Everest"},
		{"short password", "h@x.com", "abc12", "Hayden", "Everest"},
		{"empty first name", "h@x.com", "abc123", "", "Everest"},
		{"empty last name", "h@x.com", "abc123", "Hayden", ""},
		{"first name too long", "h@x.com", "abc123", strings.Repeat("a", 51), "Everest"},
		{"last name too long", "h@x.com", "abc123", "Hayden", strings.Repeat("a", 51)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.auth.Register(ctx, tc.email, tc.password, tc.first, tc.last)
			require.ErrorIs(t, err, domain.ErrInput)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "h@x.com", "abc123", "Hayden", "Everest")

	_, err := e.auth.Register(context.Background(), "h@x.com", "abc123", "Other", "Person")
	require.ErrorIs(t, err, domain.ErrInput)
}

func TestRegister_HandleGeneration(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")
	profile, err := e.users.Profile(ctx, h.Token, h.UserID)
	require.NoError(t, err)
	require.Equal(t, "haydeneverest", profile.Handle)
}

func TestRegister_HandleCollisionSuffix(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first := e.register(t, "h1@x.com", "abc123", "Hayden", "Everest")
	second := e.register(t, "h2@x.com", "abc123", "Hayden", "Everest")
	third := e.register(t, "h3@x.com", "abc123", "Hayden", "Everest")

	p1, err := e.users.Profile(ctx, first.Token, first.UserID)
	require.NoError(t, err)
	p2, err := e.users.Profile(ctx, first.Token, second.UserID)
	require.NoError(t, err)
	p3, err := e.users.Profile(ctx, first.Token, third.UserID)
	require.NoError(t, err)

	require.Equal(t, "haydeneverest", p1.Handle)
	require.Equal(t, "haydeneverest0", p2.Handle)
	require.Equal(t, "haydeneverest1", p3.Handle)
}

func TestRegister_HandleTruncationAtCap(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// First+last concatenate to well over 20 characters.
	first := e.register(t, "c1@x.com", "abc123", "Abcdefghij", "Klmnopqrstuvwxyz")
	second := e.register(t, "c2@x.com", "abc123", "Abcdefghij", "Klmnopqrstuvwxyz")

	p1, err := e.users.Profile(ctx, first.Token, first.UserID)
	require.NoError(t, err)
	p2, err := e.users.Profile(ctx, first.Token, second.UserID)
	require.NoError(t, err)

	require.Equal(t, "abcdefghijklmnopqrst", p1.Handle)
	require.Len(t, p1.Handle, 20)
	// The suffix overwrites trailing characters instead of extending
	// past the cap.
	require.Equal(t, "abcdefghijklmnopqrs0", p2.Handle)
	require.Len(t, p2.Handle, 20)
}

func TestRegister_HandleMultibyteNames(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	first := e.register(t, "m1@x.com", "abc123", "五五五五五", "六六六六六")
	second := e.register(t, "m2@x.com", "abc123", "五五五五五", "六六六六六")

	p1, err := e.users.Profile(ctx, first.Token, first.UserID)
	require.NoError(t, err)
	p2, err := e.users.Profile(ctx, first.Token, second.UserID)
	require.NoError(t, err)

	require.Equal(t, "五五五五五六六六六六", p1.Handle)
	// Ten runes plus a one-digit suffix fits under the cap, so the
	// suffix appends rather than overwriting.
	require.Equal(t, "五五五五五六六六六六0", p2.Handle)
	require.True(t, utf8.ValidString(p2.Handle))

	// A name at the rune cap forces the overwrite path; the cut must
	// land on a rune boundary.
	long := e.register(t, "m3@x.com", "abc123", "七七七七七七七七七七", "八八八八八八八八八八")
	clash := e.register(t, "m4@x.com", "abc123", "七七七七七七七七七七", "八八八八八八八八八八")

	p3, err := e.users.Profile(ctx, first.Token, long.UserID)
	require.NoError(t, err)
	p4, err := e.users.Profile(ctx, first.Token, clash.UserID)
	require.NoError(t, err)

	require.Equal(t, 20, len([]rune(p3.Handle)))
	require.Equal(t, "七七七七七七七七七七八八八八八八八八八0", p4.Handle)
	require.Equal(t, 20, len([]rune(p4.Handle)))
	require.True(t, utf8.ValidString(p4.Handle))
}

func TestLogin_ReusesActiveToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")

	res, err := e.auth.Login(ctx, "h@x.com", "abc123")
	require.NoError(t, err)
	require.Equal(t, h.Token, res.Token, "login with an active session must reuse the token")

	ok, err := e.auth.Logout(ctx, h.Token)
	require.NoError(t, err)
	require.True(t, ok)

	fresh, err := e.auth.Login(ctx, "h@x.com", "abc123")
	require.NoError(t, err)
	require.NotEqual(t, h.Token, fresh.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.register(t, "h@x.com", "abc123", "Hayden", "Everest")

	_, err := e.auth.Login(ctx, "h@x.com", "wrongpass")
	require.ErrorIs(t, err, domain.ErrAccess)

	_, err = e.auth.Login(ctx, "nobody@x.com", "abc123")
	require.ErrorIs(t, err, domain.ErrAccess)
}

func TestLogout_Advisory(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	h := e.register(t, "h@x.com", "abc123", "Hayden", "Everest")

	ok, err := e.auth.Logout(ctx, h.Token)
	require.NoError(t, err)
	require.True(t, ok)

	// Second logout reports failure, not an error.
	ok, err = e.auth.Logout(ctx, h.Token)
	require.NoError(t, err)
	require.False(t, ok)

	_, active, err := e.auth.Resolve(ctx, h.Token)
	require.NoError(t, err)
	require.False(t, active)
}

func TestResolve_IsPureLookup(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	uid, ok, err := e.auth.Resolve(ctx, "no-such-token")
	require.NoError(t, err, "resolve never raises; callers decide the error kind")
	require.False(t, ok)
	require.Zero(t, uid)
}
