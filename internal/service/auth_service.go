package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/flockrhq/flockr/internal/domain"
	"github.com/flockrhq/flockr/internal/repository"
	"github.com/flockrhq/flockr/pkg/validator"
)

type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	jwtSecret []byte
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(jwtSecret),
	}
}

// AuthResult pairs a user id with its session token.
type AuthResult struct {
	UserID int64  `json:"u_id"`
	Token  string `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, email, password, first, last string) (*AuthResult, error) {
	if !validator.ValidEmail(email) {
		return nil, domain.Inputf("email %q is not a valid address", email)
	}
	if !validator.ValidPassword(password) {
		return nil, domain.Inputf("password must be at least %d characters", validator.MinPasswordLen)
	}
	if !validator.ValidName(first) {
		return nil, domain.Inputf("first name must be 1-%d characters", validator.MaxNameLen)
	}
	if !validator.ValidName(last) {
		return nil, domain.Inputf("last name must be 1-%d characters", validator.MaxNameLen)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Inputf("email %q already registered", email)
	}

	handle, err := s.generateHandle(ctx, first, last)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		Handle:       handle,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	if err := s.sessions.Create(ctx, token, user.ID); err != nil {
		return nil, err
	}

	return &AuthResult{UserID: user.ID, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !verifyPassword(password, user.PasswordHash) {
		return nil, domain.Accessf("invalid email or password")
	}

	// One live token per user: a second login hands back the existing
	// session instead of minting a duplicate.
	if token, ok, err := s.sessions.ByUser(ctx, user.ID); err != nil {
		return nil, err
	} else if ok {
		return &AuthResult{UserID: user.ID, Token: token}, nil
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	if err := s.sessions.Create(ctx, token, user.ID); err != nil {
		return nil, err
	}
	return &AuthResult{UserID: user.ID, Token: token}, nil
}

// Logout invalidates the token. It reports false rather than erroring
// when the token was already inactive; logout never fails the caller.
func (s *AuthService) Logout(ctx context.Context, token string) (bool, error) {
	return s.sessions.Delete(ctx, token)
}

// Resolve maps a token to a user id. Pure lookup; callers decide
// whether a miss is an access error.
func (s *AuthService) Resolve(ctx context.Context, token string) (int64, bool, error) {
	return s.sessions.Resolve(ctx, token)
}

// generateHandle derives a unique display handle from the lowercased
// concatenation of first and last name, capped at 20 characters. On
// collision a numeric suffix is written over the trailing characters
// so the cap is never exceeded.
func (s *AuthService) generateHandle(ctx context.Context, first, last string) (string, error) {
	runes := []rune(strings.ToLower(first + last))
	if len(runes) > validator.MaxHandleLen {
		runes = runes[:validator.MaxHandleLen]
	}

	candidate := string(runes)
	for n := 0; ; n++ {
		existing, err := s.users.GetByHandle(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		// Suffixes are ASCII digits, so rune and byte length agree.
		suffix := strconv.Itoa(n)
		if len(runes)+len(suffix) <= validator.MaxHandleLen {
			candidate = string(runes) + suffix
		} else {
			candidate = string(runes[:validator.MaxHandleLen-len(suffix)]) + suffix
		}
	}
}

// mintToken issues an HS256 JWT. The token string is stored in the
// session table and treated as opaque everywhere else; validity is
// table membership, not signature expiry, so logout revokes instantly.
func (s *AuthService) mintToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"jti": uuid.NewString(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
