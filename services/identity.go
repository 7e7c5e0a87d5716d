package services

import (
	"context"
	"errors"

	"github.com/failboard/failboard/models"
	"github.com/failboard/failboard/utils"
)

// Session bundles an issued token with the public projection of its user.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// IdentityService orchestrates registration and login over the credential
// store, the password hasher, and the token issuer.
type IdentityService struct {
	users  UserStore
	tokens *utils.TokenIssuer
}

// NewIdentityService creates an IdentityService.
func NewIdentityService(users UserStore, tokens *utils.TokenIssuer) *IdentityService {
	return &IdentityService{users: users, tokens: tokens}
}

// Register creates a user with the given credentials and signs them in.
// A taken username yields ErrConflict; the plaintext password is never
// persisted.
func (s *IdentityService) Register(ctx context.Context, username, nickname, password string) (*Session, error) {
	if _, err := s.users.ByUsername(ctx, username); err == nil {
		return nil, conflict("username %q already exists", username)
	} else if !errors.Is(err, ErrNoRecord) {
		return nil, internal("look up username", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	user := &models.User{
		Username:     username,
		Nickname:     nickname,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two registrations racing on the same username: the unique index
		// decides, and the loser still gets a conflict, not an internal.
		if errors.Is(err, ErrDuplicate) {
			return nil, conflict("username %q already exists", username)
		}
		return nil, internal("create user", err)
	}

	return s.session(user)
}

// Login verifies the credentials and signs the user in. Unknown username
// and wrong password are deliberately indistinguishable.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, unauthorized("invalid username or password")
		}
		return nil, internal("look up username", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, unauthorized("invalid username or password")
	}

	return s.session(user)
}

// UserByID returns the public projection for an authenticated user id.
func (s *IdentityService) UserByID(ctx context.Context, id uint) (models.PublicUser, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return models.PublicUser{}, notFound("user %d not found", id)
		}
		return models.PublicUser{}, internal("look up user", err)
	}
	return user.Public(), nil
}

func (s *IdentityService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, internal("issue token", err)
	}
	return &Session{Token: token, User: user.Public()}, nil
}
