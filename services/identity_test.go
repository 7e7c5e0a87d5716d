package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/failboard/failboard/utils"
)

func newTestIdentity(users *memUsers) (*IdentityService, *utils.TokenIssuer) {
	tokens := utils.NewTokenIssuer("test-secret-at-least-16-chars", time.Hour)
	return NewIdentityService(users, tokens), tokens
}

func TestRegister(t *testing.T) {
	users := &memUsers{db: newMemDB()}
	svc, tokens := newTestIdentity(users)

	session, err := svc.Register(context.Background(), "jdoe", "Johnny", "hunter2hunter2")
	require.NoError(t, err)

	assert.Equal(t, "jdoe", session.User.Username)
	assert.Equal(t, "Johnny", session.User.Nickname)
	assert.NotZero(t, session.User.ID)

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)

	stored, err := users.ByUsername(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "hunter2hunter2"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := &memUsers{db: newMemDB()}
	svc, _ := newTestIdentity(users)

	_, err := svc.Register(context.Background(), "jdoe", "first", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "jdoe", "second", "differentpass1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterRacingDuplicate(t *testing.T) {
	// the lookup misses but the unique index rejects the insert; the loser
	// must still see a conflict, never an internal error
	users := &memUsers{db: newMemDB(), createErr: ErrDuplicate}
	svc, _ := newTestIdentity(users)

	_, err := svc.Register(context.Background(), "jdoe", "Johnny", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestRegisterStoreFailure(t *testing.T) {
	users := &memUsers{db: newMemDB(), lookupErr: errors.New("connection refused")}
	svc, _ := newTestIdentity(users)

	_, err := svc.Register(context.Background(), "jdoe", "Johnny", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestLogin(t *testing.T) {
	users := &memUsers{db: newMemDB()}
	svc, tokens := newTestIdentity(users)

	registered, err := svc.Register(context.Background(), "jdoe", "Johnny", "hunter2hunter2")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "jdoe", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.User, session.User)

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	users := &memUsers{db: newMemDB()}
	svc, _ := newTestIdentity(users)

	_, err := svc.Register(context.Background(), "jdoe", "Johnny", "hunter2hunter2")
	require.NoError(t, err)

	_, wrongPass := svc.Login(context.Background(), "jdoe", "wrong-password")
	_, unknownUser := svc.Login(context.Background(), "nobody", "hunter2hunter2")

	assert.ErrorIs(t, wrongPass, ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, ErrUnauthorized)
	// an external caller must not be able to tell the two apart
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}

func TestUserByID(t *testing.T) {
	users := &memUsers{db: newMemDB()}
	svc, _ := newTestIdentity(users)

	session, err := svc.Register(context.Background(), "jdoe", "Johnny", "hunter2hunter2")
	require.NoError(t, err)

	user, err := svc.UserByID(context.Background(), session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, session.User, user)

	_, err = svc.UserByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
