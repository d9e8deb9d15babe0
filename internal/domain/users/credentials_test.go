package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vet-clinic-api/internal/adapters/auth/password"
	"vet-clinic-api/internal/adapters/auth/tokens"
	"vet-clinic-api/internal/apperror"
	"vet-clinic-api/internal/ports/auth"
)

type fixture struct {
	repo   *testRepo
	tokens *tokens.Service
	creds  *Credentials
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := newTestRepo()
	tok, err := tokens.NewService(tokens.Config{Secret: "users-test-secret", TTL: time.Hour})
	require.NoError(t, err)
	return fixture{
		repo:   repo,
		tokens: tok,
		creds:  NewCredentials(repo, password.New(bcrypt.MinCost), tok),
	}
}

func (f fixture) register(t *testing.T, username, email, pass string) User {
	t.Helper()
	u, err := f.creds.Register(context.Background(), RegisterInput{Username: username, Email: email, Password: pass})
	require.NoError(t, err)
	return u
}

func TestRegister_HashesAndForcesRole(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "Ana@Example.com", "supersecreta")

	assert.Equal(t, auth.RoleRecepcionista, u.Role)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.NotEqual(t, "supersecreta", u.PasswordHash)

	cost, err := bcrypt.Cost([]byte(u.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestRegister_DuplicateEmailOrUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "ana", "ana@example.com", "supersecreta")

	_, err := f.creds.Register(ctx, RegisterInput{Username: "otra", Email: "ANA@example.com", Password: "supersecreta"})
	require.True(t, errors.Is(err, apperror.ErrDuplicate), "got %v", err)
	assert.Equal(t, "El usuario o email ya existe", apperror.Message(err))

	_, err = f.creds.Register(ctx, RegisterInput{Username: "ana", Email: "otra@example.com", Password: "supersecreta"})
	assert.True(t, errors.Is(err, apperror.ErrDuplicate))

	assert.Len(t, f.repo.byID, 1)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := f.creds.Register(context.Background(), RegisterInput{Username: "an", Email: "nope", Password: "corta"})
	require.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Empty(t, f.repo.byID)
}

func TestRegister_MultibytePasswordCountsBytes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 40 runas, 80 bytes.
	_, err := f.creds.Register(ctx, RegisterInput{Username: "maria", Email: "maria@example.com", Password: strings.Repeat("ñ", 40)})
	require.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)
	assert.Contains(t, apperror.Message(err), "72 bytes")
	assert.Empty(t, f.repo.byID)

	// 36 runas, 72 bytes: justo en el límite.
	u := f.register(t, "maria", "maria@example.com", strings.Repeat("ñ", 36))
	assert.NotEmpty(t, u.PasswordHash)
}

func TestHashPassword_TooLongIsValidation(t *testing.T) {
	_, err := hashPassword(password.New(bcrypt.MinCost), "password", strings.Repeat("a", 73))
	require.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "password", appErr.Field)
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "supersecreta")

	sess, err := f.creds.Login(context.Background(), LoginInput{Email: " ANA@example.com", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)

	claims, err := f.tokens.Verify(context.Background(), sess.Token.Value)
	require.NoError(t, err)
	assert.Equal(t, u.Claims(), claims)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana", "ana@example.com", "supersecreta")
	ctx := context.Background()

	_, unknown := f.creds.Login(ctx, LoginInput{Email: "nadie@example.com", Password: "supersecreta"})
	_, wrong := f.creds.Login(ctx, LoginInput{Email: "ana@example.com", Password: "equivocada"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, apperror.Status(unknown), apperror.Status(wrong))
	assert.Equal(t, apperror.Message(unknown), apperror.Message(wrong))
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.True(t, errors.Is(unknown, apperror.ErrInvalidCredentials))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "supersecreta")
	ctx := context.Background()

	err := f.creds.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "equivocada", NewPassword: "nuevaclave1"})
	require.True(t, errors.Is(err, apperror.ErrInvalidCredentials))
	stored, _ := f.repo.GetByID(ctx, u.ID)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)

	require.NoError(t, f.creds.ChangePassword(ctx, u.ID, ChangePasswordInput{CurrentPassword: "supersecreta", NewPassword: "nuevaclave1"}))

	_, err = f.creds.Login(ctx, LoginInput{Email: "ana@example.com", Password: "supersecreta"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidCredentials))
	_, err = f.creds.Login(ctx, LoginInput{Email: "ana@example.com", Password: "nuevaclave1"})
	assert.NoError(t, err)
}

func TestChangePassword_UserGone(t *testing.T) {
	f := newFixture(t)
	err := f.creds.ChangePassword(context.Background(), "ghost", ChangePasswordInput{CurrentPassword: "x", NewPassword: "nuevaclave1"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, "Usuario no encontrado", apperror.Message(err))
}

func TestChangePassword_NewTooShort(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "supersecreta")
	err := f.creds.ChangePassword(context.Background(), u.ID, ChangePasswordInput{CurrentPassword: "supersecreta", NewPassword: "corta"})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestChangePassword_MultibyteNewTooLong(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "supersecreta")

	err := f.creds.ChangePassword(context.Background(), u.ID, ChangePasswordInput{
		CurrentPassword: "supersecreta",
		NewPassword:     strings.Repeat("ñ", 40),
	})
	require.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)

	stored, _ := f.repo.GetByID(context.Background(), u.ID)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)
}

func TestToken_ExpiresIntoInvalidToken(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ana", "ana@example.com", "supersecreta")

	base := time.Now()
	issuer := f.tokens.WithClock(func() time.Time { return base })
	tok, err := issuer.Issue(context.Background(), u.Claims())
	require.NoError(t, err)

	_, err = f.tokens.WithClock(func() time.Time { return base.Add(59 * time.Minute) }).Verify(context.Background(), tok.Value)
	assert.NoError(t, err)

	_, err = f.tokens.WithClock(func() time.Time { return base.Add(61 * time.Minute) }).Verify(context.Background(), tok.Value)
	assert.Error(t, err)
}
