package user

import (
	"Recipe-API/domain"
	"Recipe-API/entities"
	"Recipe-API/internal/utils/testdb"
	"Recipe-API/pkg/crud"
	"Recipe-API/pkg/jwt"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendMail(to string, subject string, _ string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject})
	return m.err
}

func strPtr(s string) *string { return &s }

func setupUserService(t *testing.T) (*gorm.DB, UserService, jwt.JWTService, *fakeMailer) {
	t.Helper()
	db := testdb.Open(t)
	jwtService := jwt.NewJWTService(jwt.Config{
		SecretKey:  "test-secret",
		Issuer:     "RECIPE-API",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	mailer := &fakeMailer{}
	svc := NewUserService(NewUserRepository(db), jwtService, mailer, "http://localhost", zap.NewNop())
	return db, svc, jwtService, mailer
}

func TestPasswordRoundTrip(t *testing.T) {
	for _, p := range []string{"12345678", "x", "pässwörd with spaces"} {
		u := &entities.User{}
		require.NoError(t, SetPassword(u, p))
		assert.NotEqual(t, p, u.PasswordHash)
		assert.True(t, CheckPassword(u, p))
		assert.False(t, CheckPassword(u, p+"x"))
	}
}

func TestSetPassword_SaltsEachHash(t *testing.T) {
	a, b := &entities.User{}, &entities.User{}
	require.NoError(t, SetPassword(a, "same"))
	require.NoError(t, SetPassword(b, "same"))
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestSetPassword_TooLong(t *testing.T) {
	err := SetPassword(&entities.User{}, strings.Repeat("a", 73))
	assert.ErrorIs(t, err, domain.ErrPasswordTooLong)
}

func TestCheckPassword_NoHash(t *testing.T) {
	assert.False(t, CheckPassword(&entities.User{}, ""))
	assert.False(t, CheckPassword(nil, "x"))
}

func TestRegister(t *testing.T) {
	db, svc, _, mailer := setupUserService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{
		Username: "johnsmith",
		Password: "12345678",
		Name:     "John",
		Phone:    strPtr("1234567890"),
		Email:    strPtr("test@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "johnsmith", res.Username)

	var stored entities.User
	require.NoError(t, db.Where("username = ?", "johnsmith").First(&stored).Error)
	assert.NotEqual(t, "12345678", stored.PasswordHash)
	assert.True(t, CheckPassword(&stored, "12345678"))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "test@example.com", mailer.sent[0].to)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db, svc, _, _ := setupUserService(t)
	ctx := context.Background()
	req := domain.RegisterRequest{Username: "johnsmith", Password: "12345678", Name: "John"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Where("username = ?", "johnsmith").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc, _, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Username: "a", Password: "p", Name: "A", Email: strPtr("same@example.com")})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{Username: "b", Password: "p", Name: "B", Email: strPtr("same@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// racingUserRepository hides existing rows from lookups until an insert is
// attempted, as when a concurrent registration commits between the checks
// and the insert.
type racingUserRepository struct {
	UserRepository
	hidden bool
}

func (r *racingUserRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	if r.hidden {
		return nil, crud.ErrNotFound
	}
	return r.UserRepository.GetUserByUsername(ctx, username)
}

func (r *racingUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	if r.hidden {
		return nil, crud.ErrNotFound
	}
	return r.UserRepository.GetUserByEmail(ctx, email)
}

func (r *racingUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	r.hidden = false
	return r.UserRepository.CreateUser(ctx, user)
}

func TestRegister_DuplicateAtInsert(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.RegisterRequest
		wantErr error
	}{
		{
			name:    "same email",
			req:     domain.RegisterRequest{Username: "b", Password: "p", Name: "B", Email: strPtr("same@example.com")},
			wantErr: domain.ErrEmailAlreadyExists,
		},
		{
			name:    "same username",
			req:     domain.RegisterRequest{Username: "a", Password: "p", Name: "A2", Email: strPtr("other@example.com")},
			wantErr: domain.ErrUserAlreadyExists,
		},
		{
			name:    "same username and email",
			req:     domain.RegisterRequest{Username: "a", Password: "p", Name: "A2", Email: strPtr("same@example.com")},
			wantErr: domain.ErrUserAlreadyExists,
		},
		{
			name:    "same username without email",
			req:     domain.RegisterRequest{Username: "a", Password: "p", Name: "A2"},
			wantErr: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testdb.Open(t)
			repo := &racingUserRepository{UserRepository: NewUserRepository(db)}
			svc := NewUserService(repo, jwt.NewJWTService(jwt.Config{SecretKey: "test-secret"}), &fakeMailer{}, "http://localhost", zap.NewNop())
			ctx := context.Background()

			_, err := svc.Register(ctx, domain.RegisterRequest{Username: "a", Password: "p", Name: "A", Email: strPtr("same@example.com")})
			require.NoError(t, err)

			repo.hidden = true
			_, err = svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			var count int64
			require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
			assert.EqualValues(t, 1, count)
		})
	}
}

func TestRegister_EmptyEmailsDoNotCollide(t *testing.T) {
	_, svc, _, mailer := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Username: "a", Password: "p", Name: "A", Email: strPtr("")})
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.RegisterRequest{Username: "b", Password: "p", Name: "B"})
	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestRegister_MailFailureDoesNotFail(t *testing.T) {
	_, svc, _, mailer := setupUserService(t)
	mailer.err = errors.New("smtp down")

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "a", Password: "p", Name: "A", Email: strPtr("a@example.com"),
	})
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	_, svc, jwtService, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Username: "johnsmith", Password: "12345678", Name: "John"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, domain.LoginRequest{Username: "johnsmith", Password: "12345678"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.NotEqual(t, res.AccessToken, res.RefreshToken)

	accessID, err := jwtService.Verify(res.AccessToken, jwt.TokenAccess)
	require.NoError(t, err)
	refreshID, err := jwtService.Verify(res.RefreshToken, jwt.TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, accessID, refreshID)

	newAccess, err := svc.RefreshToken(ctx, res.RefreshToken)
	require.NoError(t, err)
	id, err := jwtService.Verify(newAccess, jwt.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, accessID, id)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, svc, _, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Username: "johnsmith", Password: "12345678", Name: "John"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, domain.LoginRequest{Username: "johnsmith", Password: "wrongpw"})
	_, unknownUser := svc.Login(ctx, domain.LoginRequest{Username: "invaliduser", Password: "12345678"})

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}
