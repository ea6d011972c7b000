package user

import (
	"context"
	"testing"
	"time"

	"accessmap/internal/config"
	domainLocation "accessmap/internal/domain/location"
	domainUser "accessmap/internal/domain/user"
	appErrors "accessmap/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users     map[uuid.UUID]*domainUser.User
	favorites map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[uuid.UUID]*domainUser.User),
		favorites: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domainUser.ErrUserAlreadyExists
		}
		if existing.Username == u.Username {
			return domainUser.ErrUsernameTaken
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByAccessToken(_ context.Context, token string) (*domainUser.User, error) {
	for _, u := range f.users {
		if u.AccessToken == token {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, token string) (*domainUser.User, error) {
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return domainUser.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = passwordHash
	return nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	u, ok := f.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (f *fakeUserRepo) ClearResetToken(_ context.Context, userID uuid.UUID) error {
	u, ok := f.users[userID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

func (f *fakeUserRepo) AddFavorite(_ context.Context, userID, locationID uuid.UUID) error {
	if f.favorites[userID] == nil {
		f.favorites[userID] = make(map[uuid.UUID]bool)
	}
	f.favorites[userID][locationID] = true
	return nil
}

func (f *fakeUserRepo) RemoveFavorite(_ context.Context, userID, locationID uuid.UUID) error {
	delete(f.favorites[userID], locationID)
	return nil
}

func (f *fakeUserRepo) HasFavorite(_ context.Context, userID, locationID uuid.UUID) (bool, error) {
	return f.favorites[userID][locationID], nil
}

func (f *fakeUserRepo) FavoriteLocationIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range f.favorites[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeLocationRepo struct {
	locations map[uuid.UUID]*domainLocation.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[uuid.UUID]*domainLocation.Location)}
}

func (f *fakeLocationRepo) Create(_ context.Context, loc *domainLocation.Location) error {
	loc.ID = uuid.New()
	f.locations[loc.ID] = loc
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, locationID uuid.UUID) (*domainLocation.Location, error) {
	loc, ok := f.locations[locationID]
	if !ok {
		return nil, domainLocation.ErrLocationNotFound
	}
	return loc, nil
}

func (f *fakeLocationRepo) GetAll(_ context.Context) ([]*domainLocation.Location, error) {
	var out []*domainLocation.Location
	for _, loc := range f.locations {
		out = append(out, loc)
	}
	return out, nil
}

func (f *fakeLocationRepo) GetByIDs(_ context.Context, locationIDs []uuid.UUID) ([]*domainLocation.Location, error) {
	var out []*domainLocation.Location
	for _, id := range locationIDs {
		if loc, ok := f.locations[id]; ok {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) GetBySubmitter(_ context.Context, username string) ([]*domainLocation.Location, error) {
	var out []*domainLocation.Location
	for _, loc := range f.locations {
		if loc.SubmittedBy == username {
			out = append(out, loc)
		}
	}
	return out, nil
}

type fakeMailer struct {
	resetMails   []string
	contactMails []string
}

func (f *fakeMailer) SendContactMessage(_ context.Context, name, fromEmail, message string) error {
	f.contactMails = append(f.contactMails, fromEmail)
	return nil
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, toEmail, resetLink string) error {
	f.resetMails = append(f.resetMails, resetLink)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeLocationRepo, *fakeMailer) {
	t.Helper()

	userRepo := newFakeUserRepo()
	locationRepo := newFakeLocationRepo()
	mail := &fakeMailer{}
	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:3000"

	return NewService(userRepo, locationRepo, mail, cfg), userRepo, locationRepo, mail
}

func signup(t *testing.T, svc *Service) *AuthResponse {
	t.Helper()

	resp, err := svc.Signup(context.Background(), &SignupRequest{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password1",
	})
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	resp := signup(t, svc)
	assert.Equal(t, "ada", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	signup(t, svc)

	_, err := svc.Signup(context.Background(), &SignupRequest{
		Username:        "other",
		Email:           "ada@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password1",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
}

func TestSignupPasswordMismatch(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), &SignupRequest{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password2",
	})
	assert.ErrorIs(t, err, appErrors.ErrPasswordMismatch)
}

func TestSignupWeakPassword(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Signup(context.Background(), &SignupRequest{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "short",
		ConfirmPassword: "short",
	})
	assert.ErrorIs(t, err, appErrors.ErrWeakPassword)
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	created := signup(t, svc)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "Password1",
	})
	require.NoError(t, err)
	assert.Equal(t, created.AccessToken, resp.AccessToken)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "Password1",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestForgotPasswordUnknownEmailStaysSilent(t *testing.T) {
	svc, _, _, mail := newTestService(t)

	err := svc.ForgotPassword(context.Background(), &ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.NoError(t, err)
	assert.Empty(t, mail.resetMails)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, userRepo, _, mail := newTestService(t)
	signup(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ada@example.com"}))
	require.Len(t, mail.resetMails, 1)

	u, err := userRepo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, u.ResetToken)
	token := *u.ResetToken

	err = svc.ResetPassword(ctx, &ResetPasswordRequest{
		Token:           "bogus",
		NewPassword:     "Password2",
		ConfirmPassword: "Password2",
	})
	assert.ErrorIs(t, err, domainUser.ErrResetTokenInvalid)

	err = svc.ResetPassword(ctx, &ResetPasswordRequest{
		Token:           token,
		NewPassword:     "Password2",
		ConfirmPassword: "Other2",
	})
	assert.ErrorIs(t, err, appErrors.ErrPasswordMismatch)

	err = svc.ResetPassword(ctx, &ResetPasswordRequest{
		Token:           token,
		NewPassword:     "weak",
		ConfirmPassword: "weak",
	})
	assert.ErrorIs(t, err, appErrors.ErrWeakPassword)

	err = svc.ResetPassword(ctx, &ResetPasswordRequest{
		Token:           token,
		NewPassword:     "Password2",
		ConfirmPassword: "Password2",
	})
	require.NoError(t, err)
	assert.Nil(t, u.ResetToken)

	_, err = svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "Password2"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, &LoginRequest{Email: "ada@example.com", Password: "Password1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, userRepo, _, _ := newTestService(t)
	created := signup(t, svc)
	ctx := context.Background()

	token := "expired-token"
	require.NoError(t, userRepo.SetResetToken(ctx, created.User.ID, token, time.Now().Add(-time.Minute)))

	err := svc.ResetPassword(ctx, &ResetPasswordRequest{
		Token:           token,
		NewPassword:     "Password2",
		ConfirmPassword: "Password2",
	})
	assert.ErrorIs(t, err, domainUser.ErrResetTokenInvalid)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	created := signup(t, svc)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, created.User.ID, &UpdateProfileRequest{})
	assert.Error(t, err)

	first := "Ada"
	about := "Accessibility advocate"
	resp, err := svc.UpdateProfile(ctx, created.User.ID, &UpdateProfileRequest{
		FirstName: &first,
		About:     &about,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.FirstName)
	assert.Equal(t, "Accessibility advocate", resp.About)
	assert.Equal(t, "ada", resp.Username)
}

func TestToggleFavorite(t *testing.T) {
	svc, _, locationRepo, _ := newTestService(t)
	created := signup(t, svc)
	ctx := context.Background()

	loc := &domainLocation.Location{Name: "City Hall", Category: domainLocation.CategoryPublicBuilding}
	require.NoError(t, locationRepo.Create(ctx, loc))

	resp, err := svc.ToggleFavorite(ctx, created.User.ID, loc.ID)
	require.NoError(t, err)
	assert.True(t, resp.Favorited)

	favorites, err := svc.FavoriteLocations(ctx, created.User.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "City Hall", favorites[0].Name)

	resp, err = svc.ToggleFavorite(ctx, created.User.ID, loc.ID)
	require.NoError(t, err)
	assert.False(t, resp.Favorited)

	favorites, err = svc.FavoriteLocations(ctx, created.User.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestToggleFavoriteUnknownLocation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	created := signup(t, svc)

	_, err := svc.ToggleFavorite(context.Background(), created.User.ID, uuid.New())
	assert.ErrorIs(t, err, domainLocation.ErrLocationNotFound)
}
