package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/chatauth/internal/common"
	"github.com/avlasov/chatauth/internal/server/config"
)

type fakeRepository struct {
	byEmail map[string]*User
	byID    map[string]*User

	failCreate bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (r *fakeRepository) Create(_ context.Context, user *User) (*User, error) {
	if r.failCreate {
		return nil, common.ErrorInternal
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorEmailExists
	}
	cp := *user
	r.byEmail[cp.Email] = &cp
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepository) UpdateProfilePic(_ context.Context, id string, url string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.ProfilePic = url
	cp := *u
	return &cp, nil
}

type fakeUploader struct {
	calls int
	url   string
}

func (u *fakeUploader) Upload(_ context.Context, _ string, _ string) (string, error) {
	u.calls++
	return u.url, nil
}

func newTestService() (*Service, *fakeRepository, *fakeUploader) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	repo := newFakeRepository()
	up := &fakeUploader{url: "http://127.0.0.1:9000/avatars/test"}
	return NewService(repo, up, cfg), repo, up
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestService()
	ctx := context.Background()

	user, token, err := s.Signup(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ada", user.FullName)
	assert.Equal(t, "ada@x.com", user.Email)
	assert.Empty(t, user.ProfilePic)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	gotID, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
}

func TestSignup_FieldValidation(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name                      string
		fullName, email, password string
		wantErr                   error
	}{
		{"missing name", "", "a@x.com", "secret1", common.ErrorFieldsRequired},
		{"missing email", "Ada", "", "secret1", common.ErrorFieldsRequired},
		{"missing password", "Ada", "a@x.com", "", common.ErrorFieldsRequired},
		{"password of five", "Ada", "a@x.com", "five!", common.ErrorPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Signup(ctx, tt.fullName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Exactly six characters passes validation.
	_, _, err := s.Signup(ctx, "Ada", "six@x.com", "sixsix")
	assert.NoError(t, err)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := s.Signup(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	_, _, err = s.Signup(ctx, "Imp", "ada@x.com", "another1")
	assert.ErrorIs(t, err, common.ErrorEmailExists)
}

func TestSignup_StoreFailure(t *testing.T) {
	t.Parallel()
	s, repo, _ := newTestService()
	repo.failCreate = true

	_, _, err := s.Signup(context.Background(), "Ada", "ada@x.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorInvalidUserData)
}

func TestLogin_SuccessAfterSignup(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestService()
	ctx := context.Background()

	created, _, err := s.Signup(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	user, token, err := s.Login(ctx, "ada@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	gotID, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, gotID)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := s.Signup(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	_, _, wrongPassword := s.Login(ctx, "ada@x.com", "wrongpw")
	_, _, unknownEmail := s.Login(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPassword, common.ErrorInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, common.ErrorInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_FieldValidation(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := s.Login(ctx, "", "secret1")
	assert.ErrorIs(t, err, common.ErrorFieldsRequired)

	_, _, err = s.Login(ctx, "ada@x.com", "")
	assert.ErrorIs(t, err, common.ErrorFieldsRequired)
}

func TestUpdateProfilePic_Success(t *testing.T) {
	t.Parallel()
	s, _, up := newTestService()
	ctx := context.Background()

	created, _, err := s.Signup(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	updated, err := s.UpdateProfilePic(ctx, created.ID, "data:image/png;base64,AAAA")
	require.NoError(t, err)

	assert.Equal(t, 1, up.calls)
	assert.Equal(t, up.url, updated.ProfilePic)
}

func TestUpdateProfilePic_MissingPicture(t *testing.T) {
	t.Parallel()
	s, repo, up := newTestService()
	ctx := context.Background()

	created, _, err := s.Signup(ctx, "Ada", "ada@x.com", "secret1")
	require.NoError(t, err)

	_, err = s.UpdateProfilePic(ctx, created.ID, "")
	assert.ErrorIs(t, err, common.ErrorProfilePicRequired)

	// No upload attempted, no store write performed.
	assert.Zero(t, up.calls)
	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ProfilePic)
}
