package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-lost-found/internal/platform/apperr"
	"pet-lost-found/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID      map[string]User
	createErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(_ context.Context, u User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) Update(_ context.Context, u User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(_ context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

type testIssuer struct{}

func (testIssuer) Issue(_ context.Context, c auth.Claims) (string, error) {
	return "token-for-" + c.UserID, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, testIssuer{})
	svc.hashCost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestRegister_HashesPasswordAndTrims(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:     "  Maria  ",
		Email:    " maria@email.com ",
		Password: "123456",
		Phone:    "71999990000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria", u.Name)
	assert.Equal(t, "maria@email.com", u.Email)
	assert.Empty(t, u.PasswordHash)

	require.Contains(t, repo.byID, u.ID)
	stored := repo.byID[u.ID].PasswordHash
	assert.NotEqual(t, "123456", stored)
	assert.True(t, svc.VerifyPassword("123456", stored))
	assert.False(t, svc.VerifyPassword("654321", stored))
}

func TestLookups_NeverExposeHash(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Maria", Email: "maria@email.com", Password: "123456"})
	require.NoError(t, err)

	byID, err := svc.FindByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.PasswordHash)

	byEmail, err := svc.FindByEmail(ctx, "maria@email.com")
	require.NoError(t, err)
	assert.Empty(t, byEmail.PasswordHash)

	logged, _, err := svc.Login(ctx, "maria@email.com", "123456")
	require.NoError(t, err)
	assert.Empty(t, logged.PasswordHash)

	updated, err := svc.UpdateProfile(ctx, registered.ID, UpdateProfileInput{Name: strPtr("Maria Souza")})
	require.NoError(t, err)
	assert.Empty(t, updated.PasswordHash)
}

func TestUpdateProfile_NotifiesListeners(t *testing.T) {
	var notified []string
	repo := newTestRepo()
	svc := NewService(repo, testIssuer{}, WithProfileListener(func(_ context.Context, userID string) {
		notified = append(notified, userID)
	}))
	svc.hashCost = bcrypt.MinCost
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Maria", Email: "maria@email.com", Password: "123456"})
	require.NoError(t, err)
	assert.Empty(t, notified)

	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Name: strPtr("   ")})
	require.Error(t, err)
	assert.Empty(t, notified)

	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Phone: strPtr("222")})
	require.NoError(t, err)
	assert.Equal(t, []string{u.ID}, notified)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	for _, in := range []RegisterInput{
		{Email: "a@b.c", Password: "x"},
		{Name: "A", Password: "x"},
		{Name: "A", Email: "a@b.c"},
		{Name: "   ", Email: "a@b.c", Password: "x"},
	} {
		_, err := svc.Register(context.Background(), in)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "%+v", in)
	}
}

func TestRegister_PhoneIsOptional(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "x"})
	require.NoError(t, err)
	assert.Empty(t, u.Phone)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "maria@email.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "B", Email: "maria@email.com", Password: "y"})
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicateEmail))
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "maria@email.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Name: "B", Email: "Maria@email.com", Password: "y"})
	assert.NoError(t, err)
}

func TestRegister_StoreFailureIsInternal(t *testing.T) {
	svc, repo := newTestService()
	repo.createErr = errors.New("connection refused")

	_, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	registered, err := svc.Register(context.Background(), RegisterInput{Name: "Maria", Email: "maria@email.com", Password: "123456"})
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "maria@email.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, "token-for-"+registered.ID, token)

	_, _, err = svc.Login(context.Background(), "maria@email.com", "wrong")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, _, err = svc.Login(context.Background(), "nobody@email.com", "123456")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, _, err = svc.Login(context.Background(), "", "123456")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestUpdateProfile_Partial(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{Name: "Maria", Email: "maria@email.com", Password: "123456", Phone: "1"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Phone: strPtr("2")})
	require.NoError(t, err)

	assert.Equal(t, "Maria", updated.Name)
	assert.Equal(t, "maria@email.com", updated.Email)
	assert.Equal(t, "2", updated.Phone)
	assert.True(t, svc.VerifyPassword("123456", repo.byID[u.ID].PasswordHash))
}

func TestUpdateProfile_PasswordIsRehashed(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{Name: "Maria", Email: "maria@email.com", Password: "123456"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Password: strPtr("new-pass")})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "maria@email.com", "new-pass")
	assert.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "maria@email.com", "123456")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestUpdateProfile_EmailUniqueness(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@email.com", Password: "x"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{Name: "B", Email: "b@email.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{Email: strPtr("b@email.com")})
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicateEmail))

	// re-enviar el propio email no es duplicado
	_, err = svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{Email: strPtr("a@email.com")})
	assert.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, a.ID, UpdateProfileInput{Email: strPtr("c@email.com")})
	require.NoError(t, err)
	assert.Equal(t, "c@email.com", updated.Email)
}

func TestUpdateProfile_RejectsExplicitEmptyValues(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@email.com", Password: "x"})
	require.NoError(t, err)

	for _, in := range []UpdateProfileInput{
		{Name: strPtr(" ")},
		{Email: strPtr("")},
		{Password: strPtr("")},
	} {
		_, err := svc.UpdateProfile(context.Background(), u.ID, in)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	}
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateProfile(context.Background(), "missing", UpdateProfileInput{Name: strPtr("x")})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestExists(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@email.com", Password: "x"})
	require.NoError(t, err)

	ok, err := svc.Exists(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
