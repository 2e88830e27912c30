package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboardhq/jobboard-api/internal/domain/entity"
	"github.com/jobboardhq/jobboard-api/pkg/helpers"
)

func newTestService(t *testing.T) (*Service, *fakeAccountRepo) {
	t.Helper()
	repo := newFakeAccountRepo()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := NewService(repo, jwt, nil, nil)
	return svc, repo
}

func seekerInput() RegisterInput {
	return RegisterInput{
		Name:     "Ann",
		Email:    "a@x.com",
		Password: "secret123",
		Role:     entity.RoleJobSeeker,
	}
}

func TestRegister_JobSeeker(t *testing.T) {
	svc, _ := newTestService(t)

	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "Ann", a.Name)
	assert.Equal(t, "a@x.com", a.Email)
	assert.Equal(t, entity.RoleJobSeeker, a.Role)
	assert.False(t, a.IsVerified)
	assert.NotEmpty(t, a.VerifyToken)
	require.NotNil(t, a.VerifyTokenExpiry)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *a.VerifyTokenExpiry, time.Minute)
}

func TestRegister_PasswordIsHashed(t *testing.T) {
	svc, repo := newTestService(t)

	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	stored, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "secret123"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), seekerInput())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_Employer(t *testing.T) {
	svc, _ := newTestService(t)

	in := RegisterInput{
		Name:             "Acme HR",
		Email:            "hr@acme.com",
		Password:         "secret123",
		Role:             entity.RoleEmployer,
		OrganizationName: "Acme Corp",
		IndustryType:     "Software",
	}
	a, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, a.IsEmployer())
	assert.Equal(t, "Acme Corp", a.OrganizationName)
}

func TestRegister_EmployerMissingOrgDetails(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{
			name: "missing organization name",
			in: RegisterInput{
				Name: "Acme HR", Email: "hr@acme.com", Password: "secret123",
				Role: entity.RoleEmployer, IndustryType: "Software",
			},
		},
		{
			name: "missing industry type",
			in: RegisterInput{
				Name: "Acme HR", Email: "hr@acme.com", Password: "secret123",
				Role: entity.RoleEmployer, OrganizationName: "Acme Corp",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrEmployerDetails)
		})
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	svc, _ := newTestService(t)

	in := seekerInput()
	in.Role = entity.Role("admin")
	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	a, token, exp, err := svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", a.Email)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.AccountID)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, token, _, err := svc.Login(context.Background(), "nobody@x.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Empty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	_, token, _, err := svc.Login(context.Background(), "a@x.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLogout_InvalidToken(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Logout(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_ValidTokenWithoutRedis(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	_, token, _, err := svc.Login(context.Background(), "a@x.com", "secret123")
	require.NoError(t, err)

	// Without Redis logout degrades to verification only.
	assert.NoError(t, svc.Logout(context.Background(), token))
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile("missing-id")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateProfile_EmptyInputChangesNothing(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	before, err := repo.GetByID(a.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{})
	require.NoError(t, err)

	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.Password, updated.Password)
}

func TestUpdateProfile_PasswordOnly(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	before, err := repo.GetByID(a.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{Password: "newpass123"})
	require.NoError(t, err)

	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Email, updated.Email)
	assert.NotEqual(t, before.Password, updated.Password)
	assert.True(t, helpers.CompareHashAndPassword(updated.Password, "newpass123"))
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	other := seekerInput()
	other.Email = "b@x.com"
	b, err := svc.Register(context.Background(), other)
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), b.ID, UpdateProfileInput{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateProfile_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateProfile(context.Background(), "missing-id", UpdateProfileInput{Name: "X"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDeleteAccount(t *testing.T) {
	svc, _ := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), a.ID))

	_, err = svc.GetProfile(a.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	err = svc.DeleteAccount(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestConfirmVerification(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmVerification(context.Background(), a.VerifyToken))

	stored, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)
	assert.Empty(t, stored.VerifyToken)
}

func TestConfirmVerification_BadToken(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.ConfirmVerification(context.Background(), ""), ErrInvalidVerifyToken)
	assert.ErrorIs(t, svc.ConfirmVerification(context.Background(), "bogus"), ErrInvalidVerifyToken)
}

func TestConfirmVerification_ExpiredToken(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)

	stored, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	past := time.Now().Add(-time.Minute)
	stored.VerifyTokenExpiry = &past
	require.NoError(t, repo.Update(stored))

	assert.ErrorIs(t, svc.ConfirmVerification(context.Background(), a.VerifyToken), ErrInvalidVerifyToken)
}

func TestResendVerification(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	firstToken := a.VerifyToken

	already, err := svc.ResendVerification(context.Background(), a.ID)
	require.NoError(t, err)
	assert.False(t, already)

	stored, err := repo.GetByID(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, firstToken, stored.VerifyToken)

	require.NoError(t, svc.ConfirmVerification(context.Background(), stored.VerifyToken))
	already, err = svc.ResendVerification(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, already)
}

func TestSearchAccounts_WithoutES(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.SearchAccounts(context.Background(), "acme", 10)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestLogin_StoreFailure(t *testing.T) {
	svc, repo := newTestService(t)
	_, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	repo.getErr = errors.New("connection refused")

	// A store outage must not masquerade as a missing account or bad
	// credentials.
	_, _, _, err = svc.Login(context.Background(), "a@x.com", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfile_StoreFailure(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	repo.getErr = errors.New("connection refused")

	_, err = svc.GetProfile(a.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

func TestUpdateProfile_StoreFailure(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	repo.getErr = errors.New("connection refused")

	_, err = svc.UpdateProfile(context.Background(), a.ID, UpdateProfileInput{Name: "X"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

func TestConfirmVerification_StoreFailure(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	repo.getErr = errors.New("connection refused")

	err = svc.ConfirmVerification(context.Background(), a.VerifyToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidVerifyToken)
}

func TestResendVerification_StoreFailure(t *testing.T) {
	svc, repo := newTestService(t)
	a, err := svc.Register(context.Background(), seekerInput())
	require.NoError(t, err)
	repo.getErr = errors.New("connection refused")

	_, err = svc.ResendVerification(context.Background(), a.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

func TestRegister_RepoFailure(t *testing.T) {
	svc, repo := newTestService(t)
	repo.createErr = errors.New("boom")

	_, err := svc.Register(context.Background(), seekerInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
}
