package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/authz"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/models"
	"github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/repositories"
)

// fakeUserRepo overrides only what SwitchRole and CreateUserWithPassword
// touch; the embedded interface panics on anything else.
type fakeUserRepo struct {
	repositories.UserRepository
	user     *models.User
	newRole  int
	verified bool
}

func (r *fakeUserRepo) Create(u *models.User) error { return nil }

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		cp := *r.user
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateRole(userID, roleID int) error {
	r.newRole = roleID
	return nil
}

func (r *fakeUserRepo) MarkPhoneVerified(userID int) error {
	r.verified = true
	return nil
}

func TestSwitchRoleTogglesDriverAndHost(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{ID: 1, RoleID: authz.RoleDriver}}
	svc := NewUserService(repo, nil, NewAuthService())

	u, err := svc.SwitchRole(1)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleHost, u.RoleID)
	assert.True(t, u.IsHost)
	assert.Equal(t, authz.RoleHost, repo.newRole)

	repo.user.RoleID = authz.RoleHost
	u, err = svc.SwitchRole(1)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleDriver, u.RoleID)
	assert.False(t, u.IsHost)
}

func TestSwitchRoleLeavesAdminAlone(t *testing.T) {
	repo := &fakeUserRepo{user: &models.User{ID: 1, RoleID: authz.RoleAdmin}}
	svc := NewUserService(repo, nil, NewAuthService())

	u, err := svc.SwitchRole(1)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleAdmin, u.RoleID)
	assert.Equal(t, 0, repo.newRole)
}

func TestCreateUserWithPasswordHashesAndDefaultsRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, nil, NewAuthService())

	u := &models.User{Name: "Asha", Email: "asha@example.com"}
	require.NoError(t, svc.CreateUserWithPassword(u, "s3cret-pass"))

	assert.Equal(t, authz.RoleDriver, u.RoleID)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.NoError(t, NewAuthService().CheckPassword(u.PasswordHash, "s3cret-pass"))
}

func TestCreateUserWithEmptyPassword(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, nil, NewAuthService())
	err := svc.CreateUserWithPassword(&models.User{}, "   ")
	assert.Error(t, err)
}

func TestVerifyUserMarksPhone(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, nil, NewAuthService())
	require.NoError(t, svc.VerifyUser(4))
	assert.True(t, repo.verified)
}
