package staff

import (
	"context"
	"testing"

	"github.com/asavirtual/flightboard-backend/pkg/config"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/security"
	"github.com/asavirtual/flightboard-backend/pkg/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fast argon2 parameters so hashing does not dominate the test run
func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newStaffService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(setupStaffTestDB(t))
	svc, err := NewService(repo, testPasswordConfig())
	require.NoError(t, err)
	return svc, repo
}

func ownerActor() session.Session {
	return session.Session{Username: "rex", Role: enums.StaffRoleOwner}
}

func hrActor() session.Session {
	return session.Session{Username: "maria", Role: enums.StaffRoleHR}
}

func assertErrorCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected a typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestServiceCreateRequiresOwner(t *testing.T) {
	svc, _ := newStaffService(t)

	input := CreateStaffInput{Username: "new", Password: "secret", Role: enums.StaffRolePersonnel}
	_, err := svc.Create(context.Background(), hrActor(), input)
	assertErrorCode(t, err, pkgerrors.CodeForbidden)
}

func TestServiceCreateHashesPassword(t *testing.T) {
	svc, repo := newStaffService(t)

	created, err := svc.Create(context.Background(), ownerActor(), CreateStaffInput{
		Username: "maria",
		Password: "hunter2",
		Role:     enums.StaffRoleHR,
	})
	require.NoError(t, err)
	assert.Equal(t, "rex", created.CreatedBy)

	stored, err := repo.FindByUsername(context.Background(), "maria")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored.PasswordHash)

	ok, err := security.VerifyPassword("hunter2", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServiceCreateRejectsInvalidRole(t *testing.T) {
	svc, _ := newStaffService(t)

	_, err := svc.Create(context.Background(), ownerActor(), CreateStaffInput{
		Username: "maria",
		Password: "hunter2",
		Role:     enums.StaffRole("admin"),
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceCreateDuplicateUsernameConflicts(t *testing.T) {
	svc, _ := newStaffService(t)
	ctx := context.Background()

	input := CreateStaffInput{Username: "maria", Password: "hunter2", Role: enums.StaffRoleHR}
	_, err := svc.Create(ctx, ownerActor(), input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, ownerActor(), input)
	assertErrorCode(t, err, pkgerrors.CodeConflict)
}

func TestServiceListRequiresOwner(t *testing.T) {
	svc, _ := newStaffService(t)

	_, err := svc.List(context.Background(), hrActor())
	assertErrorCode(t, err, pkgerrors.CodeForbidden)

	users, err := svc.List(context.Background(), ownerActor())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestServiceDeleteForbidsSelfDeletion(t *testing.T) {
	svc, repo := newStaffService(t)
	ctx := context.Background()

	owner, err := svc.Create(ctx, ownerActor(), CreateStaffInput{
		Username: "rex", Password: "887719", Role: enums.StaffRoleOwner,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, ownerActor(), owner.ID)
	assertErrorCode(t, err, pkgerrors.CodeForbidden)

	// other accounts can still be removed
	other, err := svc.Create(ctx, ownerActor(), CreateStaffInput{
		Username: "maria", Password: "hunter2", Role: enums.StaffRoleHR,
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, ownerActor(), other.ID))

	_, err = repo.FindByUsername(ctx, "maria")
	require.Error(t, err)
}

func TestServiceDeleteUnknownIDSucceeds(t *testing.T) {
	svc, _ := newStaffService(t)

	require.NoError(t, svc.Delete(context.Background(), ownerActor(), uuid.New()))
}

func TestServiceUpdateRequiresOwner(t *testing.T) {
	svc, _ := newStaffService(t)

	name := "newname"
	_, err := svc.Update(context.Background(), hrActor(), uuid.New(), UpdateStaffInput{Username: &name})
	assertErrorCode(t, err, pkgerrors.CodeForbidden)
}

func TestServiceUpdatePatchesRoleAndPassword(t *testing.T) {
	svc, repo := newStaffService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ownerActor(), CreateStaffInput{
		Username: "jay", Password: "oldpass", Role: enums.StaffRolePersonnel,
	})
	require.NoError(t, err)

	role := enums.StaffRoleHR
	password := "newpass"
	updated, err := svc.Update(ctx, ownerActor(), created.ID, UpdateStaffInput{Role: &role, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, enums.StaffRoleHR, updated.Role)
	assert.Equal(t, "jay", updated.Username)

	stored, err := repo.FindByUsername(ctx, "jay")
	require.NoError(t, err)
	ok, err := security.VerifyPassword("newpass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServiceUpdateUnknownID(t *testing.T) {
	svc, _ := newStaffService(t)

	name := "ghost"
	_, err := svc.Update(context.Background(), ownerActor(), uuid.New(), UpdateStaffInput{Username: &name})
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceUpdateEmptyPatchRejected(t *testing.T) {
	svc, _ := newStaffService(t)

	_, err := svc.Update(context.Background(), ownerActor(), uuid.New(), UpdateStaffInput{})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceUpdateProfileVerifiesCurrentPassword(t *testing.T) {
	svc, _ := newStaffService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ownerActor(), CreateStaffInput{
		Username: "rex", Password: "887719", Role: enums.StaffRoleOwner,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, ownerActor(), UpdateProfileInput{
		CurrentPassword: "wrong",
		NewPassword:     "newpass",
		ConfirmPassword: "newpass",
	})
	assertErrorCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestServiceUpdateProfileRotatesCredentials(t *testing.T) {
	svc, repo := newStaffService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ownerActor(), CreateStaffInput{
		Username: "rex", Password: "887719", Role: enums.StaffRoleOwner,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, ownerActor(), UpdateProfileInput{
		CurrentPassword: "887719",
		NewUsername:     "rex2",
		NewPassword:     "newpass",
		ConfirmPassword: "newpass",
	})
	require.NoError(t, err)
	assert.Equal(t, "rex2", updated.Username)

	stored, err := repo.FindByUsername(ctx, "rex2")
	require.NoError(t, err)
	ok, err := security.VerifyPassword("newpass", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestServiceUpdateProfileMismatchedConfirmation(t *testing.T) {
	svc, _ := newStaffService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ownerActor(), CreateStaffInput{
		Username: "rex", Password: "887719", Role: enums.StaffRoleOwner,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, ownerActor(), UpdateProfileInput{
		CurrentPassword: "887719",
		NewPassword:     "newpass",
		ConfirmPassword: "different",
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceUpdateProfileEmptyPatch(t *testing.T) {
	svc, _ := newStaffService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ownerActor(), CreateStaffInput{
		Username: "rex", Password: "887719", Role: enums.StaffRoleOwner,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, ownerActor(), UpdateProfileInput{CurrentPassword: "887719"})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}
