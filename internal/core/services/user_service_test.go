package services

import (
	"context"
	"testing"

	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/adapters/persistence/repositories"
	"pnp-asset-tracker/internal/core/domain"
	"pnp-asset-tracker/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(repositories.NewUserRepository(db), newTestSignatureStore(t))
}

func seedUserWithPassword(t *testing.T, db *gorm.DB, username, plaintext string) *models.User {
	t.Helper()
	hashed, err := password.Hash(plaintext)
	require.NoError(t, err)
	user := &models.User{
		Username:      username,
		Password:      hashed,
		SignaturePath: "signatures/" + username + ".png",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func strPtr(s string) *string { return &s }

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUserWithPassword(t, db, "officer", "strongpassword")

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "officer", profile.Username)
	assert.Equal(t, "signatures/officer.png", profile.SignaturePath)

	_, err = svc.GetProfile(context.Background(), user.ID+99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetSignaturePath(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUserWithPassword(t, db, "officer", "strongpassword")
	unsigned := seedUser(t, db, "unsigned", "")

	path, err := svc.GetSignaturePath(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "signatures/officer.png", path)

	_, err = svc.GetSignaturePath(context.Background(), unsigned.ID)
	assert.ErrorIs(t, err, domain.ErrSignatureMissing)
}

func TestUpdateProfile_RequiresCurrentPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUserWithPassword(t, db, "officer", "strongpassword")

	_, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		Username: strPtr("renamed"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "wrongpassword",
		Username:        strPtr("renamed"),
	})
	assert.ErrorIs(t, err, ErrCurrentPasswordWrong)

	// Neither attempt changed anything
	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "officer", profile.Username)
}

func TestUpdateProfile_Username(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUserWithPassword(t, db, "officer", "strongpassword")
	seedUserWithPassword(t, db, "taken", "otherpassword")

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		Username:        strPtr("senior_officer"),
	})
	require.NoError(t, err)
	assert.Equal(t, "senior_officer", updated.Username)

	_, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		Username:        strPtr("taken"),
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		Username:        strPtr(""),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateProfile_Password(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUserWithPassword(t, db, "officer", "strongpassword")

	_, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		NewPassword:     strPtr("short"),
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		NewPassword:     strPtr("evenstrongerpassword"),
	})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, password.Verify("evenstrongerpassword", stored.Password))
	assert.False(t, password.Verify("strongpassword", stored.Password))
}

func TestUpdateProfile_Signature(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(t, db)
	user := seedUserWithPassword(t, db, "officer", "strongpassword")

	_, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		SignaturePNG:    blankSignaturePNG(t),
	})
	assert.ErrorIs(t, err, ErrSignatureInvalid)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		SignaturePNG:    drawnSignaturePNG(t),
	})
	require.NoError(t, err)
	assert.NotEqual(t, "signatures/officer.png", updated.SignaturePath)
}

func TestUpdateProfile_KeepsAssetSignatureHistory(t *testing.T) {
	db := setupTestDB(t)
	userSvc := newTestUserService(t, db)
	assetSvc := newTestAssetService(t, db)
	user := seedUserWithPassword(t, db, "officer", "strongpassword")

	trackingID, err := assetSvc.Create(context.Background(), &CreateAssetInput{
		AssetName: "Laptop", BranchName: "Harare",
	}, user.ID)
	require.NoError(t, err)

	_, err = userSvc.UpdateProfile(context.Background(), user.ID, &UpdateProfileInput{
		CurrentPassword: "strongpassword",
		SignaturePNG:    drawnSignaturePNG(t),
	})
	require.NoError(t, err)

	// The asset record keeps the signature that was current at receive time
	detail, err := assetSvc.GetByTrackingID(context.Background(), trackingID)
	require.NoError(t, err)
	assert.Equal(t, "signatures/officer.png", detail.ReceivedBySignaturePath)
}
