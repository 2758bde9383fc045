package services

import (
	"context"
	"errors"

	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/adapters/persistence/repositories"
	"pnp-asset-tracker/internal/core/domain"
	"pnp-asset-tracker/internal/pkg/password"
	"pnp-asset-tracker/internal/pkg/signature"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
)

// UserService handles profile management business logic
type UserService struct {
	userRepo   repositories.UserRepository
	signatures *signature.Store
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, signatures *signature.Store) *UserService {
	return &UserService{
		userRepo:   userRepo,
		signatures: signatures,
	}
}

// UpdateProfileInput represents profile edit input. Username, password and
// signature are each optional and replaceable independently, but the
// current password must always be re-verified.
type UpdateProfileInput struct {
	CurrentPassword string
	Username        *string
	NewPassword     *string
	SignaturePNG    []byte
}

// GetProfile gets own profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// GetSignaturePath returns the signature reference for a user
func (s *UserService) GetSignaturePath(ctx context.Context, userID uint) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}
	if user.SignaturePath == "" {
		return "", domain.ErrSignatureMissing
	}
	return user.SignaturePath, nil
}

// UpdateProfile updates own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	if input.CurrentPassword == "" {
		return nil, domain.ErrValidation
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// Saving any change requires the current password
	if !password.Verify(input.CurrentPassword, user.Password) {
		return nil, ErrCurrentPasswordWrong
	}

	if input.Username != nil && *input.Username != user.Username {
		if *input.Username == "" {
			return nil, domain.ErrValidation
		}
		taken, err := s.userRepo.ExistsByUsernameExcept(ctx, *input.Username, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUserAlreadyExists
		}
		user.Username = *input.Username
	}

	if input.NewPassword != nil {
		if !password.ValidatePassword(*input.NewPassword) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*input.NewPassword)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if len(input.SignaturePNG) > 0 {
		newPath, err := s.signatures.Save(input.SignaturePNG)
		if err != nil {
			if errors.Is(err, signature.ErrBlank) || errors.Is(err, signature.ErrNotPNG) {
				return nil, ErrSignatureInvalid
			}
			return nil, err
		}
		// Existing asset records keep their original signature references;
		// only the user's current signature moves forward.
		user.SignaturePath = newPath
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}
