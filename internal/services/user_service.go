package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/models"
	"cashtrackr/internal/token"
)

// userService handles the account lifecycle.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new unconfirmed user with a confirmation token.
// Emails are stored exactly as given; matching is case-sensitive.
func (s *userService) CreateUser(name, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	code := token.GenerateConfirmationToken()
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Token:    &code,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// ConfirmAccount consumes a confirmation token. A token already consumed is
// NULL in the store and never matches again, so re-submitting conflicts.
func (s *userService) ConfirmAccount(code string) error {
	user, err := s.findByToken(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTokenConflict
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{"confirmed": true, "token": nil}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AttemptLogin resolves a user by email and verifies confirmation state and
// password. The checks run in that order so an unconfirmed account fails the
// same way regardless of password correctness.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !user.Confirmed {
		return nil, apperrors.ErrUserNotConfirmed
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrPasswordIncorrect
	}

	return &user, nil
}

// ForgotPassword reissues the user's token for a password reset.
func (s *userService) ForgotPassword(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	code := token.GenerateConfirmationToken()
	if err := s.db.Model(&user).Update("token", code).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.Token = &code

	return &user, nil
}

// ValidateToken checks that a reset token matches a user without consuming it.
func (s *userService) ValidateToken(code string) error {
	if _, err := s.findByToken(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ResetPasswordWithToken consumes a reset token and replaces the password.
func (s *userService) ResetPasswordWithToken(code, password string) error {
	user, err := s.findByToken(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{"password": string(hashed), "token": nil}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UpdatePassword replaces the password after verifying the current one.
func (s *userService) UpdatePassword(userID uint, currentPassword, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return apperrors.ErrCurrentPasswordIncorrect
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CheckPassword verifies the user's password without changing any state.
func (s *userService) CheckPassword(userID uint, password string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return apperrors.ErrPasswordIncorrect
	}
	return nil
}

// UpdateUser changes the profile name and email.
func (s *userService) UpdateUser(userID uint, name, email string) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrEmailExists
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"name": name, "email": email})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetAuthUserByID loads the request identity: id, name, and email only. The
// password hash never leaves the store on this path.
func (s *userService) GetAuthUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Select("id", "name", "email").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// findByToken resolves a user holding the given token. The empty string is
// rejected up front so a consumed (NULL) token can never match.
func (s *userService) findByToken(code string) (*models.User, error) {
	if code == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	if err := s.db.Where("token = ?", code).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
