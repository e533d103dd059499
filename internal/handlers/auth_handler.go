package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashtrackr/internal/errors"
	"cashtrackr/internal/mailer"
	"cashtrackr/internal/middleware"
	"cashtrackr/internal/services"
)

// AuthHandler handles the account lifecycle: registration, confirmation,
// login, password recovery, and profile management.
type AuthHandler struct {
	userService services.UserServicer
	authEmail   *mailer.AuthEmail
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer, authEmail *mailer.AuthEmail) *AuthHandler {
	return &AuthHandler{userService: userService, authEmail: authEmail}
}

// CreateAccountRequest represents the registration payload.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// ConfirmAccountRequest carries a 6-digit confirmation token.
type ConfirmAccountRequest struct {
	Token string `json:"token" binding:"required,len=6,numeric"`
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest carries the email of the account to recover.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest carries the replacement password for a reset token.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest represents the profile update payload.
type UpdateUserRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Email string `json:"email" binding:"required,email,max=50"`
}

// UpdatePasswordRequest carries the current and replacement passwords.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	Password        string `json:"password" binding:"required,min=8"`
}

// CheckPasswordRequest carries a password to verify against the session user.
type CheckPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// CreateAccount registers a new unconfirmed user and mails the confirmation
// code. The email is awaited before responding; a transport failure after
// the user row exists surfaces as a generic server error.
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Name":     "Name can not be empty",
			"Email":    "Email is not valid",
			"Password": "Password must be at least 8 characters long",
		})
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authEmail.SendConfirmationEmail(c.Request.Context(), user.Name, user.Email, *user.Token); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
}

// ConfirmAccount consumes a confirmation token.
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	var req ConfirmAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Token": "Token not valid",
		})
		return
	}

	if err := h.userService.ConfirmAccount(req.Token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account confirmed"})
}

// Login authenticates a confirmed user and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Email":    "Email is not valid",
			"Password": "Password is required",
		})
		return
	}

	user, err := h.userService.AttemptLogin(req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	jwt, err := middleware.GenerateToken(user.ID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": jwt})
}

// ForgotPassword reissues the user's token and mails the reset code.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Email": "Email is not valid",
		})
		return
	}

	user, err := h.userService.ForgotPassword(req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.authEmail.SendPasswordResetToken(c.Request.Context(), user.Name, user.Email, *user.Token); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "check your email"})
}

// ValidateToken checks a reset token without consuming it.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req ConfirmAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Token": "Token not valid",
		})
		return
	}

	if err := h.userService.ValidateToken(req.Token); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Token Valid..."})
}

// ResetPasswordWithToken consumes the token in the path and replaces the
// account password.
func (h *AuthHandler) ResetPasswordWithToken(c *gin.Context) {
	tokenParam := c.Param("token")
	if len(tokenParam) != 6 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"msg": "Token not valid"}}})
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Password": "Password must be at least 8 characters long",
		})
		return
	}

	if err := h.userService.ResetPasswordWithToken(tokenParam, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Password updated succesfully"})
}

// User returns the authenticated user's id, name, and email.
func (h *AuthHandler) User(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser changes the authenticated user's name and email.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Name":  "Name can not be empty",
			"Email": "Email is not valid",
		})
		return
	}

	if err := h.userService.UpdateUser(user.ID, req.Name, req.Email); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User updated successfully"})
}

// UpdateCurrentUserPassword replaces the session user's password after
// verifying the current one.
func (h *AuthHandler) UpdateCurrentUserPassword(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"CurrentPassword": "Current password is required",
			"Password":        "New Password must be at least 8 characters long",
		})
		return
	}

	if err := h.userService.UpdatePassword(user.ID, req.CurrentPassword, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "password update succesfully"})
}

// CheckPassword verifies the session user's password.
func (h *AuthHandler) CheckPassword(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CheckPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithValidationError(c, err, map[string]string{
			"Password": "Password is required",
		})
		return
	}

	if err := h.userService.CheckPassword(user.ID, req.Password); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Password is correct"})
}
