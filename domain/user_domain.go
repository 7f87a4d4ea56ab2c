package domain

import "errors"

var (
	MessageSuccessLogin        = "Login successful"
	MessageSuccessRegister     = "Registration successful"
	MessageSuccessRefreshToken = "Access token refreshed"

	MessageFailedLogin          = "Invalid username or password"
	MessageFailedRegister       = "failed to register user"
	MessageUsernameExists       = "Username already exists."
	MessageEmailExists          = "Email already exists."
	MessageFailedRefreshToken   = "failed to refresh token"
	MessageFailedPasswordLength = "Password must be at most 72 bytes"
	MessageUserNotFound         = "User not found"

	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrPasswordTooLong       = errors.New("password exceeds 72 bytes")
	ErrFailedGenerateToken   = errors.New("failed to generate token")
	ErrFailedHashingPassword = errors.New("failed to hash password")
)

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}

	RegisterRequest struct {
		Username string  `json:"username"`
		Password string  `json:"password"`
		Name     string  `json:"name"`
		Phone    *string `json:"phone"`
		Email    *string `json:"email"`
	}

	RegisterResponse struct {
		Username string `json:"username"`
	}

	RefreshTokenResponse struct {
		Status      string `json:"status"`
		Message     string `json:"message"`
		AccessToken string `json:"access_token"`
	}
)
