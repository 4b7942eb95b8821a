package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "user retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to retrieve user"

	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}
)
