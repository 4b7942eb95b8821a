package user

import (
	"Pantry-Tracker/domain"
	"Pantry-Tracker/entities"
	"Pantry-Tracker/internal/utils"
	"Pantry-Tracker/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func toUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if exists {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		Password:      hashed,
		Role:          domain.RoleUser,
		DigestEnabled: true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := utils.ComparePassword(user.Password, req.Password); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	return domain.LoginResponse{
		Token: s.jwtService.GenerateTokenUser(user.ID.String(), user.Role),
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}
