package user

import (
	"Recipe-API/domain"
	"Recipe-API/entities"
	"Recipe-API/internal/utils/mailing"
	"Recipe-API/pkg/crud"
	"Recipe-API/pkg/jwt"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		RefreshToken(ctx context.Context, refreshToken string) (string, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
		log            *zap.Logger
	}
)

func NewUserService(
	userRepository UserRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	appURL string,
	log *zap.Logger,
) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         appURL,
		log:            log,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	_, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return domain.RegisterResponse{}, domain.ErrUserAlreadyExists
	}
	if !errors.Is(err, crud.ErrNotFound) {
		return domain.RegisterResponse{}, fmt.Errorf("lookup username: %w", err)
	}

	email := normalizeOptional(req.Email)
	if email != nil {
		_, err := s.userRepository.GetUserByEmail(ctx, *email)
		if err == nil {
			return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
		}
		if !errors.Is(err, crud.ErrNotFound) {
			return domain.RegisterResponse{}, fmt.Errorf("lookup email: %w", err)
		}
	}

	user := &entities.User{
		Username: req.Username,
		Name:     req.Name,
		Phone:    normalizeOptional(req.Phone),
		Email:    email,
	}
	if err := SetPassword(user, req.Password); err != nil {
		return domain.RegisterResponse{}, err
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent registration; the unique index decides.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RegisterResponse{}, s.duplicateUserError(ctx, user)
		}
		return domain.RegisterResponse{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))

	if user.Email != nil {
		subject, body := mailing.WelcomeMail(s.appURL, user.Name)
		if err := s.mailer.SendMail(*user.Email, subject, body); err != nil {
			s.log.Warn("failed to send welcome mail", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	return domain.RegisterResponse{Username: user.Username}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, crud.ErrNotFound) {
			burnPasswordCheck(req.Password)
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, fmt.Errorf("lookup username: %w", err)
	}

	if !CheckPassword(user, req.Password) {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.IssueAccessToken(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	refreshToken, err := s.jwtService.IssueRefreshToken(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	s.log.Debug("user logged in", zap.Uint("user_id", user.ID))
	return domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *userService) RefreshToken(_ context.Context, refreshToken string) (string, error) {
	return s.jwtService.Refresh(refreshToken)
}

// duplicateUserError names the column that made the insert of user fail,
// preferring username as the up-front checks do.
func (s *userService) duplicateUserError(ctx context.Context, user *entities.User) error {
	if _, err := s.userRepository.GetUserByUsername(ctx, user.Username); err == nil || user.Email == nil {
		return domain.ErrUserAlreadyExists
	}
	if _, err := s.userRepository.GetUserByEmail(ctx, *user.Email); err == nil {
		return domain.ErrEmailAlreadyExists
	}
	return domain.ErrUserAlreadyExists
}

func normalizeOptional(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
