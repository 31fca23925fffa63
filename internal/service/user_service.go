package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"insightfeed/internal/config"
	"insightfeed/internal/models"
	"insightfeed/internal/repository"
)

type UpdateProfileRequest struct {
	UserID      string
	FirstName   string
	LastName    string
	Phone       string
	Email       string
	DOB         *time.Time
	Password    string
	Preferences []string
}

type UserService interface {
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *userService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Phone = strings.TrimSpace(req.Phone)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.DOB != nil {
		user.DOB = *req.DOB
	}

	if req.Preferences != nil {
		prefs := make([]string, 0, len(req.Preferences))
		for _, pref := range req.Preferences {
			pref = strings.ToLower(strings.TrimSpace(pref))
			if pref != "" {
				prefs = append(prefs, pref)
			}
		}
		user.Preferences = prefs
	}

	// пароль меняется только если прислан новый
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	// update user
	err = s.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
