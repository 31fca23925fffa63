package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"insightfeed/internal/config"
	"insightfeed/internal/mailer"
	"insightfeed/internal/models"
	"insightfeed/internal/repository"
)

type SignupRequest struct {
	FirstName   string
	LastName    string
	Phone       string
	Email       string
	DOB         time.Time
	Password    string
	Preferences []string
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) error
	VerifyOTP(ctx context.Context, email, otp string) (*models.User, string, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OTPRepository
	mail     mailer.Mailer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, otpRepo repository.OTPRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

// Signup проверяет дубликаты, хеширует пароль и сохраняет заявку с кодом.
// Пользователь появится в users только после VerifyOTP.
func (s *authService) Signup(ctx context.Context, req SignupRequest) error {
	exists, err := s.userRepo.ExistsByEmailOrPhone(ctx, req.Email, req.Phone)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrDuplicateIdentity
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("ошибка генерации кода: %w", err)
	}

	pending := &models.PendingRegistration{
		Email:        req.Email,
		OTP:          otp,
		ExpiresAt:    time.Now().Add(s.cfg.OTPDuration),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		DOB:          req.DOB,
		PasswordHash: string(hashedPassword),
		Preferences:  req.Preferences,
	}

	err = s.otpRepo.Create(ctx, pending)
	if err != nil {
		return err
	}

	// ошибка отправки письма поднимается наверх, а не глотается
	err = s.mail.SendOTP(req.Email, otp)
	if err != nil {
		return err
	}

	return nil
}

// VerifyOTP превращает заявку в пользователя ровно один раз:
// атомарный Claim гарантирует, что из гонки verify выйдет один победитель
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) (*models.User, string, string, error) {
	pending, err := s.otpRepo.Claim(ctx, email, otp)
	if err != nil {
		return nil, "", "", err
	}

	// защитная проверка, в норме недостижима
	if pending.FirstName == "" || pending.PasswordHash == "" {
		return nil, "", "", repository.ErrNoPendingPayload
	}

	user, err := s.userRepo.CreateFromPending(ctx, pending)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) issueTokens(user *models.User) (string, string, error) {
	accessToken, err := signToken(user, s.cfg.AccessTokenSecret, s.cfg.AccessTokenDuration)
	if err != nil {
		return "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, err := signToken(user, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenDuration)
	if err != nil {
		return "", "", fmt.Errorf("ошибка генерации refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func signToken(user *models.User, secret string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"exp":    time.Now().Add(duration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// generateOTP - равномерный шестизначный код из криптографического источника
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
