package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"insightfeed/internal/models"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) CreateFromPending(ctx context.Context, pending *models.PendingRegistration) (*models.User, error) {
	args := m.Called(ctx, pending)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockOTPRepository struct {
	mock.Mock
}

func (m *mockOTPRepository) Create(ctx context.Context, pending *models.PendingRegistration) error {
	args := m.Called(ctx, pending)
	return args.Error(0)
}

func (m *mockOTPRepository) Claim(ctx context.Context, email, otp string) (*models.PendingRegistration, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingRegistration), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendOTP(email, otp string) error {
	args := m.Called(email, otp)
	return args.Error(0)
}

type mockArticleRepository struct {
	mock.Mock
}

func (m *mockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) GetByID(ctx context.Context, articleID string) (*models.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *mockArticleRepository) GetByAuthor(ctx context.Context, authorID string) ([]models.Article, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *mockArticleRepository) GetByCategories(ctx context.Context, categories []string) ([]models.Article, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *mockArticleRepository) GetLatest(ctx context.Context, limit int) ([]models.Article, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *mockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) Delete(ctx context.Context, articleID string) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

func (m *mockArticleRepository) Publish(ctx context.Context, articleID string) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

func (m *mockArticleRepository) Like(ctx context.Context, articleID, userID string) error {
	args := m.Called(ctx, articleID, userID)
	return args.Error(0)
}

func (m *mockArticleRepository) Dislike(ctx context.Context, articleID, userID string) error {
	args := m.Called(ctx, articleID, userID)
	return args.Error(0)
}

func (m *mockArticleRepository) RemoveLike(ctx context.Context, articleID, userID string) error {
	args := m.Called(ctx, articleID, userID)
	return args.Error(0)
}

func (m *mockArticleRepository) RemoveDislike(ctx context.Context, articleID, userID string) error {
	args := m.Called(ctx, articleID, userID)
	return args.Error(0)
}

func (m *mockArticleRepository) Block(ctx context.Context, articleID, userID string) error {
	args := m.Called(ctx, articleID, userID)
	return args.Error(0)
}

func (m *mockArticleRepository) Unblock(ctx context.Context, articleID, userID string) error {
	args := m.Called(ctx, articleID, userID)
	return args.Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadArticleImage(ctx context.Context, fileName, contentType string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, fileName, contentType, file, size)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}
