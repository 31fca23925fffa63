package test

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"

	"insightfeed/internal/config"
	handlers "insightfeed/internal/handler"
	"insightfeed/internal/models"
	"insightfeed/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Signup(ctx context.Context, req service.SignupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockAuthService) VerifyOTP(ctx context.Context, email, otp string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) UpdateProfile(ctx context.Context, req service.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockArticleService struct {
	mock.Mock
}

func (m *mockArticleService) Create(ctx context.Context, req service.CreateArticleRequest) (*models.Article, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *mockArticleService) Update(ctx context.Context, req service.UpdateArticleRequest) (*models.Article, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *mockArticleService) Delete(ctx context.Context, articleID, actorID string) error {
	args := m.Called(ctx, articleID, actorID)
	return args.Error(0)
}

func (m *mockArticleService) Publish(ctx context.Context, articleID, actorID string) (*models.Article, error) {
	args := m.Called(ctx, articleID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *mockArticleService) GetByID(ctx context.Context, articleID string) (*models.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *mockArticleService) GetByAuthor(ctx context.Context, authorID string) ([]models.Article, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *mockArticleService) GetByCategories(ctx context.Context, categories []string) ([]models.Article, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *mockArticleService) GetLatest(ctx context.Context) ([]models.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *mockArticleService) React(ctx context.Context, action service.ReactionAction, articleID, userID string) (*models.Article, error) {
	args := m.Called(ctx, action, articleID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

type testMocks struct {
	auth    *mockAuthService
	user    *mockUserService
	article *mockArticleService
}

func createTestHandler() (*handlers.Handlers, *testMocks) {
	mocks := &testMocks{
		auth:    new(mockAuthService),
		user:    new(mockUserService),
		article: new(mockArticleService),
	}

	cfg := &config.Config{
		AppEnv:               "test",
		FrontendURL:          "http://localhost:3000",
		AccessTokenSecret:    "access-secret",
		RefreshTokenSecret:   "refresh-secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		OTPDuration:          10 * time.Minute,
		MaxUploadSize:        5 * 1024 * 1024,
	}

	h := &handlers.Handlers{
		AuthService:    mocks.auth,
		UserService:    mocks.user,
		ArticleService: mocks.article,
		Cfg:            cfg,
		Validate:       validator.New(),
	}

	return h, mocks
}
