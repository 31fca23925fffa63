package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"insightfeed/internal/models"
)

type UserRepository interface {
	CreateFromPending(ctx context.Context, pending *models.PendingRegistration) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type OTPRepository interface {
	Create(ctx context.Context, pending *models.PendingRegistration) error
	// Claim атомарно находит и удаляет заявку: из двух конкурентных
	// verify выигрывает ровно один
	Claim(ctx context.Context, email, otp string) (*models.PendingRegistration, error)
}

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, articleID string) (*models.Article, error)
	GetByAuthor(ctx context.Context, authorID string) ([]models.Article, error)
	GetByCategories(ctx context.Context, categories []string) ([]models.Article, error)
	GetLatest(ctx context.Context, limit int) ([]models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, articleID string) error
	Publish(ctx context.Context, articleID string) error

	Like(ctx context.Context, articleID, userID string) error
	Dislike(ctx context.Context, articleID, userID string) error
	RemoveLike(ctx context.Context, articleID, userID string) error
	RemoveDislike(ctx context.Context, articleID, userID string) error
	Block(ctx context.Context, articleID, userID string) error
	Unblock(ctx context.Context, articleID, userID string) error
}

type Repository struct {
	User    UserRepository
	OTP     OTPRepository
	Article ArticleRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		OTP:     NewOTPRepository(db),
		Article: NewArticleRepository(db),
	}
}
