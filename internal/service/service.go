package service

import (
	"insightfeed/internal/config"
	"insightfeed/internal/mailer"
	"insightfeed/internal/repository"
	"insightfeed/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Article ArticleService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, mail mailer.Mailer) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, rep.OTP, mail, cfg),
		User:    NewUserService(rep.User, cfg),
		Article: NewArticleService(rep.Article, storage, cfg),
	}
}
