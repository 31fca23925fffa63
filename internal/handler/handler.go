package handlers

import (
	"github.com/go-playground/validator/v10"

	"insightfeed/internal/config"
	"insightfeed/internal/database"
	"insightfeed/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	ArticleService service.ArticleService
	DB             database.MethodsDB
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(services *service.Service, db database.MethodsDB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    services.Auth,
		UserService:    services.User,
		ArticleService: services.Article,
		DB:             db,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
