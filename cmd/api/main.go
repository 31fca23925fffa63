package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"insightfeed/cmd/app"
	"insightfeed/internal/config"
	handlers "insightfeed/internal/handler"
	"insightfeed/internal/middleware"
	"insightfeed/internal/service"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET и REFRESH_TOKEN_SECRET не установлены в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	auth := router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", handler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/verify-otp", handler.VerifyOTP).Methods(http.MethodPost)
	auth.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", handler.Logout).Methods(http.MethodPost)

	authProtected := router.PathPrefix("/auth").Subrouter()
	authProtected.Use(mux.MiddlewareFunc(middleware.AuthMiddleware(cfg)))
	authProtected.HandleFunc("/update-profile", handler.UpdateProfile).Methods(http.MethodPut)

	// public article endpoint
	router.HandleFunc("/article/latest", handler.GetLatestArticles).Methods(http.MethodGet)

	article := router.PathPrefix("/article").Subrouter()
	article.Use(mux.MiddlewareFunc(middleware.AuthMiddleware(cfg)))
	article.HandleFunc("/create", handler.CreateArticle).Methods(http.MethodPost)
	article.HandleFunc("/publish/{id}", handler.PublishArticle).Methods(http.MethodPatch)
	article.HandleFunc("/getuserarticles", handler.GetUserArticles).Methods(http.MethodGet)
	article.HandleFunc("/getarticles-by-preferences", handler.GetArticlesByCategories).Methods(http.MethodGet)
	article.HandleFunc("/articles/{articleId}", handler.GetArticle).Methods(http.MethodGet)
	article.HandleFunc("/articles/{articleId}", handler.UpdateArticle).Methods(http.MethodPut)
	article.HandleFunc("/articles/{articleId}", handler.DeleteArticle).Methods(http.MethodDelete)

	article.HandleFunc("/articles/like/{articleId}", handler.Reaction(service.ActionLike)).Methods(http.MethodPost)
	article.HandleFunc("/articles/removelike/{articleId}", handler.Reaction(service.ActionRemoveLike)).Methods(http.MethodPost)
	article.HandleFunc("/articles/dislike/{articleId}", handler.Reaction(service.ActionDislike)).Methods(http.MethodPost)
	article.HandleFunc("/articles/removeDislike/{articleId}", handler.Reaction(service.ActionRemoveDislike)).Methods(http.MethodPost)
	article.HandleFunc("/articles/block/{articleId}", handler.Reaction(service.ActionBlock)).Methods(http.MethodPost)
	article.HandleFunc("/articles/unblock/{articleId}", handler.Reaction(service.ActionUnblock)).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
