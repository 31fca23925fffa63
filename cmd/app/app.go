package app

import (
	"log"

	"insightfeed/internal/config"
	"insightfeed/internal/database"
	"insightfeed/internal/mailer"
	"insightfeed/internal/repository"
	"insightfeed/internal/service"
	"insightfeed/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	mail := mailer.NewSMTPMailer(cfg)

	services := service.NewService(repo, cfg, minioClient, mail)

	return db, repo, services
}
